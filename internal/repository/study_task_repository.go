package repository

import (
	"studypal_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type StudyTaskRepository struct {
	DB *gorm.DB
}

func NewStudyTaskRepository(db *gorm.DB) *StudyTaskRepository {
	return &StudyTaskRepository{DB: db}
}

// ReplaceAll 删除用户旧计划后整批写入新任务，同一事务内完成
func (r *StudyTaskRepository) ReplaceAll(userID uint, tasks []model.StudyTask) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.StudyTask{}).Error; err != nil {
			return err
		}
		if len(tasks) == 0 {
			return nil
		}
		return tx.Create(&tasks).Error
	})
}

func (r *StudyTaskRepository) FindByID(id string) (*model.StudyTask, error) {
	var task model.StudyTask
	err := r.DB.Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *StudyTaskRepository) FindByUser(userID uint) ([]model.StudyTask, error) {
	var tasks []model.StudyTask
	err := r.DB.Where("user_id = ?", userID).
		Order("scheduled_date ASC, created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *StudyTaskRepository) FindByUserAndDate(userID uint, date time.Time) ([]model.StudyTask, error) {
	var tasks []model.StudyTask
	err := r.DB.Where("user_id = ? AND scheduled_date = ?", userID, date).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *StudyTaskRepository) Update(task *model.StudyTask) error {
	return r.DB.Save(task).Error
}
