package repository

import (
	"studypal_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *TopicRepository) FindByID(id string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.Where("id = ?", id).First(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *TopicRepository) FindByUser(userID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Topic{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *TopicRepository) Update(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

func (r *TopicRepository) UpdateProgress(id string, progress int) error {
	return r.DB.Model(&model.Topic{}).Where("id = ?", id).Update("progress", progress).Error
}

func (r *TopicRepository) MarkRegenerated(id string, at time.Time) error {
	return r.DB.Model(&model.Topic{}).Where("id = ?", id).Update("last_regenerated_at", at).Error
}

// Delete 级联清理主题下的学习材料
func (r *TopicRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&model.Flashcard{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", id).Delete(&model.ContentUpload{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", id).Delete(&model.StudyTask{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Topic{}).Error
	})
}
