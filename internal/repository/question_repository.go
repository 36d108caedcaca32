package repository

import (
	"studypal_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) BulkCreate(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Create(&questions).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.Where("id = ?", id).First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) FindByTopic(topicID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("topic_id = ?", topicID).Order("created_at ASC").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByIDs(ids []string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) DeleteByTopic(topicID string) error {
	return r.DB.Where("topic_id = ?", topicID).Delete(&model.Question{}).Error
}

func (r *QuestionRepository) CountCorrectByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("user_id = ? AND answered_correctly = ?", userID, true).
		Count(&count).Error
	return count, err
}

// TopicAccuracyStats 主题下已作答题数与答对题数
func (r *QuestionRepository) TopicAccuracyStats(userID uint, topicID string) (attempted int64, correct int64, err error) {
	err = r.DB.Model(&model.Question{}).
		Where("user_id = ? AND topic_id = ? AND answered_correctly IS NOT NULL", userID, topicID).
		Count(&attempted).Error
	if err != nil {
		return
	}
	err = r.DB.Model(&model.Question{}).
		Where("user_id = ? AND topic_id = ? AND answered_correctly = ?", userID, topicID, true).
		Count(&correct).Error
	return
}
