package repository

import (
	"studypal_backend/internal/model"

	"gorm.io/gorm"
)

type FlashcardRepository struct {
	DB *gorm.DB
}

func NewFlashcardRepository(db *gorm.DB) *FlashcardRepository {
	return &FlashcardRepository{DB: db}
}

func (r *FlashcardRepository) BulkCreate(cards []model.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}
	return r.DB.Create(&cards).Error
}

func (r *FlashcardRepository) FindByID(id string) (*model.Flashcard, error) {
	var card model.Flashcard
	err := r.DB.Where("id = ?", id).First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *FlashcardRepository) FindByTopic(topicID string) ([]model.Flashcard, error) {
	var cards []model.Flashcard
	err := r.DB.Where("topic_id = ?", topicID).Order("created_at ASC").Find(&cards).Error
	return cards, err
}

func (r *FlashcardRepository) Update(card *model.Flashcard) error {
	return r.DB.Save(card).Error
}

func (r *FlashcardRepository) DeleteByTopic(topicID string) error {
	return r.DB.Where("topic_id = ?", topicID).Delete(&model.Flashcard{}).Error
}

// CountByUser 全部复习过的卡片数，徽章判定用
func (r *FlashcardRepository) CountReviewedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Flashcard{}).
		Where("user_id = ? AND review_count > 0", userID).
		Count(&count).Error
	return count, err
}

func (r *FlashcardRepository) CountMasteredByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Flashcard{}).
		Where("user_id = ? AND mastered = ?", userID, true).
		Count(&count).Error
	return count, err
}

// TopicMasteryStats 主题下卡片总数与已掌握数，精通度统计用
func (r *FlashcardRepository) TopicMasteryStats(userID uint, topicID string) (total int64, mastered int64, err error) {
	err = r.DB.Model(&model.Flashcard{}).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Count(&total).Error
	if err != nil {
		return
	}
	err = r.DB.Model(&model.Flashcard{}).
		Where("user_id = ? AND topic_id = ? AND mastered = ?", userID, topicID, true).
		Count(&mastered).Error
	return
}
