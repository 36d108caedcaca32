package repository

import (
	"studypal_backend/internal/model"

	"gorm.io/gorm"
)

type MasteryRepository struct {
	DB *gorm.DB
}

func NewMasteryRepository(db *gorm.DB) *MasteryRepository {
	return &MasteryRepository{DB: db}
}

func (r *MasteryRepository) FindOrCreate(userID uint, topicID string) (*model.TopicMastery, error) {
	var m model.TopicMastery
	err := r.DB.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&m).Error
	if err == gorm.ErrRecordNotFound {
		m = model.TopicMastery{UserID: userID, TopicID: topicID, MasteryLevel: model.MasteryNovice}
		if err := r.DB.Create(&m).Error; err != nil {
			return nil, err
		}
		return &m, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MasteryRepository) FindByUser(userID uint) ([]model.TopicMastery, error) {
	var rows []model.TopicMastery
	err := r.DB.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

func (r *MasteryRepository) Update(m *model.TopicMastery) error {
	return r.DB.Save(m).Error
}

// CountAtLeastProficient proficient 与 master 均计入
func (r *MasteryRepository) CountAtLeastProficient(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TopicMastery{}).
		Where("user_id = ? AND mastery_level IN ?", userID,
			[]model.MasteryLevel{model.MasteryProficient, model.MasteryMaster}).
		Count(&count).Error
	return count, err
}

func (r *MasteryRepository) CountMasterTopics(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TopicMastery{}).
		Where("user_id = ? AND mastery_level = ?", userID, model.MasteryMaster).
		Count(&count).Error
	return count, err
}

func (r *MasteryRepository) MaxTopicXP(userID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.TopicMastery{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(xp_earned), 0)").
		Scan(&max).Error
	return max, err
}
