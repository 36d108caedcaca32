package repository

import (
	"studypal_backend/internal/model"

	"gorm.io/gorm"
)

type RewardRepository struct {
	DB *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{DB: db}
}

func (r *RewardRepository) FindActive() ([]model.Reward, error) {
	var rewards []model.Reward
	err := r.DB.Where("is_active = ?", true).Order("xp_cost ASC").Find(&rewards).Error
	return rewards, err
}

func (r *RewardRepository) FindByID(id string) (*model.Reward, error) {
	var reward model.Reward
	err := r.DB.Where("id = ?", id).First(&reward).Error
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *RewardRepository) FindUserRewards(userID uint) ([]model.UserReward, error) {
	var rows []model.UserReward
	err := r.DB.Preload("Reward").
		Where("user_id = ?", userID).
		Order("claimed_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *RewardRepository) Claim(ur *model.UserReward) error {
	return r.DB.Create(ur).Error
}
