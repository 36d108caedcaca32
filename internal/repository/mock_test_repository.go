package repository

import (
	"studypal_backend/internal/model"

	"gorm.io/gorm"
)

type MockTestRepository struct {
	DB *gorm.DB
}

func NewMockTestRepository(db *gorm.DB) *MockTestRepository {
	return &MockTestRepository{DB: db}
}

func (r *MockTestRepository) Create(test *model.MockTest) error {
	return r.DB.Create(test).Error
}

func (r *MockTestRepository) FindByID(id string) (*model.MockTest, error) {
	var test model.MockTest
	err := r.DB.Where("id = ?", id).First(&test).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *MockTestRepository) FindByUser(userID uint) ([]model.MockTest, error) {
	var tests []model.MockTest
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&tests).Error
	return tests, err
}

func (r *MockTestRepository) Update(test *model.MockTest) error {
	return r.DB.Save(test).Error
}

func (r *MockTestRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.MockTest{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Count(&count).Error
	return count, err
}

func (r *MockTestRepository) CountCompletedByTopic(userID uint, topicID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.MockTest{}).
		Where("user_id = ? AND topic_id = ? AND completed_at IS NOT NULL", userID, topicID).
		Count(&count).Error
	return count, err
}
