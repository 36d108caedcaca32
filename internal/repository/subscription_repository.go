package repository

import (
	"studypal_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.DB.Create(sub).Error
}

func (r *SubscriptionRepository) FindByUser(userID uint) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.DB.Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) Update(sub *model.Subscription) error {
	return r.DB.Save(sub).Error
}

// FindOrCreateUsage 取当周用量记录，不存在则创建空记录
func (r *SubscriptionRepository) FindOrCreateUsage(userID uint, weekStart time.Time) (*model.UsageTracking, error) {
	var usage model.UsageTracking
	err := r.DB.Where("user_id = ? AND week_start = ?", userID, weekStart).First(&usage).Error
	if err == gorm.ErrRecordNotFound {
		usage = model.UsageTracking{UserID: userID, WeekStart: weekStart}
		if err := r.DB.Create(&usage).Error; err != nil {
			return nil, err
		}
		return &usage, nil
	}
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

// IncrementUsage 原子自增指定用量列
func (r *SubscriptionRepository) IncrementUsage(userID uint, weekStart time.Time, column string) error {
	return r.DB.Model(&model.UsageTracking{}).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		Update(column, gorm.Expr(column+" + 1")).
		Error
}
