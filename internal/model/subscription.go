package model

import "time"

type PlanType string

const (
	PlanFree PlanType = "free"
	PlanPro  PlanType = "pro"
)

type SubscriptionStatus string

const (
	SubActive   SubscriptionStatus = "active"
	SubCanceled SubscriptionStatus = "canceled"
	SubPastDue  SubscriptionStatus = "past_due"
	SubTrialing SubscriptionStatus = "trialing"
)

// Subscription 用户订阅，每个用户至多一条
// swagger:model Subscription
type Subscription struct {
	BaseModel
	UserID             uint               `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"userId"`
	Plan               PlanType           `gorm:"type:enum('free','pro');default:'free'" json:"plan"`
	Status             SubscriptionStatus `gorm:"type:enum('active','canceled','past_due','trialing');default:'active'" json:"status"`
	DevMode            bool               `gorm:"default:false" json:"devMode"` // 开发模式：按 Pro 处理
	CurrentPeriodStart *time.Time         `json:"currentPeriodStart"`
	CurrentPeriodEnd   *time.Time         `json:"currentPeriodEnd"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// UsageTracking 按周（周一为起始）统计用量，用于免费版限额
type UsageTracking struct {
	BaseModel
	UserID               uint      `gorm:"index:idx_usage_user_week,unique;type:bigint unsigned;not null" json:"userId"`
	WeekStart            time.Time `gorm:"index:idx_usage_user_week,unique;type:date;not null" json:"weekStart"`
	UploadsCount         int       `gorm:"default:0" json:"uploadsCount"`
	MockTestsCount       int       `gorm:"default:0" json:"mockTestsCount"`
	RegeneratesCount     int       `gorm:"default:0" json:"regeneratesCount"`
	VerifiedTestAttempts int       `gorm:"default:0" json:"verifiedTestAttempts"`
}

func (UsageTracking) TableName() string {
	return "usage_tracking"
}
