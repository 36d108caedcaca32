package model

import "time"

type RewardCategory string

const (
	RewardDigital   RewardCategory = "digital"
	RewardRealWorld RewardCategory = "real_world"
)

type RewardStatus string

const (
	RewardPending   RewardStatus = "pending"
	RewardFulfilled RewardStatus = "fulfilled"
	RewardExpired   RewardStatus = "expired"
)

// Reward 可用 XP 兑换的奖励目录
// swagger:model Reward
type Reward struct {
	UUIDBase
	Slug        string         `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"size:255" json:"description"`
	Category    RewardCategory `gorm:"type:enum('digital','real_world');not null" json:"category"`
	XPCost      int            `gorm:"not null" json:"xpCost"`
	ImageURL    string         `gorm:"size:500" json:"imageUrl"`
	IsProOnly   bool           `gorm:"default:false" json:"isProOnly"`
	IsActive    bool           `gorm:"default:true" json:"isActive"`
}

func (Reward) TableName() string {
	return "rewards"
}

// UserReward 兑换记录
type UserReward struct {
	BaseModel
	UserID    uint         `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	RewardID  string       `gorm:"index;type:varchar(36);not null" json:"rewardId"`
	Status    RewardStatus `gorm:"type:enum('pending','fulfilled','expired');default:'pending'" json:"status"`
	ClaimedAt time.Time    `gorm:"not null" json:"claimedAt"`
	Reward    *Reward      `gorm:"foreignKey:RewardID" json:"reward,omitempty"`
}

func (UserReward) TableName() string {
	return "user_rewards"
}
