package model

import "time"

// UserGamification 每个用户一条，XP 总量与连续学习状态
// swagger:model UserGamification
type UserGamification struct {
	BaseModel
	UserID                  uint       `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"userId"`
	XPTotal                 int        `gorm:"default:0" json:"xpTotal"`
	Level                   int        `gorm:"default:1" json:"level"` // 缓存值，xp_total 为准
	CurrentStreak           int        `gorm:"default:0" json:"currentStreak"`
	LongestStreak           int        `gorm:"default:0" json:"longestStreak"`
	LastActivityDate        *time.Time `gorm:"type:date" json:"lastActivityDate"`
	StreakProtectionUsedAt  *time.Time `gorm:"type:date" json:"streakProtectionUsedAt"`
}

func (UserGamification) TableName() string {
	return "user_gamification"
}

// XPEvent 追加式 XP 流水
type XPEvent struct {
	UUIDBase
	UserID    uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	TopicID   string `gorm:"index;type:varchar(36)" json:"topicId"`
	EventType string `gorm:"size:50;not null" json:"eventType"`
	XPAmount  int    `gorm:"not null" json:"xpAmount"`
	Metadata  string `gorm:"type:json" json:"metadata"`
}

func (XPEvent) TableName() string {
	return "xp_events"
}
