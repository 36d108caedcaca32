package model

import "time"

type TopicPriority string

const (
	PriorityHigh   TopicPriority = "high"
	PriorityMedium TopicPriority = "medium"
	PriorityLow    TopicPriority = "low"
)

// Topic 学习主题，所有卡片/题目/任务都挂在主题下
// swagger:model Topic
type Topic struct {
	UUIDBase
	UserID              uint          `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Name                string        `gorm:"size:255;not null" json:"name"`
	Description         string        `gorm:"type:text" json:"description"`
	Priority            TopicPriority `gorm:"type:enum('high','medium','low');default:'medium'" json:"priority"`
	Progress            int           `gorm:"default:0" json:"progress"` // 0-100
	InitialSetGenerated bool          `gorm:"default:false" json:"initialSetGenerated"`
	LastRegeneratedAt   *time.Time    `json:"lastRegeneratedAt"`
}

func (Topic) TableName() string {
	return "topics"
}
