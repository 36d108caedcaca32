package model

import "time"

// MockTest 模拟测试，从主题题库抽题生成
// swagger:model MockTest
type MockTest struct {
	UUIDBase
	UserID         uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	TopicID        string     `gorm:"index;type:varchar(36)" json:"topicId"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	QuestionIDs    StringList `gorm:"type:json" json:"questionIds"`
	TotalQuestions int        `gorm:"not null" json:"totalQuestions"`
	Score          *int       `json:"score"` // 百分制，完成前为空
	DurationSecs   int        `gorm:"default:0" json:"durationSecs"`
	CompletedAt    *time.Time `json:"completedAt"`
}

func (MockTest) TableName() string {
	return "mock_tests"
}
