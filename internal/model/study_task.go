package model

import "time"

type TaskType string

const (
	TaskFlashcard TaskType = "flashcard"
	TaskQuestion  TaskType = "question"
	TaskTest      TaskType = "test"
)

// StudyTask 学习计划中的单个任务，生成计划时整体替换
// swagger:model StudyTask
type StudyTask struct {
	UUIDBase
	UserID        uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	TopicID       string     `gorm:"index;type:varchar(36)" json:"topicId"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	TaskType      TaskType   `gorm:"type:enum('flashcard','question','test');not null" json:"taskType"`
	ScheduledDate time.Time  `gorm:"type:date;index;not null" json:"scheduledDate"`
	TimeMinutes   int        `gorm:"default:15" json:"timeMinutes"`
	Completed     bool       `gorm:"default:false" json:"completed"`
	CompletedAt   *time.Time `json:"completedAt"`
}

func (StudyTask) TableName() string {
	return "study_tasks"
}
