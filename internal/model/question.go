package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringList 以 JSON 存储的选项列表
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	}
	return errors.New("unsupported type for StringList")
}

// Question 单选题，四个选项
// swagger:model Question
type Question struct {
	UUIDBase
	UserID            uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	TopicID           string     `gorm:"index;type:varchar(36)" json:"topicId"`
	UploadID          string     `gorm:"index;type:varchar(36)" json:"uploadId"`
	Question          string     `gorm:"type:text;not null" json:"question"`
	Options           StringList `gorm:"type:json" json:"options"`
	CorrectAnswer     string     `gorm:"type:text;not null" json:"correctAnswer"`
	Explanation       string     `gorm:"type:text" json:"explanation"`
	AnsweredCorrectly *bool      `json:"answeredCorrectly"`
	LastAttemptedAt   *time.Time `json:"lastAttemptedAt"`
}

func (Question) TableName() string {
	return "questions"
}
