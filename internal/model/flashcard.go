package model

import "time"

// swagger:model Flashcard
type Flashcard struct {
	UUIDBase
	UserID         uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	TopicID        string     `gorm:"index;type:varchar(36)" json:"topicId"`
	UploadID       string     `gorm:"index;type:varchar(36)" json:"uploadId"`
	Front          string     `gorm:"type:text;not null" json:"front"`
	Back           string     `gorm:"type:text;not null" json:"back"`
	Mastered       bool       `gorm:"default:false" json:"mastered"`
	ReviewCount    int        `gorm:"default:0" json:"reviewCount"`
	LastReviewedAt *time.Time `json:"lastReviewedAt"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}
