package model

// ContentUpload 一次笔记上传及 AI 处理结果
// swagger:model ContentUpload
type ContentUpload struct {
	UUIDBase
	UserID         uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	TopicID        string `gorm:"index;type:varchar(36)" json:"topicId"`
	FileName       string `gorm:"size:255" json:"fileName"`
	FileType       string `gorm:"size:100" json:"fileType"`
	FileURL        string `gorm:"size:500" json:"fileUrl"` // 对象存储地址，纯文本上传时为空
	ExtractedText  string `gorm:"type:longtext" json:"extractedText"`
	Summary        string `gorm:"type:text" json:"summary"`
	FlashcardCount int    `gorm:"default:0" json:"flashcardCount"`
	QuestionCount  int    `gorm:"default:0" json:"questionCount"`
	Processed      bool   `gorm:"default:false" json:"processed"`
}

func (ContentUpload) TableName() string {
	return "content_uploads"
}
