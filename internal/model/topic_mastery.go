package model

type MasteryLevel string

const (
	MasteryNovice     MasteryLevel = "novice"
	MasteryLearning   MasteryLevel = "learning"
	MasteryProficient MasteryLevel = "proficient"
	MasteryMaster     MasteryLevel = "master"
)

// TopicMastery 每个 (用户, 主题) 一条，mastery_level 由统计值推导后缓存
// swagger:model TopicMastery
type TopicMastery struct {
	BaseModel
	UserID              uint         `gorm:"index:idx_mastery_user_topic,unique;type:bigint unsigned;not null" json:"userId"`
	TopicID             string       `gorm:"index:idx_mastery_user_topic,unique;type:varchar(36);not null" json:"topicId"`
	XPEarned            int          `gorm:"default:0" json:"xpEarned"`
	QuestionAccuracyPct int          `gorm:"default:0" json:"questionAccuracyPct"` // 0-100
	TestsCompleted      int          `gorm:"default:0" json:"testsCompleted"`
	FlashcardMasteryPct int          `gorm:"default:0" json:"flashcardMasteryPct"` // 0-100
	FlashcardsReviewed  int          `gorm:"default:0" json:"flashcardsReviewed"`
	MasteryLevel        MasteryLevel `gorm:"type:enum('novice','learning','proficient','master');default:'novice'" json:"masteryLevel"`
}

func (TopicMastery) TableName() string {
	return "topic_mastery"
}
