package model

import "time"

type BadgeCategory string

const (
	BadgeLearning    BadgeCategory = "learning"
	BadgeConsistency BadgeCategory = "consistency"
	BadgeMastery     BadgeCategory = "mastery"
	BadgeSocial      BadgeCategory = "social"
)

// 徽章达成条件类型
const (
	ReqFlashcardReviewed = "flashcard_reviewed"
	ReqFlashcardMastered = "flashcard_mastered"
	ReqQuestionsCorrect  = "questions_correct"
	ReqStreakDays        = "streak_days"
	ReqTestsCompleted    = "tests_completed"
	ReqPerfectTest       = "perfect_test"
	ReqFastTest          = "fast_test"
	ReqTopicMasteryLevel = "topic_mastery_level"
	ReqTopicXP           = "topic_xp"
	ReqProficientTopics  = "proficient_topics"
	ReqTopicStreak       = "topic_streak"
)

// Badge 徽章目录，迁移时种子写入，运行期只读
// swagger:model Badge
type Badge struct {
	UUIDBase
	Slug             string        `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Name             string        `gorm:"size:100;not null" json:"name"`
	Description      string        `gorm:"size:255" json:"description"`
	Icon             string        `gorm:"size:50" json:"icon"`
	Category         BadgeCategory `gorm:"type:enum('learning','consistency','mastery','social');not null" json:"category"`
	RequirementType  string        `gorm:"size:50;not null" json:"requirementType"`
	RequirementValue int           `gorm:"not null" json:"requirementValue"`
	XPReward         int           `gorm:"default:0" json:"xpReward"`
	IsProOnly        bool          `gorm:"default:false" json:"isProOnly"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge 已获得徽章，只增不改
type UserBadge struct {
	BaseModel
	UserID   uint      `gorm:"index:idx_user_badge,unique;type:bigint unsigned;not null" json:"userId"`
	BadgeID  string    `gorm:"index:idx_user_badge,unique;type:varchar(36);not null" json:"badgeId"`
	EarnedAt time.Time `gorm:"not null" json:"earnedAt"`
	Badge    *Badge    `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
