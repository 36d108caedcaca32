package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type StudyGoal string

const (
	GoalInterview StudyGoal = "interview"
	GoalExam      StudyGoal = "exam"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('user','admin');default:'user'" json:"role"`
	Avatar   string   `gorm:"size:255" json:"avatar"`
	Disabled bool     `gorm:"default:false" json:"disabled"`

	// 入门引导与学习偏好（原 profiles 表字段）
	OnboardingCompleted bool       `gorm:"default:false" json:"onboardingCompleted"`
	StudyGoal           StudyGoal  `gorm:"type:enum('interview','exam');default:'exam'" json:"studyGoal"`
	StudyMinutesPerDay  int        `gorm:"default:30" json:"studyMinutesPerDay"`
	TargetDate          *time.Time `gorm:"type:date" json:"targetDate"`

	// 首次行为里程碑，用于一次性奖励
	FirstUploadCompleted    bool `gorm:"default:false" json:"firstUploadCompleted"`
	FirstFlashcardReviewed  bool `gorm:"default:false" json:"firstFlashcardReviewed"`
	FirstMockTestCompleted  bool `gorm:"default:false" json:"firstMockTestCompleted"`

	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
