package service

import "studypal_backend/internal/model"

// PlanLimits 各订阅档位的功能额度，-1 表示不限
type PlanLimits struct {
	UploadsPerWeek     int  `json:"uploadsPerWeek"`
	MockTestsPerWeek   int  `json:"mockTestsPerWeek"`
	ActiveTopics       int  `json:"activeTopics"`
	RegeneratesPerWeek int  `json:"regeneratesPerWeek"`
	StreakProtection   bool `json:"streakProtection"`
	XPBoosts           bool `json:"xpBoosts"`
}

var planLimits = map[model.PlanType]PlanLimits{
	model.PlanFree: {
		UploadsPerWeek:     5,
		MockTestsPerWeek:   5,
		ActiveTopics:       5,
		RegeneratesPerWeek: 1,
		StreakProtection:   false,
		XPBoosts:           false,
	},
	model.PlanPro: {
		UploadsPerWeek:     -1,
		MockTestsPerWeek:   -1,
		ActiveTopics:       -1,
		RegeneratesPerWeek: -1,
		StreakProtection:   true,
		XPBoosts:           true,
	},
}

// LimitsForPlan 未知档位按 free 处理
func LimitsForPlan(plan model.PlanType) PlanLimits {
	if l, ok := planLimits[plan]; ok {
		return l
	}
	return planLimits[model.PlanFree]
}

// XP 事件类型
const (
	EventFlashcardReview  = "flashcard_review"
	EventFlashcardMaster  = "flashcard_master"
	EventQuestionCorrect  = "question_correct"
	EventPracticeSession  = "practice_session"
	EventMockTestComplete = "mock_test_complete"
	EventScore80Bonus     = "score_80_plus_bonus"
	EventScore100Bonus    = "score_100_bonus"
	EventDailyLogin       = "daily_login"
	EventStreak7Bonus     = "streak_7_day_bonus"
	EventStreak30Bonus    = "streak_30_day_bonus"
	EventBadgeReward      = "badge_reward"
	EventRewardClaim      = "reward_claim"
)

// XPValues 各事件的 XP 数值
var XPValues = map[string]int{
	EventFlashcardReview:  5,
	EventFlashcardMaster:  15,
	EventQuestionCorrect:  10,
	EventPracticeSession:  25,
	EventMockTestComplete: 50,
	EventScore80Bonus:     25,
	EventScore100Bonus:    50,
	EventDailyLogin:       10,
	EventStreak7Bonus:     100,
	EventStreak30Bonus:    500,
}
