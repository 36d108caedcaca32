package service

import (
	"encoding/json"
	"studypal_backend/internal/model"
	"studypal_backend/internal/repository"
	"studypal_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

type GamificationService struct {
	GamRepo       *repository.GamificationRepository
	MasteryRepo   *repository.MasteryRepository
	FlashcardRepo *repository.FlashcardRepository
	QuestionRepo  *repository.QuestionRepository
	MockTestRepo  *repository.MockTestRepository
	SubService    *SubscriptionService
}

func NewGamificationService(
	gamRepo *repository.GamificationRepository,
	masteryRepo *repository.MasteryRepository,
	flashcardRepo *repository.FlashcardRepository,
	questionRepo *repository.QuestionRepository,
	mockTestRepo *repository.MockTestRepository,
	subService *SubscriptionService,
) *GamificationService {
	return &GamificationService{
		GamRepo:       gamRepo,
		MasteryRepo:   masteryRepo,
		FlashcardRepo: flashcardRepo,
		QuestionRepo:  questionRepo,
		MockTestRepo:  mockTestRepo,
		SubService:    subService,
	}
}

type AwardXPRequest struct {
	EventType string                 `json:"eventType" binding:"required"`
	TopicID   string                 `json:"topicId"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type AwardXPResult struct {
	XPAwarded int  `json:"xpAwarded"`
	NewTotal  int  `json:"newTotal"`
	NewLevel  int  `json:"newLevel"`
	LeveledUp bool `json:"leveledUp"`
}

// AwardXP 记流水、更新总量与等级缓存，带主题时同步主题精通度
// 三步写入不在同一事务内，任一步失败后续步骤不回滚前面的（与流水可审计的取舍）
func (s *GamificationService) AwardXP(userID uint, req AwardXPRequest) (*AwardXPResult, error) {
	base, ok := XPValues[req.EventType]
	if !ok {
		base = 0
	}
	xpAmount := base

	// Pro 用户高分加成：分数在 metadata.score 里
	if isPro, err := s.SubService.IsPro(userID); err == nil && isPro {
		if score, ok := numericMetadata(req.Metadata, "score"); ok {
			if score >= 100 {
				xpAmount += XPValues[EventScore100Bonus]
			} else if score >= 80 {
				xpAmount += XPValues[EventScore80Bonus]
			}
		}
	}

	g, err := s.GamRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}
	oldLevel := CalculateLevel(g.XPTotal)

	metaJSON := "{}"
	if len(req.Metadata) > 0 {
		if b, err := json.Marshal(req.Metadata); err == nil {
			metaJSON = string(b)
		}
	}
	event := &model.XPEvent{
		UserID:    userID,
		TopicID:   req.TopicID,
		EventType: req.EventType,
		XPAmount:  xpAmount,
		Metadata:  metaJSON,
	}
	if err := s.GamRepo.CreateEvent(event); err != nil {
		return nil, err
	}

	g.XPTotal += xpAmount
	g.Level = CalculateLevel(g.XPTotal)
	if err := s.GamRepo.Update(g); err != nil {
		return nil, err
	}

	if req.TopicID != "" {
		if err := s.addTopicXP(userID, req.TopicID, xpAmount); err != nil {
			logger.Log.Error("Failed to update topic mastery XP",
				zap.Uint("user_id", userID), zap.String("topic_id", req.TopicID), zap.Error(err))
		}
	}

	return &AwardXPResult{
		XPAwarded: xpAmount,
		NewTotal:  g.XPTotal,
		NewLevel:  g.Level,
		LeveledUp: g.Level > oldLevel,
	}, nil
}

// AwardFlatXP 发放固定数额 XP（徽章奖励等目录驱动的数值）
func (s *GamificationService) AwardFlatXP(userID uint, eventType string, amount int, metadata map[string]interface{}) error {
	metaJSON := "{}"
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}
	if err := s.GamRepo.CreateEvent(&model.XPEvent{
		UserID:    userID,
		EventType: eventType,
		XPAmount:  amount,
		Metadata:  metaJSON,
	}); err != nil {
		return err
	}

	g, err := s.GamRepo.FindOrCreate(userID)
	if err != nil {
		return err
	}
	g.XPTotal += amount
	g.Level = CalculateLevel(g.XPTotal)
	return s.GamRepo.Update(g)
}

func (s *GamificationService) addTopicXP(userID uint, topicID string, xp int) error {
	m, err := s.MasteryRepo.FindOrCreate(userID, topicID)
	if err != nil {
		return err
	}
	m.XPEarned += xp
	m.MasteryLevel = CalculateMasteryLevel(m.XPEarned, m.QuestionAccuracyPct, m.TestsCompleted, m.FlashcardsReviewed)
	return s.MasteryRepo.Update(m)
}

// RefreshTopicMastery 重算主题统计值与精通等级
func (s *GamificationService) RefreshTopicMastery(userID uint, topicID string) (*model.TopicMastery, error) {
	m, err := s.MasteryRepo.FindOrCreate(userID, topicID)
	if err != nil {
		return nil, err
	}

	attempted, correct, err := s.QuestionRepo.TopicAccuracyStats(userID, topicID)
	if err != nil {
		return nil, err
	}
	if attempted > 0 {
		m.QuestionAccuracyPct = int(correct * 100 / attempted)
	}

	total, mastered, err := s.FlashcardRepo.TopicMasteryStats(userID, topicID)
	if err != nil {
		return nil, err
	}
	if total > 0 {
		m.FlashcardMasteryPct = int(mastered * 100 / total)
	}

	tests, err := s.MockTestRepo.CountCompletedByTopic(userID, topicID)
	if err != nil {
		return nil, err
	}
	m.TestsCompleted = int(tests)

	m.MasteryLevel = CalculateMasteryLevel(m.XPEarned, m.QuestionAccuracyPct, m.TestsCompleted, m.FlashcardsReviewed)
	if err := s.MasteryRepo.Update(m); err != nil {
		return nil, err
	}
	return m, nil
}

// IncrementFlashcardsReviewed 主题复习计数 +1 后重推精通等级
func (s *GamificationService) IncrementFlashcardsReviewed(userID uint, topicID string) error {
	m, err := s.MasteryRepo.FindOrCreate(userID, topicID)
	if err != nil {
		return err
	}
	m.FlashcardsReviewed++
	m.MasteryLevel = CalculateMasteryLevel(m.XPEarned, m.QuestionAccuracyPct, m.TestsCompleted, m.FlashcardsReviewed)
	return s.MasteryRepo.Update(m)
}

type ActivityResult struct {
	Streak         int  `json:"streak"`
	LongestStreak  int  `json:"longestStreak"`
	UsedProtection bool `json:"usedProtection"`
	MilestoneBonus int  `json:"milestoneBonus"`
}

// RecordActivity 记录一次当日学习活动并推进连续天数
// 恰好到达 7/30 天时追加里程碑 XP
func (s *GamificationService) RecordActivity(userID uint) (*ActivityResult, error) {
	g, err := s.GamRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}

	hasProtection := false
	if limits, err := s.SubService.GetLimits(userID); err == nil {
		hasProtection = limits.StreakProtection
	}

	now := time.Now()
	res := AdvanceStreak(g, now, hasProtection)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	g.CurrentStreak = res.CurrentStreak
	g.LongestStreak = res.LongestStreak
	g.LastActivityDate = &today
	if res.UsedProtection {
		g.StreakProtectionUsedAt = &today
	}
	if err := s.GamRepo.Update(g); err != nil {
		return nil, err
	}

	if res.MilestoneEventType != "" {
		if _, err := s.AwardXP(userID, AwardXPRequest{EventType: res.MilestoneEventType}); err != nil {
			logger.Log.Error("Failed to award streak milestone bonus",
				zap.Uint("user_id", userID), zap.String("event", res.MilestoneEventType), zap.Error(err))
		}
	}

	return &ActivityResult{
		Streak:         res.CurrentStreak,
		LongestStreak:  res.LongestStreak,
		UsedProtection: res.UsedProtection,
		MilestoneBonus: res.MilestoneBonus,
	}, nil
}

type GamificationProgress struct {
	XPTotal        int                  `json:"xpTotal"`
	Level          int                  `json:"level"`
	XPForNextLevel int                  `json:"xpForNextLevel"`
	XPInLevel      int                  `json:"xpInLevel"`
	XPLevelSpan    int                  `json:"xpLevelSpan"`
	CurrentStreak  int                  `json:"currentStreak"`
	LongestStreak  int                  `json:"longestStreak"`
	TopicMastery   []model.TopicMastery `json:"topicMastery"`
}

func (s *GamificationService) GetProgress(userID uint) (*GamificationProgress, error) {
	g, err := s.GamRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}
	mastery, err := s.MasteryRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	inLevel, span := XPProgressInLevel(g.XPTotal)
	return &GamificationProgress{
		XPTotal:        g.XPTotal,
		Level:          CalculateLevel(g.XPTotal),
		XPForNextLevel: XPForNextLevel(g.XPTotal),
		XPInLevel:      inLevel,
		XPLevelSpan:    span,
		CurrentStreak:  g.CurrentStreak,
		LongestStreak:  g.LongestStreak,
		TopicMastery:   mastery,
	}, nil
}

func (s *GamificationService) GetXPEvents(userID uint, limit int) ([]model.XPEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.GamRepo.FindEventsByUser(userID, limit)
}

func numericMetadata(meta map[string]interface{}, key string) (float64, bool) {
	if meta == nil {
		return 0, false
	}
	switch v := meta[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}
