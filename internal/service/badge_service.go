package service

import (
	"studypal_backend/internal/model"
	"studypal_backend/internal/repository"
	"studypal_backend/internal/util"
	"studypal_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

type BadgeService struct {
	BadgeRepo     *repository.BadgeRepository
	GamRepo       *repository.GamificationRepository
	MasteryRepo   *repository.MasteryRepository
	FlashcardRepo *repository.FlashcardRepository
	QuestionRepo  *repository.QuestionRepository
	MockTestRepo  *repository.MockTestRepository
	GamService    *GamificationService
	SubService    *SubscriptionService
}

func NewBadgeService(
	badgeRepo *repository.BadgeRepository,
	gamRepo *repository.GamificationRepository,
	masteryRepo *repository.MasteryRepository,
	flashcardRepo *repository.FlashcardRepository,
	questionRepo *repository.QuestionRepository,
	mockTestRepo *repository.MockTestRepository,
	gamService *GamificationService,
	subService *SubscriptionService,
) *BadgeService {
	return &BadgeService{
		BadgeRepo:     badgeRepo,
		GamRepo:       gamRepo,
		MasteryRepo:   masteryRepo,
		FlashcardRepo: flashcardRepo,
		QuestionRepo:  questionRepo,
		MockTestRepo:  mockTestRepo,
		GamService:    gamService,
		SubService:    subService,
	}
}

type BadgeOverview struct {
	Earned    []model.UserBadge `json:"earned"`
	Available []model.Badge     `json:"available"`
}

func (s *BadgeService) GetBadges(userID uint) (*BadgeOverview, error) {
	all, err := s.BadgeRepo.FindAll()
	if err != nil {
		return nil, err
	}
	earned, err := s.BadgeRepo.FindUserBadges(userID)
	if err != nil {
		return nil, err
	}

	earnedIDs := make(map[string]bool, len(earned))
	for _, ub := range earned {
		earnedIDs[ub.BadgeID] = true
	}

	available := make([]model.Badge, 0, len(all))
	for _, b := range all {
		if !earnedIDs[b.ID] {
			available = append(available, b)
		}
	}

	return &BadgeOverview{Earned: earned, Available: available}, nil
}

// BadgeStats 一次评估所需的全部统计值
type BadgeStats struct {
	FlashcardsReviewed int
	FlashcardsMastered int
	QuestionsCorrect   int
	StreakDays         int
	TestsCompleted     int
	PerfectTests       int
	FastTests          int
	HasMasterTopic     bool
	MaxTopicXP         int
	ProficientTopics   int
	MaxTopicStreak     int
}

// CheckBadges 按当前统计值评估所有未获得的徽章，满足条件即授予
// 重复调用安全：已授予的徽章不重复发放
func (s *BadgeService) CheckBadges(userID uint) ([]model.Badge, error) {
	stats, err := s.collectStats(userID)
	if err != nil {
		return nil, err
	}

	overview, err := s.GetBadges(userID)
	if err != nil {
		return nil, err
	}

	isPro, _ := s.SubService.IsPro(userID)

	var newBadges []model.Badge
	for _, badge := range overview.Available {
		if badge.IsProOnly && !isPro {
			continue
		}
		if !badgeSatisfied(badge, stats) {
			continue
		}

		// HasBadge 兜底：并发调用时唯一索引会拦掉第二次写入
		if has, err := s.BadgeRepo.HasBadge(userID, badge.ID); err != nil || has {
			continue
		}
		if err := s.BadgeRepo.Award(&model.UserBadge{
			UserID:   userID,
			BadgeID:  badge.ID,
			EarnedAt: time.Now(),
		}); err != nil {
			logger.Log.Error("Failed to award badge",
				zap.Uint("user_id", userID), zap.String("badge", badge.Slug), zap.Error(err))
			continue
		}

		if badge.XPReward > 0 {
			if err := s.GamService.AwardFlatXP(userID, EventBadgeReward, badge.XPReward,
				map[string]interface{}{"badge": badge.Slug}); err != nil {
				logger.Log.Error("Failed to award badge XP",
					zap.Uint("user_id", userID), zap.String("badge", badge.Slug), zap.Error(err))
			}
		}

		newBadges = append(newBadges, badge)
	}

	return newBadges, nil
}

func badgeSatisfied(badge model.Badge, stats *BadgeStats) bool {
	switch badge.RequirementType {
	case model.ReqFlashcardReviewed:
		return stats.FlashcardsReviewed >= badge.RequirementValue
	case model.ReqFlashcardMastered:
		return stats.FlashcardsMastered >= badge.RequirementValue
	case model.ReqQuestionsCorrect:
		return stats.QuestionsCorrect >= badge.RequirementValue
	case model.ReqStreakDays:
		return stats.StreakDays >= badge.RequirementValue
	case model.ReqTestsCompleted:
		return stats.TestsCompleted >= badge.RequirementValue
	case model.ReqPerfectTest:
		return stats.PerfectTests >= badge.RequirementValue
	case model.ReqFastTest:
		return stats.FastTests >= badge.RequirementValue
	case model.ReqTopicMasteryLevel:
		return stats.HasMasterTopic
	case model.ReqTopicXP:
		return stats.MaxTopicXP >= badge.RequirementValue
	case model.ReqProficientTopics:
		return stats.ProficientTopics >= badge.RequirementValue
	case model.ReqTopicStreak:
		return stats.MaxTopicStreak >= badge.RequirementValue
	}
	return false
}

func (s *BadgeService) collectStats(userID uint) (*BadgeStats, error) {
	stats := &BadgeStats{}

	reviewed, err := s.FlashcardRepo.CountReviewedByUser(userID)
	if err != nil {
		return nil, err
	}
	stats.FlashcardsReviewed = int(reviewed)

	mastered, err := s.FlashcardRepo.CountMasteredByUser(userID)
	if err != nil {
		return nil, err
	}
	stats.FlashcardsMastered = int(mastered)

	correct, err := s.QuestionRepo.CountCorrectByUser(userID)
	if err != nil {
		return nil, err
	}
	stats.QuestionsCorrect = int(correct)

	g, err := s.GamRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}
	stats.StreakDays = g.CurrentStreak

	tests, err := s.MockTestRepo.CountCompletedByUser(userID)
	if err != nil {
		return nil, err
	}
	stats.TestsCompleted = int(tests)

	allTests, err := s.MockTestRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	for _, t := range allTests {
		if t.CompletedAt == nil || t.Score == nil {
			continue
		}
		if *t.Score >= 100 {
			stats.PerfectTests++
		}
		if *t.Score >= 80 && t.DurationSecs > 0 && t.DurationSecs <= 600 {
			stats.FastTests++
		}
	}

	masterCount, err := s.MasteryRepo.CountMasterTopics(userID)
	if err != nil {
		return nil, err
	}
	stats.HasMasterTopic = masterCount > 0

	proficient, err := s.MasteryRepo.CountAtLeastProficient(userID)
	if err != nil {
		return nil, err
	}
	stats.ProficientTopics = int(proficient)

	maxXP, err := s.MasteryRepo.MaxTopicXP(userID)
	if err != nil {
		return nil, err
	}
	stats.MaxTopicXP = maxXP

	masteries, err := s.MasteryRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	for _, m := range masteries {
		streak, err := s.topicStreak(userID, m.TopicID)
		if err == nil && streak > stats.MaxTopicStreak {
			stats.MaxTopicStreak = streak
		}
	}

	return stats, nil
}

// topicStreak 以该主题 XP 流水的去重日期倒推连续天数，今天或昨天为起点
func (s *BadgeService) topicStreak(userID uint, topicID string) (int, error) {
	dates, err := s.GamRepo.RecentTopicEventDates(userID, topicID, 60)
	if err != nil {
		return 0, err
	}
	if len(dates) == 0 {
		return 0, nil
	}

	today := util.StartOfDay(time.Now())
	prev, err := time.ParseInLocation(util.DateFormat, dates[0], time.Local)
	if err != nil {
		return 0, err
	}
	if util.DaysBetween(prev, today) > 1 {
		return 0, nil
	}

	streak := 1
	for _, raw := range dates[1:] {
		d, err := time.ParseInLocation(util.DateFormat, raw, time.Local)
		if err != nil {
			break
		}
		if util.DaysBetween(d, prev) != 1 {
			break
		}
		streak++
		prev = d
	}
	return streak, nil
}
