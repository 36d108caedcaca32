package service

import (
	"studypal_backend/internal/model"
	"studypal_backend/internal/repository"
	"studypal_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type SubscriptionService struct {
	SubRepo *repository.SubscriptionRepository
}

func NewSubscriptionService(subRepo *repository.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{SubRepo: subRepo}
}

// GetSubscription 不存在时初始化 free 档
func (s *SubscriptionService) GetSubscription(userID uint) (*model.Subscription, error) {
	sub, err := s.SubRepo.FindByUser(userID)
	if err == gorm.ErrRecordNotFound {
		sub = &model.Subscription{UserID: userID, Plan: model.PlanFree, Status: model.SubActive}
		if err := s.SubRepo.Create(sub); err != nil {
			return nil, err
		}
		return sub, nil
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// EffectivePlan 订阅失效按 free 处理，开发模式强制按 pro
func (s *SubscriptionService) EffectivePlan(sub *model.Subscription) model.PlanType {
	if sub.DevMode {
		return model.PlanPro
	}
	if sub.Plan == model.PlanPro && (sub.Status == model.SubActive || sub.Status == model.SubTrialing) {
		return model.PlanPro
	}
	return model.PlanFree
}

func (s *SubscriptionService) IsPro(userID uint) (bool, error) {
	sub, err := s.GetSubscription(userID)
	if err != nil {
		return false, err
	}
	return s.EffectivePlan(sub) == model.PlanPro, nil
}

func (s *SubscriptionService) GetLimits(userID uint) (PlanLimits, error) {
	sub, err := s.GetSubscription(userID)
	if err != nil {
		return PlanLimits{}, err
	}
	return LimitsForPlan(s.EffectivePlan(sub)), nil
}

// GetUsage 当周用量（周一起算）
func (s *SubscriptionService) GetUsage(userID uint) (*model.UsageTracking, error) {
	return s.SubRepo.FindOrCreateUsage(userID, util.WeekStart(time.Now()))
}

// ConsumeUpload 校验并占用一次本周上传额度
func (s *SubscriptionService) ConsumeUpload(userID uint) error {
	return s.consume(userID, "uploads_count", func(l PlanLimits) int { return l.UploadsPerWeek },
		func(u *model.UsageTracking) int { return u.UploadsCount }, util.ErrUploadLimitReached)
}

func (s *SubscriptionService) ConsumeMockTest(userID uint) error {
	return s.consume(userID, "mock_tests_count", func(l PlanLimits) int { return l.MockTestsPerWeek },
		func(u *model.UsageTracking) int { return u.MockTestsCount }, util.ErrMockTestLimit)
}

func (s *SubscriptionService) ConsumeRegenerate(userID uint) error {
	return s.consume(userID, "regenerates_count", func(l PlanLimits) int { return l.RegeneratesPerWeek },
		func(u *model.UsageTracking) int { return u.RegeneratesCount }, util.ErrRegenerateLimit)
}

func (s *SubscriptionService) consume(
	userID uint,
	column string,
	limitOf func(PlanLimits) int,
	usedOf func(*model.UsageTracking) int,
	limitErr error,
) error {
	limits, err := s.GetLimits(userID)
	if err != nil {
		return err
	}

	weekStart := util.WeekStart(time.Now())
	usage, err := s.SubRepo.FindOrCreateUsage(userID, weekStart)
	if err != nil {
		return err
	}

	if max := limitOf(limits); max >= 0 && usedOf(usage) >= max {
		return limitErr
	}

	return s.SubRepo.IncrementUsage(userID, weekStart, column)
}

// CheckTopicLimit 创建主题前校验数量上限
func (s *SubscriptionService) CheckTopicLimit(userID uint, currentCount int64) error {
	limits, err := s.GetLimits(userID)
	if err != nil {
		return err
	}
	if limits.ActiveTopics >= 0 && currentCount >= int64(limits.ActiveTopics) {
		return util.ErrTopicLimitReached
	}
	return nil
}

type UpdateSubscriptionRequest struct {
	Plan    model.PlanType `json:"plan" binding:"required"`
	DevMode *bool          `json:"devMode"`
}

// UpdatePlan 切换订阅档位（实际计费由外部系统负责，这里只落状态）
func (s *SubscriptionService) UpdatePlan(userID uint, req UpdateSubscriptionRequest) (*model.Subscription, error) {
	sub, err := s.GetSubscription(userID)
	if err != nil {
		return nil, err
	}

	sub.Plan = req.Plan
	sub.Status = model.SubActive
	if req.DevMode != nil {
		sub.DevMode = *req.DevMode
	}
	if req.Plan == model.PlanPro {
		now := time.Now()
		end := now.AddDate(0, 1, 0)
		sub.CurrentPeriodStart = &now
		sub.CurrentPeriodEnd = &end
	}

	if err := s.SubRepo.Update(sub); err != nil {
		return nil, err
	}
	return sub, nil
}
