package service

import (
	"studypal_backend/internal/model"
	"studypal_backend/internal/repository"
	"studypal_backend/internal/util"
	"time"
)

type RewardService struct {
	RewardRepo *repository.RewardRepository
	GamRepo    *repository.GamificationRepository
	GamService *GamificationService
	SubService *SubscriptionService
}

func NewRewardService(
	rewardRepo *repository.RewardRepository,
	gamRepo *repository.GamificationRepository,
	gamService *GamificationService,
	subService *SubscriptionService,
) *RewardService {
	return &RewardService{
		RewardRepo: rewardRepo,
		GamRepo:    gamRepo,
		GamService: gamService,
		SubService: subService,
	}
}

func (s *RewardService) GetRewards(userID uint) ([]model.Reward, []model.UserReward, error) {
	catalog, err := s.RewardRepo.FindActive()
	if err != nil {
		return nil, nil, err
	}
	claimed, err := s.RewardRepo.FindUserRewards(userID)
	if err != nil {
		return nil, nil, err
	}
	return catalog, claimed, nil
}

// Claim 扣减 XP 兑换奖励，XP 以负数流水记账
func (s *RewardService) Claim(userID uint, rewardID string) (*model.UserReward, error) {
	reward, err := s.RewardRepo.FindByID(rewardID)
	if err != nil || !reward.IsActive {
		return nil, util.ErrRewardNotFound
	}

	if reward.IsProOnly {
		isPro, err := s.SubService.IsPro(userID)
		if err != nil {
			return nil, err
		}
		if !isPro {
			return nil, util.ErrRewardProOnly
		}
	}

	g, err := s.GamRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if g.XPTotal < reward.XPCost {
		return nil, util.ErrInsufficientXP
	}

	if err := s.GamService.AwardFlatXP(userID, EventRewardClaim, -reward.XPCost,
		map[string]interface{}{"reward": reward.Slug}); err != nil {
		return nil, err
	}

	ur := &model.UserReward{
		UserID:    userID,
		RewardID:  reward.ID,
		Status:    model.RewardPending,
		ClaimedAt: time.Now(),
	}
	if err := s.RewardRepo.Claim(ur); err != nil {
		return nil, err
	}
	ur.Reward = reward
	return ur, nil
}
