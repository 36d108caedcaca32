package service

import (
	"studypal_backend/internal/model"
	"studypal_backend/internal/repository"
	"studypal_backend/internal/util"
	"studypal_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

type FlashcardService struct {
	FlashcardRepo *repository.FlashcardRepository
	TopicRepo     *repository.TopicRepository
	UserRepo      *repository.UserRepository
	GamService    *GamificationService
	BadgeService  *BadgeService
}

func NewFlashcardService(
	flashcardRepo *repository.FlashcardRepository,
	topicRepo *repository.TopicRepository,
	userRepo *repository.UserRepository,
	gamService *GamificationService,
	badgeService *BadgeService,
) *FlashcardService {
	return &FlashcardService{
		FlashcardRepo: flashcardRepo,
		TopicRepo:     topicRepo,
		UserRepo:      userRepo,
		GamService:    gamService,
		BadgeService:  badgeService,
	}
}

func (s *FlashcardService) GetByTopic(userID uint, topicID string) ([]model.Flashcard, error) {
	topic, err := s.TopicRepo.FindByID(topicID)
	if err != nil {
		return nil, util.ErrTopicNotFound
	}
	if topic.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return s.FlashcardRepo.FindByTopic(topicID)
}

type ReviewFlashcardRequest struct {
	Mastered *bool `json:"mastered"`
}

type ReviewResult struct {
	Flashcard *model.Flashcard `json:"flashcard"`
	XPAwarded int              `json:"xpAwarded"`
	NewBadges []model.Badge    `json:"newBadges"`
}

// Review 一次复习：计数 +1，可选翻转掌握状态，发放 XP 并推进连续天数
func (s *FlashcardService) Review(userID uint, cardID string, req ReviewFlashcardRequest) (*ReviewResult, error) {
	card, err := s.FlashcardRepo.FindByID(cardID)
	if err != nil {
		return nil, err
	}
	if card.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	now := time.Now()
	card.ReviewCount++
	card.LastReviewedAt = &now

	becameMastered := false
	if req.Mastered != nil {
		if *req.Mastered && !card.Mastered {
			becameMastered = true
		}
		card.Mastered = *req.Mastered
	}

	if err := s.FlashcardRepo.Update(card); err != nil {
		return nil, err
	}

	eventType := EventFlashcardReview
	if becameMastered {
		eventType = EventFlashcardMaster
	}
	award, err := s.GamService.AwardXP(userID, AwardXPRequest{
		EventType: eventType,
		TopicID:   card.TopicID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.GamService.IncrementFlashcardsReviewed(userID, card.TopicID); err != nil {
		logger.Log.Error("Failed to bump topic review count", zap.Error(err))
	}
	if _, err := s.GamService.RecordActivity(userID); err != nil {
		logger.Log.Error("Failed to record activity", zap.Error(err))
	}

	// 首次复习里程碑
	s.UserRepo.UpdateFields(userID, map[string]interface{}{"first_flashcard_reviewed": true})

	newBadges, err := s.BadgeService.CheckBadges(userID)
	if err != nil {
		logger.Log.Error("Badge check failed", zap.Uint("user_id", userID), zap.Error(err))
		newBadges = nil
	}

	return &ReviewResult{
		Flashcard: card,
		XPAwarded: award.XPAwarded,
		NewBadges: newBadges,
	}, nil
}
