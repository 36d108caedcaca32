package service

import (
	"studypal_backend/internal/model"
	"studypal_backend/internal/repository"
	"studypal_backend/internal/util"
	"studypal_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	TopicRepo    *repository.TopicRepository
	GamService   *GamificationService
	BadgeService *BadgeService
}

func NewQuestionService(
	questionRepo *repository.QuestionRepository,
	topicRepo *repository.TopicRepository,
	gamService *GamificationService,
	badgeService *BadgeService,
) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		TopicRepo:    topicRepo,
		GamService:   gamService,
		BadgeService: badgeService,
	}
}

func (s *QuestionService) GetByTopic(userID uint, topicID string) ([]model.Question, error) {
	topic, err := s.TopicRepo.FindByID(topicID)
	if err != nil {
		return nil, util.ErrTopicNotFound
	}
	if topic.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return s.QuestionRepo.FindByTopic(topicID)
}

type AnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type AnswerResult struct {
	Correct       bool          `json:"correct"`
	CorrectAnswer string        `json:"correctAnswer"`
	Explanation   string        `json:"explanation"`
	XPAwarded     int           `json:"xpAwarded"`
	NewBadges     []model.Badge `json:"newBadges"`
}

// Answer 判题并落作答状态，答对发 XP，随后重算主题精通度
func (s *QuestionService) Answer(userID uint, questionID string, req AnswerRequest) (*AnswerResult, error) {
	q, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	if q.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	correct := req.Answer == q.CorrectAnswer
	now := time.Now()
	q.AnsweredCorrectly = &correct
	q.LastAttemptedAt = &now
	if err := s.QuestionRepo.Update(q); err != nil {
		return nil, err
	}

	result := &AnswerResult{
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
	}

	if correct {
		award, err := s.GamService.AwardXP(userID, AwardXPRequest{
			EventType: EventQuestionCorrect,
			TopicID:   q.TopicID,
		})
		if err != nil {
			return nil, err
		}
		result.XPAwarded = award.XPAwarded
	}

	if m, err := s.GamService.RefreshTopicMastery(userID, q.TopicID); err != nil {
		logger.Log.Error("Failed to refresh topic mastery", zap.Error(err))
	} else {
		// 主题进度取刷题正确率与卡片掌握率的均值
		progress := (m.QuestionAccuracyPct + m.FlashcardMasteryPct) / 2
		if err := s.TopicRepo.UpdateProgress(q.TopicID, progress); err != nil {
			logger.Log.Error("Failed to update topic progress", zap.Error(err))
		}
	}
	if _, err := s.GamService.RecordActivity(userID); err != nil {
		logger.Log.Error("Failed to record activity", zap.Error(err))
	}

	newBadges, err := s.BadgeService.CheckBadges(userID)
	if err != nil {
		logger.Log.Error("Badge check failed", zap.Uint("user_id", userID), zap.Error(err))
		newBadges = nil
	}
	result.NewBadges = newBadges

	return result, nil
}
