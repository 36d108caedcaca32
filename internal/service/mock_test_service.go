package service

import (
	"fmt"
	"math/rand"
	"studypal_backend/internal/model"
	"studypal_backend/internal/repository"
	"studypal_backend/internal/util"
	"studypal_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

type MockTestService struct {
	MockTestRepo *repository.MockTestRepository
	QuestionRepo *repository.QuestionRepository
	TopicRepo    *repository.TopicRepository
	UserRepo     *repository.UserRepository
	GamService   *GamificationService
	BadgeService *BadgeService
	SubService   *SubscriptionService
}

func NewMockTestService(
	mockTestRepo *repository.MockTestRepository,
	questionRepo *repository.QuestionRepository,
	topicRepo *repository.TopicRepository,
	userRepo *repository.UserRepository,
	gamService *GamificationService,
	badgeService *BadgeService,
	subService *SubscriptionService,
) *MockTestService {
	return &MockTestService{
		MockTestRepo: mockTestRepo,
		QuestionRepo: questionRepo,
		TopicRepo:    topicRepo,
		UserRepo:     userRepo,
		GamService:   gamService,
		BadgeService: badgeService,
		SubService:   subService,
	}
}

type StartTestRequest struct {
	TopicID       string `json:"topicId" binding:"required"`
	QuestionCount int    `json:"questionCount"`
}

// StartTest 占用本周额度后从主题题库随机抽题建卷
func (s *MockTestService) StartTest(userID uint, req StartTestRequest) (*model.MockTest, []model.Question, error) {
	topic, err := s.TopicRepo.FindByID(req.TopicID)
	if err != nil {
		return nil, nil, util.ErrTopicNotFound
	}
	if topic.UserID != userID {
		return nil, nil, util.ErrPermissionDenied
	}

	pool, err := s.QuestionRepo.FindByTopic(req.TopicID)
	if err != nil {
		return nil, nil, err
	}
	if len(pool) == 0 {
		return nil, nil, util.ErrNotEnoughQuestions
	}

	if err := s.SubService.ConsumeMockTest(userID); err != nil {
		return nil, nil, err
	}

	count := req.QuestionCount
	if count <= 0 || count > len(pool) {
		count = len(pool)
	}
	if count > 10 {
		count = 10
	}

	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	picked := pool[:count]

	ids := make([]string, len(picked))
	for i, q := range picked {
		ids[i] = q.ID
	}

	test := &model.MockTest{
		UserID:         userID,
		TopicID:        req.TopicID,
		Name:           fmt.Sprintf("Mock Test: %s", topic.Name),
		QuestionIDs:    model.StringList(ids),
		TotalQuestions: count,
	}
	if err := s.MockTestRepo.Create(test); err != nil {
		return nil, nil, err
	}

	return test, picked, nil
}

type SubmitTestRequest struct {
	Answers      map[string]string `json:"answers" binding:"required"` // questionID -> 所选选项
	DurationSecs int               `json:"durationSecs"`
}

type SubmitTestResult struct {
	Test      *model.MockTest `json:"test"`
	Correct   int             `json:"correct"`
	Score     int             `json:"score"` // 百分制
	XPAwarded int             `json:"xpAwarded"`
	NewBadges []model.Badge   `json:"newBadges"`
}

// SubmitTest 判分、记完成时间，按分数段追加奖励事件
func (s *MockTestService) SubmitTest(userID uint, testID string, req SubmitTestRequest) (*SubmitTestResult, error) {
	test, err := s.MockTestRepo.FindByID(testID)
	if err != nil {
		return nil, util.ErrTestNotFound
	}
	if test.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if test.CompletedAt != nil {
		return nil, util.ErrTestAlreadyDone
	}

	questions, err := s.QuestionRepo.FindByIDs([]string(test.QuestionIDs))
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, q := range questions {
		if req.Answers[q.ID] == q.CorrectAnswer {
			correct++
		}
	}

	score := 0
	if test.TotalQuestions > 0 {
		score = correct * 100 / test.TotalQuestions
	}

	now := time.Now()
	test.Score = &score
	test.DurationSecs = req.DurationSecs
	test.CompletedAt = &now
	if err := s.MockTestRepo.Update(test); err != nil {
		return nil, err
	}

	totalXP := 0
	award, err := s.GamService.AwardXP(userID, AwardXPRequest{
		EventType: EventMockTestComplete,
		TopicID:   test.TopicID,
		Metadata:  map[string]interface{}{"score": score, "testId": test.ID},
	})
	if err != nil {
		return nil, err
	}
	totalXP += award.XPAwarded

	// 分数段奖励，满分只发满分档
	if score >= 100 {
		if bonus, err := s.GamService.AwardXP(userID, AwardXPRequest{EventType: EventScore100Bonus, TopicID: test.TopicID}); err == nil {
			totalXP += bonus.XPAwarded
		}
	} else if score >= 80 {
		if bonus, err := s.GamService.AwardXP(userID, AwardXPRequest{EventType: EventScore80Bonus, TopicID: test.TopicID}); err == nil {
			totalXP += bonus.XPAwarded
		}
	}

	if _, err := s.GamService.RefreshTopicMastery(userID, test.TopicID); err != nil {
		logger.Log.Error("Failed to refresh topic mastery", zap.Error(err))
	}
	if _, err := s.GamService.RecordActivity(userID); err != nil {
		logger.Log.Error("Failed to record activity", zap.Error(err))
	}

	// 首次模考里程碑
	s.UserRepo.UpdateFields(userID, map[string]interface{}{"first_mock_test_completed": true})

	newBadges, err := s.BadgeService.CheckBadges(userID)
	if err != nil {
		logger.Log.Error("Badge check failed", zap.Uint("user_id", userID), zap.Error(err))
		newBadges = nil
	}

	return &SubmitTestResult{
		Test:      test,
		Correct:   correct,
		Score:     score,
		XPAwarded: totalXP,
		NewBadges: newBadges,
	}, nil
}

func (s *MockTestService) GetTests(userID uint) ([]model.MockTest, error) {
	return s.MockTestRepo.FindByUser(userID)
}

func (s *MockTestService) GetTest(userID uint, testID string) (*model.MockTest, []model.Question, error) {
	test, err := s.MockTestRepo.FindByID(testID)
	if err != nil {
		return nil, nil, util.ErrTestNotFound
	}
	if test.UserID != userID {
		return nil, nil, util.ErrPermissionDenied
	}
	questions, err := s.QuestionRepo.FindByIDs([]string(test.QuestionIDs))
	if err != nil {
		return nil, nil, err
	}
	return test, questions, nil
}
