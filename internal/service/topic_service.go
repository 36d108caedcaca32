package service

import (
	"context"
	"encoding/json"
	"studypal_backend/internal/model"
	"studypal_backend/internal/repository"
	"studypal_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
)

const leaderboardCacheKey = "leaderboard:xp:top"

type TopicService struct {
	TopicRepo  *repository.TopicRepository
	GamRepo    *repository.GamificationRepository
	UserRepo   *repository.UserRepository
	SubService *SubscriptionService
	Redis      *redis.Client
}

func NewTopicService(
	topicRepo *repository.TopicRepository,
	gamRepo *repository.GamificationRepository,
	userRepo *repository.UserRepository,
	subService *SubscriptionService,
	rdb *redis.Client,
) *TopicService {
	return &TopicService{
		TopicRepo:  topicRepo,
		GamRepo:    gamRepo,
		UserRepo:   userRepo,
		SubService: subService,
		Redis:      rdb,
	}
}

type TopicRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Priority    model.TopicPriority `json:"priority"`
}

// CreateTopic 免费版受主题数量上限约束
func (s *TopicService) CreateTopic(userID uint, req TopicRequest) (*model.Topic, error) {
	count, err := s.TopicRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	if err := s.SubService.CheckTopicLimit(userID, count); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	topic := &model.Topic{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Priority:    priority,
	}
	if err := s.TopicRepo.Create(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) GetTopics(userID uint) ([]model.Topic, error) {
	return s.TopicRepo.FindByUser(userID)
}

func (s *TopicService) GetTopic(userID uint, topicID string) (*model.Topic, error) {
	topic, err := s.TopicRepo.FindByID(topicID)
	if err != nil {
		return nil, util.ErrTopicNotFound
	}
	if topic.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return topic, nil
}

type TopicDetail struct {
	model.Topic
	XPEarned int `json:"xpEarned"`
}

// GetTopicDetail 主题详情附带该主题累计 XP
func (s *TopicService) GetTopicDetail(userID uint, topicID string) (*TopicDetail, error) {
	topic, err := s.GetTopic(userID, topicID)
	if err != nil {
		return nil, err
	}
	xp, err := s.GamRepo.SumTopicXP(userID, topicID)
	if err != nil {
		return nil, err
	}
	return &TopicDetail{Topic: *topic, XPEarned: xp}, nil
}

func (s *TopicService) UpdateTopic(userID uint, topicID string, req TopicRequest) (*model.Topic, error) {
	topic, err := s.GetTopic(userID, topicID)
	if err != nil {
		return nil, err
	}

	topic.Name = req.Name
	topic.Description = req.Description
	if req.Priority != "" {
		topic.Priority = req.Priority
	}
	if err := s.TopicRepo.Update(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) DeleteTopic(userID uint, topicID string) error {
	if _, err := s.GetTopic(userID, topicID); err != nil {
		return err
	}
	return s.TopicRepo.Delete(topicID)
}

type LeaderboardEntry struct {
	Rank  int    `json:"rank"`
	User  string `json:"user"`
	XP    int    `json:"xp"`
	Level int    `json:"level"`
}

// GetLeaderboard 按总 XP 排名，Redis 缓存 5 分钟
func (s *TopicService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil && len(entries) >= limit {
				return entries[:limit], nil
			}
		}
	}

	rows, err := s.GamRepo.TopByXP(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		name := "Anonymous"
		if user, err := s.UserRepo.FindByID(row.UserID); err == nil {
			name = user.Name
		}
		entries = append(entries, LeaderboardEntry{
			Rank:  i + 1,
			User:  name,
			XP:    row.XPTotal,
			Level: CalculateLevel(row.XPTotal),
		})
	}

	if s.Redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			s.Redis.Set(ctx, leaderboardCacheKey, data, 5*time.Minute)
		}
	}

	return entries, nil
}
