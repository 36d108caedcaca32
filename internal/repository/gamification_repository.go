package repository

import (
	"studypal_backend/internal/model"

	"gorm.io/gorm"
)

type GamificationRepository struct {
	DB *gorm.DB
}

func NewGamificationRepository(db *gorm.DB) *GamificationRepository {
	return &GamificationRepository{DB: db}
}

// FindOrCreate 首次访问时初始化一条空的进度记录
func (r *GamificationRepository) FindOrCreate(userID uint) (*model.UserGamification, error) {
	var g model.UserGamification
	err := r.DB.Where("user_id = ?", userID).First(&g).Error
	if err == gorm.ErrRecordNotFound {
		g = model.UserGamification{UserID: userID, Level: 1}
		if err := r.DB.Create(&g).Error; err != nil {
			return nil, err
		}
		return &g, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GamificationRepository) Update(g *model.UserGamification) error {
	return r.DB.Save(g).Error
}

func (r *GamificationRepository) CreateEvent(event *model.XPEvent) error {
	return r.DB.Create(event).Error
}

func (r *GamificationRepository) FindEventsByUser(userID uint, limit int) ([]model.XPEvent, error) {
	var events []model.XPEvent
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// SumTopicXP 单主题 XP 流水合计
func (r *GamificationRepository) SumTopicXP(userID uint, topicID string) (int, error) {
	var total int
	err := r.DB.Model(&model.XPEvent{}).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Select("COALESCE(SUM(xp_amount), 0)").
		Scan(&total).Error
	return total, err
}

// TopByXP 排行榜查询，Redis 缓存未命中时回源
func (r *GamificationRepository) TopByXP(limit int) ([]model.UserGamification, error) {
	var rows []model.UserGamification
	err := r.DB.Order("xp_total DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

// RecentTopicEventDates 主题最近的活跃日期（去重、倒序），主题连续天数判定用
func (r *GamificationRepository) RecentTopicEventDates(userID uint, topicID string, limit int) ([]string, error) {
	var dates []string
	err := r.DB.Model(&model.XPEvent{}).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Select("DISTINCT DATE(created_at) AS d").
		Order("d DESC").
		Limit(limit).
		Pluck("d", &dates).Error
	return dates, err
}
