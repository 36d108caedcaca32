package database

import (
	"fmt"
	"log"
	"studypal_backend/internal/config"
	"studypal_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := Seed(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 执行全部模型的自动迁移
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Subscription{},
		&model.UsageTracking{},
		&model.Topic{},
		&model.ContentUpload{},
		&model.Flashcard{},
		&model.Question{},
		&model.MockTest{},
		&model.StudyTask{},
		&model.UserGamification{},
		&model.XPEvent{},
		&model.TopicMastery{},
		&model.Badge{},
		&model.UserBadge{},
		&model.Reward{},
		&model.UserReward{},
	)
}

// Seed 徽章与奖励目录为空时写入默认数据
func Seed(db *gorm.DB) error {
	var badgeCount int64
	db.Model(&model.Badge{}).Count(&badgeCount)
	if badgeCount == 0 {
		defaultBadges := []model.Badge{
			{Slug: "first-steps", Name: "First Steps", Description: "复习第一张记忆卡", Icon: "footprints", Category: model.BadgeLearning, RequirementType: model.ReqFlashcardReviewed, RequirementValue: 1, XPReward: 10},
			{Slug: "card-collector", Name: "Card Collector", Description: "累计复习 100 张记忆卡", Icon: "layers", Category: model.BadgeLearning, RequirementType: model.ReqFlashcardReviewed, RequirementValue: 100, XPReward: 50},
			{Slug: "memory-machine", Name: "Memory Machine", Description: "掌握 50 张记忆卡", Icon: "brain", Category: model.BadgeLearning, RequirementType: model.ReqFlashcardMastered, RequirementValue: 50, XPReward: 100},
			{Slug: "sharp-shooter", Name: "Sharp Shooter", Description: "答对 100 道练习题", Icon: "target", Category: model.BadgeLearning, RequirementType: model.ReqQuestionsCorrect, RequirementValue: 100, XPReward: 75},
			{Slug: "on-a-roll", Name: "On a Roll", Description: "连续学习 7 天", Icon: "flame", Category: model.BadgeConsistency, RequirementType: model.ReqStreakDays, RequirementValue: 7, XPReward: 50},
			{Slug: "unstoppable", Name: "Unstoppable", Description: "连续学习 30 天", Icon: "zap", Category: model.BadgeConsistency, RequirementType: model.ReqStreakDays, RequirementValue: 30, XPReward: 200},
			{Slug: "marathon-mind", Name: "Marathon Mind", Description: "连续学习 100 天", Icon: "trophy", Category: model.BadgeConsistency, RequirementType: model.ReqStreakDays, RequirementValue: 100, XPReward: 500, IsProOnly: true},
			{Slug: "test-taker", Name: "Test Taker", Description: "完成第一次模拟测试", Icon: "clipboard", Category: model.BadgeMastery, RequirementType: model.ReqTestsCompleted, RequirementValue: 1, XPReward: 25},
			{Slug: "exam-veteran", Name: "Exam Veteran", Description: "完成 20 次模拟测试", Icon: "medal", Category: model.BadgeMastery, RequirementType: model.ReqTestsCompleted, RequirementValue: 20, XPReward: 150},
			{Slug: "perfectionist", Name: "Perfectionist", Description: "模拟测试取得满分", Icon: "star", Category: model.BadgeMastery, RequirementType: model.ReqPerfectTest, RequirementValue: 1, XPReward: 100},
			{Slug: "speed-demon", Name: "Speed Demon", Description: "10 分钟内完成一次模拟测试且得分 80 以上", Icon: "timer", Category: model.BadgeMastery, RequirementType: model.ReqFastTest, RequirementValue: 1, XPReward: 75},
			{Slug: "subject-master", Name: "Subject Master", Description: "任意主题达到 master 等级", Icon: "crown", Category: model.BadgeMastery, RequirementType: model.ReqTopicMasteryLevel, RequirementValue: 1, XPReward: 250},
			{Slug: "deep-diver", Name: "Deep Diver", Description: "单主题累计获得 2000 XP", Icon: "anchor", Category: model.BadgeMastery, RequirementType: model.ReqTopicXP, RequirementValue: 2000, XPReward: 150},
			{Slug: "polymath", Name: "Polymath", Description: "3 个主题达到 proficient 或以上", Icon: "library", Category: model.BadgeMastery, RequirementType: model.ReqProficientTopics, RequirementValue: 3, XPReward: 300, IsProOnly: true},
			{Slug: "laser-focus", Name: "Laser Focus", Description: "同一主题连续学习 7 天", Icon: "crosshair", Category: model.BadgeConsistency, RequirementType: model.ReqTopicStreak, RequirementValue: 7, XPReward: 100},
		}
		for _, b := range defaultBadges {
			badge := b
			if err := db.Create(&badge).Error; err != nil {
				return err
			}
		}
	}

	var rewardCount int64
	db.Model(&model.Reward{}).Count(&rewardCount)
	if rewardCount == 0 {
		defaultRewards := []model.Reward{
			{Slug: "dark-theme", Name: "Midnight Theme", Description: "应用深色主题皮肤", Category: model.RewardDigital, XPCost: 500},
			{Slug: "avatar-pack", Name: "Avatar Pack", Description: "解锁一组头像", Category: model.RewardDigital, XPCost: 1000},
			{Slug: "streak-freeze", Name: "Streak Freeze", Description: "一次连续学习保护机会", Category: model.RewardDigital, XPCost: 2000, IsProOnly: true},
			{Slug: "coffee-voucher", Name: "Coffee Voucher", Description: "合作咖啡店代金券", Category: model.RewardRealWorld, XPCost: 5000, IsProOnly: true},
		}
		for _, r := range defaultRewards {
			reward := r
			if err := db.Create(&reward).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
