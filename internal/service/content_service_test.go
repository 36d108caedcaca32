package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"studypal_backend/internal/model"
	"studypal_backend/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 模型带 MySQL enum 列类型，sqlite 不认，建表走手写 DDL
var contentTestSchema = []string{
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
		name TEXT, email TEXT, password TEXT,
		role TEXT DEFAULT 'user', avatar TEXT, disabled BOOLEAN DEFAULT 0,
		onboarding_completed BOOLEAN DEFAULT 0, study_goal TEXT DEFAULT 'exam',
		study_minutes_per_day INTEGER DEFAULT 30, target_date DATETIME,
		first_upload_completed BOOLEAN DEFAULT 0,
		first_flashcard_reviewed BOOLEAN DEFAULT 0,
		first_mock_test_completed BOOLEAN DEFAULT 0,
		last_login DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_seen DATETIME DEFAULT CURRENT_TIMESTAMP)`,
	`CREATE TABLE topics (
		id TEXT PRIMARY KEY,
		created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
		user_id INTEGER, name TEXT, description TEXT,
		priority TEXT DEFAULT 'medium', progress INTEGER DEFAULT 0,
		initial_set_generated BOOLEAN DEFAULT 0, last_regenerated_at DATETIME)`,
	`CREATE TABLE subscriptions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
		user_id INTEGER, plan TEXT DEFAULT 'free', status TEXT DEFAULT 'active',
		dev_mode BOOLEAN DEFAULT 0, current_period_start DATETIME, current_period_end DATETIME)`,
	`CREATE TABLE usage_tracking (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
		user_id INTEGER, week_start DATETIME,
		uploads_count INTEGER DEFAULT 0, mock_tests_count INTEGER DEFAULT 0,
		regenerates_count INTEGER DEFAULT 0, verified_test_attempts INTEGER DEFAULT 0)`,
	`CREATE TABLE content_uploads (
		id TEXT PRIMARY KEY,
		created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
		user_id INTEGER, topic_id TEXT, file_name TEXT, file_type TEXT, file_url TEXT,
		extracted_text TEXT, summary TEXT,
		flashcard_count INTEGER DEFAULT 0, question_count INTEGER DEFAULT 0,
		processed BOOLEAN DEFAULT 0)`,
	`CREATE TABLE flashcards (
		id TEXT PRIMARY KEY,
		created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
		user_id INTEGER, topic_id TEXT, upload_id TEXT, front TEXT, back TEXT,
		mastered BOOLEAN DEFAULT 0, review_count INTEGER DEFAULT 0, last_reviewed_at DATETIME)`,
	`CREATE TABLE questions (
		id TEXT PRIMARY KEY,
		created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
		user_id INTEGER, topic_id TEXT, upload_id TEXT, question TEXT, options TEXT,
		correct_answer TEXT, explanation TEXT, answered_correctly BOOLEAN, last_attempted_at DATETIME)`,
	`CREATE TABLE xp_events (
		id TEXT PRIMARY KEY,
		created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
		user_id INTEGER, topic_id TEXT, event_type TEXT, xp_amount INTEGER, metadata TEXT)`,
	`CREATE TABLE user_gamification (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME, updated_at DATETIME, deleted_at DATETIME,
		user_id INTEGER, xp_total INTEGER DEFAULT 0, level INTEGER DEFAULT 1,
		current_streak INTEGER DEFAULT 0, longest_streak INTEGER DEFAULT 0,
		last_activity_date DATETIME, streak_protection_used_at DATETIME)`,
}

func contentTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// 内存库绑定单连接，避免连接池各开各的库
	sqlDB.SetMaxOpenConns(1)
	for _, stmt := range contentTestSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}

func TestUploadContentAwardsSessionXP(t *testing.T) {
	db := contentTestDB(t)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, geminiReply(`{"summary":"matrix basics recap"}`))
			return
		}
		fmt.Fprint(w, geminiReply(`{"flashcards":[{"front":"f","back":"b"}],"questions":[{"question":"q","options":["A","B","C","D"],"correct_answer":"A","explanation":"e"}]}`))
	}))
	defer srv.Close()

	userRepo := repository.NewUserRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	gamRepo := repository.NewGamificationRepository(db)
	flashcardRepo := repository.NewFlashcardRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	subService := NewSubscriptionService(repository.NewSubscriptionRepository(db))
	gamService := NewGamificationService(
		gamRepo,
		repository.NewMasteryRepository(db),
		flashcardRepo,
		questionRepo,
		repository.NewMockTestRepository(db),
		subService,
	)
	svc := NewContentService(
		repository.NewContentRepository(db),
		topicRepo,
		flashcardRepo,
		questionRepo,
		userRepo,
		aiTestService(srv.URL),
		nil,
		subService,
		gamService,
	)

	user := &model.User{Name: "Lin", Email: "lin@example.com", Password: "secret"}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	topic := &model.Topic{UserID: user.ID, Name: "Linear Algebra"}
	if err := topicRepo.Create(topic); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	upload, err := svc.UploadContent(context.Background(), user.ID, UploadContentRequest{
		TopicID: topic.ID,
		Content: "matrix multiplication rules",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !upload.Processed || upload.FlashcardCount != 1 || upload.QuestionCount != 1 {
		t.Fatalf("upload not persisted as expected: %+v", upload)
	}

	g, err := gamRepo.FindOrCreate(user.ID)
	if err != nil {
		t.Fatalf("load gamification: %v", err)
	}
	if want := XPValues[EventPracticeSession]; g.XPTotal != want {
		t.Fatalf("upload should award session XP: got total=%d, want %d", g.XPTotal, want)
	}
	if g.CurrentStreak != 1 {
		t.Fatalf("upload should record activity: got streak=%d, want 1", g.CurrentStreak)
	}

	events, err := gamRepo.FindEventsByUser(user.ID, 10)
	if err != nil {
		t.Fatalf("load events: %v", err)
	}
	if len(events) != 1 || events[0].EventType != EventPracticeSession {
		t.Fatalf("want one practice_session event, got %+v", events)
	}
	if events[0].XPAmount != XPValues[EventPracticeSession] {
		t.Fatalf("event amount: got %d, want %d", events[0].XPAmount, XPValues[EventPracticeSession])
	}

	var firstUpload bool
	if err := db.Model(&model.User{}).Select("first_upload_completed").
		Where("id = ?", user.ID).Scan(&firstUpload).Error; err != nil {
		t.Fatalf("read milestone flag: %v", err)
	}
	if !firstUpload {
		t.Fatalf("first_upload_completed should be set")
	}

	usage, err := subService.GetUsage(user.ID)
	if err != nil {
		t.Fatalf("load usage: %v", err)
	}
	if usage.UploadsCount != 1 {
		t.Fatalf("upload quota: got %d, want 1", usage.UploadsCount)
	}
}
