package service

import (
	"studypal_backend/internal/model"
	"testing"
	"time"
)

func planTopics() []model.Topic {
	a := model.Topic{Name: "Algebra"}
	a.ID = "topic-a"
	b := model.Topic{Name: "Biology"}
	b.ID = "topic-b"
	return []model.Topic{a, b}
}

func TestGeneratePlanTasks_SevenDayPlan(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC) // Monday
	target := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	topics := planTopics()
	studyTimes := []string{"morning", "evening"}

	tasks := GeneratePlanTasks(1, topics, studyTimes, start, target)

	// 7 天 × 2 时段 = 14 个常规任务，外加第 4 天触发的复习日和第 7 天的小模考
	if len(tasks) != 16 {
		t.Fatalf("got %d tasks, want 16", len(tasks))
	}

	var regular, review, mock []model.StudyTask
	for _, task := range tasks {
		switch task.Title {
		case "🔁 Review Day":
			review = append(review, task)
		case "📝 Mini Mock Test":
			mock = append(mock, task)
		default:
			regular = append(regular, task)
		}
	}
	if len(regular) != 14 || len(review) != 1 || len(mock) != 1 {
		t.Fatalf("got regular=%d review=%d mock=%d", len(regular), len(review), len(mock))
	}

	// 复习日排在第 4 天的次日
	wantReviewDate := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	if !review[0].ScheduledDate.Equal(wantReviewDate) {
		t.Fatalf("review day on %v, want %v", review[0].ScheduledDate, wantReviewDate)
	}
	if review[0].TimeMinutes != 30 || review[0].TopicID != "topic-a" {
		t.Fatalf("review day: %+v", review[0])
	}

	// 小模考排在第 7 天当天
	wantMockDate := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	if !mock[0].ScheduledDate.Equal(wantMockDate) || mock[0].TaskType != model.TaskTest {
		t.Fatalf("mock test: %+v", mock[0])
	}
}

func TestGeneratePlanTasks_SlotAlternationAndRotation(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	target := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	topics := planTopics()
	studyTimes := []string{"morning", "evening"}

	tasks := GeneratePlanTasks(1, topics, studyTimes, start, target)
	if len(tasks) != 4 {
		t.Fatalf("got %d tasks, want 4", len(tasks))
	}

	// (dayIndex+slotIndex) 偶数为卡片，奇数为刷题
	wantTypes := []model.TaskType{model.TaskFlashcard, model.TaskQuestion, model.TaskQuestion, model.TaskFlashcard}
	// 单一游标轮转主题
	wantTopics := []string{"topic-a", "topic-b", "topic-a", "topic-b"}
	for i, task := range tasks {
		if task.TaskType != wantTypes[i] {
			t.Errorf("task %d type = %q, want %q", i, task.TaskType, wantTypes[i])
		}
		if task.TopicID != wantTopics[i] {
			t.Errorf("task %d topic = %q, want %q", i, task.TopicID, wantTopics[i])
		}
		if task.TimeMinutes != 15 {
			t.Errorf("task %d minutes = %d, want 15", i, task.TimeMinutes)
		}
	}
}

func TestGeneratePlanTasks_SingleDay(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tasks := GeneratePlanTasks(1, planTopics(), []string{"morning"}, day, day)
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
}

func TestGeneratePlanTasks_NoReviewDayAfterLastDay(t *testing.T) {
	// 4 天计划：复习日本该排在第 5 天，但计划已结束
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	target := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	tasks := GeneratePlanTasks(1, planTopics(), []string{"morning"}, start, target)
	for _, task := range tasks {
		if task.Title == "🔁 Review Day" {
			t.Fatalf("review day scheduled past plan end: %+v", task)
		}
	}
}

func TestGeneratePlanTasks_EmptyInputs(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	if tasks := GeneratePlanTasks(1, nil, []string{"morning"}, day, day); tasks != nil {
		t.Fatalf("no topics: got %d tasks", len(tasks))
	}
	if tasks := GeneratePlanTasks(1, planTopics(), nil, day, day); tasks != nil {
		t.Fatalf("no study times: got %d tasks", len(tasks))
	}
	if tasks := GeneratePlanTasks(1, planTopics(), []string{"morning"}, day.AddDate(0, 0, 1), day); tasks != nil {
		t.Fatalf("target before start: got %d tasks", len(tasks))
	}
}
