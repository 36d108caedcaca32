package service

import (
	"studypal_backend/internal/model"
	"testing"
)

func reqBadge(reqType string, value int) model.Badge {
	return model.Badge{RequirementType: reqType, RequirementValue: value}
}

func TestBadgeSatisfied(t *testing.T) {
	stats := &BadgeStats{
		FlashcardsReviewed: 100,
		FlashcardsMastered: 24,
		QuestionsCorrect:   49,
		StreakDays:         7,
		TestsCompleted:     10,
		PerfectTests:       1,
		FastTests:          0,
		HasMasterTopic:     true,
		MaxTopicXP:         950,
		ProficientTopics:   2,
		MaxTopicStreak:     4,
	}

	tests := []struct {
		name  string
		badge model.Badge
		want  bool
	}{
		{"reviewed met", reqBadge(model.ReqFlashcardReviewed, 100), true},
		{"reviewed not met", reqBadge(model.ReqFlashcardReviewed, 101), false},
		{"mastered not met", reqBadge(model.ReqFlashcardMastered, 25), false},
		{"correct not met", reqBadge(model.ReqQuestionsCorrect, 50), false},
		{"streak met", reqBadge(model.ReqStreakDays, 7), true},
		{"tests met", reqBadge(model.ReqTestsCompleted, 10), true},
		{"perfect met", reqBadge(model.ReqPerfectTest, 1), true},
		{"fast not met", reqBadge(model.ReqFastTest, 1), false},
		{"master topic", reqBadge(model.ReqTopicMasteryLevel, 1), true},
		{"topic xp not met", reqBadge(model.ReqTopicXP, 1000), false},
		{"proficient met", reqBadge(model.ReqProficientTopics, 2), true},
		{"topic streak not met", reqBadge(model.ReqTopicStreak, 5), false},
		{"unknown type never fires", reqBadge("made_up", 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := badgeSatisfied(tt.badge, stats); got != tt.want {
				t.Fatalf("badgeSatisfied(%q, %d) = %v, want %v",
					tt.badge.RequirementType, tt.badge.RequirementValue, got, tt.want)
			}
		})
	}
}

func TestLimitsForPlan(t *testing.T) {
	free := LimitsForPlan(model.PlanFree)
	if free.UploadsPerWeek != 5 || free.MockTestsPerWeek != 5 || free.ActiveTopics != 5 || free.RegeneratesPerWeek != 1 {
		t.Fatalf("free limits: %+v", free)
	}
	if free.StreakProtection || free.XPBoosts {
		t.Fatalf("free plan should not carry pro perks: %+v", free)
	}

	pro := LimitsForPlan(model.PlanPro)
	if pro.UploadsPerWeek != -1 || pro.MockTestsPerWeek != -1 || pro.ActiveTopics != -1 || pro.RegeneratesPerWeek != -1 {
		t.Fatalf("pro limits should be unlimited: %+v", pro)
	}
	if !pro.StreakProtection || !pro.XPBoosts {
		t.Fatalf("pro plan missing perks: %+v", pro)
	}

	// 未知档位回落到 free
	if got := LimitsForPlan(model.PlanType("enterprise")); got != free {
		t.Fatalf("unknown plan = %+v, want free limits", got)
	}
}
