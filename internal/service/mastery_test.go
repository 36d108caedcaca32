package service

import (
	"studypal_backend/internal/model"
	"testing"
)

func TestCalculateMasteryLevel(t *testing.T) {
	tests := []struct {
		name      string
		xp        int
		accuracy  int
		tests     int
		flashcard int
		want      model.MasteryLevel
	}{
		{"fresh topic", 0, 0, 0, 0, model.MasteryNovice},
		{"xp alone reaches learning", 50, 0, 0, 0, model.MasteryLearning},
		{"cards alone reach learning", 0, 0, 0, 5, model.MasteryLearning},
		{"proficient needs accuracy", 300, 80, 0, 0, model.MasteryProficient},
		{"high xp low accuracy stays learning", 300, 79, 0, 0, model.MasteryLearning},
		{"master needs all three", 1000, 90, 3, 0, model.MasteryMaster},
		{"master blocked by test count", 1000, 95, 2, 0, model.MasteryProficient},
		{"master blocked by accuracy", 1500, 89, 5, 0, model.MasteryProficient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateMasteryLevel(tt.xp, tt.accuracy, tt.tests, tt.flashcard)
			if got != tt.want {
				t.Fatalf("CalculateMasteryLevel(%d, %d, %d, %d) = %q, want %q",
					tt.xp, tt.accuracy, tt.tests, tt.flashcard, got, tt.want)
			}
		})
	}
}
