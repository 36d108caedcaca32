package service

import "testing"

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{900, 4},
		{2500, 6},
		{-10, 1},
	}

	for _, tt := range tests {
		if got := CalculateLevel(tt.xp); got != tt.want {
			t.Errorf("CalculateLevel(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestXPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 0},
		{2, 100},
		{3, 400},
		{5, 1600},
		{0, 0}, // clamped to level 1
	}

	for _, tt := range tests {
		if got := XPForLevel(tt.level); got != tt.want {
			t.Errorf("XPForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestLevelThresholdsRoundTrip(t *testing.T) {
	// 每一级的最低 XP 应恰好落在该级
	for level := 1; level <= 20; level++ {
		floor := XPForLevel(level)
		if got := CalculateLevel(floor); got != level {
			t.Fatalf("CalculateLevel(XPForLevel(%d)=%d) = %d", level, floor, got)
		}
		if level > 1 {
			if got := CalculateLevel(floor - 1); got != level-1 {
				t.Fatalf("CalculateLevel(%d) = %d, want %d", floor-1, got, level-1)
			}
		}
	}
}

func TestXPProgressInLevel(t *testing.T) {
	// 250 XP：等级 2，区间 [100, 400)
	current, needed := XPProgressInLevel(250)
	if current != 150 || needed != 300 {
		t.Fatalf("XPProgressInLevel(250) = (%d, %d), want (150, 300)", current, needed)
	}

	if got := XPForNextLevel(250); got != 400 {
		t.Fatalf("XPForNextLevel(250) = %d, want 400", got)
	}
}
