package service

import (
	"studypal_backend/internal/model"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAdvanceStreak_FirstActivity(t *testing.T) {
	g := &model.UserGamification{}
	res := AdvanceStreak(g, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), false)
	if res.CurrentStreak != 1 || res.LongestStreak != 1 {
		t.Fatalf("first activity: got streak=%d longest=%d, want 1/1", res.CurrentStreak, res.LongestStreak)
	}
}

func TestAdvanceStreak_SameDayIsNoop(t *testing.T) {
	g := &model.UserGamification{
		CurrentStreak:    4,
		LongestStreak:    10,
		LastActivityDate: date(2026, 3, 4),
	}
	res := AdvanceStreak(g, time.Date(2026, 3, 4, 22, 0, 0, 0, time.UTC), true)
	if res.CurrentStreak != 4 || res.LongestStreak != 10 || res.UsedProtection {
		t.Fatalf("same day: got %+v, want unchanged", res)
	}
}

func TestAdvanceStreak_FutureLastActivityResets(t *testing.T) {
	// 时钟回拨后上次活动日期在未来，按断档处理重置为 1
	g := &model.UserGamification{
		CurrentStreak:    9,
		LongestStreak:    9,
		LastActivityDate: date(2026, 3, 6),
	}
	res := AdvanceStreak(g, time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), true)
	if res.CurrentStreak != 1 || res.UsedProtection {
		t.Fatalf("future last activity: got streak=%d used=%v, want 1/false", res.CurrentStreak, res.UsedProtection)
	}
	if res.LongestStreak != 9 {
		t.Fatalf("longest should survive reset: got %d", res.LongestStreak)
	}
}

func TestAdvanceStreak_ConsecutiveDay(t *testing.T) {
	g := &model.UserGamification{
		CurrentStreak:    4,
		LongestStreak:    4,
		LastActivityDate: date(2026, 3, 3),
	}
	res := AdvanceStreak(g, time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), false)
	if res.CurrentStreak != 5 || res.LongestStreak != 5 {
		t.Fatalf("consecutive: got streak=%d longest=%d, want 5/5", res.CurrentStreak, res.LongestStreak)
	}
}

func TestAdvanceStreak_GapResetsWithoutProtection(t *testing.T) {
	g := &model.UserGamification{
		CurrentStreak:    12,
		LongestStreak:    12,
		LastActivityDate: date(2026, 3, 2),
	}
	res := AdvanceStreak(g, time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), false)
	if res.CurrentStreak != 1 {
		t.Fatalf("gap without protection: got streak=%d, want 1", res.CurrentStreak)
	}
	if res.LongestStreak != 12 {
		t.Fatalf("longest should survive reset: got %d", res.LongestStreak)
	}
}

func TestAdvanceStreak_ProtectionBridgesOneMissedDay(t *testing.T) {
	g := &model.UserGamification{
		CurrentStreak:    12,
		LongestStreak:    12,
		LastActivityDate: date(2026, 3, 2),
	}
	res := AdvanceStreak(g, time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), true)
	if res.CurrentStreak != 13 || !res.UsedProtection {
		t.Fatalf("protection bridge: got streak=%d used=%v, want 13/true", res.CurrentStreak, res.UsedProtection)
	}
}

func TestAdvanceStreak_ProtectionOncePerRollingWeek(t *testing.T) {
	g := &model.UserGamification{
		CurrentStreak:          12,
		LongestStreak:          12,
		LastActivityDate:       date(2026, 3, 2),
		StreakProtectionUsedAt: date(2026, 3, 1),
	}
	res := AdvanceStreak(g, time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), true)
	if res.CurrentStreak != 1 || res.UsedProtection {
		t.Fatalf("recent protection use should block: got streak=%d used=%v", res.CurrentStreak, res.UsedProtection)
	}

	// 上次使用满 7 天当天即可再次使用
	g.StreakProtectionUsedAt = date(2026, 2, 25)
	res = AdvanceStreak(g, time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), true)
	if res.CurrentStreak != 13 || !res.UsedProtection {
		t.Fatalf("protection used exactly 7 days ago should allow: got streak=%d used=%v", res.CurrentStreak, res.UsedProtection)
	}

	// 超过 7 天同样可用
	g.StreakProtectionUsedAt = date(2026, 2, 20)
	res = AdvanceStreak(g, time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), true)
	if res.CurrentStreak != 13 || !res.UsedProtection {
		t.Fatalf("stale protection use should allow: got streak=%d used=%v", res.CurrentStreak, res.UsedProtection)
	}
}

func TestAdvanceStreak_TwoDayGapNeverBridgedBeyond(t *testing.T) {
	g := &model.UserGamification{
		CurrentStreak:    9,
		LongestStreak:    9,
		LastActivityDate: date(2026, 3, 1),
	}
	// 隔了 3 天，保护也救不回来
	res := AdvanceStreak(g, time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), true)
	if res.CurrentStreak != 1 || res.UsedProtection {
		t.Fatalf("3-day gap: got streak=%d used=%v, want 1/false", res.CurrentStreak, res.UsedProtection)
	}
}

func TestAdvanceStreak_MilestoneBonusExactly(t *testing.T) {
	g := &model.UserGamification{
		CurrentStreak:    6,
		LongestStreak:    6,
		LastActivityDate: date(2026, 3, 3),
	}
	res := AdvanceStreak(g, time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), false)
	if res.CurrentStreak != 7 || res.MilestoneBonus != 100 || res.MilestoneEventType != EventStreak7Bonus {
		t.Fatalf("7-day milestone: got %+v", res)
	}

	// 第 8 天不再发
	g.CurrentStreak = 7
	g.LongestStreak = 7
	g.LastActivityDate = date(2026, 3, 4)
	res = AdvanceStreak(g, time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC), false)
	if res.MilestoneBonus != 0 || res.MilestoneEventType != "" {
		t.Fatalf("day 8 should not re-award: got %+v", res)
	}

	// 30 天里程碑
	g.CurrentStreak = 29
	g.LongestStreak = 29
	g.LastActivityDate = date(2026, 3, 5)
	res = AdvanceStreak(g, time.Date(2026, 3, 6, 8, 0, 0, 0, time.UTC), false)
	if res.CurrentStreak != 30 || res.MilestoneBonus != 500 || res.MilestoneEventType != EventStreak30Bonus {
		t.Fatalf("30-day milestone: got %+v", res)
	}
}
