package service

import (
	"studypal_backend/internal/model"
	"time"

	"studypal_backend/internal/util"
)

// StreakResult 一次打卡推进后的状态
type StreakResult struct {
	CurrentStreak  int
	LongestStreak  int
	UsedProtection bool
	// MilestoneBonus 恰好到达 7/30 天时的奖励 XP，其余为 0
	MilestoneBonus     int
	MilestoneEventType string
}

// AdvanceStreak 按日历日推进连续学习天数
// 同一天重复打卡不变化；隔一天正常 +1；隔两天且 Pro 用户近 7 天未用过保护时消耗保护继续；否则重置为 1
func AdvanceStreak(g *model.UserGamification, now time.Time, hasProtection bool) StreakResult {
	res := StreakResult{
		CurrentStreak: g.CurrentStreak,
		LongestStreak: g.LongestStreak,
	}

	today := util.StartOfDay(now)

	if g.LastActivityDate == nil {
		res.CurrentStreak = 1
	} else {
		diff := util.DaysBetween(*g.LastActivityDate, today)
		switch {
		case diff == 0:
			// 当天已记录过
			return res
		case diff == 1:
			res.CurrentStreak = g.CurrentStreak + 1
		case diff == 2 && hasProtection && protectionAvailable(g, today):
			res.CurrentStreak = g.CurrentStreak + 1
			res.UsedProtection = true
		default:
			res.CurrentStreak = 1
		}
	}

	if res.CurrentStreak > res.LongestStreak {
		res.LongestStreak = res.CurrentStreak
	}

	// 里程碑奖励只在恰好到达时发放一次
	switch res.CurrentStreak {
	case 7:
		res.MilestoneBonus = XPValues[EventStreak7Bonus]
		res.MilestoneEventType = EventStreak7Bonus
	case 30:
		res.MilestoneBonus = XPValues[EventStreak30Bonus]
		res.MilestoneEventType = EventStreak30Bonus
	}

	return res
}

// protectionAvailable 保护每滚动 7 天只能用一次，满 7 天即可再次使用
func protectionAvailable(g *model.UserGamification, today time.Time) bool {
	if g.StreakProtectionUsedAt == nil {
		return true
	}
	return util.DaysBetween(*g.StreakProtectionUsedAt, today) >= 7
}
