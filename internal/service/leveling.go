package service

import "math"

// CalculateLevel 由累计 XP 推导等级：level = floor(sqrt(xp/100)) + 1
func CalculateLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return int(math.Floor(math.Sqrt(float64(xp)/100))) + 1
}

// XPForLevel 达到指定等级所需的最低累计 XP：(level-1)^2 * 100
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return (level - 1) * (level - 1) * 100
}

// XPForNextLevel 升到下一级所需的累计 XP 门槛
func XPForNextLevel(xp int) int {
	return XPForLevel(CalculateLevel(xp) + 1)
}

// XPProgressInLevel 当前等级内的进度（已得/本级区间总量）
func XPProgressInLevel(xp int) (current int, needed int) {
	level := CalculateLevel(xp)
	floor := XPForLevel(level)
	ceil := XPForLevel(level + 1)
	return xp - floor, ceil - floor
}
