package util

import "time"

// StartOfDay 归零到当天零点，比较日历日期前先调用
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween 日历日差值（later - earlier），跨时区按各自零点算
func DaysBetween(earlier, later time.Time) int {
	e := StartOfDay(earlier)
	l := StartOfDay(later)
	return int(l.Sub(e).Hours() / 24)
}

// WeekStart 所在周的周一零点，用量统计按周聚合
func WeekStart(t time.Time) time.Time {
	d := StartOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0
	return d.AddDate(0, 0, -offset)
}
