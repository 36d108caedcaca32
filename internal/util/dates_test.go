package util

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 3, 4, 17, 45, 12, 999, time.UTC)
	got := StartOfDay(in)
	want := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("StartOfDay(%v) = %v, want %v", in, got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name    string
		earlier time.Time
		later   time.Time
		want    int
	}{
		{
			name:    "same calendar day",
			earlier: time.Date(2026, 3, 4, 1, 0, 0, 0, time.UTC),
			later:   time.Date(2026, 3, 4, 23, 59, 0, 0, time.UTC),
			want:    0,
		},
		{
			name:    "late evening to next morning",
			earlier: time.Date(2026, 3, 4, 23, 30, 0, 0, time.UTC),
			later:   time.Date(2026, 3, 5, 0, 30, 0, 0, time.UTC),
			want:    1,
		},
		{
			name:    "one week apart",
			earlier: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			later:   time.Date(2026, 3, 8, 6, 0, 0, 0, time.UTC),
			want:    7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.earlier, tt.later); got != tt.want {
				t.Fatalf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeekStart(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   time.Time
	}{
		{"monday itself", time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)},
		{"midweek", time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)},
		{"sunday maps back", time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in); !got.Equal(monday) {
				t.Fatalf("WeekStart(%v) = %v, want %v", tt.in, got, monday)
			}
		})
	}
}
