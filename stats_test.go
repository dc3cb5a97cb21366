package chatanalysis

import (
	"math"
	"testing"
	"time"
)

func TestComputeStats(t *testing.T) {
	day := func(d int, hour int) time.Time {
		return time.Date(2024, time.March, d, hour, 30, 0, 0, time.UTC)
	}
	msgs := []ChatMessage{
		{Text: "早", Timestamp: day(1, 8)},
		{Text: "午饭", Timestamp: day(1, 12)},
		{Text: "晚安", Timestamp: day(2, 23)},
		{Text: "早", Timestamp: day(5, 8)},
	}

	stats := ComputeStats(msgs)
	if stats.TotalMessages != 4 {
		t.Errorf("TotalMessages = %d, want 4", stats.TotalMessages)
	}
	if stats.TotalDays != 5 {
		t.Errorf("TotalDays = %d, want 5 (inclusive span)", stats.TotalDays)
	}
	if !stats.FirstDate.Equal(day(1, 8)) || !stats.LastDate.Equal(day(5, 8)) {
		t.Errorf("Date span = %v … %v", stats.FirstDate, stats.LastDate)
	}
	if got := stats.Monthly["2024-03"]; got != 4 {
		t.Errorf("Monthly[2024-03] = %d, want 4", got)
	}
	if got := stats.Hourly[8]; math.Abs(got-2.0/5.0) > 1e-9 {
		t.Errorf("Hourly[8] = %.4f, want 0.4", got)
	}
	if got := stats.Hourly[3]; got != 0 {
		t.Errorf("Hourly[3] = %.4f, want 0", got)
	}
}

func TestComputeStatsUnordered(t *testing.T) {
	ts := func(d int) time.Time {
		return time.Date(2024, time.January, d, 10, 0, 0, 0, time.UTC)
	}
	msgs := []ChatMessage{
		{Timestamp: ts(15)},
		{Timestamp: ts(3)},
		{Timestamp: ts(9)},
	}
	stats := ComputeStats(msgs)
	if !stats.FirstDate.Equal(ts(3)) || !stats.LastDate.Equal(ts(15)) {
		t.Errorf("Date span = %v … %v, want Jan 3 … Jan 15", stats.FirstDate, stats.LastDate)
	}
	if stats.TotalDays != 13 {
		t.Errorf("TotalDays = %d, want 13", stats.TotalDays)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.TotalMessages != 0 || stats.TotalDays != 0 {
		t.Errorf("Empty input produced %+v", stats)
	}
}

func TestComputeStatsMonthBoundary(t *testing.T) {
	msgs := []ChatMessage{
		{Timestamp: time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC)},
		{Timestamp: time.Date(2024, time.January, 1, 1, 0, 0, 0, time.UTC)},
	}
	stats := ComputeStats(msgs)
	if stats.Monthly["2023-12"] != 1 || stats.Monthly["2024-01"] != 1 {
		t.Errorf("Monthly buckets = %v", stats.Monthly)
	}
	if stats.TotalDays != 2 {
		t.Errorf("TotalDays = %d, want 2", stats.TotalDays)
	}
}
