package chatanalysis

import "time"

// ChatStats is the pure-data view of message timing: collaborators
// rendering activity charts consume it directly.
type ChatStats struct {
	FirstDate     time.Time `json:"first_date"`
	LastDate      time.Time `json:"last_date"`
	TotalDays     int       `json:"total_days"`
	TotalMessages int       `json:"total_messages"`
	// Monthly counts messages per "2006-01" bucket.
	Monthly map[string]int `json:"monthly"`
	// Hourly is the average number of messages per hour of day, over
	// the whole span. Every hour slot is present even when zero.
	Hourly [24]float64 `json:"hourly"`
}

// ComputeStats derives timing statistics from the messages that
// survived prefiltering. Day span counts calendar days inclusive of
// both endpoints.
func ComputeStats(msgs []ChatMessage) ChatStats {
	stats := ChatStats{Monthly: make(map[string]int)}
	if len(msgs) == 0 {
		return stats
	}

	first, last := msgs[0].Timestamp, msgs[0].Timestamp
	var hourCounts [24]int
	for _, m := range msgs {
		if m.Timestamp.Before(first) {
			first = m.Timestamp
		}
		if m.Timestamp.After(last) {
			last = m.Timestamp
		}
		stats.Monthly[m.Timestamp.Format("2006-01")]++
		hourCounts[m.Timestamp.Hour()]++
	}

	firstDay := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
	days := int(lastDay.Sub(firstDay).Hours()/24) + 1

	stats.FirstDate = first
	stats.LastDate = last
	stats.TotalDays = days
	stats.TotalMessages = len(msgs)
	for h := 0; h < 24; h++ {
		stats.Hourly[h] = float64(hourCounts[h]) / float64(days)
	}
	return stats
}
