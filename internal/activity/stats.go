package activity

import "time"

type Stats struct {
	Period       string         `json:"period"`
	ActionCounts map[Action]int `json:"action_counts"`
	ActiveUsers  int            `json:"active_users"`
}

// CalculateStats summarizes events recorded since the given day.
func CalculateStats(events []Event, since time.Time) Stats {
	stats := Stats{
		Period:       since.Format("2006-01-02"),
		ActionCounts: make(map[Action]int),
	}
	users := make(map[string]struct{})
	for _, e := range events {
		stats.ActionCounts[e.Action]++
		users[e.User] = struct{}{}
	}
	stats.ActiveUsers = len(users)
	return stats
}
