package domain

import "time"

// ActivityItem is a normalized entry in the recent-activity feed. It unifies
// interactions and messages under one shape for the dashboard.
type ActivityItem struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"` // "interaction" or "message"
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Time        time.Time `json:"time"`
	Actor       string    `json:"actor,omitempty"`
	Status      string    `json:"status"`
}
