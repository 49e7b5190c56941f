// Package history persists one activity record per processed message and
// serves recent-activity listings. Writes are best-effort and asynchronous;
// the pipeline never waits on the database.
package history

import "time"

// Record is one persisted classification outcome.
type Record struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	Category       string    `json:"category"`
	State          string    `json:"state"`
	Score          int       `json:"score"`
	MouseDistance  float64   `json:"mouse_distance"`
	KeystrokeCount int       `json:"keystroke_count"`
	ClickCount     int       `json:"click_count"`
	Entropy        *float64  `json:"entropy,omitempty"`
	ActionDetail   string    `json:"action_detail,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
