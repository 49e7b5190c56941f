// Package domain defines the denylist item model.
package domain

import "time"

// Status is the review state of a reported application.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusWhitelisted Status = "WHITELISTED"
)

// Valid reports whether s is one of the known review states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusWhitelisted:
		return true
	}
	return false
}

// Item is one reported application. AppName is the natural key.
type Item struct {
	AppName        string    `json:"appName"`
	IsGame         bool      `json:"isGame"`
	Status         Status    `json:"status"`
	ReportCount    int       `json:"reportCount"`
	LastReportedAt time.Time `json:"lastReportedAt"`
}
