// Package activity defines the telemetry sample model, the attention state
// enumeration, and the tolerant normalization of inbound payloads.
package activity

import "time"

// Sample is one normalized telemetry observation for a user at a point in time.
// Samples are constructed once per inbound message and never mutated.
type Sample struct {
	UserID        string
	Timestamp     time.Time
	MouseDistance float64 // pixels
	KeystrokeCount int
	ClickCount    int
	IsOSIdle      bool
	IsEyesClosed  bool
	IsEmergency   bool
	IsDragging    bool
	VisionScore   float64 // 0.0 - 1.0

	// KeyboardEntropy is bits/char of the recent keystroke stream; nil when the
	// client did not report it.
	KeyboardEntropy *float64
	// WindowTitle is the foreground window title; empty when not reported.
	WindowTitle string
	// AvgDwellTime is the mean key dwell time in milliseconds; nil when not reported.
	AvgDwellTime *float64
}

// InputEvents is the combined keystroke and click count, the activity volume
// the decision rules gate on.
func (s *Sample) InputEvents() int {
	return s.KeystrokeCount + s.ClickCount
}
