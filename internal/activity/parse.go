package activity

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrNoUserID is returned when a payload carries no user identifier under any
// accepted field name.
var ErrNoUserID = errors.New("activity: payload has no user id")

// ParseSample normalizes a raw JSON activity payload into a Sample.
//
// Upstream producers disagree on field naming: the desktop client sends
// snake_case with a nested metadata object, older builds send camelCase at the
// top level. Both shapes are accepted; metadata fields win over top-level
// duplicates. Unknown numeric fields default to 0 and booleans to false.
// The sample timestamp defaults to now (UTC) when absent or unparseable.
func ParseSample(raw []byte, now time.Time) (*Sample, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	fields := payload
	if meta, ok := payload["metadata"].(map[string]any); ok {
		// Shallow merge: metadata entries shadow top-level ones.
		fields = make(map[string]any, len(payload)+len(meta))
		for k, v := range payload {
			fields[k] = v
		}
		for k, v := range meta {
			fields[k] = v
		}
	}

	userID := pickString(fields, "user_id", "client_id", "userId", "clientId")
	if userID == "" {
		return nil, ErrNoUserID
	}

	s := &Sample{
		UserID:         userID,
		Timestamp:      pickTime(fields, now, "timestamp", "ts"),
		MouseDistance:  pickFloat(fields, "mouse_distance", "mouseDistance"),
		KeystrokeCount: int(pickFloat(fields, "keystroke_count", "keystrokeCount")),
		ClickCount:     int(pickFloat(fields, "click_count", "clickCount")),
		IsOSIdle:       pickBool(fields, "is_os_idle", "isOsIdle"),
		IsEyesClosed:   pickBool(fields, "is_eyes_closed", "isEyesClosed"),
		IsEmergency:    pickBool(fields, "is_emergency", "isEmergency"),
		IsDragging:     pickBool(fields, "is_dragging", "isDragging"),
		VisionScore:    pickFloat(fields, "vision_score", "visionScore"),
		WindowTitle:    pickString(fields, "window_title", "windowTitle"),
	}

	if v, ok := lookupFloat(fields, "keyboard_entropy", "keyboardEntropy", "entropy"); ok {
		s.KeyboardEntropy = &v
	}
	if v, ok := lookupFloat(fields, "avg_dwell_time", "avgDwellTime"); ok {
		s.AvgDwellTime = &v
	}

	// Negative counters and distances are client bugs; clamp rather than drop
	// the message so one bad field does not lose the whole observation.
	if s.MouseDistance < 0 {
		s.MouseDistance = 0
	}
	if s.KeystrokeCount < 0 {
		s.KeystrokeCount = 0
	}
	if s.ClickCount < 0 {
		s.ClickCount = 0
	}
	if s.VisionScore < 0 {
		s.VisionScore = 0
	}
	if s.VisionScore > 1 {
		s.VisionScore = 1
	}

	return s, nil
}

func pickString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func lookupFloat(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return v, true
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func pickFloat(m map[string]any, keys ...string) float64 {
	v, _ := lookupFloat(m, keys...)
	return v
}

func pickBool(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if v, ok := m[k].(bool); ok {
			return v
		}
	}
	return false
}

// pickTime accepts epoch milliseconds or RFC3339 strings; anything else falls
// back to the provided arrival time.
func pickTime(m map[string]any, fallback time.Time, keys ...string) time.Time {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			if v > 0 {
				return time.UnixMilli(int64(v)).UTC()
			}
		case string:
			if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
				return t.UTC()
			}
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				return t.UTC()
			}
		}
	}
	return fallback.UTC()
}
