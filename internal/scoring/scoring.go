// Package scoring maps one activity sample to a 0-100 attention score.
package scoring

import (
	"math"

	"jiaa/data-service/internal/activity"
)

// Score weights. OS signals (mouse + keyboard) together carry 40% of the
// final score, the vision signal the remaining 60%.
const (
	weightMouse    = 0.2
	weightKeyboard = 0.2
	weightVision   = 0.6
)

// Scale factors: 1000px of mouse travel or 5 keystrokes saturate their
// respective sub-score at 100.
const (
	mouseDistancePerPoint = 10.0
	pointsPerKeystroke    = 20.0
)

// Score computes the attention score for one sample. Pure and total: any
// sample yields a value in [0,100]. Inputs are assumed sanitized by the
// caller (negative or NaN fields are not handled here).
func Score(s *activity.Sample) int {
	mouseScore := math.Min(s.MouseDistance/mouseDistancePerPoint, 100)
	keyScore := math.Min(float64(s.KeystrokeCount)*pointsPerKeystroke, 100)

	osScore := math.Max(mouseScore, keyScore)
	if s.IsOSIdle {
		osScore = 0
	}

	visionScore := 0.0
	if !s.IsEyesClosed {
		visionScore = math.Floor(s.VisionScore * 100)
	}

	final := osScore*(weightMouse+weightKeyboard) + visionScore*weightVision
	return int(math.Floor(math.Min(final, 100)))
}
