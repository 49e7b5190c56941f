// Package decision turns a scored activity sample into an attention state.
//
// Rules are evaluated in strict priority order; the first match wins. The
// engine reads the user's personalization profile and, on the confident
// productive path, feeds the observation back into it.
package decision

import (
	"context"
	"strings"

	"jiaa/data-service/internal/activity"
	"jiaa/data-service/internal/profile"
)

// Domain-tuned constants. These came out of live tuning against desktop
// client traces; change them only with fresh data.
const (
	// Below this input volume there is not enough signal to judge anything.
	lowActivityEvents        = 3
	lowActivityMouseDistance = 100.0

	// Click-spam / FPS pattern: sustained clicking with little typing.
	clickSpamThreshold = 6

	// Entropy rules only apply once the sample carries a meaningful amount of input.
	entropyMinEvents = 10

	// Entropy this low is key-mashing no matter what the dwell time says.
	hardGamingEntropy = 1.5

	// Dwell times under this look like game-style key tapping rather than typing.
	maxGamingDwellMs = 120.0

	// Drag-based detection thresholds.
	dragMouseDistance      = 1000.0
	dragKeystrokes         = 5
	panicDragMouseDistance = 8000.0

	// Only samples clearly inside the productive band may move the baseline,
	// so undetected gaming cannot poison the profile.
	learnMinEntropy = 3.0

	// Score-based fallback cutoffs.
	focusingScore = 80
	lowFocusScore = 30
)

// TitleMatcher reports whether a window title belongs to a known game.
type TitleMatcher interface {
	MatchesGameTitle(title string) bool
}

// StaticTitles matches titles against a fixed set of lower-case substrings.
type StaticTitles []string

// DefaultGameTitles is the built-in substring list, extended at runtime by
// denylist-approved entries.
var DefaultGameTitles = StaticTitles{
	"league of legends",
	"valorant",
	"overwatch",
	"minecraft",
	"fortnite",
	"steam",
	"battlegrounds",
	"maplestory",
	"lost ark",
	"epic games",
}

// MatchesGameTitle reports whether any known substring occurs in title
// (case-insensitive). Empty titles never match.
func (t StaticTitles) MatchesGameTitle(title string) bool {
	if title == "" {
		return false
	}
	lower := strings.ToLower(title)
	for _, sub := range t {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// Engine is the state-decision engine. Safe for use from the single consumer
// loop; profile mutation is funneled through the profile store.
type Engine struct {
	profiles *profile.Store
	titles   TitleMatcher
}

// NewEngine returns an engine using the given profile store and title
// matcher. titles may be nil to disable title-based detection.
func NewEngine(profiles *profile.Store, titles TitleMatcher) *Engine {
	return &Engine{profiles: profiles, titles: titles}
}

// Decide classifies one sample. Deterministic for a fixed (score, sample,
// profile snapshot); the learning side effect only fires on the non-gaming
// fallback path and never changes the state returned by the current call.
func (e *Engine) Decide(ctx context.Context, score int, s *activity.Sample) activity.State {
	if s.IsEmergency {
		return activity.StateEmergency
	}

	if e.titles != nil && e.titles.MatchesGameTitle(s.WindowTitle) {
		return activity.StateGaming
	}

	// Low-activity guard. Must short-circuit before every gaming heuristic:
	// a near-silent sample has too little signal to accuse anyone of gaming.
	if s.InputEvents() < lowActivityEvents && s.MouseDistance < lowActivityMouseDistance {
		return activity.StateNormal
	}

	if s.ClickCount > clickSpamThreshold {
		return activity.StateGaming
	}

	if s.KeyboardEntropy != nil && s.InputEvents() > entropyMinEvents {
		entropy := *s.KeyboardEntropy
		if entropy < hardGamingEntropy {
			// Extremely low entropy is gaming regardless of dwell time.
			return activity.StateGaming
		}
		threshold := e.profiles.Get(ctx, s.UserID).PersonalizedThreshold()
		if entropy < threshold && dwellLooksLikeGaming(s.AvgDwellTime) {
			return activity.StateGaming
		}
	}

	if s.IsDragging {
		if s.MouseDistance > dragMouseDistance && s.KeystrokeCount > dragKeystrokes &&
			s.KeyboardEntropy != nil {
			threshold := e.profiles.Get(ctx, s.UserID).PersonalizedThreshold()
			if *s.KeyboardEntropy < threshold && dwellLooksLikeGaming(s.AvgDwellTime) {
				return activity.StateGaming
			}
		}
		if s.MouseDistance > panicDragMouseDistance {
			// Extreme drag movement alone is a panic pattern, entropy or not.
			return activity.StateGaming
		}
	}

	// Learning: the sample survived every gaming rule and carries a clearly
	// productive entropy signature, so let it move the personal baseline.
	if s.KeyboardEntropy != nil && s.InputEvents() > entropyMinEvents && *s.KeyboardEntropy > learnMinEntropy {
		p := e.profiles.Get(ctx, s.UserID)
		if p.AdaptThreshold(*s.KeyboardEntropy) {
			e.profiles.Save(ctx, s.UserID)
		}
	}

	switch {
	case score >= focusingScore:
		return activity.StateFocusing
	case score < lowFocusScore:
		if s.IsEyesClosed {
			return activity.StateSleeping
		}
		return activity.StateDistracted
	default:
		return activity.StateNormal
	}
}

// dwellLooksLikeGaming treats a missing dwell time as suspicious: only a
// measured, typing-like dwell clears the sample.
func dwellLooksLikeGaming(avgDwell *float64) bool {
	return avgDwell == nil || *avgDwell < maxGamingDwellMs
}
