// Package verify implements the secondary check on gaming classifications: a
// remote content classifier looks at the window title and can clear it.
package verify

import (
	"context"
	"strings"
	"time"

	"jiaa/data-service/internal/logging"
)

// Verdict is the outcome of verifying a gaming classification.
type Verdict int

const (
	// VerdictConfirm keeps the gaming classification. This is also the
	// fail-open default: infrastructure failure must never silently clear a
	// gaming verdict.
	VerdictConfirm Verdict = iota
	// VerdictSafe downgrades the classification; the title belongs to study
	// or work content.
	VerdictSafe
)

// Result is the remote classifier's answer for one window title.
type Result struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// Classifier performs the remote content-classification call.
type Classifier interface {
	Classify(ctx context.Context, windowTitle string) (*Result, error)
}

// Verifier wraps a Classifier with the verdict mapping and fail-open policy.
type Verifier struct {
	classifier Classifier
	timeout    time.Duration
}

// NewVerifier returns a Verifier with the given per-call timeout. classifier
// may be nil, in which case every verification confirms.
func NewVerifier(classifier Classifier, timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Verifier{classifier: classifier, timeout: timeout}
}

// ShouldVerify reports whether a gaming classification with this window title
// is worth a remote round-trip. Empty and placeholder titles are not.
func ShouldVerify(windowTitle string) bool {
	if windowTitle == "" {
		return false
	}
	return !strings.EqualFold(windowTitle, "unknown")
}

// Verify asks the remote classifier about the window title. A category of
// "study" or "work" yields VerdictSafe; anything else, including transport
// errors and timeouts, yields VerdictConfirm.
func (v *Verifier) Verify(ctx context.Context, windowTitle string) Verdict {
	if v == nil || v.classifier == nil {
		return VerdictConfirm
	}

	callCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	res, err := v.classifier.Classify(callCtx, windowTitle)
	if err != nil {
		logging.WithComponent("verify").WithError(err).WithField("window_title", windowTitle).
			Warn("classifier call failed, confirming gaming")
		return VerdictConfirm
	}
	if res == nil {
		return VerdictConfirm
	}

	switch strings.ToLower(strings.TrimSpace(res.Category)) {
	case "study", "work":
		return VerdictSafe
	default:
		return VerdictConfirm
	}
}
