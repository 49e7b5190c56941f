// Package profile holds the per-user personalization model: a slowly adapting
// baseline of the user's typical keyboard entropy, used to derive the
// per-user gaming-detection threshold.
package profile

import "time"

// DefaultCodingEntropy is the baseline for users we have never observed;
// roughly the entropy of standard prose/code typing.
const DefaultCodingEntropy = 4.0

// learningRate is the EMA weight of a new observation. Conservative on
// purpose so noisy sessions move the baseline slowly.
const learningRate = 0.05

// Observations outside this band are degenerate (sensor glitches, tiny
// samples) and must not move the baseline.
const (
	minLearnableEntropy = 1.0
	maxLearnableEntropy = 6.0
)

// The personalized threshold is the baseline minus a fixed margin, clamped so
// repeated adaptation can never push it into useless territory.
const (
	thresholdMargin = 1.5
	minThreshold    = 1.5
	maxThreshold    = 3.5
)

// Profile is the learned typing baseline for one user. Owned by the Store;
// mutate only through AdaptThreshold.
type Profile struct {
	AvgCodingEntropy float64   `json:"avg_coding_entropy"`
	LastUpdated      time.Time `json:"last_updated"`
}

// New returns a profile with the default baseline.
func New() *Profile {
	return &Profile{AvgCodingEntropy: DefaultCodingEntropy, LastUpdated: time.Now().UTC()}
}

// PersonalizedThreshold derives this user's gaming-detection entropy cutoff.
// The clamp is applied here, at read time: the stored baseline itself may
// drift outside the clamp band, the derived threshold never does.
func (p *Profile) PersonalizedThreshold() float64 {
	t := p.AvgCodingEntropy - thresholdMargin
	if t < minThreshold {
		return minThreshold
	}
	if t > maxThreshold {
		return maxThreshold
	}
	return t
}

// AdaptThreshold folds an observed entropy into the baseline via EMA.
// Observations outside [1.0, 6.0] are ignored. Returns true when the baseline
// changed; the caller is responsible for persisting afterward (the store does
// not auto-save on every adaptation).
func (p *Profile) AdaptThreshold(observed float64) bool {
	if observed < minLearnableEntropy || observed > maxLearnableEntropy {
		return false
	}
	p.AvgCodingEntropy = observed*learningRate + p.AvgCodingEntropy*(1.0-learningRate)
	p.LastUpdated = time.Now().UTC()
	return true
}
