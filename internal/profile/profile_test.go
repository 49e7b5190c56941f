package profile

import (
	"context"
	"math"
	"testing"
)

func TestPersonalizedThreshold_Default(t *testing.T) {
	p := New()
	// 4.0 - 1.5 = 2.5, inside the clamp band.
	if got := p.PersonalizedThreshold(); got != 2.5 {
		t.Errorf("PersonalizedThreshold = %v, want 2.5", got)
	}
}

func TestPersonalizedThreshold_ClampNeverLeavesBand(t *testing.T) {
	for _, baseline := range []float64{-10, 0, 1.0, 2.9, 3.0, 4.0, 5.0, 6.0, 50} {
		p := &Profile{AvgCodingEntropy: baseline}
		got := p.PersonalizedThreshold()
		if got < 1.5 || got > 3.5 {
			t.Errorf("baseline %v: threshold %v outside [1.5, 3.5]", baseline, got)
		}
	}
}

func TestPersonalizedThreshold_ClampUnderRepeatedAdaptation(t *testing.T) {
	p := New()
	// Drive the baseline to the learnable extremes in both directions.
	for i := 0; i < 1000; i++ {
		p.AdaptThreshold(6.0)
	}
	if got := p.PersonalizedThreshold(); got != 3.5 {
		t.Errorf("after high adaptation: threshold = %v, want clamped 3.5", got)
	}
	for i := 0; i < 1000; i++ {
		p.AdaptThreshold(1.0)
	}
	if got := p.PersonalizedThreshold(); got != 1.5 {
		t.Errorf("after low adaptation: threshold = %v, want clamped 1.5", got)
	}
}

func TestAdaptThreshold_GuardBand(t *testing.T) {
	for _, observed := range []float64{0.99, 6.01, -1, 0, 100} {
		p := New()
		if p.AdaptThreshold(observed) {
			t.Errorf("AdaptThreshold(%v) should be a no-op", observed)
		}
		if p.AvgCodingEntropy != DefaultCodingEntropy {
			t.Errorf("AdaptThreshold(%v) mutated baseline to %v", observed, p.AvgCodingEntropy)
		}
	}
}

func TestAdaptThreshold_EMAConvergesMonotonically(t *testing.T) {
	p := New()
	target := 2.0
	prevDist := math.Abs(p.AvgCodingEntropy - target)
	for i := 0; i < 200; i++ {
		if !p.AdaptThreshold(target) {
			t.Fatal("AdaptThreshold rejected an in-band observation")
		}
		dist := math.Abs(p.AvgCodingEntropy - target)
		if dist > prevDist {
			t.Fatalf("iteration %d: baseline moved away from observation (%v > %v)", i, dist, prevDist)
		}
		prevDist = dist
	}
	if prevDist > 0.001 {
		t.Errorf("baseline did not converge: still %v away from %v", prevDist, target)
	}
}

func TestAdaptThreshold_SingleStep(t *testing.T) {
	p := New()
	p.AdaptThreshold(2.0)
	want := 2.0*0.05 + 4.0*0.95
	if math.Abs(p.AvgCodingEntropy-want) > 1e-9 {
		t.Errorf("AvgCodingEntropy = %v, want %v", p.AvgCodingEntropy, want)
	}
	if p.LastUpdated.IsZero() {
		t.Error("LastUpdated not set")
	}
}

func TestStore_MemoryOnlyGetCreatesDefault(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	p := s.Get(ctx, "user-1")
	if p == nil {
		t.Fatal("Get returned nil")
	}
	if p.AvgCodingEntropy != DefaultCodingEntropy {
		t.Errorf("AvgCodingEntropy = %v, want default", p.AvgCodingEntropy)
	}

	// Same instance on repeated lookup.
	p.AdaptThreshold(3.0)
	if again := s.Get(ctx, "user-1"); again.AvgCodingEntropy != p.AvgCodingEntropy {
		t.Error("Get did not return the cached instance")
	}
}

func TestStore_SaveWithoutRedisIsNoop(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()
	s.Get(ctx, "user-1")
	// Must not panic or block.
	s.Save(ctx, "user-1")
	s.Save(ctx, "never-seen")
}
