// Package pipeline orchestrates ingestion: it turns the raw activity stream
// into a deduplicated stream of state transitions fanned out to the live
// broadcast, the downstream command topic, and the activity log.
package pipeline

import (
	"context"
	"time"

	"jiaa/data-service/internal/activity"
	"jiaa/data-service/internal/broadcast"
	"jiaa/data-service/internal/decision"
	"jiaa/data-service/internal/history"
	"jiaa/data-service/internal/logging"
	"jiaa/data-service/internal/metrics"
	"jiaa/data-service/internal/scoring"
	"jiaa/data-service/internal/verify"
)

// reportTimeout bounds the fire-and-forget denylist report.
const reportTimeout = 5 * time.Second

// RecordSink receives one activity record per processed message.
type RecordSink interface {
	Write(rec *history.Record)
}

// Deps holds the orchestrator's collaborators. Publisher, Records, and
// Reporter may be nil; the corresponding fan-out step is skipped.
type Deps struct {
	Engine    *decision.Engine
	Verifier  *verify.Verifier
	Hub       *broadcast.Hub
	Publisher Publisher
	Records   RecordSink
	Reporter  Reporter
}

// Orchestrator processes one message at a time, end-to-end. It is not safe
// for concurrent Process calls: the single-consumer loop is what guarantees
// ordered state transitions per user.
type Orchestrator struct {
	deps Deps

	// lastForwarded tracks the last state published downstream per user, so
	// repeated identical classifications are forwarded only once. EMERGENCY
	// bypasses this check.
	lastForwarded map[string]activity.State

	now func() time.Time
}

// New returns an orchestrator with no forwarding history.
func New(deps Deps) *Orchestrator {
	return &Orchestrator{
		deps:          deps,
		lastForwarded: make(map[string]activity.State),
		now:           time.Now,
	}
}

// Process runs the full pipeline for one raw message. Parse failures are
// logged and returned; every other failure is absorbed (fail-open) so the
// consumer loop keeps running regardless of collaborator health.
func (o *Orchestrator) Process(ctx context.Context, raw []byte) error {
	sample, err := activity.ParseSample(raw, o.now())
	if err != nil {
		metrics.ParseFailures.Inc()
		logging.WithComponent("pipeline").WithError(err).Warn("dropping unparseable message")
		return err
	}

	score := scoring.Score(sample)
	state := o.deps.Engine.Decide(ctx, score, sample)

	if state == activity.StateGaming && verify.ShouldVerify(sample.WindowTitle) {
		switch o.deps.Verifier.Verify(ctx, sample.WindowTitle) {
		case verify.VerdictSafe:
			metrics.VerifyOverrides.Inc()
			logging.WithComponent("pipeline").WithField("user_id", sample.UserID).
				WithField("window_title", sample.WindowTitle).Info("gaming verdict cleared by verification")
			state = activity.StateNormal
		case verify.VerdictConfirm:
			o.reportAsync(sample.WindowTitle)
		}
	}

	o.broadcast(score, state)
	o.forward(ctx, sample, score, state)
	o.persist(sample, score, state)

	metrics.MessagesProcessed.Inc()
	metrics.Classifications.WithLabelValues(state.String()).Inc()

	logging.WithComponent("pipeline").WithField("user_id", sample.UserID).
		WithField("score", score).WithField("state", state.String()).Debug("processed sample")
	return nil
}

// broadcast emits the live update. Always, every message, no deduplication.
func (o *Orchestrator) broadcast(score int, state activity.State) {
	if o.deps.Hub == nil {
		return
	}
	o.deps.Hub.Publish(broadcast.Update{
		CurrentScore: score,
		State:        state.String(),
		FeedbackMsg:  state.Feedback(),
		Timestamp:    o.now().UnixMilli(),
	})
}

// forward publishes the downstream command when the state changed for this
// user, or unconditionally for EMERGENCY so safety-critical signals defeat
// the debounce. A failed publish is not retried and does not roll back the
// forwarding state: delivery is at-most-once by design.
func (o *Orchestrator) forward(ctx context.Context, sample *activity.Sample, score int, state activity.State) {
	if o.deps.Publisher == nil {
		return
	}
	last, seen := o.lastForwarded[sample.UserID]
	if seen && last == state && state != activity.StateEmergency {
		return
	}

	cmd := &Command{
		ClientID:  sample.UserID,
		State:     state.CommandState(),
		Payload:   commandPayload(score),
		Priority:  state.Priority(),
		Timestamp: o.now().UnixMilli(),
	}
	if err := o.deps.Publisher.Publish(ctx, cmd); err != nil {
		logging.WithComponent("pipeline").WithError(err).WithField("user_id", sample.UserID).
			Warn("downstream publish failed")
	}
	metrics.DownstreamPublishes.Inc()
	o.lastForwarded[sample.UserID] = state
}

// persist queues one record for the activity log. Always, unconditionally.
func (o *Orchestrator) persist(sample *activity.Sample, score int, state activity.State) {
	if o.deps.Records == nil {
		return
	}
	o.deps.Records.Write(&history.Record{
		UserID:         sample.UserID,
		Category:       state.Category(),
		State:          state.String(),
		Score:          score,
		MouseDistance:  sample.MouseDistance,
		KeystrokeCount: sample.KeystrokeCount,
		ClickCount:     sample.ClickCount,
		Entropy:        sample.KeyboardEntropy,
		ActionDetail:   sample.WindowTitle,
		CreatedAt:      sample.Timestamp,
	})
}

// reportAsync files the confirmed gaming title with the denylist without
// blocking the pipeline. Uses a background context so in-flight reports
// survive message-level cancellation.
func (o *Orchestrator) reportAsync(windowTitle string) {
	if o.deps.Reporter == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		if err := o.deps.Reporter.ReportApplication(ctx, windowTitle, true); err != nil {
			logging.WithComponent("pipeline").WithError(err).WithField("app_name", windowTitle).
				Warn("denylist report failed")
		}
	}()
}
