// Package service implements denylist workflows: report accumulation, admin
// review, and the active blacklist/whitelist views served to clients.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"jiaa/data-service/internal/denylist/domain"
	"jiaa/data-service/internal/denylist/repository"
	"jiaa/data-service/internal/logging"
)

// autoBlockReportCount is the report volume at which a still-pending item is
// already served to clients for blocking.
const autoBlockReportCount = 3

// ErrUnknownStatus is returned when a review request carries a status outside
// the known vocabulary.
var ErrUnknownStatus = errors.New("denylist: unknown status")

// Service owns denylist items. Construct once at startup and inject into the
// HTTP handler and the pipeline's reporter.
type Service struct {
	repo repository.Repository
}

// NewService returns a Service backed by repo.
func NewService(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Report records one gaming report for appName, creating a PENDING item on
// first report and incrementing the count afterwards.
func (s *Service) Report(ctx context.Context, appName string, isGame bool) (*domain.Item, error) {
	item, err := s.repo.Get(ctx, appName)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if item == nil {
		item = &domain.Item{
			AppName:        appName,
			IsGame:         isGame,
			Status:         domain.StatusPending,
			ReportCount:    1,
			LastReportedAt: now,
		}
	} else {
		item.ReportCount++
		item.LastReportedAt = now
	}

	if err := s.repo.Upsert(ctx, item); err != nil {
		return nil, err
	}
	logging.WithComponent("denylist").WithField("app_name", appName).
		WithField("report_count", item.ReportCount).Info("application reported")
	return item, nil
}

// ReportApplication is the pipeline-facing report entry point: same as
// Report, discarding the resulting item.
func (s *Service) ReportApplication(ctx context.Context, appName string, isGame bool) error {
	_, err := s.Report(ctx, appName, isGame)
	return err
}

// Review sets the review status of an existing item. Returns false when the
// item does not exist.
func (s *Service) Review(ctx context.Context, appName string, status domain.Status) (bool, error) {
	if !status.Valid() {
		return false, ErrUnknownStatus
	}
	return s.repo.UpdateStatus(ctx, appName, status)
}

// Remove deletes the item. Returns false when the item does not exist.
func (s *Service) Remove(ctx context.Context, appName string) (bool, error) {
	return s.repo.Delete(ctx, appName)
}

// All returns every item, for the admin view.
func (s *Service) All(ctx context.Context) ([]*domain.Item, error) {
	return s.repo.List(ctx)
}

// Active returns the items clients should block: approved games plus pending
// ones that crossed the auto-block report threshold.
func (s *Service) Active(ctx context.Context) ([]*domain.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Item, 0, len(items))
	for _, item := range items {
		if item.Status == domain.StatusApproved ||
			(item.Status == domain.StatusPending && item.ReportCount >= autoBlockReportCount) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Whitelisted returns all whitelisted items.
func (s *Service) Whitelisted(ctx context.Context) ([]*domain.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Item, 0, len(items))
	for _, item := range items {
		if item.Status == domain.StatusWhitelisted {
			out = append(out, item)
		}
	}
	return out, nil
}

// AddBlacklisted force-creates an approved game entry (manual admin add).
func (s *Service) AddBlacklisted(ctx context.Context, appName string) error {
	if _, err := s.Report(ctx, appName, true); err != nil {
		return err
	}
	_, err := s.repo.UpdateStatus(ctx, appName, domain.StatusApproved)
	return err
}

// AddWhitelisted force-creates a whitelisted entry.
func (s *Service) AddWhitelisted(ctx context.Context, appName string) error {
	if _, err := s.Report(ctx, appName, false); err != nil {
		return err
	}
	_, err := s.repo.UpdateStatus(ctx, appName, domain.StatusWhitelisted)
	return err
}

// ActiveGameTitles returns the lower-cased names of active game entries, for
// the decision engine's title matcher.
func (s *Service) ActiveGameTitles(ctx context.Context) ([]string, error) {
	items, err := s.Active(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.IsGame {
			out = append(out, strings.ToLower(item.AppName))
		}
	}
	return out, nil
}
