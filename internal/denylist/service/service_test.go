package service

import (
	"context"
	"errors"
	"testing"

	"jiaa/data-service/internal/denylist/domain"
)

// memRepo implements repository.Repository in memory for tests.
type memRepo struct {
	items map[string]*domain.Item
	err   error
}

func newMemRepo() *memRepo {
	return &memRepo{items: make(map[string]*domain.Item)}
}

func (m *memRepo) Get(ctx context.Context, appName string) (*domain.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[appName]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (m *memRepo) Upsert(ctx context.Context, item *domain.Item) error {
	if m.err != nil {
		return m.err
	}
	cp := *item
	m.items[item.AppName] = &cp
	return nil
}

func (m *memRepo) List(ctx context.Context) ([]*domain.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Item, 0, len(m.items))
	for _, item := range m.items {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memRepo) UpdateStatus(ctx context.Context, appName string, status domain.Status) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	item, ok := m.items[appName]
	if !ok {
		return false, nil
	}
	item.Status = status
	return true, nil
}

func (m *memRepo) Delete(ctx context.Context, appName string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.items[appName]; !ok {
		return false, nil
	}
	delete(m.items, appName)
	return true, nil
}

func TestReport_CreatesPendingThenIncrements(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	item, err := svc.Report(ctx, "SomeGame.exe", true)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if item.Status != domain.StatusPending || item.ReportCount != 1 {
		t.Errorf("first report: status=%v count=%d, want PENDING/1", item.Status, item.ReportCount)
	}

	item, err = svc.Report(ctx, "SomeGame.exe", true)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if item.ReportCount != 2 {
		t.Errorf("second report: count=%d, want 2", item.ReportCount)
	}
}

func TestActive_ApprovedAndHeavilyReported(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for name, item := range map[string]*domain.Item{
		"approved":    {AppName: "approved", IsGame: true, Status: domain.StatusApproved, ReportCount: 1},
		"pending-hot": {AppName: "pending-hot", IsGame: true, Status: domain.StatusPending, ReportCount: 3},
		"pending-new": {AppName: "pending-new", IsGame: true, Status: domain.StatusPending, ReportCount: 2},
		"rejected":    {AppName: "rejected", IsGame: true, Status: domain.StatusRejected, ReportCount: 9},
		"whitelisted": {AppName: "whitelisted", IsGame: false, Status: domain.StatusWhitelisted, ReportCount: 1},
	} {
		repo.items[name] = item
	}

	active, err := svc.Active(ctx)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	got := map[string]bool{}
	for _, item := range active {
		got[item.AppName] = true
	}
	if !got["approved"] || !got["pending-hot"] {
		t.Errorf("Active missing expected items: %v", got)
	}
	if got["pending-new"] || got["rejected"] || got["whitelisted"] {
		t.Errorf("Active contains excluded items: %v", got)
	}
}

func TestReview_UnknownStatus(t *testing.T) {
	svc := NewService(newMemRepo())
	if _, err := svc.Review(context.Background(), "x", domain.Status("BOGUS")); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("err = %v, want ErrUnknownStatus", err)
	}
}

func TestReview_MissingItem(t *testing.T) {
	svc := NewService(newMemRepo())
	ok, err := svc.Review(context.Background(), "missing", domain.StatusApproved)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if ok {
		t.Error("Review reported success for missing item")
	}
}

func TestAddBlacklisted_ReportsAndApproves(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.AddBlacklisted(ctx, "ManualGame"); err != nil {
		t.Fatalf("AddBlacklisted: %v", err)
	}
	item := repo.items["ManualGame"]
	if item == nil || item.Status != domain.StatusApproved || !item.IsGame {
		t.Errorf("item = %+v, want approved game", item)
	}
}

func TestAddWhitelisted(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.AddWhitelisted(ctx, "Figma"); err != nil {
		t.Fatalf("AddWhitelisted: %v", err)
	}
	if item := repo.items["Figma"]; item == nil || item.Status != domain.StatusWhitelisted {
		t.Errorf("item = %+v, want whitelisted", item)
	}
}

func TestActiveGameTitles_LowercasedGamesOnly(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	repo.items["CoolShooter"] = &domain.Item{AppName: "CoolShooter", IsGame: true, Status: domain.StatusApproved}
	repo.items["NotAGame"] = &domain.Item{AppName: "NotAGame", IsGame: false, Status: domain.StatusApproved}

	titles, err := svc.ActiveGameTitles(context.Background())
	if err != nil {
		t.Fatalf("ActiveGameTitles: %v", err)
	}
	if len(titles) != 1 || titles[0] != "coolshooter" {
		t.Errorf("titles = %v, want [coolshooter]", titles)
	}
}

func TestTitleIndex_StaticAndDynamic(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	repo.items["CustomRPG"] = &domain.Item{AppName: "CustomRPG", IsGame: true, Status: domain.StatusApproved}

	idx := NewTitleIndex(svc, []string{"minecraft"})
	if !idx.MatchesGameTitle("Minecraft Launcher") {
		t.Error("static entry did not match")
	}
	if idx.MatchesGameTitle("CustomRPG window") {
		t.Error("dynamic entry matched before Refresh")
	}

	idx.Refresh(context.Background())
	if !idx.MatchesGameTitle("CustomRPG window") {
		t.Error("dynamic entry did not match after Refresh")
	}
	if idx.MatchesGameTitle("") {
		t.Error("empty title matched")
	}
}
