// seed inserts a starter set of denylist entries for local testing.
// Idempotent: skips any app name that already exists.
package main

import (
	"context"
	"log"
	"time"

	"jiaa/data-service/internal/config"
	"jiaa/data-service/internal/db"
	"jiaa/data-service/internal/denylist/domain"
	"jiaa/data-service/internal/denylist/repository"
)

var seedGames = []string{
	"Minecraft",
	"League of Legends",
	"Fortnite",
	"Valorant",
	"Roblox",
}

var seedWhitelisted = []string{
	"Visual Studio Code",
	"IntelliJ IDEA",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	repo := repository.NewPostgresRepository(conn)
	ctx := context.Background()
	now := time.Now().UTC()

	seeded := 0
	for _, name := range seedGames {
		if ok, err := seedItem(ctx, repo, &domain.Item{
			AppName:        name,
			IsGame:         true,
			Status:         domain.StatusApproved,
			ReportCount:    1,
			LastReportedAt: now,
		}); err != nil {
			log.Fatalf("seed %s: %v", name, err)
		} else if ok {
			seeded++
		}
	}
	for _, name := range seedWhitelisted {
		if ok, err := seedItem(ctx, repo, &domain.Item{
			AppName:        name,
			IsGame:         false,
			Status:         domain.StatusWhitelisted,
			ReportCount:    1,
			LastReportedAt: now,
		}); err != nil {
			log.Fatalf("seed %s: %v", name, err)
		} else if ok {
			seeded++
		}
	}

	log.Printf("Seed completed: %d new entries.", seeded)
}

// seedItem inserts the item unless it already exists. Returns true when inserted.
func seedItem(ctx context.Context, repo repository.Repository, item *domain.Item) (bool, error) {
	existing, err := repo.Get(ctx, item.AppName)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	return true, repo.Upsert(ctx, item)
}
