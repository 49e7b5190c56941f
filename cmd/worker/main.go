// Worker consumes raw activity samples from Kafka, classifies them, and fans
// out: live WebSocket broadcast, downstream command topic, activity log.
// Set KAFKA_BROKERS and DATABASE_URL. REDIS_URL and CLASSIFIER_URL are optional.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"jiaa/data-service/internal/broadcast"
	"jiaa/data-service/internal/config"
	"jiaa/data-service/internal/db"
	"jiaa/data-service/internal/decision"
	denylistrepo "jiaa/data-service/internal/denylist/repository"
	denylistservice "jiaa/data-service/internal/denylist/service"
	"jiaa/data-service/internal/history"
	"jiaa/data-service/internal/logging"
	"jiaa/data-service/internal/pipeline"
	"jiaa/data-service/internal/profile"
	"jiaa/data-service/internal/server"
	"jiaa/data-service/internal/verify"
)

const titleRefreshInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.WithComponent("worker").WithError(err).Fatal("config")
	}
	logging.Init(cfg.Env)
	log := logging.WithComponent("worker")

	brokers := cfg.KafkaBrokersList()
	if len(brokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("postgres")
	}
	defer conn.Close()

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = profile.Dial(cfg.RedisURL)
		if err != nil {
			// Profiles fall back to in-memory defaults without Redis.
			log.WithError(err).Warn("redis unavailable, profiles are memory-only")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}
	profiles := profile.NewStore(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	denySvc := denylistservice.NewService(denylistrepo.NewPostgresRepository(conn))
	titles := denylistservice.NewTitleIndex(denySvc, []string(decision.DefaultGameTitles))
	go titles.RefreshLoop(ctx, titleRefreshInterval)

	var classifier verify.Classifier
	if cfg.ClassifierURL != "" {
		classifier = verify.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierAPIKey)
	}

	hub := broadcast.NewHub(0)
	publisher := pipeline.NewKafkaPublisher(brokers, cfg.CommandKafkaTopic)
	defer publisher.Close()

	records := history.NewWriter(history.NewPostgresRepository(conn), 0)

	orch := pipeline.New(pipeline.Deps{
		Engine:    decision.NewEngine(profiles, titles),
		Verifier:  verify.NewVerifier(classifier, cfg.VerifyTimeout()),
		Hub:       hub,
		Publisher: publisher,
		Records:   records,
		Reporter:  denySvc,
	})

	consumer := pipeline.NewConsumer(brokers, cfg.ActivityKafkaTopic, cfg.KafkaGroupID, orch)
	defer consumer.Close()

	app := server.NewWorkerApp(hub, map[string]server.Pinger{
		"postgres": server.PingerFunc(func(ctx context.Context) error { return conn.PingContext(ctx) }),
	})
	go func() {
		if err := app.Listen(cfg.WorkerHTTPAddr); err != nil {
			log.WithError(err).Fatal("http listen")
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down...")
		cancel()
	}()

	log.WithField("topic", cfg.ActivityKafkaTopic).WithField("group", cfg.KafkaGroupID).
		Info("consuming activity samples")
	consumer.Run(ctx)

	// The consumer loop has stopped; drain what is left and stop the HTTP app.
	records.Close()
	_ = app.Shutdown()
	log.Info("stopped")
}
