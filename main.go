package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/export"
	server "github.com/mauv0809/courtside/internal/http"
	"github.com/mauv0809/courtside/internal/library"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier/slack"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/remote"
	"github.com/mauv0809/courtside/internal/session"
	"github.com/mauv0809/courtside/internal/shotchart"
	"github.com/mauv0809/courtside/internal/storage"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown log level, keeping info", "level", cfg.LogLevel)
	}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := storage.New(db)
	counters := metrics.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	sess := session.New(store, metricsSvc, session.Options{
		Format:       cfg.Game.Format,
		PeriodLength: cfg.Game.PeriodLength,
	})
	if err := sess.Restore(); err != nil {
		log.Fatalf("Failed to restore game in progress: %s", err)
	}
	go sess.RunClock(ctx)

	local := library.NewLocalCache(store)
	lib := library.New(local, metricsSvc)
	if _, err := lib.Refresh(); err != nil {
		log.Error("Failed to load local games", "error", err)
	}

	deps := processor.Deps{
		Session:   sess,
		Local:     local,
		Library:   lib,
		Settings:  store,
		Metrics:   metricsSvc,
		Webhook:   export.NewWebhook(&http.Client{Timeout: 15 * time.Second}, shotchart.Options{}),
		Counters:  counters,
		ExportURL: cfg.ExportURL,
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		remoteStore := remote.NewRedis(rdb, cfg.UserID)
		deps.Remote = remoteStore
		go lib.Watch(ctx, remoteStore)
	} else {
		log.Info("No REDIS_ADDR set, games are kept locally only")
	}

	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		deps.Notifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, cfg.Slack.DryRun)
	}

	if cfg.ProjectID != "" {
		ps, err := pubsub.New(ctx, cfg.ProjectID)
		if err != nil {
			log.Error("Failed to create pubsub client, events are disabled", "error", err)
		} else {
			deps.PubSub = ps
			defer ps.Close()
		}
	}

	proc := processor.New(deps)

	s := server.NewServer(
		sess,
		lib,
		proc,
		store,
		metricsSvc,
		metricsHandler,
		counters,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)
		cancel()

		// Create a context with a timeout for the shutdown.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Waiting for background saves to finish")
	proc.Wait()
	log.Info("Server process shutting down")
}
