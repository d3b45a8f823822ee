package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"thesis-hand/config"
	"thesis-hand/providers"
	"thesis-hand/providers/europepmc"
	"thesis-hand/routes"
	"thesis-hand/services"
	"thesis-hand/storage"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}
	if !cfg.IsDesktop {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Datenbank
	db, err := storage.Open(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.String("driver", cfg.Driver()), zap.Error(err))
	}
	logging.Info("Successfully connected to database.", zap.String("driver", cfg.Driver()))

	logging.Info("Running database auto-migration...")
	if err := storage.Migrate(db); err != nil {
		logging.Fatal("Database migration failed", zap.Error(err))
	}
	store := storage.NewStore(db)

	// KI-Provider, ohne Schlüssel laufen alle übrigen Funktionen weiter
	provider, err := providers.New(ctx, providers.ConfigFrom(cfg), logging)
	switch {
	case errors.Is(err, providers.ErrNotConfigured):
		logging.Warn("AI provider credentials missing, AI features are disabled", zap.String("provider", cfg.AIProvider))
		provider = nil
	case err != nil:
		logging.Fatal("AI provider setup failed", zap.Error(err))
	default:
		logging.Info("AI provider loaded", zap.String("provider", provider.Name()))
	}

	// Optionales Objekt-Storage für Originaldateien
	var objects storage.ObjectStore
	s3Store, err := storage.NewS3ObjectStore(ctx, cfg)
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}
	if s3Store != nil {
		objects = s3Store
		logging.Info("Archiving uploads to object storage", zap.String("bucket", cfg.S3Bucket))
	}

	var literature routes.LiteratureSearcher
	if cfg.LiteratureSearch {
		literature = europepmc.NewClient(cfg.LiteratureSearchURL, logging)
	}

	router := routes.NewRouter(&routes.Deps{
		Config:     cfg,
		Store:      store,
		Auth:       services.NewAuthService(store, cfg.SessionTTL, logging),
		Assistant:  services.NewAssistant(provider, store, logging, cfg.AIDocContextChar),
		Extractor:  services.NewDocumentExtractor(logging),
		Objects:    objects,
		Literature: literature,
		Logger:     logging,
	})

	// Abgelaufene Sitzungen und Freigaben aufräumen
	cronScheduler := cron.New()
	if _, err := cronScheduler.AddFunc(cfg.CleanupSchedule, func() {
		sessions, shares, err := store.PurgeExpired(context.Background(), time.Now())
		if err != nil {
			logging.Error("Cleanup job failed", zap.Error(err))
			return
		}
		routes.SessionsPurgedCounter.Add(float64(sessions))
		logging.Info("Cleanup job completed", zap.Int64("sessions", sessions), zap.Int64("shares", shares))
	}); err != nil {
		logging.Fatal("Invalid CLEANUP_SCHEDULE", zap.String("schedule", cfg.CleanupSchedule), zap.Error(err))
	}
	cronScheduler.Start()
	defer cronScheduler.Stop()

	srv := &http.Server{
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		// KI-Aufrufe laufen synchron im Request
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	ln, err := net.Listen("tcp", ":"+cfg.HTTPPort)
	if err != nil {
		logging.Fatal("Failed to listen", zap.String("port", cfg.HTTPPort), zap.Error(err))
	}
	// Die Desktop-Hülle wartet auf genau diese Meldung
	logging.Info("serving on port "+cfg.HTTPPort, zap.Bool("desktop", cfg.IsDesktop))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to run server", zap.Error(err))
		}
	case <-ctx.Done():
		logging.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error("Graceful shutdown failed", zap.Error(err))
		}
	}
}
