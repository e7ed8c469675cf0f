package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aironlab/backend/internal/config"
	"github.com/aironlab/backend/internal/contact"
	"github.com/aironlab/backend/internal/db"
	"github.com/aironlab/backend/internal/events"
	"github.com/aironlab/backend/internal/handlers"
	"github.com/aironlab/backend/internal/mail"
	"github.com/aironlab/backend/internal/posts"
	"github.com/aironlab/backend/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	pool, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("database init failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	var pub events.Publisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		rmq, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL)
		if err != nil {
			logger.Warn("rabbitmq unavailable, events disabled", "error", err)
		} else {
			defer rmq.Close()
			pub = rmq
		}
	}

	var store storage.Storage = storage.Noop{}
	if cfg.S3Bucket != "" {
		client, err := storage.NewS3Client(context.Background(), cfg.AWSRegion, cfg.S3Endpoint)
		if err != nil {
			logger.Error("s3 client init failed", "error", err)
			os.Exit(1)
		}
		store = storage.NewS3Storage(client, cfg.S3Bucket)
	}

	var mailer mail.Mailer = mail.Noop{}
	if cfg.SMTPUser != "" && cfg.SMTPPass != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	} else {
		logger.Info("smtp not configured, notification emails disabled")
	}

	postsSvc := posts.NewService(
		posts.NewPostgresRepository(pool),
		store, pub, logger,
		cfg.S3Bucket, cfg.AWSRegion, cfg.AssetBaseURL,
	)
	contactSvc := contact.NewService(
		contact.NewPostgresRepository(pool),
		pub, mailer, logger,
		cfg.SMTPUser, cfg.AdminEmail, cfg.SendConfirmation,
	)

	router := handlers.NewRouter(handlers.RouterDeps{
		Posts:   handlers.NewPostsHandler(postsSvc, logger, cfg.IsProduction()),
		Contact: handlers.NewContactHandler(contactSvc, logger, cfg.IsProduction()),
		Health: handlers.Health(&handlers.HealthDeps{
			DB:          pool,
			Storage:     store,
			S3Bucket:    cfg.S3Bucket,
			RabbitMQURL: cfg.RabbitMQURL,
		}),
		Logger: logger,
		APIKey: cfg.APIKey,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.Port, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
