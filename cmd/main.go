/**
 * @description
 * Entry point for the quote service.
 */
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/weblifystudio/quote-service/internal/api"
	"github.com/weblifystudio/quote-service/internal/app"
	"github.com/weblifystudio/quote-service/internal/config"
	"github.com/weblifystudio/quote-service/internal/pdf"
	"github.com/weblifystudio/quote-service/internal/session"
	"github.com/weblifystudio/quote-service/internal/store"
	"github.com/weblifystudio/quote-service/pkg/mailerclient"
	quoterabbit "github.com/weblifystudio/quote-service/pkg/rabbitmq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	pgConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Error("unable to parse database URL", "error", err)
		os.Exit(1)
	}
	pgConfig.MaxConns = 20
	pgConfig.MaxConnLifetime = 30 * time.Minute
	pgConfig.MaxConnIdleTime = 5 * time.Minute
	pgConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(ctx, pgConfig)
	if err != nil {
		logger.Error("unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	logger.Info("database connection established")

	repository := store.NewRepository(dbpool)
	if err := repository.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	var mailer app.MailerClient = mailerclient.Fallback{}
	if cfg.MailerAPIKey != "" {
		mailer = mailerclient.NewClient(cfg.MailerBaseURL, cfg.MailerAPIKey, cfg.MailerListID,
			cfg.MailerFromName, cfg.MailerFromEmail)
	} else {
		logger.Warn("no mailer API key configured, using log-only mailer")
	}

	var publisher app.EventPublisher = &quoterabbit.EventProducerFallback{}
	if cfg.RabbitMQURL != "" {
		if producer, err := quoterabbit.NewEventProducer(cfg.RabbitMQURL); err == nil {
			publisher = producer
			defer producer.Close()
		} else {
			logger.Warn("failed to connect to RabbitMQ, using fallback publisher", "error", err)
		}
	}

	sessions := session.NewMemoryStore(time.Duration(cfg.SessionTTLHours) * time.Hour)
	renderer := pdf.NewRenderer(cfg.MailerFromName)

	service := app.NewService(repository, mailer, publisher, renderer, cfg.AdminEmail, cfg.AdminPasswordHash)
	handler := api.NewHandler(service, sessions)
	router := api.NewRouter(handler, sessions)

	jobs := app.NewJobs(sessions, repository, mailer, logger)
	scheduler := app.NewScheduler(jobs, logger, cfg)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-sigCh
	logger.Info("shutdown signal received, gracefully shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	<-scheduler.Stop().Done()

	logger.Info("server stopped")
}
