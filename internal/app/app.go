package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"telegram-report-bot/internal/bot"
	"telegram-report-bot/internal/config"
	"telegram-report-bot/internal/db"
	"telegram-report-bot/internal/exporter"
	"telegram-report-bot/internal/handlers"
	"telegram-report-bot/internal/ingest"
	"telegram-report-bot/internal/metrics"
	"telegram-report-bot/internal/repository"
	"telegram-report-bot/internal/scheduler"
	"telegram-report-bot/internal/server"
)

// Run initializes and starts the application
func Run() error {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	logrus.Info("Starting Telegram Report Bot")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	loc, err := cfg.Report.Location()
	if err != nil {
		return err
	}

	dbConn, err := db.Init(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	m := metrics.NewMetrics()
	store := repository.New(dbConn)
	ing := ingest.NewService(store, loc, m)

	b, err := bot.New(&cfg.Telegram, ing)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	// The bot both triggers the pipeline (/sendnow) and delivers its
	// output, so the pipeline is wired in after construction.
	pipe := exporter.New(store, b, loc, m)
	b.AttachExporter(pipe)

	sched := scheduler.NewScheduler(&cfg.Report, loc, pipe)

	h := handlers.NewHandlers(dbConn, store, sched, pipe)
	router := server.SetupRouter(h)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	b.Start()

	go func() {
		logrus.Infof("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sched.Stop(); err != nil {
		logrus.Errorf("Failed to stop scheduler: %v", err)
	}
	sched.Wait()

	b.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("HTTP server shutdown error: %v", err)
	}

	logrus.Info("Stopped gracefully")
	return nil
}
