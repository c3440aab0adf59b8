package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant/cmd"
	"restaurant/internal/adapters/out/messaging"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/pkg/telemetry"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: configs.ServiceName,
		Endpoint:    configs.OTLPEndpoint,
		Insecure:    configs.OTLPInsecure,
	}, logger)

	gormDB := mustGormOpen(configs.DSN())
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	senders, err := messaging.NewSenders(configs.MessagingProviders(), logger)
	if err != nil {
		log.Fatalf("failed to start message providers: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, senders.ByChannel(), logger)

	orchestrator, err := app.CreateOrchestrator()
	if err != nil {
		log.Fatalf("failed to create orchestrator: %v", err)
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("failed to create jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}

	router, err := app.CreateRouter(orchestrator)
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	go func() {
		logger.Info("http server listening", "port", configs.HTTPPort)
		if err := router.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = router.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
	jobManager.StopAll()
	orchestrator.Wait()

	if err = senders.Close(); err != nil {
		logger.Error("failed to close message providers", "error", err)
	}
	if err = shutdownTracing(shutdownCtx); err != nil {
		logger.Error("failed to flush traces", "error", err)
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
}

func getConfigs() cmd.Config {
	// .env is optional; real deployments pass the environment directly.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return configs
}

func mustGormOpen(dsn string) *gorm.DB {
	gormDB, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("connection to postgres through gorm failed: %v", err)
	}
	return gormDB
}
