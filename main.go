package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cardroom/database" // PostgreSQL and Redis setup, room and user persistence
	"cardroom/handlers" // HTTP routes
	"cardroom/utils"    // logger and cron jobs
)

func main() {
	logger, err := utils.InitLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := database.LoadDotEnv(".env"); err != nil {
		logger.Warn("failed to load .env", zap.Error(err))
	}
	config, err := database.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db, err := database.Open(config, logger)
	if err != nil {
		logger.Fatal("failed to initialise database", zap.Error(err))
	}
	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	store := database.NewStore(db)
	defer store.Close()

	rdb, err := database.InitRedis(config, logger)
	if err != nil {
		logger.Fatal("failed to initialise Redis", zap.Error(err))
	}
	defer rdb.Close()
	ready := database.NewReadyStore(rdb, time.Duration(config.ReadyTTLMinutes)*time.Minute)

	cleaner, err := utils.CronCleaner(store, ready, logger, time.Duration(config.RoomTTLHours)*time.Hour)
	if err != nil {
		logger.Fatal("failed to schedule cleanup", zap.Error(err))
	}
	defer cleaner.Stop()

	server := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handlers.NewRouter(store, ready, logger, config),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
