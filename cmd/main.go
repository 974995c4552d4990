package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"book_catalog_tgbot/config"
	"book_catalog_tgbot/data/db/postgres"
	redisClient "book_catalog_tgbot/data/redis"
	"book_catalog_tgbot/data/session"
	"book_catalog_tgbot/internal/externalApi/booksApi"
	"book_catalog_tgbot/internal/repository"
	"book_catalog_tgbot/internal/service/catalogService"
	"book_catalog_tgbot/internal/storage/s3"
	"book_catalog_tgbot/internal/tgbot"
	"book_catalog_tgbot/internal/transport/telegram"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	postgres.MustMigrate(cfg)

	postgresDb := postgres.NewPostgresClient(cfg)
	defer postgresDb.Close()

	postgresRepo := repository.NewPostgresRepo(postgresDb)

	redisClient := redisClient.MustInitRedis(ctx, cfg)
	defer redisClient.Close()

	redisSession := session.NewRedisSession(cfg, redisClient)

	booksApiClient := booksApi.New(cfg)

	imageStorage, err := s3.New(ctx, cfg)
	if err != nil {
		slog.Error("error while initializing s3 storage", slog.String("err", err.Error()))
		panic(err)
	}

	service := catalogService.New(cfg, booksApiClient, imageStorage, postgresRepo)

	tgController := telegram.NewController(cfg, service, redisSession)

	tgBot := tgbot.New(cfg, tgController, redisSession)

	tgBot.Start()
	defer tgBot.Stop()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	<-interrupt
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
