package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"printit-bot/internal/bot"
	"printit-bot/internal/config"
	"printit-bot/internal/orders"
	"printit-bot/internal/pricing"
	"printit-bot/internal/storage"
	"printit-bot/pkg/logger"
	"printit-bot/pkg/redis"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	redisClient := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	pgStorage, err := storage.NewPostgresStorage(ctx, cfg.Database, redisClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init PostgreSQL storage", zap.Error(err))
	}
	defer pgStorage.Close()

	if err := storage.RunMigrations(ctx, pgStorage.DB(), zapLogger); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	table, err := pricing.LoadTable(cfg.Pricing.TablePath)
	if err != nil {
		zapLogger.Fatal("Failed to load price table", zap.Error(err))
	}

	mode := pricing.Lenient
	if cfg.Pricing.Strict {
		mode = pricing.Strict
	}

	service := orders.NewService(pgStorage, orders.Settings{
		Table:           table,
		Mode:            mode,
		RedeemCost:      cfg.Rewards.RedeemCost,
		AdminIDs:        cfg.AdminIDs,
		OrdersPerWindow: cfg.Limits.OrdersPerWindow,
		Window:          cfg.Limits.Window,
	}, zapLogger)

	tgBot, err := bot.New(cfg, service, redisClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create bot", zap.Error(err))
	}

	if err := tgBot.Start(ctx); err != nil {
		zapLogger.Fatal("Bot stopped with error", zap.Error(err))
	}

	zapLogger.Info("Bot shutdown gracefully")
}
