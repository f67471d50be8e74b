package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/banupriyaust/ClothStore/internal/catalog"
	"github.com/banupriyaust/ClothStore/internal/config"
	kafkax "github.com/banupriyaust/ClothStore/internal/kafka"
	"github.com/banupriyaust/ClothStore/internal/orders"
	"github.com/banupriyaust/ClothStore/internal/postgres"
	"github.com/banupriyaust/ClothStore/internal/redisx"
	"github.com/banupriyaust/ClothStore/internal/stockwatch"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &stockwatch.Service{
		Products:  &catalog.Repo{DB: db},
		Cache:     redisx.NewCache(rdb),
		Threshold: cfg.LowStockThreshold,
		Log:       logger,
		Name:      "stockwatch",
	}

	group := getenv("STOCKWATCH_GROUP", "stockwatch")
	workers := getenvInt("STOCKWATCH_WORKERS", 4)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderPlaced, workers, logger)

	done := make(chan struct{})
	go func() {
		defer close(done)
		logger.Info("stockwatch consumer started",
			zap.String("group", group),
			zap.String("topic", orders.TopicOrderPlaced),
			zap.Int("workers", workers),
		)
		if err := cons.Start(ctx, svc.HandleOrderPlaced); err != nil {
			logger.Error("consumer exit", zap.Error(err))
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down consumer")
	cancel()
	<-done
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
