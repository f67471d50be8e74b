package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/banupriyaust/ClothStore/internal/catalog"
	"github.com/banupriyaust/ClothStore/internal/config"
	"github.com/banupriyaust/ClothStore/internal/customers"
	"github.com/banupriyaust/ClothStore/internal/httpx"
	kafkax "github.com/banupriyaust/ClothStore/internal/kafka"
	"github.com/banupriyaust/ClothStore/internal/orders"
	"github.com/banupriyaust/ClothStore/internal/postgres"
	"github.com/banupriyaust/ClothStore/internal/redisx"
	"github.com/banupriyaust/ClothStore/internal/stats"
	"github.com/banupriyaust/ClothStore/internal/token"
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

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	cache := redisx.NewCache(rdb)

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024, logger)
	prod.Start(ctx)

	// Repos, services, auth
	orderRepo := &orders.Repo{DB: db, LockTimeout: cfg.LockTimeout}
	orderSvc := &orders.Service{Repo: orderRepo, Log: logger}
	custRepo := &customers.Repo{DB: db}
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpiry)
	auth := &httpx.Authenticator{Tokens: tokens, Customers: custRepo}
	validate := validator.New(validator.WithRequiredStructEnabled())

	router := httpx.NewRouter(logger)
	ch := &httpx.CatalogHandler{Products: &catalog.Repo{DB: db}, Cache: cache, Log: logger}
	ch.Register(router)
	uh := &httpx.UsersHandler{Repo: custRepo, Tokens: tokens, Validate: validate, Log: logger}
	uh.Register(router, auth)
	oh := &httpx.OrdersHandler{
		Svc:      orderSvc,
		History:  orderRepo,
		Producer: prod,
		Cache:    cache,
		Log:      logger,
		Service:  cfg.ServiceName,
	}
	oh.Register(router, auth)
	sh := &httpx.StatsHandler{Stats: &stats.Repo{DB: db}, Cache: cache, Log: logger}
	sh.Register(router, auth)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // close inbox -> flush & close writer
	cancel()
	prod.WaitClosed()
}
