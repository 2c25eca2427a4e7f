package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/resortbooking/config"
	"github.com/Domenick1991/resortbooking/internal/bootstrap"
	"github.com/Domenick1991/resortbooking/internal/cache"
	"github.com/Domenick1991/resortbooking/internal/kafka"
	"github.com/Domenick1991/resortbooking/internal/logging"
	"github.com/Domenick1991/resortbooking/internal/metrics"
	"github.com/Domenick1991/resortbooking/internal/service/catalog"
	"github.com/Domenick1991/resortbooking/internal/service/wizard"
	"github.com/Domenick1991/resortbooking/internal/session"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wizardCfg := wizard.Config{
		Resort:             cfg.Resort,
		Location:           loc,
		SubmitDelay:        cfg.Booking.SubmitDelay(),
		ReturnURL:          cfg.HTTP.ReturnURL,
		ConfirmationsTopic: cfg.Kafka.ConfirmationsTopic,
		NotificationsTopic: cfg.Kafka.NotificationsTopic,
	}
	opts := []session.Option{
		session.WithIdleTTL(cfg.Booking.SessionIdleTTL()),
		session.WithLogger(logger),
		session.WithMetrics(metrics.NewWizardMetrics(prometheus.DefaultRegisterer)),
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		redisCache = cache.NewRedisCache(cfg.Redis, cfg.Booking.SessionIdleTTL())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Fatalf("connect redis: %v", err)
		}
		opts = append(opts, session.WithStore(redisCache))
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer producer.Close()
		opts = append(opts, session.WithPublisher(producer))
	}

	registry := session.NewRegistry(wizardCfg, opts...)
	defer registry.Close()
	go registry.RunSweeper(ctx, cfg.Worker.SessionSweepInterval())

	deps := bootstrap.Deps{
		Sessions: registry,
		Catalog:  catalog.NewDefaultCatalogService(cfg.Resort),
		Ready: func(ctx context.Context) error {
			if redisCache == nil {
				return nil
			}
			return redisCache.Ping(ctx)
		},
	}

	logger.Info("starting resort booking service", "http", cfg.HTTP.Address, "grpc", cfg.GRPC.Address)
	if err := bootstrap.Run(ctx, cfg, deps); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
