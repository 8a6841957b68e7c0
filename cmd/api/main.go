package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talently/internal/config"
	"talently/internal/database"
	"talently/internal/events"
	"talently/internal/lock"
	"talently/internal/pkg/jwt"
	"talently/internal/pkg/logger"
	"talently/internal/pkg/metrics"
	"talently/internal/pkg/obs"
	"talently/internal/pkg/response"
	"talently/internal/repository"
	"talently/internal/server"

	"github.com/redis/go-redis/v9"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.IsProduction())
	response.ShowDetails = cfg.IsDevelopment()

	shutdownTracer, err := obs.InitTracer(context.Background(), obs.TracerConfig{
		ServiceName: cfg.ServiceName,
		Version:     version,
		Environment: cfg.AppEnv,
		Endpoint:    cfg.OTELEndpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()
	if cfg.OTELEndpoint != "" {
		slog.Info("exporting traces", "endpoint", cfg.OTELEndpoint)
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}()

	if err := repository.AutoMigrate(db); err != nil {
		return err
	}

	tokens, err := jwt.New(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		return err
	}

	var locker lock.Locker = lock.NewLocal()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		locker = lock.NewRedis(client, cfg.LockTTL)
		slog.Info("using redis booking lock", "addr", cfg.RedisAddr)
	}

	var broker events.Publisher
	switch cfg.EventsBroker {
	case config.BrokerKafka:
		k := events.NewKafka(cfg.KafkaBrokers, cfg.EventsTopic)
		defer k.Close()
		broker = k
		slog.Info("publishing booking events to kafka", "topic", cfg.EventsTopic)
	case config.BrokerAMQP:
		a, err := events.NewAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		defer a.Close()
		broker = a
		slog.Info("publishing booking events to amqp", "exchange", cfg.AMQPExchange)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Deps{
		Config:  cfg,
		DB:      db,
		Tokens:  tokens,
		Locker:  locker,
		Broker:  broker,
		Metrics: metrics.New(),
	})
	return srv.Run(ctx)
}
