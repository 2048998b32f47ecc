package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"foodcart/configs"
	"foodcart/pkg/events"
	"foodcart/pkg/lock"
	"foodcart/pkg/logging"
	"foodcart/pkg/metrics"
	"foodcart/routes"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	db := configs.DB()

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	if cfg.SeedDemo {
		if err := configs.SeedCatalog(db); err != nil {
			logger.Fatal("seed catalog failed", zap.Error(err))
		}
		if err := configs.SeedDemoUser(db, cfg.DemoEmail, cfg.DemoPassword); err != nil {
			logger.Fatal("seed demo user failed", zap.Error(err))
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewServerMetrics(reg)

	// submit lock: redis ถ้ามีหลาย instance, ไม่งั้นใช้ใน process
	lockTTL := cfg.SubmitTimeout + 10*time.Second
	var submitLock lock.SubmitLock = lock.NewLocal(lockTTL)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, using in-process submit lock", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			submitLock = lock.NewRedis(rdb, lockTTL)
		}
		cancel()
		defer rdb.Close()
	}

	pub := events.NewPublisher(events.ParseBrokers(cfg.KafkaBrokers), cfg.KafkaOrderTopic)
	defer pub.Close()

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Cfg:     cfg,
		DB:      db,
		Log:     logger,
		Metrics: m,
		Events:  pub,
		Lock:    submitLock,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("server running", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
