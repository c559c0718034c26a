package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"codeberg.org/inkwell/billing/internal/auth"
	"codeberg.org/inkwell/billing/internal/config"
	"codeberg.org/inkwell/billing/internal/logger"
	"codeberg.org/inkwell/billing/internal/metrics"
	"codeberg.org/inkwell/billing/internal/storage"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config, flags config.Flags) (*Server, error) {
	var db *pgxpool.Pool

	if !cfg.InMemory() {
		pool, err := storage.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}

		if flags.Migrate {
			if err := storage.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}

			logger.Info("database schema applied")
		}

		db = pool
	} else {
		logger.Warn("using in-memory storage, balances are lost on restart")
	}

	var redisClient *redis.Client

	if cfg.RedisURL != "" {
		client, err := storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			if db != nil {
				db.Close()
			}
			return nil, err
		}

		logger.Info("connected to redis")
		redisClient = client
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := metrics.New(registry)
	services := InitializeServices(cfg, NewStores(db), redisClient, m)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		db:       db,
		redis:    redisClient,
		config:   cfg,
		registry: registry,
		metrics:  m,
		authn:    auth.New(cfg.JWTSecret),
		services: services,
		router:   router,
	}

	if err := RegisterRoutes(router, server); err != nil {
		server.Close()
		return nil, err
	}

	return server, nil
}

// releases database and redis connections
func (s *Server) Close() {
	if s.redis != nil {
		s.redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	if s.db != nil {
		s.db.Close()
	}
}
