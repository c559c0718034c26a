package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/swaggo/swag"

	"codeberg.org/inkwell/billing/api/rest/billing"
	"codeberg.org/inkwell/billing/api/rest/health"
	"codeberg.org/inkwell/billing/api/rest/usage"
	_ "codeberg.org/inkwell/billing/docs"
	"codeberg.org/inkwell/billing/internal/errors"
	"codeberg.org/inkwell/billing/internal/metrics"
	"codeberg.org/inkwell/billing/internal/ratelimit"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	router.Use(CORSMiddleware(server.config.AllowedOrigins))
	router.Use(server.metrics.Middleware())

	router.GET("/health", health.Handler)
	router.GET("/ready", health.ReadyHandler(readinessChecks(server)))
	router.GET("/metrics", gin.WrapH(metrics.Handler(server.registry)))
	router.GET("/swagger/doc.json", SwaggerHandler)
	router.NoRoute(func(c *gin.Context) {
		errors.NotFound(c, "endpoint")
	})

	var limitStore redis.UniversalClient
	if server.redis != nil {
		limitStore = server.redis
	}

	limiter, err := ratelimit.New(server.config.RateLimit, limitStore)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}

	billing.RegisterRoutes(
		router.Group("/api/billing"),
		server.services.Reconciler,
		server.services.Payments,
		server.services.Catalog,
		server.authn,
		ratelimit.Middleware(limiter),
	)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		usage.RegisterRoutes(v1, server.services.Meter, server.authn, server.config.QuotaFailOpen)
	}

	return nil
}

// allows the configured origins, every origin when none are set
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}

// serves the generated OpenAPI document
func SwaggerHandler(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "swagger document unavailable"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}

func readinessChecks(server *Server) map[string]health.Check {
	checks := map[string]health.Check{}

	if server.db != nil {
		checks["postgres"] = server.db.Ping
	}

	if server.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return server.redis.Ping(ctx).Err()
		}
	}

	return checks
}
