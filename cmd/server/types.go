package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"codeberg.org/inkwell/billing/inkwell/accounts"
	"codeberg.org/inkwell/billing/inkwell/payments"
	"codeberg.org/inkwell/billing/internal/auth"
	"codeberg.org/inkwell/billing/internal/config"
	"codeberg.org/inkwell/billing/internal/meter"
	"codeberg.org/inkwell/billing/internal/metrics"
	"codeberg.org/inkwell/billing/internal/plans"
	"codeberg.org/inkwell/billing/internal/reconciler"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool // nil with STORAGE_DRIVER=memory
	redis    *redis.Client // nil without REDIS_URL
	config   *config.Config
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	authn    *auth.Authenticator
	services *Services
	router   *gin.Engine
}

// account operations used across the meter and the reconciler
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*accounts.Account, error)
	Ensure(ctx context.Context, email, plan string, ceiling int64) error
	Credit(ctx context.Context, p accounts.CreditParams) (*accounts.CreditResult, error)
}

// ledger operations used by the reconciler and the history endpoint
type PaymentStore interface {
	reconciler.Ledger
	ListByPayer(ctx context.Context, email string, limit int) ([]payments.Entry, error)
}

// repositories behind the services, postgres or in-memory
type Stores struct {
	Accounts AccountStore
	Usage    meter.UsageStore
	Payments PaymentStore
}

// holds the billing services
type Services struct {
	Meter      *meter.Meter
	Reconciler *reconciler.Reconciler
	Catalog    *plans.Catalog
	Payments   PaymentStore
}
