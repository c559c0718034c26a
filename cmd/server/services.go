package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"codeberg.org/inkwell/billing/inkwell/accounts"
	"codeberg.org/inkwell/billing/inkwell/payments"
	"codeberg.org/inkwell/billing/inkwell/usage"
	"codeberg.org/inkwell/billing/internal/config"
	"codeberg.org/inkwell/billing/internal/gateway"
	"codeberg.org/inkwell/billing/internal/logger"
	"codeberg.org/inkwell/billing/internal/meter"
	"codeberg.org/inkwell/billing/internal/metrics"
	"codeberg.org/inkwell/billing/internal/ownerlock"
	"codeberg.org/inkwell/billing/internal/plans"
	"codeberg.org/inkwell/billing/internal/reconciler"
)

// picks postgres repositories when a pool is given, memory ones otherwise
func NewStores(db *pgxpool.Pool) *Stores {
	if db == nil {
		return &Stores{
			Accounts: accounts.NewMemoryRepository(),
			Usage:    usage.NewMemoryRepository(),
			Payments: payments.NewMemoryRepository(),
		}
	}

	return &Stores{
		Accounts: accounts.NewRepository(db),
		Usage:    usage.NewRepository(db),
		Payments: payments.NewRepository(db),
	}
}

// creates and configures the billing services
func InitializeServices(cfg *config.Config, stores *Stores, redisClient *redis.Client, m *metrics.Metrics) *Services {
	catalog := plans.DefaultCatalog()

	var locker ownerlock.Locker = ownerlock.NewMemoryLocker()
	if redisClient != nil {
		locker = ownerlock.NewRedisLocker(redisClient, ownerlock.DefaultTTL)
	}

	var gw reconciler.Gateway
	if cfg.RazorpayKeyID != "" {
		gw = gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpaySecretKey)
	} else {
		logger.Warn("RAZORPAY_KEY_ID not set, orders are minted locally")
		gw = gateway.NewLocalGateway()
	}

	meterSvc := meter.New(stores.Usage, stores.Accounts, meter.Config{
		FreeCeiling:  cfg.FreeTierCredits,
		FreePlan:     plans.Free,
		StoreTimeout: cfg.StoreTimeout,
	}, m)

	rec := reconciler.New(gw, stores.Accounts, stores.Payments, locker, catalog, reconciler.Config{
		SecretKey:      cfg.RazorpaySecretKey,
		Currency:       cfg.Currency,
		GatewayTimeout: cfg.GatewayTimeout,
		StoreTimeout:   cfg.StoreTimeout,
	}, m)

	return &Services{
		Meter:      meterSvc,
		Reconciler: rec,
		Catalog:    catalog,
		Payments:   stores.Payments,
	}
}
