package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/inkwell/billing/internal/config"
	"codeberg.org/inkwell/billing/internal/logger"
)

// @title Inkwell Billing API
// @version 1.0
// @description Credit usage metering and plan upgrades reconciled against Razorpay payments
// @description
// @description Features:
// @description - Usage totals and quota bands per owner
// @description - Razorpay order creation and signed payment verification
// @description - Credit accumulation with an append-only payment ledger

// @contact.name API Support
// @contact.url https://codeberg.org/inkwell/billing

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token identifying the owner. Format: Bearer {token}

func main() {
	flags := config.ParseServerFlags()

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.SetDefault(logger.New(cfg.Environment, cfg.LogLevel))
	logger.Info("starting billing server", "environment", cfg.Environment, "storage", cfg.StorageDriver)

	// create server with all dependencies
	srv, err := NewServer(context.Background(), cfg, flags)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	addr := flags.Addr
	if addr == "" {
		addr = net.JoinHostPort("", cfg.Port)
	}

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.Close()

	logger.Info("server stopped")
}
