package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"stockbridge/internal/config"
	"stockbridge/internal/infrastructure/logger"
	"stockbridge/internal/odoo"
	"stockbridge/internal/order"
	"stockbridge/internal/server"
	"stockbridge/internal/shopify"
	"stockbridge/internal/stock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	erpClient := odoo.NewClient(cfg.Odoo, zapLogger)
	storefrontClient := shopify.NewClient(cfg.Shopify, zapLogger)

	orderCtrl := order.NewModule(erpClient, cfg, zapLogger)
	stockCtrl := stock.NewModule(erpClient, storefrontClient, zapLogger)

	router := server.NewRouter(orderCtrl, stockCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
