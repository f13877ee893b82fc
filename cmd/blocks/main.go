package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"finitefield.org/hanko-blocks/internal/blocks"
	"finitefield.org/hanko-blocks/internal/catalog"
	"finitefield.org/hanko-blocks/internal/httpserver"
	"finitefield.org/hanko-blocks/internal/metrics"
	"finitefield.org/hanko-blocks/internal/platform/config"
	"finitefield.org/hanko-blocks/internal/platform/observability"
)

func main() {
	cfg, cfgErr := config.Load()

	baseLogger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("blocks")

	if cfgErr != nil {
		var verr *config.ValidationError
		if errors.As(cfgErr, &verr) {
			logger.Fatal("invalid configuration", zap.Strings("fields", verr.Fields()))
		}
		logger.Fatal("failed to load configuration", zap.Error(cfgErr))
	}

	locale := blocks.Locale{Currency: cfg.Display.Currency, Lang: cfg.Display.Lang}
	catalogOpts := []catalog.Option{catalog.WithLocale(locale)}

	var registry *metrics.Registry
	if cfg.Metrics.Enabled {
		registry = metrics.NewRegistry()
		catalogOpts = append(catalogOpts, catalog.WithRecorder(registry))
	}

	svc, err := catalog.NewStaticService(catalogOpts...)
	if err != nil {
		logger.Fatal("failed to load block catalog", zap.Error(err))
	}

	server, err := httpserver.New(httpserver.Config{
		Address:      cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Catalog:      svc,
		Metrics:      registry,
		Logger:       logger,
		Locale:       locale,
	})
	if err != nil {
		logger.Fatal("failed to build http server", zap.Error(err))
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("hanko-blocks catalog listening",
			zap.String("currency", locale.Currency),
			zap.String("lang", locale.Lang),
			zap.Bool("metrics", registry != nil),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
