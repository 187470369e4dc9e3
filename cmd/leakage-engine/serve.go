package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/leakwatch/leakage-engine/internal/alerts"
	"github.com/leakwatch/leakage-engine/internal/api"
	"github.com/leakwatch/leakage-engine/internal/classify"
	"github.com/leakwatch/leakage-engine/internal/config"
	"github.com/leakwatch/leakage-engine/internal/engine"
	"github.com/leakwatch/leakage-engine/internal/metrics"
	"github.com/leakwatch/leakage-engine/internal/services"
	"github.com/leakwatch/leakage-engine/internal/utils"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)
	logger.Info("starting leakage-engine", slog.String("address", cfg.Server.Address))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	classifier, err := classify.Load(cfg.Keywords.Path)
	if err != nil {
		return fmt.Errorf("load keyword pack: %w", err)
	}
	rules, err := alerts.LoadRules(cfg.Alerts.RulesPath)
	if err != nil {
		return fmt.Errorf("load alert rules: %w", err)
	}
	if len(rules) > 0 {
		logger.Info("alert rules loaded", slog.Int("rules", len(rules)), slog.String("path", cfg.Alerts.RulesPath))
	}

	eng := engine.New(utils.ComponentLogger(logger, "engine"), classifier)
	service := services.NewAnalysisService(utils.ComponentLogger(logger, "analysis"), eng, rules, cfg.Analysis)
	handlers := api.NewHandlers(utils.ComponentLogger(logger, "api"), service, cfg.Server.MaxBodyBytes)

	server, err := api.NewServer(cfg.Server, handlers)
	if err != nil {
		return fmt.Errorf("create HTTP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metricsServer *http.Server
	if cfg.Server.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", slog.String("address", cfg.Server.MetricsAddress))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server exited", slog.Any("error", err))
				stop()
			}
		}()
	}

	go func() {
		if serveErr := server.Start(); serveErr != nil {
			logger.Error("HTTP server exited", slog.Any("error", serveErr))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	server.Shutdown(shutdownCtx)

	if metricsServer != nil {
		metricsCtx, cancelMetrics := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(metricsCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server shutdown", slog.Any("error", err))
		}
		cancelMetrics()
	}

	// Give remaining goroutines time to finish logging
	time.Sleep(100 * time.Millisecond)
	logger.Info("leakage-engine stopped")
	return nil
}
