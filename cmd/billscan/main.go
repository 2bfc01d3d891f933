package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"billscan/internal/config"
	"billscan/internal/extract"
	apphttp "billscan/internal/http"
	"billscan/internal/insight"
	"billscan/internal/ledger"
	applog "billscan/internal/log"
	"billscan/internal/ocr"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err.Error())
		os.Exit(1)
	}

	preprocess, err := ocr.ParsePreprocess(cfg.OCRPreprocess)
	if err != nil {
		logger.Error("Invalid preprocess mode", applog.FieldError, err.Error())
		os.Exit(1)
	}

	recognizer := ocr.NewAzureService(cfg.OCREndpoint, cfg.OCRKey, logger)

	// Insight capability is decided once here; the extractor never
	// checks configuration itself.
	var ti insight.TextInsight = insight.Noop{}
	if cfg.InsightEnabled() {
		ti = insight.NewClient(cfg.InsightURL, cfg.InsightModel, cfg.InsightTimeout, logger)
		logger.Info("Text insight enabled", "model", cfg.InsightModel)
	} else {
		logger.Info("Text insight disabled, deterministic extraction only")
	}

	store := ledger.NewStore(cfg.LedgerPath, logger)
	suggester := extract.New(ti, logger)

	srv := apphttp.NewServer(":"+cfg.Port, store, recognizer, suggester, preprocess, logger)

	// Configure server timeouts and limits
	srv.ReadTimeout = 30 * time.Second
	srv.WriteTimeout = 60 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err.Error())
		}
		cancel()
	}()

	logger.Info("Starting billscan server",
		"port", cfg.Port,
		applog.FieldLedgerPath, cfg.LedgerPath,
		"preprocess", string(preprocess))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
