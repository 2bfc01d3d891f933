// billscan-import replays a directory of receipt images through the
// scan pipeline and appends a record per detected amount. Files that
// yield no amount are reported and skipped; the run never aborts on a
// single bad image.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"billscan/internal/config"
	"billscan/internal/core"
	"billscan/internal/extract"
	"billscan/internal/insight"
	"billscan/internal/ledger"
	applog "billscan/internal/log"
	"billscan/internal/ocr"

	"github.com/joho/godotenv"
)

func main() {
	dir := flag.String("dir", ".", "directory with receipt images (png/jpg)")
	category := flag.String("category", string(core.Other), "category for imported records")
	date := flag.String("date", "", "record date (YYYY-MM-DD, default today)")
	flag.Parse()

	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentImport)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err.Error())
		os.Exit(1)
	}

	cat, err := core.ParseCategory(*category)
	if err != nil {
		logger.Error("Unknown category", applog.FieldCategory, *category)
		os.Exit(1)
	}

	now := time.Now()
	recordDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if *date != "" {
		recordDate, err = time.Parse("2006-01-02", *date)
		if err != nil {
			logger.Error("Invalid date", applog.FieldError, err.Error())
			os.Exit(1)
		}
	}

	preprocess, err := ocr.ParsePreprocess(cfg.OCRPreprocess)
	if err != nil {
		logger.Error("Invalid preprocess mode", applog.FieldError, err.Error())
		os.Exit(1)
	}

	var ti insight.TextInsight = insight.Noop{}
	if cfg.InsightEnabled() {
		ti = insight.NewClient(cfg.InsightURL, cfg.InsightModel, cfg.InsightTimeout, logger)
	}

	recognizer := ocr.NewAzureService(cfg.OCREndpoint, cfg.OCRKey, logger)
	suggester := extract.New(ti, logger)
	store := ledger.NewStore(cfg.LedgerPath, logger)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		logger.Error("Cannot read image directory", applog.FieldError, err.Error())
		os.Exit(1)
	}

	ctx := context.Background()
	imported, skipped := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || !isImage(entry.Name()) {
			continue
		}
		path := filepath.Join(*dir, entry.Name())
		if importOne(ctx, logger, store, recognizer, suggester, preprocess, path, cat, recordDate) {
			imported++
		} else {
			skipped++
		}
	}

	logger.Info("Import finished", "imported", imported, "skipped", skipped)
}

func importOne(ctx context.Context, logger *applog.Logger, store *ledger.Store, recognizer ocr.Recognizer, suggester *extract.Extractor, preprocess ocr.Preprocess, path string, cat core.Category, date time.Time) bool {
	image, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Cannot read image", applog.FieldImage, path, applog.FieldError, err.Error())
		return false
	}

	text := ""
	if processed, err := preprocess.Apply(image); err != nil {
		logger.Warn("Preprocessing failed", applog.FieldImage, path, applog.FieldError, err.Error())
	} else if recognized, err := recognizer.Recognize(ctx, processed); err != nil {
		logger.Warn("Recognition failed", applog.FieldImage, path, applog.FieldError, err.Error())
	} else {
		text = recognized
	}

	amount, ok := suggester.Suggest(ctx, text)
	if !ok {
		logger.Warn("No amount detected", applog.FieldImage, path)
		return false
	}

	if _, err := store.Append(ctx, core.Record{Date: date, Category: cat, Amount: amount}); err != nil {
		logger.Warn("Append failed", applog.FieldImage, path, applog.FieldError, err.Error())
		return false
	}

	logger.Info("Imported receipt",
		applog.FieldImage, path,
		applog.FieldAmount, core.FormatAmount(amount),
		applog.FieldCategory, string(cat))
	return true
}

func isImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
