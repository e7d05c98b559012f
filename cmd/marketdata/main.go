// Daily market data manager: fetches closing prices and yields for the
// configured instrument universe, merges them into per-asset-class JSON
// documents, and republishes them to GitHub.
//
// Usage:
//
//	go run cmd/marketdata/main.go [-config path] [-first-run]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"marketdata/internal/config"
	"marketdata/internal/fetch"
	"marketdata/internal/ghstore"
	"marketdata/internal/journal"
	"marketdata/internal/store"
	"marketdata/internal/update"
	"marketdata/internal/util"
)

func main() {
	defaultCfg := "config/marketdata.yaml"
	if p := os.Getenv("MARKETDATA_CONFIG"); p != "" {
		defaultCfg = p
	}
	cfgPath := flag.String("config", defaultCfg, "path to YAML configuration")
	firstRun := flag.Bool("first-run", false, "fetch full history from 2020-01-01 instead of an incremental window")
	flag.Parse()

	// .env is optional; deployed environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	local := store.NewDocumentStore(cfg.Storage.DataDir)

	timeout := time.Duration(cfg.Fetch.TimeoutSec) * time.Second
	quotes := fetch.NewYahooClient(cfg.Fetch.YahooBaseURL, timeout,
		time.Duration(cfg.Fetch.QuotePauseMS)*time.Millisecond)
	rates := fetch.NewFREDClient(cfg.Fetch.FREDBaseURL, timeout,
		time.Duration(cfg.Fetch.RatePauseMS)*time.Millisecond)

	var remote update.RemoteStore
	if cfg.GitHub.Token != "" && cfg.GitHub.Repo != "" {
		remote = ghstore.New(cfg.GitHub.BaseURL, cfg.GitHub.Repo, cfg.GitHub.Token, timeout)
	} else {
		logger.Info("github credentials unset, publishing disabled")
	}

	var jour update.RunJournal
	if cfg.Storage.JournalPath != "" {
		j, err := journal.Open(cfg.Storage.JournalPath)
		if err != nil {
			logger.Warn("run journal unavailable", "error", err)
		} else {
			defer j.Close()
			jour = j
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	updater := update.NewUpdater(local, remote, quotes, rates, jour, cfg.GitHub.Path, logger)
	updater.RunAll(ctx, *firstRun)
}
