// One-shot tool: flatten the persisted JSON documents into Parquet files for
// offline analysis, one per asset class, under <data_dir>/exports/.
//
// Usage:
//
//	go run cmd/marketdata-export/main.go [-config path] [-out dir]
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"marketdata/internal/config"
	"marketdata/internal/export"
	"marketdata/internal/store"
	"marketdata/internal/universe"
	"marketdata/internal/util"
)

func main() {
	defaultCfg := "config/marketdata.yaml"
	if p := os.Getenv("MARKETDATA_CONFIG"); p != "" {
		defaultCfg = p
	}
	cfgPath := flag.String("config", defaultCfg, "path to YAML configuration")
	outDir := flag.String("out", "", "output directory (default <data_dir>/exports)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	dir := *outDir
	if dir == "" {
		dir = filepath.Join(cfg.Storage.DataDir, "exports")
	}

	local := store.NewDocumentStore(cfg.Storage.DataDir)

	wrote := 0
	for _, class := range universe.Classes() {
		doc, ok, err := local.Read(class)
		if err != nil {
			slog.Error("read failed", "class", class, "error", err)
			continue
		}
		if !ok {
			slog.Info("no document, skipping", "class", class)
			continue
		}

		path := filepath.Join(dir, string(class)+".parquet")
		skipped, err := export.WriteFile(path, doc)
		if err != nil {
			slog.Error("export failed", "class", class, "error", err)
			continue
		}
		if skipped {
			slog.Info("empty document, skipping", "class", class)
			continue
		}
		slog.Info("exported", "class", class, "path", path, "rows", doc.Records())
		wrote++
	}

	if wrote == 0 {
		slog.Info("nothing to export")
	}
}
