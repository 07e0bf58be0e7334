package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"tadawul/internal/config"
	"tadawul/internal/feed"
	signalgen "tadawul/internal/signal"
	"tadawul/internal/store"
	"tadawul/internal/util"
)

const alpacaRatePerMin = 200

func main() {
	symbolsFlag := flag.String("symbols", "", "comma-separated symbols to scan (required)")
	showHistory := flag.Int("history", 0, "print the last N stored signals per symbol instead of scanning")
	flag.Parse()

	if *symbolsFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: signals -symbols AAPL,MSFT [-history 20]")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfgPath := "config/tadawul.yaml"
	if p := os.Getenv("TADAWUL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	db, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("failed to open signal store: %v", err)
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	symbols := splitSymbols(*symbolsFlag)

	if *showHistory > 0 {
		for _, symbol := range symbols {
			sigs, err := db.ListSignals(ctx, symbol, *showHistory)
			if err != nil {
				logger.Error("failed to list signals", "symbol", symbol, "error", err)
				continue
			}
			for _, s := range sigs {
				fmt.Printf("%s  %s\n", s.Timestamp.Format("2006-01-02"), s)
			}
		}
		return
	}

	pstore := store.NewParquetStore(cfg.Storage.DataDir)
	remote := feed.NewAlpacaProvider(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL, alpacaRatePerMin)
	provider := feed.NewCachingProvider(pstore, remote, "us")

	gen := signalgen.NewGenerator(provider, cfg.Indicators, logger)

	for _, symbol := range symbols {
		if ctx.Err() != nil {
			break
		}
		sig, err := gen.Latest(ctx, symbol)
		if err != nil {
			logger.Error("scan failed", "symbol", symbol, "error", err)
			continue
		}
		if sig == nil {
			fmt.Printf("%-10s hold\n", symbol)
			continue
		}
		fmt.Printf("%-10s %s\n", symbol, sig)
		if err := db.SaveSignal(ctx, sig); err != nil {
			logger.Warn("failed to persist signal", "symbol", symbol, "error", err)
		}
	}
}

func splitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if sym := strings.ToUpper(strings.TrimSpace(part)); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}
