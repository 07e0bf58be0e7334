package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tadawul/internal/backtest"
	"tadawul/internal/config"
	"tadawul/internal/feed"
	"tadawul/internal/store"
	"tadawul/internal/util"
)

const alpacaRatePerMin = 200

func main() {
	symbolsFlag := flag.String("symbols", "", "comma-separated symbols to backtest (required)")
	startFlag := flag.String("start", "", "start date YYYY-MM-DD (default one year ago)")
	endFlag := flag.String("end", "", "end date YYYY-MM-DD (default today)")
	positionSize := flag.Float64("position-size", 0.5, "fraction of cash committed per position")
	flag.Parse()

	if *symbolsFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: backtest -symbols AAPL,MSFT [-start 2024-01-01] [-end 2024-12-31]")
		os.Exit(2)
	}

	// .env is optional; real env vars win either way.
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

	end := time.Now()
	if *endFlag != "" {
		if end, err = time.Parse("2006-01-02", *endFlag); err != nil {
			log.Fatalf("invalid -end: %v", err)
		}
	}
	start := end.AddDate(-1, 0, 0)
	if *startFlag != "" {
		if start, err = time.Parse("2006-01-02", *startFlag); err != nil {
			log.Fatalf("invalid -start: %v", err)
		}
	}

	symbols := splitSymbols(*symbolsFlag)

	pstore := store.NewParquetStore(cfg.Storage.DataDir)
	remote := feed.NewAlpacaProvider(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL, alpacaRatePerMin)
	provider := feed.NewCachingProvider(pstore, remote, "us")

	journal, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("failed to open trade journal: %v", err)
	}
	defer journal.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	engine := backtest.New(provider, cfg, logger)
	results := engine.RunBatch(ctx, symbols, start, end, *positionSize)

	for _, symbol := range symbols {
		r := results[symbol]
		if r.Err != nil {
			continue
		}
		if err := journal.SaveTrades(ctx, r.Result.Trades); err != nil {
			logger.Warn("failed to journal trades", "symbol", symbol, "error", err)
		}
	}

	printResults(symbols, results)
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

func printResults(symbols []string, results map[string]backtest.SymbolResult) {
	fmt.Printf("\n%-10s %12s %10s %8s %8s %10s %8s\n",
		"SYMBOL", "FINAL", "RETURN%", "SHARPE", "MAXDD%", "WINRATE%", "TRADES")
	fmt.Println(strings.Repeat("-", 72))

	ordered := append([]string(nil), symbols...)
	sort.Strings(ordered)

	var failed []string
	for _, symbol := range ordered {
		r := results[symbol]
		if r.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", symbol, r.Err))
			continue
		}
		m := r.Result.Metrics
		fmt.Printf("%-10s %12.2f %10.2f %8.2f %8.2f %10.2f %8d\n",
			symbol, r.Result.FinalCapital, m.TotalReturnPct, m.SharpeRatio,
			m.MaxDrawdown, m.WinRate, m.TotalTrades)
	}

	if len(failed) > 0 {
		fmt.Println("\nFailed symbols:")
		for _, f := range failed {
			fmt.Printf("  %s\n", f)
		}
	}
}
