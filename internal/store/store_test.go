package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tadawul/internal/domain"
)

func TestParquetStorePath(t *testing.T) {
	ps := NewParquetStore("/data")

	ts := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	got := ps.barPath("aapl", "us", ts)

	want := filepath.Join("/data", "us", "daily", "AAPL", "2024.parquet")
	if got != want {
		t.Errorf("barPath mismatch:\n  got  %s\n  want %s", got, want)
	}
}

func testBar(symbol string, day int, close float64) domain.Bar {
	return domain.Bar{
		Symbol:     symbol,
		Timestamp:  time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Open:       close - 0.5,
		High:       close + 1,
		Low:        close - 1,
		Close:      close,
		Volume:     1000000,
		TradeCount: 5000,
		VWAP:       close - 0.25,
	}
}

func TestParquetStoreWriteReadBars(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()

	bars := []domain.Bar{
		testBar("AAPL", 2, 185.5),
		testBar("AAPL", 3, 186.0),
	}
	if err := ps.WriteBars(ctx, bars); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	got, err := ps.ReadBars(ctx, "AAPL", "us", start, end)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadBars returned %d bars, want 2", len(got))
	}
	if got[0].Close != 185.5 || got[1].Close != 186.0 {
		t.Errorf("closes = %v, %v, want 185.5, 186.0", got[0].Close, got[1].Close)
	}
	if got[0].Timestamp.UnixMilli() != bars[0].Timestamp.UnixMilli() {
		t.Errorf("timestamp = %v, want %v", got[0].Timestamp, bars[0].Timestamp)
	}
}

func TestParquetStoreMergeBars(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()

	if err := ps.WriteBars(ctx, []domain.Bar{testBar("TSLA", 2, 240.0)}); err != nil {
		t.Fatalf("initial WriteBars: %v", err)
	}

	// Rewriting the same day replaces it; a new day is appended.
	if err := ps.WriteBars(ctx, []domain.Bar{
		testBar("TSLA", 2, 241.0),
		testBar("TSLA", 3, 245.0),
	}); err != nil {
		t.Fatalf("second WriteBars: %v", err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	got, err := ps.ReadBars(ctx, "TSLA", "us", start, end)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadBars returned %d bars after merge, want 2", len(got))
	}
	if got[0].Close != 241.0 {
		t.Errorf("merged close = %v, want replacement 241.0", got[0].Close)
	}
}

func TestParquetStoreReadMissingSymbol(t *testing.T) {
	ps := NewParquetStore(t.TempDir())

	got, err := ps.ReadBars(context.Background(), "NOPE", "us",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ReadBars on missing symbol: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d bars for missing symbol, want 0", len(got))
	}
}

func TestParquetStoreListSymbols(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()

	for _, sym := range []string{"MSFT", "AAPL"} {
		if err := ps.WriteBars(ctx, []domain.Bar{testBar(sym, 2, 100)}); err != nil {
			t.Fatalf("WriteBars %s: %v", sym, err)
		}
	}

	symbols, err := ps.ListSymbols(ctx, "us")
	if err != nil {
		t.Fatalf("ListSymbols: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "AAPL" || symbols[1] != "MSFT" {
		t.Errorf("symbols = %v, want [AAPL MSFT]", symbols)
	}
}

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteStoreSignals(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	sigs := []domain.Signal{
		{
			Symbol:     "AAPL",
			Type:       domain.SignalBuy,
			Price:      185.5,
			Timestamp:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Confidence: 0.8,
			Reason:     "golden cross: SMA10 above SMA50",
		},
		{
			Symbol:     "AAPL",
			Type:       domain.SignalSell,
			Price:      190.0,
			Timestamp:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Confidence: 0.7,
			Reason:     "MACD bearish crossover",
		},
		{
			Symbol:     "MSFT",
			Type:       domain.SignalBuy,
			Price:      400.0,
			Timestamp:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Confidence: 0.6,
			Reason:     "price at Bollinger lower band",
		},
	}
	for i := range sigs {
		if err := db.SaveSignal(ctx, &sigs[i]); err != nil {
			t.Fatalf("SaveSignal: %v", err)
		}
	}

	got, err := db.ListSignals(ctx, "AAPL", 10)
	if err != nil {
		t.Fatalf("ListSignals: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListSignals returned %d signals, want 2", len(got))
	}
	// Newest first.
	if got[0].Type != domain.SignalSell || got[1].Type != domain.SignalBuy {
		t.Errorf("order = %s, %s, want sell, buy", got[0].Type, got[1].Type)
	}
	if got[1].Reason != "golden cross: SMA10 above SMA50" {
		t.Errorf("reason = %q", got[1].Reason)
	}

	// Empty symbol matches everything; limit caps the result.
	all, err := db.ListSignals(ctx, "", 2)
	if err != nil {
		t.Fatalf("ListSignals all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListSignals with limit 2 returned %d", len(all))
	}
}

func TestSQLiteStoreTrades(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	trades := []domain.Trade{
		{
			Symbol:     "AAPL",
			Shares:     500,
			EntryPrice: 100,
			EntryTime:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			ExitPrice:  120,
			ExitTime:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Profit:     9890,
			ReturnPct:  19.78,
		},
		{
			Symbol:     "AAPL",
			Shares:     300,
			EntryPrice: 125,
			EntryTime:  time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			ExitPrice:  118,
			ExitTime:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			Profit:     -2175,
			ReturnPct:  -5.8,
		},
	}
	if err := db.SaveTrades(ctx, trades); err != nil {
		t.Fatalf("SaveTrades: %v", err)
	}

	got, err := db.ListTrades(ctx, "AAPL")
	if err != nil {
		t.Fatalf("ListTrades: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListTrades returned %d trades, want 2", len(got))
	}
	// Oldest first.
	if got[0].Profit != 9890 || got[1].Profit != -2175 {
		t.Errorf("profits = %v, %v, want 9890, -2175", got[0].Profit, got[1].Profit)
	}
	if got[0].Shares != 500 {
		t.Errorf("shares = %d, want 500", got[0].Shares)
	}

	if err := db.SaveTrades(ctx, nil); err != nil {
		t.Errorf("SaveTrades with empty batch: %v", err)
	}
}
