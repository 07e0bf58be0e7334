package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.Indicators.RSIPeriod != 14 {
		t.Errorf("rsi_period = %d, want 14", cfg.Indicators.RSIPeriod)
	}
	if cfg.Indicators.RSIOversold != 30 || cfg.Indicators.RSIOverbought != 70 {
		t.Errorf("rsi thresholds = %v/%v, want 30/70",
			cfg.Indicators.RSIOversold, cfg.Indicators.RSIOverbought)
	}
	if cfg.Backtest.InitialCapital != 100000 {
		t.Errorf("initial_capital = %v, want 100000", cfg.Backtest.InitialCapital)
	}
	if cfg.Backtest.CommissionRate != 0.001 {
		t.Errorf("commission_rate = %v, want 0.001", cfg.Backtest.CommissionRate)
	}
	if cfg.Screen.MaxWorkers != 10 {
		t.Errorf("max_workers = %d, want 10", cfg.Screen.MaxWorkers)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.Indicators.SMALong != 50 {
		t.Errorf("sma_long = %d, want default 50", cfg.Indicators.SMALong)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	content := `
indicators:
  rsi_period: 21
backtest:
  initial_capital: 50000
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Indicators.RSIPeriod != 21 {
		t.Errorf("rsi_period = %d, want 21", cfg.Indicators.RSIPeriod)
	}
	if cfg.Backtest.InitialCapital != 50000 {
		t.Errorf("initial_capital = %v, want 50000", cfg.Backtest.InitialCapital)
	}
	// Untouched fields keep their defaults.
	if cfg.Indicators.MACDSlow != 26 {
		t.Errorf("macd_slow = %d, want default 26", cfg.Indicators.MACDSlow)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ALPACA_API_KEY", "env-key")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SCREEN_MAX_WORKERS", "4")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Alpaca.APIKey != "env-key" {
		t.Errorf("api key = %q, want env-key", cfg.Alpaca.APIKey)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Screen.MaxWorkers != 4 {
		t.Errorf("max_workers = %d, want 4", cfg.Screen.MaxWorkers)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("indicators: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed YAML")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero rsi period", func(c *Config) { c.Indicators.RSIPeriod = 0 }, "rsi_period"},
		{"negative sma", func(c *Config) { c.Indicators.SMAShort = -1 }, "sma_short"},
		{"oversold above overbought", func(c *Config) { c.Indicators.RSIOversold = 80 }, "rsi_oversold"},
		{"oversold out of range", func(c *Config) { c.Indicators.RSIOversold = -5 }, "rsi_oversold"},
		{"fast not below slow", func(c *Config) { c.Indicators.MACDFast = 30 }, "macd_fast"},
		{"short not below long", func(c *Config) { c.Indicators.SMAShort = 60 }, "sma_short"},
		{"zero stddev", func(c *Config) { c.Indicators.BollingerStdDev = 0 }, "bollinger_std_dev"},
		{"zero capital", func(c *Config) { c.Backtest.InitialCapital = 0 }, "initial_capital"},
		{"negative commission", func(c *Config) { c.Backtest.CommissionRate = -0.1 }, "commission_rate"},
		{"zero workers", func(c *Config) { c.Screen.MaxWorkers = 0 }, "max_workers"},
		{"negative retries", func(c *Config) { c.Screen.MaxRetries = -1 }, "max_retries"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate accepted invalid config")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
