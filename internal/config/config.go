package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the tadawul engine.
type Config struct {
	Storage    Storage    `yaml:"storage"`
	Alpaca     Alpaca     `yaml:"alpaca"`
	Logging    Logging    `yaml:"logging"`
	Indicators Indicators `yaml:"indicators"`
	Backtest   Backtest   `yaml:"backtest"`
	Screen     Screen     `yaml:"screen"`
}

// Storage holds paths for data persistence.
type Storage struct {
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Alpaca holds credentials and endpoints for the Alpaca market-data API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Indicators holds the periods and thresholds for every indicator-driven
// strategy.
type Indicators struct {
	RSIPeriod     int     `yaml:"rsi_period"`
	RSIOversold   float64 `yaml:"rsi_oversold"`
	RSIOverbought float64 `yaml:"rsi_overbought"`

	MACDFast   int `yaml:"macd_fast"`
	MACDSlow   int `yaml:"macd_slow"`
	MACDSignal int `yaml:"macd_signal"`

	BollingerPeriod int     `yaml:"bollinger_period"`
	BollingerStdDev float64 `yaml:"bollinger_std_dev"`

	SMAShort int `yaml:"sma_short"`
	SMALong  int `yaml:"sma_long"`

	StochasticK     int `yaml:"stochastic_k"`
	StochasticD     int `yaml:"stochastic_d"`
	WilliamsRPeriod int `yaml:"williams_r_period"`
	ATRPeriod       int `yaml:"atr_period"`
}

// Backtest defines simulation parameters.
type Backtest struct {
	InitialCapital float64 `yaml:"initial_capital"`
	CommissionRate float64 `yaml:"commission_rate"`
}

// Screen controls the multi-symbol batch runner.
type Screen struct {
	MaxWorkers   int `yaml:"max_workers"`
	FetchTimeout int `yaml:"fetch_timeout_sec"`
	MaxRetries   int `yaml:"max_retries"`
	RetryDelayMS int `yaml:"retry_delay_ms"`
}

// ---------------------------------------------------------------------------
// Defaults and loading
// ---------------------------------------------------------------------------

// Default returns a Config populated with the documented defaults.
func Default() *Config {
	return &Config{
		Storage: Storage{
			DataDir:    "data",
			SQLitePath: "data/tadawul.db",
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
		},
		Indicators: Indicators{
			RSIPeriod:       14,
			RSIOversold:     30,
			RSIOverbought:   70,
			MACDFast:        12,
			MACDSlow:        26,
			MACDSignal:      9,
			BollingerPeriod: 20,
			BollingerStdDev: 2,
			SMAShort:        10,
			SMALong:         50,
			StochasticK:     14,
			StochasticD:     3,
			WilliamsRPeriod: 14,
			ATRPeriod:       14,
		},
		Backtest: Backtest{
			InitialCapital: 100000,
			CommissionRate: 0.001,
		},
		Screen: Screen{
			MaxWorkers:   10,
			FetchTimeout: 30,
			MaxRetries:   2,
			RetryDelayMS: 500,
		},
	}
}

// Load reads the YAML configuration file at the given path on top of the
// defaults, applies environment variable overrides, and validates the
// result. A missing file is not an error: defaults plus env apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}
	if v := os.Getenv("SCREEN_MAX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Screen.MaxWorkers = n
		}
	}

	// Standard Alpaca env vars take highest priority, same names the SDK reads.
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// Validate checks every period, threshold, and rate for sanity. It fails
// fast so a bad configuration never reaches the engines.
func (c *Config) Validate() error {
	ind := c.Indicators

	periods := []struct {
		name string
		val  int
	}{
		{"rsi_period", ind.RSIPeriod},
		{"macd_fast", ind.MACDFast},
		{"macd_slow", ind.MACDSlow},
		{"macd_signal", ind.MACDSignal},
		{"bollinger_period", ind.BollingerPeriod},
		{"sma_short", ind.SMAShort},
		{"sma_long", ind.SMALong},
		{"stochastic_k", ind.StochasticK},
		{"stochastic_d", ind.StochasticD},
		{"williams_r_period", ind.WilliamsRPeriod},
		{"atr_period", ind.ATRPeriod},
	}
	for _, p := range periods {
		if p.val <= 0 {
			return fmt.Errorf("invalid configuration: %s must be positive, got %d", p.name, p.val)
		}
	}

	if ind.RSIOversold < 0 || ind.RSIOversold > 100 {
		return fmt.Errorf("invalid configuration: rsi_oversold outside [0,100]: %v", ind.RSIOversold)
	}
	if ind.RSIOverbought < 0 || ind.RSIOverbought > 100 {
		return fmt.Errorf("invalid configuration: rsi_overbought outside [0,100]: %v", ind.RSIOverbought)
	}
	if ind.RSIOversold >= ind.RSIOverbought {
		return fmt.Errorf("invalid configuration: rsi_oversold %v >= rsi_overbought %v",
			ind.RSIOversold, ind.RSIOverbought)
	}
	if ind.MACDFast >= ind.MACDSlow {
		return fmt.Errorf("invalid configuration: macd_fast %d >= macd_slow %d", ind.MACDFast, ind.MACDSlow)
	}
	if ind.SMAShort >= ind.SMALong {
		return fmt.Errorf("invalid configuration: sma_short %d >= sma_long %d", ind.SMAShort, ind.SMALong)
	}
	if ind.BollingerStdDev <= 0 {
		return fmt.Errorf("invalid configuration: bollinger_std_dev must be positive, got %v", ind.BollingerStdDev)
	}

	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("invalid configuration: initial_capital must be positive, got %v", c.Backtest.InitialCapital)
	}
	if c.Backtest.CommissionRate < 0 {
		return fmt.Errorf("invalid configuration: commission_rate must not be negative, got %v", c.Backtest.CommissionRate)
	}

	if c.Screen.MaxWorkers <= 0 {
		return fmt.Errorf("invalid configuration: max_workers must be positive, got %d", c.Screen.MaxWorkers)
	}
	if c.Screen.MaxRetries < 0 {
		return fmt.Errorf("invalid configuration: max_retries must not be negative, got %d", c.Screen.MaxRetries)
	}

	return nil
}
