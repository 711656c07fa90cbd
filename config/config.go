// Package config loads strategy-run configuration from YAML or JSON
// files, with environment-variable overrides for account and journal
// settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config is the complete configuration for one backtest run.
type Config struct {
	Account   AccountConfig   `json:"account" yaml:"account"`
	Strategy  StrategyConfig  `json:"strategy" yaml:"strategy"`
	Risk      RiskConfig      `json:"risk" yaml:"risk"`
	Analytics AnalyticsConfig `json:"analytics" yaml:"analytics"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	Pair      PairConfig      `json:"pair,omitempty" yaml:"pair,omitempty"`
}

type AccountConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital" envconfig:"QUANT_INITIAL_CAPITAL"`
	NoLeverage     bool    `json:"no_leverage" yaml:"no_leverage" envconfig:"QUANT_NO_LEVERAGE"`
}

type StrategyConfig struct {
	Name       string `json:"name" yaml:"name"`
	Instrument string `json:"instrument" yaml:"instrument"`

	Fast        int     `json:"fast,omitempty" yaml:"fast,omitempty"`
	Slow        int     `json:"slow,omitempty" yaml:"slow,omitempty"`
	Window      int     `json:"window,omitempty" yaml:"window,omitempty"`
	Entry       float64 `json:"entry,omitempty" yaml:"entry,omitempty"`
	Exit        float64 `json:"exit,omitempty" yaml:"exit,omitempty"`
	Lookback    int     `json:"lookback,omitempty" yaml:"lookback,omitempty"`
	TrendPeriod int     `json:"trend_period,omitempty" yaml:"trend_period,omitempty"`
	AllowShort  bool    `json:"allow_short,omitempty" yaml:"allow_short,omitempty"`
}

type RiskConfig struct {
	RiskPct        float64 `json:"risk_pct" yaml:"risk_pct"`
	ATRPeriod      int     `json:"atr_period" yaml:"atr_period"`
	ATRMultiplier  float64 `json:"atr_multiplier" yaml:"atr_multiplier"`
	FixedStopPct   float64 `json:"fixed_stop_pct,omitempty" yaml:"fixed_stop_pct,omitempty"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct,omitempty" yaml:"max_drawdown_pct,omitempty"`
}

type AnalyticsConfig struct {
	RiskFreeRate   float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	PeriodsPerYear float64 `json:"periods_per_year" yaml:"periods_per_year"`
}

type JournalConfig struct {
	Type       string `json:"type" yaml:"type" envconfig:"QUANT_JOURNAL_TYPE"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty" envconfig:"QUANT_TRADES_FILE"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty" envconfig:"QUANT_EQUITY_FILE"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty" envconfig:"QUANT_DB_PATH"`
}

type PairConfig struct {
	Instrument2   string  `json:"instrument2,omitempty" yaml:"instrument2,omitempty"`
	Window        int     `json:"window,omitempty" yaml:"window,omitempty"`
	Entry         float64 `json:"entry,omitempty" yaml:"entry,omitempty"`
	Exit          float64 `json:"exit,omitempty" yaml:"exit,omitempty"`
	Beta          float64 `json:"beta,omitempty" yaml:"beta,omitempty"`
	AllocPct      float64 `json:"alloc_pct,omitempty" yaml:"alloc_pct,omitempty"`
	StopLossPct   float64 `json:"stop_loss_pct,omitempty" yaml:"stop_loss_pct,omitempty"`
	TakeProfitPct float64 `json:"take_profit_pct,omitempty" yaml:"take_profit_pct,omitempty"`
}

// LoadFromFile loads a configuration file (YAML or JSON based on
// extension, YAML tried first), applies environment overrides, and
// validates.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	if c.Strategy.Instrument == "" {
		return fmt.Errorf("strategy.instrument is required")
	}
	if c.Risk.RiskPct <= 0 || c.Risk.RiskPct > 1 {
		return fmt.Errorf("risk.risk_pct must be in (0, 1]")
	}
	if c.Risk.ATRMultiplier <= 0 && c.Risk.FixedStopPct <= 0 {
		return fmt.Errorf("risk needs atr_multiplier or fixed_stop_pct")
	}
	switch strings.ToLower(c.Journal.Type) {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for csv type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for sqlite type")
		}
	default:
		return fmt.Errorf("journal.type must be none, csv or sqlite")
	}
	return nil
}

// Default returns a configuration with the common strategy settings.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			InitialCapital: 100_000,
		},
		Strategy: StrategyConfig{
			Name:       "ema-cross",
			Instrument: "VOO",
			Fast:       10,
			Slow:       30,
		},
		Risk: RiskConfig{
			RiskPct:       0.02,
			ATRPeriod:     14,
			ATRMultiplier: 2.0,
		},
		Analytics: AnalyticsConfig{
			RiskFreeRate:   0.03,
			PeriodsPerYear: 252,
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
