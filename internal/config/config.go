package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"equity-strategy-lab/internal/domain"
)

const dateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	Symbol string `yaml:"symbol"`

	DataSource struct {
		BaseURL string `yaml:"base_url"`
		CSVPath string `yaml:"csv_path"`
	} `yaml:"data_source"`

	Simulation struct {
		LotSize      float64 `yaml:"lot_size"`
		ProfitMargin float64 `yaml:"profit_margin"`
		WindowStart  string  `yaml:"window_start"` // YYYY-MM-DD, empty = unbounded
		WindowEnd    string  `yaml:"window_end"`
	} `yaml:"simulation"`

	Pricing struct {
		MarketSymbol   string  `yaml:"market_symbol"`
		RiskFreeAnnual float64 `yaml:"risk_free_annual"` // e.g. 0.04 for 4%
	} `yaml:"pricing"`

	Database struct {
		PostgresDSN string `yaml:"postgres_dsn"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; overrides and
// defaults still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STRATLAB_SYMBOL"); v != "" {
		cfg.Symbol = v
	}
	if v := os.Getenv("STRATLAB_DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Database.PostgresDSN = v
	}

	// Defaults
	if cfg.Symbol == "" {
		cfg.Symbol = "amd.us"
	}
	if cfg.Pricing.MarketSymbol == "" {
		cfg.Pricing.MarketSymbol = "^spx"
	}
	if cfg.Simulation.LotSize < 0 {
		return nil, fmt.Errorf("config: lot_size must not be negative, got %v", cfg.Simulation.LotSize)
	}

	return cfg, nil
}

// StrategyConfig builds the per-call strategy parameters. Zero values are
// left for the simulator factory to default.
func (c *Config) StrategyConfig(strategyType string) domain.StrategyConfig {
	return domain.StrategyConfig{
		StrategyType: strategyType,
		LotSize:      decimal.NewFromFloat(c.Simulation.LotSize),
		ProfitMargin: decimal.NewFromFloat(c.Simulation.ProfitMargin),
	}
}

// DateWindow parses the configured window bounds.
func (c *Config) DateWindow() (domain.DateWindow, error) {
	var w domain.DateWindow

	if s := c.Simulation.WindowStart; s != "" {
		t, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return w, fmt.Errorf("config: parse window_start %q: %w", s, err)
		}
		w.Start = t
	}
	if s := c.Simulation.WindowEnd; s != "" {
		t, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return w, fmt.Errorf("config: parse window_end %q: %w", s, err)
		}
		w.End = t
	}
	if !w.Start.IsZero() && !w.End.IsZero() && w.End.Before(w.Start) {
		return w, fmt.Errorf("config: window_end %s before window_start %s", c.Simulation.WindowEnd, c.Simulation.WindowStart)
	}

	return w, nil
}
