package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equity-strategy-lab/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
symbol: intc.us
data_source:
  base_url: http://example.test
simulation:
  lot_size: 50
  profit_margin: 1.5
  window_start: "2020-01-02"
  window_end: "2021-12-31"
pricing:
  market_symbol: "^dji"
  risk_free_annual: 0.04
database:
  postgres_dsn: postgres://localhost/lab
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "intc.us", cfg.Symbol)
	assert.Equal(t, "http://example.test", cfg.DataSource.BaseURL)
	assert.Equal(t, 50.0, cfg.Simulation.LotSize)
	assert.Equal(t, "^dji", cfg.Pricing.MarketSymbol)
	assert.Equal(t, "postgres://localhost/lab", cfg.Database.PostgresDSN)

	window, err := cfg.DateWindow()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC), window.End)

	sc := cfg.StrategyConfig(domain.StrategyTypeProfitTaking)
	assert.Equal(t, domain.StrategyTypeProfitTaking, sc.StrategyType)
	assert.Equal(t, "50", sc.LotSize.String())
	assert.Equal(t, "1.5", sc.ProfitMargin.String())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "amd.us", cfg.Symbol)
	assert.Equal(t, "^spx", cfg.Pricing.MarketSymbol)

	window, err := cfg.DateWindow()
	require.NoError(t, err)
	assert.True(t, window.IsOpen())

	// Zero lot/margin are left for the simulator factory to default.
	sc := cfg.StrategyConfig(domain.StrategyTypeMomentumReversal)
	assert.True(t, sc.LotSize.IsZero())
	assert.True(t, sc.ProfitMargin.IsZero())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "symbol: intc.us\n")

	t.Setenv("STRATLAB_SYMBOL", "nvda.us")
	t.Setenv("POSTGRES_DSN", "postgres://db/override")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "nvda.us", cfg.Symbol)
	assert.Equal(t, "postgres://db/override", cfg.Database.PostgresDSN)
}

func TestDateWindow_Invalid(t *testing.T) {
	path := writeConfig(t, `
simulation:
  window_start: "2021-12-31"
  window_end: "2020-01-01"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = cfg.DateWindow()
	assert.Error(t, err)
}

func TestDateWindow_BadFormat(t *testing.T) {
	path := writeConfig(t, `
simulation:
  window_start: "01/02/2020"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = cfg.DateWindow()
	assert.Error(t, err)
}
