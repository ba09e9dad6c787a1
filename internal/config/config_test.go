package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	content := `
app:
  log_level: "debug"
  seed: 42
engine:
  combinations: 3
params:
  recent_weight: 0.4
  risk_level: 0.8
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, int64(42), cfg.App.Seed)
	assert.Equal(t, 3, cfg.Engine.Combinations)
	assert.Equal(t, 0.4, cfg.Params.RecentWeight)
	// 未覆盖的字段保持默认值
	assert.Equal(t, 0.7, cfg.Params.HotRatio)
	assert.Equal(t, "euromillions", cfg.Game.Name)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidateRejectsOutOfRangeParams(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"recent_weight", func(c *Config) { c.Params.RecentWeight = 1.5 }},
		{"hot_ratio", func(c *Config) { c.Params.HotRatio = -0.1 }},
		{"lookback_period", func(c *Config) { c.Params.LookbackPeriod = 5 }},
		{"strata_type", func(c *Config) { c.Params.StrataType = "zodiac" }},
		{"balance_factor", func(c *Config) { c.Params.BalanceFactor = 2 }},
		{"risk_level", func(c *Config) { c.Params.RiskLevel = 11 }},
		{"recent_draws_count", func(c *Config) { c.Params.RecentDrawsCount = 60 }},
		{"prior_type", func(c *Config) { c.Params.PriorType = "jeffreys" }},
		{"update_method", func(c *Config) { c.Params.UpdateMethod = "batch" }},
		{"lag", func(c *Config) { c.Params.Lag = 6 }},
		{"window_size", func(c *Config) { c.Params.WindowSize = 31 }},
		{"combinations", func(c *Config) { c.Engine.Combinations = 0 }},
		{"strategies", func(c *Config) { c.Engine.Strategies = nil }},
		{"number_cap", func(c *Config) { c.Engine.Fusion.NumberCap = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNormalizedRiskLevelDualScale(t *testing.T) {
	p := Params{RiskLevel: 5}
	assert.InDelta(t, 0.5, p.NormalizedRiskLevel(), 1e-9)

	p.RiskLevel = 0.5
	assert.InDelta(t, 0.5, p.NormalizedRiskLevel(), 1e-9)

	p.RiskLevel = 10
	assert.InDelta(t, 1.0, p.NormalizedRiskLevel(), 1e-9)

	p.RiskLevel = 1
	assert.InDelta(t, 1.0, p.NormalizedRiskLevel(), 1e-9)
}
