package autoclicker

import (
	"math"
	"testing"
	"time"

	"github.com/justcode1234/AutoClicker/internal/core/keycode"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 260.0, cfg.MinCPM)
	require.Equal(t, 280.0, cfg.MaxCPM)
	require.Equal(t, 10*time.Millisecond, cfg.HoldMin)
	require.Equal(t, 50*time.Millisecond, cfg.HoldMax)
	require.Equal(t, 10*time.Millisecond, cfg.PollInterval)
	require.Equal(t, KeyMap{Start: keycode.Key1, Stop: keycode.Key2}, cfg.Keys)
}

func TestValidateRejectsBadRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero min cpm", func(c *Config) { c.MinCPM = 0 }},
		{"negative min cpm", func(c *Config) { c.MinCPM = -5 }},
		{"nan min cpm", func(c *Config) { c.MinCPM = math.NaN() }},
		{"nan max cpm", func(c *Config) { c.MaxCPM = math.NaN() }},
		{"nan both", func(c *Config) { c.MinCPM, c.MaxCPM = math.NaN(), math.NaN() }},
		{"infinite rates", func(c *Config) { c.MinCPM, c.MaxCPM = math.Inf(1), math.Inf(1) }},
		{"infinite max cpm", func(c *Config) { c.MaxCPM = math.Inf(1) }},
		{"rate too low for a delay", func(c *Config) { c.MinCPM, c.MaxCPM = 1e-12, 1e-12 }},
		{"max below min", func(c *Config) { c.MaxCPM = c.MinCPM - 1 }},
		{"negative hold", func(c *Config) { c.HoldMin = -time.Millisecond }},
		{"hold max below min", func(c *Config) { c.HoldMax = c.HoldMin - time.Millisecond }},
		{"zero poll", func(c *Config) { c.PollInterval = 0 }},
		{"same keys", func(c *Config) { c.Keys.Stop = c.Keys.Start }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidatedRatesGivePositiveDelays(t *testing.T) {
	for _, cpm := range []float64{0.001, 1, 260, 280, 600000} {
		cfg := DefaultConfig()
		cfg.MinCPM, cfg.MaxCPM = cpm, cpm
		require.NoError(t, cfg.Validate(), "cpm %g", cpm)
		require.Positive(t, int64(delayForRate(cpm)), "cpm %g", cpm)
	}
}

func TestValidateAllowsFixedRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCPM = cfg.MinCPM
	cfg.HoldMax = cfg.HoldMin
	require.NoError(t, cfg.Validate())
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	require.Equal(t, ActionStart, keys.Action(keycode.Key1))
	require.Equal(t, ActionStop, keys.Action(keycode.Key2))
	require.Equal(t, ActionNone, keys.Action(keycode.Key3))
	require.Equal(t, ActionNone, keys.Action(keycode.KeyA))
}
