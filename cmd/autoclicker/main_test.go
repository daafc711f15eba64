package main

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/justcode1234/AutoClicker/internal/core/autoclicker"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(nil, &bytes.Buffer{})
	require.NoError(t, err)

	require.Equal(t, autoclicker.DefaultConfig(), cfg.clicker)
	require.Equal(t, "auto", cfg.backend)
	require.Equal(t, slog.LevelInfo, cfg.logLevel)
	require.False(t, cfg.cli)
	require.False(t, cfg.listDevices)
	require.Empty(t, cfg.devicePath)
}

func TestParseConfigOverrides(t *testing.T) {
	cfg, err := parseConfig([]string{
		"--min-cpm=100", "--max-cpm=120",
		"--hold-min=5ms", "--hold-max=20ms",
		"--poll=20ms",
		"--start-key=KEY_F8", "--stop-key=key_f9",
		"--cli", "--log-level=debug",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	require.Equal(t, 100.0, cfg.clicker.MinCPM)
	require.Equal(t, 120.0, cfg.clicker.MaxCPM)
	require.Equal(t, 5*time.Millisecond, cfg.clicker.HoldMin)
	require.Equal(t, 20*time.Millisecond, cfg.clicker.HoldMax)
	require.Equal(t, 20*time.Millisecond, cfg.clicker.PollInterval)
	require.Equal(t, "KEY_F8", formatKey(cfg.clicker.Keys.Start))
	require.Equal(t, "KEY_F9", formatKey(cfg.clicker.Keys.Stop))
	require.True(t, cfg.cli)
	require.Equal(t, slog.LevelDebug, cfg.logLevel)
}

func TestParseConfigLogLevelFromEnv(t *testing.T) {
	t.Setenv("AUTOCLICKER_LOG_LEVEL", "warning")

	cfg, err := parseConfig(nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, cfg.logLevel)
}

func TestParseConfigRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown start key", []string{"--start-key=KEY_NOPE"}},
		{"same keys", []string{"--start-key=KEY_3", "--stop-key=KEY_3"}},
		{"inverted rate", []string{"--min-cpm=300", "--max-cpm=200"}},
		{"nan min rate", []string{"--min-cpm=NaN"}},
		{"nan rates", []string{"--min-cpm=NaN", "--max-cpm=NaN"}},
		{"infinite rates", []string{"--min-cpm=+Inf", "--max-cpm=+Inf"}},
		{"rate too low for a delay", []string{"--min-cpm=1e-12", "--max-cpm=1e-12"}},
		{"zero poll", []string{"--poll=0s"}},
		{"unknown backend", []string{"--backend=bogus"}},
		{"unknown log level", []string{"--log-level=loud"}},
		{"unknown flag", []string{"--turbo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(tt.args, &bytes.Buffer{})
			require.Error(t, err)
		})
	}
}

func TestParseConfigRangeErrorsAreInvalidConfig(t *testing.T) {
	_, err := parseConfig([]string{"--hold-min=60ms", "--hold-max=10ms"}, &bytes.Buffer{})
	require.ErrorIs(t, err, autoclicker.ErrInvalidConfig)
}

func TestParseConfigHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := parseConfig([]string{"--help"}, &out)
	require.True(t, errors.Is(err, errHelpShown), "err = %v", err)
	require.Contains(t, out.String(), "--min-cpm")
	require.Contains(t, out.String(), "--start-key")
}

func TestRunHelpExitsZero(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"--help"}, &stdout, &stderr))
	require.Empty(t, stderr.String())
}

func TestRunBadFlagExitsTwo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 2, run([]string{"--min-cpm=-1"}, &stdout, &stderr))
	require.NotEmpty(t, stderr.String())
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := parseLogLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := parseLogLevel("trace")
	require.Error(t, err)
}

func TestLineSinkWriterSplitsLines(t *testing.T) {
	var got []string
	w := &lineSinkWriter{sink: func(line string) { got = append(got, line) }}

	_, _ = w.Write([]byte("first li"))
	require.Empty(t, got)

	_, _ = w.Write([]byte("ne\nsecond\n\n  third  \npartial"))
	require.Equal(t, []string{"first line", "second", "third"}, got)
}

func TestLineSinkWriterWithoutSink(t *testing.T) {
	w := &lineSinkWriter{}
	n, err := w.Write([]byte("ignored\n"))
	require.NoError(t, err)
	require.Equal(t, len("ignored\n"), n)
}

func TestNewSlogLoggerMirrorsToSink(t *testing.T) {
	var (
		mu    sync.Mutex
		lines []string
	)
	var console bytes.Buffer
	logger := newSlogLogger(slog.LevelInfo, &console, func(line string) {
		mu.Lock()
		lines = append(lines, line)
		mu.Unlock()
	})

	logger.Debug("hidden")
	logger.Info("Clicking started", "session", "abc")

	require.Contains(t, console.String(), "Clicking started")
	require.NotContains(t, console.String(), "hidden")
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "session=abc")
}

func TestStatusText(t *testing.T) {
	require.Equal(t, "Status: Stopped", statusText(autoclicker.Stopped))
	require.Equal(t, "Status: Clicking...", statusText(autoclicker.Running))
}

func TestHotkeyHint(t *testing.T) {
	require.Equal(t, "Press KEY_1 to start, KEY_2 to stop", hotkeyHint(autoclicker.DefaultKeyMap()))
}

func TestDescribeErrorPermission(t *testing.T) {
	err := &os.PathError{Op: "open", Path: "/dev/uinput", Err: os.ErrPermission}
	require.Equal(t, permissionDeniedHint(), describeError(err))

	other := errors.New("no display")
	require.Equal(t, "no display", describeError(other))
	require.False(t, strings.Contains(describeError(other), "Permission"))
}
