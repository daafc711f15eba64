package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/justcode1234/AutoClicker/internal/core/autoclicker"
	"github.com/justcode1234/AutoClicker/internal/core/keyhook"
)

var errHelpShown = errors.New("help shown")

type cliFlags struct {
	MinCPM      float64       `name:"min-cpm" help:"Lowest click rate in clicks per minute." default:"260"`
	MaxCPM      float64       `name:"max-cpm" help:"Highest click rate in clicks per minute." default:"280"`
	HoldMin     time.Duration `name:"hold-min" help:"Shortest time the button stays down." default:"10ms"`
	HoldMax     time.Duration `name:"hold-max" help:"Longest time the button stays down." default:"50ms"`
	Poll        time.Duration `name:"poll" help:"How often a waiting click loop checks for stop." default:"10ms"`
	StartKey    string        `name:"start-key" help:"Global hotkey that starts clicking." default:"KEY_1"`
	StopKey     string        `name:"stop-key" help:"Global hotkey that stops clicking." default:"KEY_2"`
	Backend     string        `name:"backend" help:"Input backend: auto, windows, x11, wayland or macos." default:"auto" enum:"auto,windows,x11,wayland,macos"`
	Device      string        `name:"device" help:"Keyboard event device for the wayland backend, e.g. /dev/input/event4. Auto-detected if omitted."`
	CLI         bool          `name:"cli" help:"Run in the terminal instead of opening a window."`
	ListDevices bool          `name:"list-devices" help:"Print available input devices and exit."`
	LogLevel    string        `name:"log-level" help:"Log verbosity: debug, info, warning or error." default:"info" env:"AUTOCLICKER_LOG_LEVEL"`
}

type config struct {
	clicker     autoclicker.Config
	backend     string
	devicePath  string
	cli         bool
	listDevices bool
	logLevel    slog.Level
}

// clicker is what the window and terminal shells drive.
type clicker interface {
	Start() bool
	Stop() bool
	State() autoclicker.RunState
	Clicks() uint64
	Subscribe() (<-chan autoclicker.RunState, func())
}

// inputBackend is one platform binding: it listens for key-downs and
// injects clicks.
type inputBackend interface {
	keyhook.Source
	autoclicker.Injector
}

type lineSinkWriter struct {
	sink  func(line string)
	mu    sync.Mutex
	lines bytes.Buffer
}

func (w *lineSinkWriter) Write(p []byte) (int, error) {
	if w.sink == nil {
		return len(p), nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	total := len(p)
	for len(p) > 0 {
		idx := bytes.IndexByte(p, '\n')
		if idx == -1 {
			_, _ = w.lines.Write(p)
			break
		}
		_, _ = w.lines.Write(p[:idx])
		line := strings.TrimSpace(w.lines.String())
		w.lines.Reset()
		if line != "" {
			w.sink(line)
		}
		p = p[idx+1:]
	}
	return total, nil
}

// newSlogLogger writes to console (when non-nil) and mirrors each line into
// sink (when non-nil).
func newSlogLogger(level slog.Level, console io.Writer, sink func(line string)) *slog.Logger {
	writers := make([]io.Writer, 0, 2)
	if console != nil {
		writers = append(writers, console)
	}
	if sink != nil {
		writers = append(writers, &lineSinkWriter{sink: sink})
	}

	out := io.Discard
	switch len(writers) {
	case 1:
		out = writers[0]
	case 2:
		out = io.MultiWriter(writers...)
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
}

func debugLogsEnabled() bool {
	return strings.TrimSpace(os.Getenv("DEBUG")) == "1"
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid --log-level %q (expected debug|info|warning|error)", value)
	}
}

func parseConfig(args []string, stdout io.Writer) (config, error) {
	var flags cliFlags
	helpShown := false
	parser, err := kong.New(&flags,
		kong.Name("autoclicker"),
		kong.Description("Clicks the left mouse button at a randomized rate. Start and stop with the buttons or global hotkeys."),
		kong.Writers(stdout, stdout),
		kong.Exit(func(int) { helpShown = true }),
	)
	if err != nil {
		return config{}, err
	}
	if _, err := parser.Parse(args); err != nil {
		return config{}, err
	}
	if helpShown {
		return config{}, errHelpShown
	}

	startKey, err := parseKey(flags.StartKey)
	if err != nil {
		return config{}, fmt.Errorf("--start-key: %w", err)
	}
	stopKey, err := parseKey(flags.StopKey)
	if err != nil {
		return config{}, fmt.Errorf("--stop-key: %w", err)
	}
	backend, err := parseBackendChoice(flags.Backend)
	if err != nil {
		return config{}, err
	}
	level, err := parseLogLevel(flags.LogLevel)
	if err != nil {
		return config{}, err
	}

	cfg := config{
		clicker: autoclicker.Config{
			MinCPM:       flags.MinCPM,
			MaxCPM:       flags.MaxCPM,
			HoldMin:      flags.HoldMin,
			HoldMax:      flags.HoldMax,
			PollInterval: flags.Poll,
			Keys:         autoclicker.KeyMap{Start: startKey, Stop: stopKey},
		},
		backend:     backend,
		devicePath:  flags.Device,
		cli:         flags.CLI,
		listDevices: flags.ListDevices,
		logLevel:    level,
	}
	if err := cfg.clicker.Validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES)
}

// describeError turns backend failures into something a user can act on.
func describeError(err error) string {
	if isPermissionError(err) {
		return permissionDeniedHint()
	}
	return err.Error()
}

// openCoordinator binds the platform backend to a controller and key hook.
// The caller owns the result and must Close it.
func openCoordinator(cfg config, logger *slog.Logger) (*autoclicker.Coordinator, error) {
	backend, err := openBackend(cfg, logger)
	if err != nil {
		return nil, err
	}

	ctrl, err := autoclicker.NewController(cfg.clicker, backend, logger)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	coord, err := autoclicker.NewCoordinator(ctrl, keyhook.New(backend), cfg.clicker.Keys, logger)
	if err != nil {
		_ = ctrl.Close()
		return nil, err
	}
	return coord, nil
}

func statusText(state autoclicker.RunState) string {
	if state == autoclicker.Running {
		return "Status: Clicking..."
	}
	return "Status: Stopped"
}

func hotkeyHint(keys autoclicker.KeyMap) string {
	return fmt.Sprintf("Press %s to start, %s to stop", formatKey(keys.Start), formatKey(keys.Stop))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stdout)
	if err != nil {
		if errors.Is(err, errHelpShown) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	if cfg.listDevices {
		if err := listInputDevices(cfg.backend, stdout); err != nil {
			fmt.Fprintln(stderr, describeError(err))
			return 1
		}
		return 0
	}

	if cfg.cli {
		err = runTUI(cfg)
	} else {
		err = runUI(cfg)
	}
	if err != nil {
		fmt.Fprintln(stderr, describeError(err))
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
