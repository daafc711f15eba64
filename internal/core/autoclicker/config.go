package autoclicker

import (
	"fmt"
	"math"
	"time"

	"github.com/justcode1234/AutoClicker/internal/core/keycode"
)

const (
	DefaultMinCPM       = 260.0
	DefaultMaxCPM       = 280.0
	DefaultHoldMin      = 10 * time.Millisecond
	DefaultHoldMax      = 50 * time.Millisecond
	DefaultPollInterval = 10 * time.Millisecond
)

type Config struct {
	// MinCPM and MaxCPM bound the click rate in clicks per minute; each
	// click samples a rate uniformly from the inclusive range.
	MinCPM float64
	MaxCPM float64

	HoldMin time.Duration
	HoldMax time.Duration

	// PollInterval is how often a waiting loop checks for cancellation.
	PollInterval time.Duration

	Keys KeyMap
}

func DefaultConfig() Config {
	return Config{
		MinCPM:       DefaultMinCPM,
		MaxCPM:       DefaultMaxCPM,
		HoldMin:      DefaultHoldMin,
		HoldMax:      DefaultHoldMax,
		PollInterval: DefaultPollInterval,
		Keys:         DefaultKeyMap(),
	}
}

func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.MinCPM) || math.IsInf(c.MinCPM, 0):
		return fmt.Errorf("%w: min cpm must be a finite number", ErrInvalidConfig)
	case math.IsNaN(c.MaxCPM) || math.IsInf(c.MaxCPM, 0):
		return fmt.Errorf("%w: max cpm must be a finite number", ErrInvalidConfig)
	case c.MinCPM <= 0:
		return fmt.Errorf("%w: min cpm must be > 0", ErrInvalidConfig)
	case float64(time.Minute)/c.MinCPM >= math.MaxInt64:
		return fmt.Errorf("%w: min cpm %g is too low to express as a delay", ErrInvalidConfig, c.MinCPM)
	case c.MaxCPM < c.MinCPM:
		return fmt.Errorf("%w: max cpm %.2f is below min cpm %.2f", ErrInvalidConfig, c.MaxCPM, c.MinCPM)
	case c.HoldMin < 0:
		return fmt.Errorf("%w: hold min must be >= 0", ErrInvalidConfig)
	case c.HoldMax < c.HoldMin:
		return fmt.Errorf("%w: hold max %s is below hold min %s", ErrInvalidConfig, c.HoldMax, c.HoldMin)
	case c.PollInterval <= 0:
		return fmt.Errorf("%w: poll interval must be > 0", ErrInvalidConfig)
	case c.Keys.Start == c.Keys.Stop:
		return fmt.Errorf("%w: start key %s must differ from stop key", ErrInvalidConfig, keycode.Format(c.Keys.Start))
	}
	return nil
}

// Action is what a key press asks the controller to do.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionStop
)

type KeyMap struct {
	Start uint16
	Stop  uint16
}

func DefaultKeyMap() KeyMap {
	return KeyMap{Start: keycode.Key1, Stop: keycode.Key2}
}

func (k KeyMap) Action(code uint16) Action {
	switch code {
	case k.Start:
		return ActionStart
	case k.Stop:
		return ActionStop
	default:
		return ActionNone
	}
}
