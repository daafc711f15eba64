package autoclicker

import "errors"

var (
	// ErrClosed is returned by operations on a closed controller or coordinator.
	ErrClosed = errors.New("autoclicker closed")

	// ErrHotkeysUnavailable means the global key listener could not be
	// installed. Buttons keep working.
	ErrHotkeysUnavailable = errors.New("global hotkeys unavailable")

	// ErrInvalidConfig wraps every Config.Validate failure.
	ErrInvalidConfig = errors.New("invalid config")
)
