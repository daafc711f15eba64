//go:build windows

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/justcode1234/AutoClicker/internal/adapters/wininput"
	"github.com/justcode1234/AutoClicker/internal/core/keycode"
)

func parseKey(value string) (uint16, error) {
	return keycode.Parse(value)
}

func formatKey(code uint16) string {
	return keycode.Format(code)
}

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "windows":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (windows supports auto|windows)", value)
	}
}

func listInputDevices(_ string, w io.Writer) error {
	devices, err := wininput.ListInputDevices()
	if err != nil {
		return err
	}
	for _, dev := range devices {
		fmt.Fprintf(w, "%s: %s\n", dev.Path, dev.Name)
	}
	return nil
}

func permissionDeniedHint() string {
	return "Permission denied registering the global keyboard hook. Run as Administrator and ensure input hooking is allowed."
}

func openBackend(cfg config, logger *slog.Logger) (inputBackend, error) {
	if cfg.devicePath != "" {
		logger.Warn("--device is ignored on Windows; using the global keyboard hook")
	}
	backend, err := wininput.NewBackend(logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Input mode", "mode", "windows-global-hooks")
	return backend, nil
}
