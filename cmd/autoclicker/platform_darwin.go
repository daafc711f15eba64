//go:build darwin

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/justcode1234/AutoClicker/internal/adapters/hookinput"
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
	case "auto", "macos":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (macOS supports auto|macos)", value)
	}
}

func listInputDevices(_ string, w io.Writer) error {
	fmt.Fprintln(w, "macos-global: macOS event tap")
	return nil
}

func permissionDeniedHint() string {
	return "Permission denied installing the event tap. Allow this app under System Settings > Privacy & Security > Accessibility."
}

func openBackend(cfg config, logger *slog.Logger) (inputBackend, error) {
	if cfg.devicePath != "" {
		logger.Warn("--device is ignored on macOS")
	}
	backend, err := hookinput.NewBackend(logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Backend", "name", "macos")
	return backend, nil
}
