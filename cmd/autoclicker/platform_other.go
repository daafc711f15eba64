//go:build !linux && !windows && !darwin

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

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
	if backend == "" || backend == "auto" {
		return "auto", nil
	}
	return "", fmt.Errorf("invalid --backend %q (unsupported platform)", value)
}

func listInputDevices(_ string, _ io.Writer) error {
	return fmt.Errorf("input device listing is not supported on this platform")
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend."
}

func openBackend(cfg config, logger *slog.Logger) (inputBackend, error) {
	return nil, fmt.Errorf("no input backend is available on this platform")
}
