//go:build linux

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/justcode1234/AutoClicker/internal/adapters/linuxinput"
	"github.com/justcode1234/AutoClicker/internal/adapters/x11input"
)

func parseKey(value string) (uint16, error) {
	return linuxinput.ParseCode(value)
}

func formatKey(code uint16) string {
	return linuxinput.FormatCodeName(code)
}

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "wayland", "x11":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (linux supports auto|wayland|x11)", value)
	}
}

func listInputDevices(backend string, w io.Writer) error {
	switch resolveLinuxBackend(backend) {
	case "x11":
		devices, err := x11input.ListInputDevices()
		if err != nil {
			return err
		}
		for _, dev := range devices {
			fmt.Fprintf(w, "%s: %s\n", dev.Path, dev.Name)
		}
		return nil
	default:
		devices, err := linuxinput.ListInputDevices()
		if err != nil {
			return err
		}
		for _, dev := range devices {
			virtualTag := "physical"
			if dev.IsVirtual {
				virtualTag = "virtual"
			}
			kindTag := "other"
			switch {
			case dev.IsKeyboard:
				kindTag = "keyboard"
			case dev.IsPointer:
				kindTag = "pointer"
			}
			fmt.Fprintf(w, "%s: %s [%s, %s]\n", dev.Path, dev.Name, virtualTag, kindTag)
		}
		return nil
	}
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend. On Wayland use root/udev rules for /dev/input + /dev/uinput. On X11 ensure an active X11 session and DISPLAY is set."
}

func openBackend(cfg config, logger *slog.Logger) (inputBackend, error) {
	switch resolveLinuxBackend(cfg.backend) {
	case "x11":
		if cfg.devicePath != "" {
			logger.Warn("--device is ignored on X11 backend")
		}
		backend, err := x11input.NewBackend(cfg.clicker.PollInterval, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Backend", "name", "x11")
		return backend, nil
	default:
		keys := []uint16{cfg.clicker.Keys.Start, cfg.clicker.Keys.Stop}
		backend, err := linuxinput.NewBackend(cfg.devicePath, keys, cfg.clicker.PollInterval, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Backend", "name", "wayland")
		return backend, nil
	}
}

func resolveLinuxBackend(configured string) string {
	choice := strings.ToLower(strings.TrimSpace(configured))
	if choice == "" {
		choice = "auto"
	}
	if choice != "auto" {
		return choice
	}

	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	switch sessionType {
	case "wayland":
		return "wayland"
	case "x11":
		return "x11"
	}

	if strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) != "" {
		return "wayland"
	}
	if strings.TrimSpace(os.Getenv("DISPLAY")) != "" {
		return "x11"
	}
	return "wayland"
}
