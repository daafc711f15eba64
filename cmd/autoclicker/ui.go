package main

import (
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/justcode1234/AutoClicker/internal/core/autoclicker"
)

const (
	maxUILogLines   = 50
	clicksRefreshUI = 250 * time.Millisecond
)

type clickerTheme struct {
	base fyne.Theme
}

func newClickerTheme() fyne.Theme {
	return &clickerTheme{base: theme.DarkTheme()}
}

func (t *clickerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0x0d, G: 0x10, B: 0x14, A: 0xff}
	case theme.ColorNameHeaderBackground:
		return color.NRGBA{R: 0x12, G: 0x16, B: 0x1c, A: 0xff}
	case theme.ColorNameButton:
		return color.NRGBA{R: 0x1d, G: 0x23, B: 0x2c, A: 0xff}
	case theme.ColorNameDisabledButton:
		return color.NRGBA{R: 0x16, G: 0x1a, B: 0x20, A: 0xff}
	case theme.ColorNameSeparator:
		return color.NRGBA{R: 0x2b, G: 0x33, B: 0x40, A: 0xff}
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x5a, G: 0xb4, B: 0xff, A: 0xff}
	case theme.ColorNameHover:
		return color.NRGBA{R: 0x5a, G: 0xb4, B: 0xff, A: 0x22}
	case theme.ColorNamePressed:
		return color.NRGBA{R: 0x5a, G: 0xb4, B: 0xff, A: 0x40}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0xf2, G: 0xf4, B: 0xf8, A: 0xff}
	case theme.ColorNameError:
		return color.NRGBA{R: 0xff, G: 0x82, B: 0x82, A: 0xff}
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 0x7f, G: 0xd4, B: 0xa8, A: 0xff}
	}
	return t.base.Color(name, variant)
}

func (t *clickerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *clickerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *clickerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding, theme.SizeNameInnerPadding:
		return 8
	}
	return t.base.Size(name)
}

// logPanel keeps the last maxUILogLines log lines for the DEBUG=1 view.
type logPanel struct {
	grid   *widget.TextGrid
	scroll *container.Scroll

	mu    sync.Mutex
	lines []string
}

func newLogPanel() *logPanel {
	grid := widget.NewTextGrid()
	scroll := container.NewVScroll(grid)
	scroll.SetMinSize(fyne.NewSize(0, 150))
	return &logPanel{grid: grid, scroll: scroll, lines: make([]string, 0, maxUILogLines)}
}

func (p *logPanel) append(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	p.mu.Lock()
	p.lines = append(p.lines, line)
	if len(p.lines) > maxUILogLines {
		p.lines = p.lines[len(p.lines)-maxUILogLines:]
	}
	text := strings.Join(p.lines, "\n")
	p.mu.Unlock()

	fyne.Do(func() {
		p.grid.SetText(text)
		p.scroll.ScrollToBottom()
	})
}

func runUI(cfg config) error {
	fApp := app.New()
	fApp.Settings().SetTheme(newClickerTheme())

	window := fApp.NewWindow("Auto Clicker")
	window.Resize(fyne.NewSize(420, 260))
	window.SetFixedSize(true)
	window.CenterOnScreen()

	debugLogs := debugLogsEnabled()
	logs := newLogPanel()
	var sink func(string)
	if debugLogs {
		sink = logs.append
	}
	logger := newSlogLogger(cfg.logLevel, os.Stderr, sink)

	statusLabel := widget.NewLabel(statusText(autoclicker.Stopped))
	statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	clicksLabel := widget.NewLabel("Clicks: 0")
	hotkeyLabel := widget.NewLabel(hotkeyHint(cfg.clicker.Keys))
	errorText := canvas.NewText("", theme.Color(theme.ColorNameError))
	initProgress := widget.NewProgressBarInfinite()

	startBtn := widget.NewButton("Start Clicking", nil)
	startBtn.Importance = widget.HighImportance
	stopBtn := widget.NewButton("Stop Clicking", nil)
	startBtn.Disable()
	stopBtn.Disable()

	showError := func(text string) {
		errorText.Text = text
		errorText.Refresh()
	}

	applyState := func(state autoclicker.RunState) {
		statusLabel.SetText(statusText(state))
		if state == autoclicker.Running {
			startBtn.Disable()
			stopBtn.Enable()
			return
		}
		startBtn.Enable()
		stopBtn.Disable()
	}

	var (
		stateMu sync.Mutex
		coord   *autoclicker.Coordinator
		closing bool
	)
	stopCh := make(chan struct{})

	current := func() *autoclicker.Coordinator {
		stateMu.Lock()
		defer stateMu.Unlock()
		return coord
	}

	startBtn.OnTapped = func() {
		if c := current(); c != nil {
			c.Start()
		}
	}
	stopBtn.OnTapped = func() {
		if c := current(); c != nil {
			// Stop waits for the loop to exit; keep the UI thread free.
			go c.Stop()
		}
	}

	watch := func(c *autoclicker.Coordinator) {
		states, unsubscribe := c.Subscribe()
		defer unsubscribe()
		for state := range states {
			fyne.Do(func() { applyState(state) })
		}
	}

	refreshClicks := func(c *autoclicker.Coordinator) {
		ticker := time.NewTicker(clicksRefreshUI)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				n := c.Clicks()
				fyne.Do(func() { clicksLabel.SetText(fmt.Sprintf("Clicks: %d", n)) })
			}
		}
	}

	var closeOnce sync.Once
	cleanup := func() {
		closeOnce.Do(func() {
			close(stopCh)
			stateMu.Lock()
			closing = true
			c := coord
			stateMu.Unlock()
			if c != nil {
				if err := c.Close(); err != nil {
					logger.Warn("Close failed", "err", err)
				}
			}
		})
	}

	go func() {
		logger.Info("Initializing input backend...")
		c, err := openCoordinator(cfg, logger)
		if err != nil {
			logger.Error("Backend unavailable", "err", err)
			fyne.Do(func() {
				initProgress.Hide()
				showError(describeError(err))
			})
			return
		}
		_ = c.Open()

		stateMu.Lock()
		if closing {
			stateMu.Unlock()
			_ = c.Close()
			return
		}
		coord = c
		stateMu.Unlock()

		go watch(c)
		go refreshClicks(c)

		fyne.Do(func() {
			initProgress.Hide()
			if err := c.HotkeysErr(); err != nil {
				hotkeyLabel.SetText("Hotkeys unavailable; use the buttons")
				showError(describeError(err))
				return
			}
			hotkeyLabel.SetText(hotkeyHint(c.Keys()))
		})
		logger.Info("Initialization complete")
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	quit := func() {
		cleanup()
		if currentApp := fyne.CurrentApp(); currentApp != nil {
			currentApp.Quit()
			return
		}
		window.SetCloseIntercept(nil)
		window.Close()
	}
	requestQuit := func() {
		fyne.Do(quit)
	}

	go func() {
		select {
		case <-sigCh:
			requestQuit()
		case <-stopCh:
		}
	}()

	// Some GUI backends can leave Ctrl+C as raw ETX byte instead of SIGINT.
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 1 && buf[0] == 3 {
				requestQuit()
				return
			}
		}
	}()

	window.SetCloseIntercept(quit)

	titleText := canvas.NewText("AUTO CLICKER", color.NRGBA{R: 0x5a, G: 0xb4, B: 0xff, A: 0xff})
	titleText.TextStyle = fyne.TextStyle{Bold: true}
	titleText.TextSize = 26

	accentLine := canvas.NewRectangle(color.NRGBA{R: 0x5a, G: 0xb4, B: 0xff, A: 0xff})
	accentLine.SetMinSize(fyne.NewSize(180, 3))

	mainContent := container.NewVBox(
		titleText,
		accentLine,
		container.NewGridWithColumns(2, startBtn, stopBtn),
		statusLabel,
		clicksLabel,
		hotkeyLabel,
		errorText,
		initProgress,
	)
	mainPanel := container.NewPadded(mainContent)

	var rootContent fyne.CanvasObject = mainPanel
	if debugLogs {
		window.Resize(fyne.NewSize(560, 460))
		logsCard := widget.NewCard("Logs", "", logs.scroll)
		split := container.NewVSplit(mainPanel, logsCard)
		split.SetOffset(0.6)
		rootContent = split
	}

	window.SetContent(rootContent)
	window.ShowAndRun()
	cleanup()
	return nil
}
