package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justcode1234/AutoClicker/internal/core/autoclicker"
)

const (
	maxTUILogLines = 8
	tuiTick        = 250 * time.Millisecond
	tuiLogBuffer   = 64
)

var (
	colorAccent = lipgloss.Color("#5AB4FF")
	colorGray   = lipgloss.Color("#888888")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorRed    = lipgloss.Color("#FF6B6B")

	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	runningStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	stoppedStyle = lipgloss.NewStyle().
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	logStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			PaddingLeft(2)
)

type tuiKeyMap struct {
	Start key.Binding
	Stop  key.Binding
	Quit  key.Binding
}

func defaultTUIKeyMap() tuiKeyMap {
	return tuiKeyMap{
		Start: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start clicking")),
		Stop:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop clicking")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k tuiKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Quit}
}

func (k tuiKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// stateMsg carries a RunState published by the controller.
type stateMsg autoclicker.RunState

// stateClosedMsg signals the state subscription has closed.
type stateClosedMsg struct{}

type logLineMsg string

type tickMsg time.Time

type tuiModel struct {
	clicker clicker
	states  <-chan autoclicker.RunState
	logs    <-chan string
	keys    tuiKeyMap
	help    help.Model

	state     autoclicker.RunState
	clicks    uint64
	hotkeys   string
	hotkeyErr error
	logLines  []string
	quitting  bool
}

func newTUIModel(c clicker, states <-chan autoclicker.RunState, logs <-chan string, hotkeys string, hotkeyErr error) tuiModel {
	return tuiModel{
		clicker:   c,
		states:    states,
		logs:      logs,
		keys:      defaultTUIKeyMap(),
		help:      help.New(),
		state:     c.State(),
		hotkeys:   hotkeys,
		hotkeyErr: hotkeyErr,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(waitForState(m.states), waitForLog(m.logs), tickCmd())
}

func waitForState(ch <-chan autoclicker.RunState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return stateClosedMsg{}
		}
		return stateMsg(state)
	}
}

func waitForLog(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return logLineMsg(line)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tuiTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			c := m.clicker
			return m, func() tea.Msg {
				c.Start()
				return nil
			}
		case key.Matches(msg, m.keys.Stop):
			c := m.clicker
			// Stop blocks until the loop exits.
			return m, func() tea.Msg {
				c.Stop()
				return nil
			}
		}
		return m, nil

	case stateMsg:
		m.state = autoclicker.RunState(msg)
		return m, waitForState(m.states)

	case stateClosedMsg:
		m.state = autoclicker.Stopped
		return m, nil

	case logLineMsg:
		m.logLines = append(m.logLines, string(msg))
		if len(m.logLines) > maxTUILogLines {
			m.logLines = m.logLines[len(m.logLines)-maxTUILogLines:]
		}
		return m, waitForLog(m.logs)

	case tickMsg:
		m.clicks = m.clicker.Clicks()
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("AUTO CLICKER"))
	b.WriteString("\n\n")

	style := stoppedStyle
	if m.state == autoclicker.Running {
		style = runningStyle
	}
	b.WriteString(style.Render(statusText(m.state)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Clicks: %d\n", m.clicks)

	if m.hotkeyErr != nil {
		b.WriteString(errorStyle.Render(describeError(m.hotkeyErr)))
	} else {
		b.WriteString(hintStyle.Render(m.hotkeys))
	}
	b.WriteString("\n")

	if len(m.logLines) > 0 {
		b.WriteString("\n")
		for _, line := range m.logLines {
			b.WriteString(logStyle.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func runTUI(cfg config) (err error) {
	// The terminal belongs to bubbletea; logs go through the model.
	logCh := make(chan string, tuiLogBuffer)
	logger := newSlogLogger(cfg.logLevel, nil, func(line string) {
		select {
		case logCh <- line:
		default:
		}
	})

	coord, err := openCoordinator(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := coord.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	// A hook failure is reported in the view; s and x keep working.
	_ = coord.Open()
	states, unsubscribe := coord.Subscribe()
	defer unsubscribe()

	model := newTUIModel(coord, states, logCh, hotkeyHint(coord.Keys()), coord.HotkeysErr())
	_, err = tea.NewProgram(model).Run()
	return err
}
