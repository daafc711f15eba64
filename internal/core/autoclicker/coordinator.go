package autoclicker

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/justcode1234/AutoClicker/internal/core/keycode"
	"github.com/justcode1234/AutoClicker/internal/core/keyhook"
)

const keyEventBuffer = 64

// Coordinator owns the controller and the global key hook for the lifetime
// of the app. Hook callbacks only enqueue key codes; a single dispatcher
// goroutine turns them into Start/Stop calls, so controller state is never
// touched from the OS dispatch thread.
type Coordinator struct {
	ctrl   *Controller
	hook   *keyhook.Hook
	keys   KeyMap
	logger Logger

	events  chan uint16
	dropped atomic.Uint64

	mu      sync.Mutex
	opened  bool
	closed  bool
	hookErr error

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewCoordinator wires ctrl to hook. hook may be nil when the backend has no
// key listener; Open then reports ErrHotkeysUnavailable.
func NewCoordinator(ctrl *Controller, hook *keyhook.Hook, keys KeyMap, logger Logger) (*Coordinator, error) {
	if ctrl == nil {
		return nil, fmt.Errorf("controller is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if keys.Start == keys.Stop {
		return nil, fmt.Errorf("%w: start and stop keys are both %s", ErrInvalidConfig, keycode.Format(keys.Start))
	}
	return &Coordinator{
		ctrl:   ctrl,
		hook:   hook,
		keys:   keys,
		logger: logger,
		events: make(chan uint16, keyEventBuffer),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}, nil
}

// Open starts the dispatcher and installs the key hook. A hook failure is
// logged and returned wrapped in ErrHotkeysUnavailable; the coordinator
// stays usable through Start and Stop.
func (c *Coordinator) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.opened {
		return c.hookErr
	}
	c.opened = true
	go c.dispatch()

	if c.hook == nil {
		c.hookErr = fmt.Errorf("%w: backend has no key listener", ErrHotkeysUnavailable)
		c.logger.Warn("Global hotkeys unavailable; use the buttons", "err", c.hookErr)
		return c.hookErr
	}
	if err := c.hook.Start(c.enqueue); err != nil {
		c.hookErr = fmt.Errorf("%w: %w", ErrHotkeysUnavailable, err)
		c.logger.Warn("Global hotkeys unavailable; use the buttons", "err", err)
		return c.hookErr
	}

	c.logger.Info("Global hotkeys installed",
		"start", keycode.Format(c.keys.Start),
		"stop", keycode.Format(c.keys.Stop),
	)
	return nil
}

// HotkeysErr returns the error from installing the hook, if any.
func (c *Coordinator) HotkeysErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hookErr
}

func (c *Coordinator) Keys() KeyMap {
	return c.keys
}

func (c *Coordinator) Start() bool {
	return c.ctrl.Start()
}

func (c *Coordinator) Stop() bool {
	return c.ctrl.Stop()
}

func (c *Coordinator) State() RunState {
	return c.ctrl.State()
}

func (c *Coordinator) Clicks() uint64 {
	return c.ctrl.Clicks()
}

func (c *Coordinator) Subscribe() (<-chan RunState, func()) {
	return c.ctrl.Subscribe()
}

// Close removes the hook, drains the dispatcher and closes the controller.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	opened := c.opened
	c.mu.Unlock()

	if c.hook != nil {
		if err := c.hook.Stop(); err != nil {
			c.logger.Warn("Failed to remove key hook", "err", err)
		}
	}
	if opened {
		close(c.stopCh)
		<-c.doneCh
	}
	if n := c.dropped.Load(); n > 0 {
		c.logger.Warn("Dropped key events while dispatcher was busy", "count", n)
	}
	return c.ctrl.Close()
}

func (c *Coordinator) enqueue(code uint16) {
	select {
	case c.events <- code:
	default:
		c.dropped.Add(1)
	}
}

func (c *Coordinator) dispatch() {
	defer close(c.doneCh)
	for {
		select {
		case <-c.stopCh:
			return
		case code := <-c.events:
			c.handleKey(code)
		}
	}
}

func (c *Coordinator) handleKey(code uint16) Action {
	action := c.keys.Action(code)
	switch action {
	case ActionStart:
		if c.ctrl.Start() {
			c.logger.Debug("Start hotkey", "key", keycode.Format(code))
		}
	case ActionStop:
		if c.ctrl.Stop() {
			c.logger.Debug("Stop hotkey", "key", keycode.Format(code))
		}
	}
	return action
}
