//go:build darwin

package hookinput

import (
	"fmt"
	"sync"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"

	"github.com/justcode1234/AutoClicker/internal/core/autoclicker"
)

// Backend listens through the global gohook event tap and clicks with
// robotgo. macOS asks for Accessibility permission on first use.
type Backend struct {
	logger autoclicker.Logger

	mu     sync.Mutex
	events chan hook.Event
	doneCh chan struct{}

	injectMu sync.Mutex
}

func NewBackend(logger autoclicker.Logger) (*Backend, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	return &Backend{logger: logger}, nil
}

func (b *Backend) Install(emit func(uint16)) error {
	if emit == nil {
		return fmt.Errorf("emit is nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.events != nil {
		return fmt.Errorf("event tap is already running")
	}

	b.events = hook.Start()
	b.doneCh = make(chan struct{})
	go b.readLoop(b.events, emit, b.doneCh)
	return nil
}

// Uninstall ends the event tap; hook.End closes the event channel, which
// stops readLoop.
func (b *Backend) Uninstall() error {
	b.mu.Lock()
	events, doneCh := b.events, b.doneCh
	b.events, b.doneCh = nil, nil
	b.mu.Unlock()

	if events == nil {
		return nil
	}
	hook.End()
	<-doneCh
	return nil
}

func (b *Backend) readLoop(events <-chan hook.Event, emit func(uint16), doneCh chan<- struct{}) {
	defer close(doneCh)
	for ev := range events {
		if ev.Kind != hook.KeyHold {
			continue
		}
		if code, ok := CodeFromRaw(ev.Rawcode); ok {
			emit(code)
		}
	}
}

func (b *Backend) WriteEvents(events ...autoclicker.Event) error {
	b.injectMu.Lock()
	defer b.injectMu.Unlock()

	for _, event := range events {
		if event.Type != autoclicker.EventTypeKey {
			continue
		}
		direction, ok := buttonAction(event.Code, event.Value)
		if !ok {
			continue
		}
		if err := robotgo.Toggle("left", direction); err != nil {
			return fmt.Errorf("toggle left %s: %w", direction, err)
		}
	}
	return nil
}

func (b *Backend) Close() error {
	return b.Uninstall()
}
