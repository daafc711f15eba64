// Package keyhook tracks the lifecycle of a process-wide key-down listener.
//
// A Source is the platform binding: it installs an OS hook and calls emit for
// every key-down anywhere on the system. Hook layers the Unhooked/Hooked
// state machine on top and guarantees that no callback runs after Stop.
package keyhook

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Source is implemented by each input backend. emit is called on the
// backend's dispatch thread and must be cheap; Uninstall must not return
// until the OS hook is gone.
type Source interface {
	Install(emit func(code uint16)) error
	Uninstall() error
}

// Callback receives key codes in Linux input-event numbering. It runs on
// the OS dispatch path and must not block.
type Callback func(code uint16)

type Hook struct {
	src Source

	mu     sync.Mutex
	hooked bool

	cb atomic.Pointer[Callback]
}

func New(src Source) *Hook {
	return &Hook{src: src}
}

// Start installs the OS hook. When already hooked it only swaps the
// callback.
func (h *Hook) Start(cb Callback) error {
	if cb == nil {
		return fmt.Errorf("keyhook: callback is nil")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.cb.Store(&cb)
	if h.hooked {
		return nil
	}
	if err := h.src.Install(h.deliver); err != nil {
		h.cb.Store(nil)
		return fmt.Errorf("keyhook: install: %w", err)
	}
	h.hooked = true
	return nil
}

// Stop removes the OS hook. It is a no-op when unhooked.
func (h *Hook) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.hooked {
		return nil
	}
	h.cb.Store(nil)
	h.hooked = false
	if err := h.src.Uninstall(); err != nil {
		return fmt.Errorf("keyhook: uninstall: %w", err)
	}
	return nil
}

func (h *Hook) Hooked() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hooked
}

func (h *Hook) deliver(code uint16) {
	if cb := h.cb.Load(); cb != nil {
		(*cb)(code)
	}
}
