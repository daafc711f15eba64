package autoclicker

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type recordingInjector struct {
	mu       sync.Mutex
	events   []Event
	writes   int
	closed   bool
	err      error
	panicsOn map[int]bool
}

func (r *recordingInjector) WriteEvents(events ...Event) error {
	r.mu.Lock()
	r.writes++
	n := r.writes
	shouldPanic := r.panicsOn[n]
	err := r.err
	if !shouldPanic {
		r.events = append(r.events, events...)
	}
	r.mu.Unlock()

	if shouldPanic {
		panic(fmt.Sprintf("injector exploded on write %d", n))
	}
	return err
}

func (r *recordingInjector) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordingInjector) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recordingInjector) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *recordingInjector) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
	warns  []string
}

func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Info(string, ...any)  {}

func (l *recordingLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Error(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

func (l *recordingLogger) warnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warns)
}

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// fastConfig clicks roughly every 0.1ms so real-clock tests see many
// iterations quickly.
func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.MinCPM = 600000
	cfg.MaxCPM = 600000
	cfg.HoldMin = 0
	cfg.HoldMax = 0
	cfg.PollInterval = time.Millisecond
	return cfg
}

func newTestController(t *testing.T, cfg Config, injector Injector, logger Logger, opts ...Option) *Controller {
	t.Helper()
	ctrl, err := NewController(cfg, injector, logger, opts...)
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	t.Cleanup(func() { _ = ctrl.Close() })
	return ctrl
}

func assertReleaseSuffix(t *testing.T, events []Event) {
	t.Helper()
	if len(events) < 2 {
		t.Fatalf("expected at least 2 events, got %d", len(events))
	}
	up := events[len(events)-2]
	syn := events[len(events)-1]
	if up != (Event{Type: EventTypeKey, Code: LeftButtonCode, Value: 0}) {
		t.Fatalf("unexpected release event: %#v", up)
	}
	if syn != (Event{Type: EventTypeSyn, Code: SynReportCode, Value: 0}) {
		t.Fatalf("unexpected sync event: %#v", syn)
	}
}

// gatedInjector blocks its first write until gate is closed.
type gatedInjector struct {
	recordingInjector
	entered chan struct{}
	gate    chan struct{}
	once    sync.Once
}

func newGatedInjector() *gatedInjector {
	return &gatedInjector{entered: make(chan struct{}), gate: make(chan struct{})}
}

func (g *gatedInjector) WriteEvents(events ...Event) error {
	g.once.Do(func() {
		close(g.entered)
		<-g.gate
	})
	return g.recordingInjector.WriteEvents(events...)
}

// stopPending reports whether a Stop has cancelled the active session and
// is waiting for its loop.
func stopPending(c *Controller) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil && c.active.stopping
}
