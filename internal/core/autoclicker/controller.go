package autoclicker

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type Option func(*Controller)

func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func WithRand(r Rand) Option {
	return func(c *Controller) {
		if r != nil {
			c.rng = r
		}
	}
}

type session struct {
	id     uuid.UUID
	cancel context.CancelFunc
	done   chan struct{}
	clicks atomic.Uint64

	// stopping is set under Controller.mu once cancel has been called.
	stopping bool
}

// Controller runs at most one click loop at a time. Start and Stop are safe
// to call from any goroutine.
type Controller struct {
	cfg      Config
	injector Injector
	logger   Logger
	clock    clockwork.Clock

	// rng is only touched by the active loop goroutine; Stop waits for that
	// goroutine before another session can start.
	rng Rand

	mu     sync.Mutex
	active *session
	closed bool
	subs   map[chan RunState]struct{}

	clicks atomic.Uint64
}

func NewController(cfg Config, injector Injector, logger Logger, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if injector == nil {
		return nil, fmt.Errorf("injector is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	c := &Controller{
		cfg:      cfg,
		injector: injector,
		logger:   logger,
		clock:    clockwork.NewRealClock(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		subs:     make(map[chan RunState]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Start begins a click session. It reports false when one is already
// running or the controller is closed.
func (c *Controller) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.active != nil {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		id:     uuid.New(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.active = s
	go c.run(ctx, s)

	c.logger.Info("Clicking started",
		"session", s.id.String(),
		"min_cpm", c.cfg.MinCPM,
		"max_cpm", c.cfg.MaxCPM,
	)
	c.publishLocked(Running)
	return true
}

// Stop cancels the running session and returns once its loop has exited.
// It reports false when nothing was running or another Stop already owns
// the session. The lock is released while waiting; until the loop is gone
// State reports Running and Start reports false.
func (c *Controller) Stop() bool {
	c.mu.Lock()
	s := c.cancelLocked()
	c.mu.Unlock()

	if s == nil {
		return false
	}
	c.finishStop(s)
	return true
}

func (c *Controller) cancelLocked() *session {
	s := c.active
	if s == nil || s.stopping {
		return nil
	}
	s.stopping = true
	s.cancel()
	return s
}

func (c *Controller) finishStop(s *session) {
	<-s.done

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == s {
		c.active = nil
	}
	c.logger.Info("Clicking stopped", "session", s.id.String(), "clicks", s.clicks.Load())
	c.publishLocked(Stopped)
}

func (c *Controller) State() RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() RunState {
	if c.active != nil {
		return Running
	}
	return Stopped
}

// Clicks returns the number of presses injected over the controller's
// lifetime.
func (c *Controller) Clicks() uint64 {
	return c.clicks.Load()
}

// Subscribe returns a channel holding the latest state. The current state is
// delivered immediately; intermediate states may be coalesced. The channel
// is closed by the returned cancel func or by Close.
func (c *Controller) Subscribe() (<-chan RunState, func()) {
	ch := make(chan RunState, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		ch <- Stopped
		close(ch)
		return ch, func() {}
	}
	c.subs[ch] = struct{}{}
	ch <- c.stateLocked()
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[ch]; ok {
			delete(c.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (c *Controller) publishLocked(state RunState) {
	for ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- state
	}
}

// Close stops any session, releases subscribers and closes the injector.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	pending := c.active
	s := c.cancelLocked()
	c.mu.Unlock()

	switch {
	case s != nil:
		c.finishStop(s)
	case pending != nil:
		// A concurrent Stop owns the session; the injector must outlive it.
		<-pending.done
	}

	c.mu.Lock()
	for ch := range c.subs {
		delete(c.subs, ch)
		close(ch)
	}
	c.mu.Unlock()

	return c.injector.Close()
}

func (c *Controller) run(ctx context.Context, s *session) {
	defer close(s.done)
	for ctx.Err() == nil {
		if !c.iterate(ctx, s) {
			return
		}
	}
}

// iterate performs one click and the randomized wait after it. It reports
// false once cancellation has been observed.
func (c *Controller) iterate(ctx context.Context, s *session) (keepGoing bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Click iteration panicked", "session", s.id.String(), "panic", r)
			keepGoing = c.wait(ctx, c.cfg.PollInterval)
		}
	}()

	c.click(ctx, s)
	return c.wait(ctx, c.nextDelay())
}

// click presses, holds and releases the left button. The release is sent
// even when the hold is cut short by cancellation.
func (c *Controller) click(ctx context.Context, s *session) {
	pressErr := c.injector.WriteEvents(pressEvents...)
	if pressErr != nil {
		c.logger.Warn("Press injection failed", "session", s.id.String(), "err", pressErr)
	}

	c.wait(ctx, c.nextHold())

	if err := c.injector.WriteEvents(releaseEvents...); err != nil {
		c.logger.Warn("Release injection failed", "session", s.id.String(), "err", err)
	}
	if pressErr == nil {
		s.clicks.Add(1)
		c.clicks.Add(1)
	}
}

// wait sleeps for d in PollInterval increments and reports false as soon as
// ctx is cancelled.
func (c *Controller) wait(ctx context.Context, d time.Duration) bool {
	for d > 0 {
		step := min(d, c.cfg.PollInterval)
		select {
		case <-ctx.Done():
			return false
		case <-c.clock.After(step):
		}
		d -= step
	}
	return ctx.Err() == nil
}

func (c *Controller) nextDelay() time.Duration {
	return delayForRate(uniform(c.rng, c.cfg.MinCPM, c.cfg.MaxCPM))
}

func (c *Controller) nextHold() time.Duration {
	return time.Duration(uniform(c.rng, float64(c.cfg.HoldMin), float64(c.cfg.HoldMax)))
}

func delayForRate(cpm float64) time.Duration {
	return time.Duration(float64(time.Minute) / cpm)
}

func uniform(r Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
