package autoclicker

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func clickEvents() []Event {
	return append(append([]Event{}, pressEvents...), releaseEvents...)
}

// step waits for the loop to park on the fake clock, then releases one
// poll increment.
func step(t *testing.T, clock *clockwork.FakeClock, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1), "loop never waited on the clock")
	clock.Advance(d)
}

func TestStartStopIdempotent(t *testing.T) {
	ctrl := newTestController(t, DefaultConfig(), &recordingInjector{}, noopLogger{})

	require.False(t, ctrl.Stop(), "stop while stopped must be a no-op")
	require.Equal(t, Stopped, ctrl.State())

	require.True(t, ctrl.Start())
	require.False(t, ctrl.Start(), "second start must be ignored")
	require.Equal(t, Running, ctrl.State())

	require.True(t, ctrl.Stop())
	require.False(t, ctrl.Stop())
	require.Equal(t, Stopped, ctrl.State())
}

func TestRandomStartStopSequencesEndInLastRequestedState(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for seq := 0; seq < 20; seq++ {
		ctrl, err := NewController(fastConfig(), &recordingInjector{}, noopLogger{})
		require.NoError(t, err)

		want := Stopped
		for i := 0; i < 25; i++ {
			if rng.Intn(2) == 0 {
				require.Equal(t, want == Stopped, ctrl.Start())
				want = Running
			} else {
				require.Equal(t, want == Running, ctrl.Stop())
				want = Stopped
			}
			require.Equal(t, want, ctrl.State())
		}
		require.NoError(t, ctrl.Close())
	}
}

func TestStartFivePollsThenStopCompletesOneClick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	injector := &recordingInjector{}
	cfg := DefaultConfig()
	ctrl := newTestController(t, cfg, injector, noopLogger{}, WithClock(clock), WithRand(fixedRand(0)))

	require.True(t, ctrl.Start())

	step(t, clock, cfg.HoldMin)
	for i := 0; i < 5; i++ {
		step(t, clock, cfg.PollInterval)
	}

	require.True(t, ctrl.Stop())
	require.Equal(t, Stopped, ctrl.State())
	require.Equal(t, uint64(1), ctrl.Clicks())
	require.Equal(t, clickEvents(), injector.snapshot())
}

func TestNoClickAfterStop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	injector := &recordingInjector{}
	cfg := DefaultConfig()
	ctrl := newTestController(t, cfg, injector, noopLogger{}, WithClock(clock), WithRand(fixedRand(0)))

	require.True(t, ctrl.Start())
	step(t, clock, cfg.HoldMin)
	step(t, clock, cfg.PollInterval)

	stoppedAt := clock.Now()
	require.True(t, ctrl.Stop())
	require.LessOrEqual(t, clock.Since(stoppedAt), cfg.PollInterval)

	before := injector.snapshot()
	for i := 0; i < 100; i++ {
		clock.Advance(cfg.PollInterval)
	}
	require.Equal(t, before, injector.snapshot())
}

func TestStopDuringHoldStillReleases(t *testing.T) {
	clock := clockwork.NewFakeClock()
	injector := &recordingInjector{}
	ctrl := newTestController(t, DefaultConfig(), injector, noopLogger{}, WithClock(clock), WithRand(fixedRand(0.5)))

	require.True(t, ctrl.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	require.True(t, ctrl.Stop())
	require.Equal(t, clickEvents(), injector.snapshot())
}

func TestSecondClickFollowsSampledDelay(t *testing.T) {
	clock := clockwork.NewFakeClock()
	injector := &recordingInjector{}
	cfg := DefaultConfig()
	ctrl := newTestController(t, cfg, injector, noopLogger{}, WithClock(clock), WithRand(fixedRand(0)))

	require.True(t, ctrl.Start())
	step(t, clock, cfg.HoldMin)

	// 60000ms / 260 = 230.77ms: 23 full increments and a short remainder.
	delay := delayForRate(cfg.MinCPM)
	steps := int(delay / cfg.PollInterval)
	for i := 0; i < steps; i++ {
		step(t, clock, cfg.PollInterval)
	}
	require.Equal(t, 2, injector.writeCount(), "second press must wait for the remainder")

	step(t, clock, delay-time.Duration(steps)*cfg.PollInterval)
	require.Eventually(t, func() bool { return injector.writeCount() >= 3 }, time.Second, time.Millisecond)

	require.True(t, ctrl.Stop())
	require.Equal(t, uint64(2), ctrl.Clicks())
}

func TestSampledDelaysStayWithinRateRange(t *testing.T) {
	cfg := DefaultConfig()
	ctrl := newTestController(t, cfg, &recordingInjector{}, noopLogger{}, WithRand(rand.New(rand.NewSource(7))))

	lo := delayForRate(cfg.MaxCPM)
	hi := delayForRate(cfg.MinCPM)
	require.Equal(t, time.Duration(214285714), lo)
	require.Equal(t, time.Duration(230769230), hi)

	for i := 0; i < 10000; i++ {
		d := ctrl.nextDelay()
		require.GreaterOrEqual(t, d, lo)
		require.LessOrEqual(t, d, hi)

		hold := ctrl.nextHold()
		require.GreaterOrEqual(t, hold, cfg.HoldMin)
		require.LessOrEqual(t, hold, cfg.HoldMax)
	}
}

func TestSampledDelayBoundsAtRandExtremes(t *testing.T) {
	cfg := DefaultConfig()

	low := newTestController(t, cfg, &recordingInjector{}, noopLogger{}, WithRand(fixedRand(0)))
	require.Equal(t, delayForRate(cfg.MinCPM), low.nextDelay())
	require.Equal(t, cfg.HoldMin, low.nextHold())

	high := newTestController(t, cfg, &recordingInjector{}, noopLogger{}, WithRand(fixedRand(0.999999)))
	require.InDelta(t, float64(delayForRate(cfg.MaxCPM)), float64(high.nextDelay()), float64(time.Microsecond))
}

func TestInjectionErrorsDoNotEndLoop(t *testing.T) {
	injector := &recordingInjector{err: errors.New("SendInput refused")}
	logger := &recordingLogger{}
	ctrl := newTestController(t, fastConfig(), injector, logger)

	require.True(t, ctrl.Start())
	require.Eventually(t, func() bool { return injector.writeCount() >= 10 }, 2*time.Second, time.Millisecond)
	require.Equal(t, Running, ctrl.State())
	require.True(t, ctrl.Stop())

	require.Zero(t, ctrl.Clicks(), "failed presses are not counted")
	require.Positive(t, logger.warnCount())
}

func TestPanicInIterationIsLoggedAndLoopContinues(t *testing.T) {
	injector := &recordingInjector{panicsOn: map[int]bool{1: true}}
	logger := &recordingLogger{}
	ctrl := newTestController(t, fastConfig(), injector, logger)

	require.True(t, ctrl.Start())
	require.Eventually(t, func() bool { return ctrl.Clicks() >= 3 }, 2*time.Second, time.Millisecond)
	require.True(t, ctrl.Stop())
	require.Equal(t, 1, logger.errorCount())
}

func TestCloseReleasesBeforeClosingInjector(t *testing.T) {
	injector := &recordingInjector{}
	ctrl, err := NewController(fastConfig(), injector, noopLogger{})
	require.NoError(t, err)

	require.True(t, ctrl.Start())
	require.Eventually(t, func() bool { return ctrl.Clicks() >= 1 }, 2*time.Second, time.Millisecond)

	require.NoError(t, ctrl.Close())
	require.True(t, injector.isClosed())
	assertReleaseSuffix(t, injector.snapshot())

	require.False(t, ctrl.Start(), "start after close must be ignored")
	require.Equal(t, Stopped, ctrl.State())
	require.NoError(t, ctrl.Close())
}

func TestSubscribeSeesTransitions(t *testing.T) {
	ctrl := newTestController(t, DefaultConfig(), &recordingInjector{}, noopLogger{})

	states, cancel := ctrl.Subscribe()
	defer cancel()
	require.Equal(t, Stopped, <-states)

	ctrl.Start()
	require.Equal(t, Running, <-states)

	ctrl.Stop()
	require.Equal(t, Stopped, <-states)

	// No-op calls publish nothing.
	ctrl.Stop()
	select {
	case s := <-states:
		t.Fatalf("unexpected state %s after no-op stop", s)
	default:
	}
}

func TestSubscribeChannelClosedOnClose(t *testing.T) {
	ctrl, err := NewController(DefaultConfig(), &recordingInjector{}, noopLogger{})
	require.NoError(t, err)

	states, cancel := ctrl.Subscribe()
	<-states
	require.NoError(t, ctrl.Close())

	_, ok := <-states
	require.False(t, ok)
	cancel()
}

func TestNewControllerValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCPM = cfg.MinCPM - 1
	_, err := NewController(cfg, &recordingInjector{}, noopLogger{})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewController(DefaultConfig(), nil, noopLogger{})
	require.Error(t, err)
}

func TestStopWaitDoesNotBlockOtherCalls(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inj := newGatedInjector()
	ctrl := newTestController(t, DefaultConfig(), inj, noopLogger{}, WithClock(clock))

	require.True(t, ctrl.Start())
	<-inj.entered

	stopped := make(chan bool)
	go func() { stopped <- ctrl.Stop() }()
	require.Eventually(t, func() bool { return stopPending(ctrl) }, 2*time.Second, time.Millisecond)

	type calls struct {
		state   RunState
		started bool
		stopped bool
		sub     RunState
	}
	got := make(chan calls)
	go func() {
		var c calls
		c.state = ctrl.State()
		c.started = ctrl.Start()
		c.stopped = ctrl.Stop()
		states, cancel := ctrl.Subscribe()
		c.sub = <-states
		cancel()
		got <- c
	}()
	select {
	case c := <-got:
		require.Equal(t, Running, c.state)
		require.False(t, c.started, "start must not overlap a loop that is still exiting")
		require.False(t, c.stopped, "second stop must not wait on a session it does not own")
		require.Equal(t, Running, c.sub)
	case <-time.After(2 * time.Second):
		t.Fatal("State/Start/Subscribe blocked behind an in-flight stop")
	}

	select {
	case <-stopped:
		t.Fatal("stop returned before the loop exited")
	default:
	}

	close(inj.gate)
	require.True(t, <-stopped)
	require.Equal(t, Stopped, ctrl.State())
	assertReleaseSuffix(t, inj.snapshot())

	require.True(t, ctrl.Start(), "start succeeds once the old loop is gone")
}

func TestCloseWaitsForConcurrentStop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inj := newGatedInjector()
	ctrl, err := NewController(DefaultConfig(), inj, noopLogger{}, WithClock(clock))
	require.NoError(t, err)

	require.True(t, ctrl.Start())
	<-inj.entered

	stopped := make(chan bool)
	go func() { stopped <- ctrl.Stop() }()
	require.Eventually(t, func() bool { return stopPending(ctrl) }, 2*time.Second, time.Millisecond)

	closed := make(chan error)
	go func() { closed <- ctrl.Close() }()

	require.Never(t, inj.isClosed, 50*time.Millisecond, 5*time.Millisecond, "injector closed while the loop was still writing")
	close(inj.gate)
	require.True(t, <-stopped)
	require.NoError(t, <-closed)
	require.True(t, inj.isClosed())
	assertReleaseSuffix(t, inj.snapshot())
}

func TestRunStateString(t *testing.T) {
	require.Equal(t, "Stopped", Stopped.String())
	require.Equal(t, "Running", Running.String())
}
