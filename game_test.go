package fna

import (
	"context"
	"testing"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced Clock for deterministic tick tests.
type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Start()                           { c.now = 0 }
func (c *fakeClock) ElapsedSinceStart() time.Duration { return c.now }
func (c *fakeClock) Advance(d time.Duration)          { c.now += d }

// recordingLoop records every hook invocation.
type recordingLoop struct {
	updates     []GameTime
	draws       []GameTime
	initialized int
	beginRuns   int
	endRuns     int
}

func (l *recordingLoop) Update(t GameTime)  { l.updates = append(l.updates, t) }
func (l *recordingLoop) Draw(t GameTime)    { l.draws = append(l.draws, t) }
func (l *recordingLoop) Initialize(g *Game) { l.initialized++ }
func (l *recordingLoop) BeginRun(g *Game)   { l.beginRuns++ }
func (l *recordingLoop) EndRun(g *Game)     { l.endRuns++ }

func newTestGame(t *testing.T, opts ...GameOption) (*Game, *HeadlessPlatform, *fakeClock, *recordingLoop) {
	t.Helper()
	platform := NewHeadlessPlatform()
	clock := &fakeClock{}
	loop := &recordingLoop{}
	opts = append([]GameOption{WithClock(clock), WithLoop(loop)}, opts...)
	game, err := NewGame(platform, opts...)
	require.NoError(t, err)
	t.Cleanup(game.Dispose)
	return game, platform, clock, loop
}

// countingObserver counts deliveries per event type.
func countingObserver(id string, counts map[string]int) Observer {
	return NewFunctionalObserver(id, func(_ context.Context, event cloudevents.Event) error {
		counts[event.Type()]++
		return nil
	})
}

func TestTickSixteenMillisecondFrame(t *testing.T) {
	game, _, clock, loop := newTestGame(t,
		WithService(ServiceGraphicsDeviceManager, NewHeadlessGraphicsDeviceManager()))

	clock.Advance(16 * time.Millisecond)
	require.NoError(t, game.Tick())

	assert.Equal(t, 16*time.Millisecond, game.Time().Total)
	assert.Equal(t, 16*time.Millisecond, game.Time().Elapsed)
	require.Len(t, loop.updates, 1)
	require.Len(t, loop.draws, 1)
	assert.Equal(t, 16*time.Millisecond, loop.updates[0].Total)
}

func TestTickAccumulatesExactly(t *testing.T) {
	game, _, clock, _ := newTestGame(t)

	deltas := []time.Duration{
		16 * time.Millisecond,
		33 * time.Millisecond,
		1 * time.Millisecond,
		250 * time.Microsecond,
		100 * time.Millisecond,
	}
	var want time.Duration
	for _, d := range deltas {
		clock.Advance(d)
		require.NoError(t, game.Tick())
		want += d
		assert.Equal(t, d, game.Time().Elapsed)
		assert.Equal(t, want, game.Time().Total)
	}
}

func TestTickClampsNegativeDelta(t *testing.T) {
	game, _, clock, _ := newTestGame(t)

	clock.Advance(10 * time.Millisecond)
	require.NoError(t, game.Tick())

	// Misbehaving timer: the next sample is earlier than the previous one.
	clock.Advance(-4 * time.Millisecond)
	require.NoError(t, game.Tick())

	assert.Equal(t, time.Duration(0), game.Time().Elapsed)
	assert.Equal(t, 10*time.Millisecond, game.Time().Total)
}

func TestSuppressDrawSkipsExactlyOneTick(t *testing.T) {
	game, _, clock, loop := newTestGame(t,
		WithService(ServiceGraphicsDeviceManager, NewHeadlessGraphicsDeviceManager()))

	game.SuppressDraw()
	clock.Advance(time.Millisecond)
	require.NoError(t, game.Tick())
	assert.Len(t, loop.updates, 1)
	assert.Empty(t, loop.draws)

	clock.Advance(time.Millisecond)
	require.NoError(t, game.Tick())
	assert.Len(t, loop.draws, 1)
}

func TestBeginDrawFalseSkipsDrawSilently(t *testing.T) {
	gdm := NewHeadlessGraphicsDeviceManager()
	gdm.BeginDrawResult = false
	game, _, clock, loop := newTestGame(t, WithService(ServiceGraphicsDeviceManager, gdm))

	clock.Advance(time.Millisecond)
	require.NoError(t, game.Tick())

	assert.Len(t, loop.updates, 1)
	assert.Empty(t, loop.draws)
	assert.Zero(t, gdm.FramesPresented(), "EndDraw must not run when BeginDraw declines")
}

func TestTickAfterDisposeFails(t *testing.T) {
	game, _, _, _ := newTestGame(t)
	game.Dispose()
	assert.ErrorIs(t, game.Tick(), ErrGameDisposed)
	assert.ErrorIs(t, game.RunOneFrame(), ErrGameDisposed)
	assert.ErrorIs(t, game.Run(), ErrGameDisposed)
}

func TestRunExitsAndFiresExitingOnce(t *testing.T) {
	game, platform, clock, loop := newTestGame(t)
	counts := make(map[string]int)
	game.RegisterObserver(countingObserver("exit-counter", counts), EventTypeExiting)

	platform.Enqueue(func(g *Game) {
		clock.Advance(5 * time.Millisecond)
		g.Exit()
	})

	require.NoError(t, game.Run())

	// Exit during PollEvents: the in-flight Tick still runs (draw
	// suppressed), then the loop terminates.
	assert.Len(t, loop.updates, 1)
	assert.Empty(t, loop.draws)
	assert.Equal(t, 1, counts[EventTypeExiting])
	assert.Equal(t, StateExited, game.State())
	assert.Equal(t, 1, loop.beginRuns)
	assert.Equal(t, 1, loop.endRuns)
}

func TestRunOneFrameInitializesExactlyOnce(t *testing.T) {
	game, _, clock, loop := newTestGame(t)

	clock.Advance(time.Millisecond)
	require.NoError(t, game.RunOneFrame())
	clock.Advance(time.Millisecond)
	require.NoError(t, game.RunOneFrame())

	assert.Equal(t, 1, loop.initialized)
	assert.Len(t, loop.updates, 2)
}

func TestInitializeCreatesDeviceOnce(t *testing.T) {
	gdm := NewHeadlessGraphicsDeviceManager()
	game, _, _, _ := newTestGame(t, WithService(ServiceGraphicsDeviceManager, gdm))

	require.NoError(t, game.Initialize())
	require.NoError(t, game.Initialize())
	assert.True(t, gdm.DeviceCreated())
	assert.Equal(t, StateRunning, game.State())
}

func TestDisposeIsIdempotent(t *testing.T) {
	gdm := NewHeadlessGraphicsDeviceManager()
	platform := NewHeadlessPlatform()
	game, err := NewGame(platform, WithService(ServiceGraphicsDeviceManager, gdm))
	require.NoError(t, err)

	counts := make(map[string]int)
	game.RegisterObserver(countingObserver("dispose-counter", counts), EventTypeDisposed)

	game.Dispose()
	game.Dispose()

	assert.Equal(t, 1, counts[EventTypeDisposed])
	assert.Equal(t, 1, platform.WindowsDisposed())
	assert.True(t, gdm.Disposed())
	assert.Equal(t, StateDisposed, game.State())
	assert.Nil(t, game.Window())
}

func TestSetActiveDeduplicates(t *testing.T) {
	game, _, _, _ := newTestGame(t)
	counts := make(map[string]int)
	game.RegisterObserver(countingObserver("focus-counter", counts))

	game.SetActive(false) // already inactive, fires nothing
	game.SetActive(true)
	game.SetActive(true)
	game.SetActive(false)

	assert.Equal(t, 1, counts[EventTypeActivated])
	assert.Equal(t, 1, counts[EventTypeDeactivated])
}

func TestSetActivePanicsAfterDispose(t *testing.T) {
	game, _, _, _ := newTestGame(t)
	game.Dispose()
	assert.PanicsWithValue(t, ErrGameDisposed, func() { game.SetActive(true) })
}

func TestTargetElapsedTimeValidation(t *testing.T) {
	game, _, _, _ := newTestGame(t)

	assert.Equal(t, DefaultTargetElapsedTime, game.TargetElapsedTime())

	assert.ErrorIs(t, game.SetTargetElapsedTime(0), ErrTargetElapsedNotPositive)
	assert.ErrorIs(t, game.SetTargetElapsedTime(-time.Millisecond), ErrTargetElapsedNotPositive)
	assert.Equal(t, DefaultTargetElapsedTime, game.TargetElapsedTime())

	require.NoError(t, game.SetTargetElapsedTime(10*time.Millisecond))
	assert.Equal(t, 10*time.Millisecond, game.TargetElapsedTime())
}

func TestInactiveSleepTimeValidation(t *testing.T) {
	game, _, _, _ := newTestGame(t)

	assert.ErrorIs(t, game.SetInactiveSleepTime(-time.Millisecond), ErrInactiveSleepNegative)
	assert.Equal(t, DefaultInactiveSleepTime, game.InactiveSleepTime())

	require.NoError(t, game.SetInactiveSleepTime(0))
	assert.Equal(t, time.Duration(0), game.InactiveSleepTime())
}

func TestRedrawWindow(t *testing.T) {
	game, _, clock, loop := newTestGame(t,
		WithService(ServiceGraphicsDeviceManager, NewHeadlessGraphicsDeviceManager()))

	// Before the first tick there is nothing to redraw.
	game.RedrawWindow()
	assert.Empty(t, loop.draws)

	clock.Advance(8 * time.Millisecond)
	require.NoError(t, game.Tick())
	require.Len(t, loop.draws, 1)

	game.RedrawWindow()
	require.Len(t, loop.draws, 2)
	assert.Equal(t, 8*time.Millisecond, loop.draws[1].Total)
	assert.Equal(t, time.Duration(0), loop.draws[1].Elapsed)
}

func TestMouseVisibilityDeduplicates(t *testing.T) {
	game, platform, _, _ := newTestGame(t)

	game.SetMouseVisible(true)
	game.SetMouseVisible(true)
	assert.True(t, platform.MouseVisible())

	game.SetMouseVisible(false)
	assert.False(t, platform.MouseVisible())
}

func TestGraphicsDeviceManagerMissing(t *testing.T) {
	game, _, _, _ := newTestGame(t)
	_, err := game.GraphicsDeviceManager()
	assert.ErrorIs(t, err, ErrNoGraphicsDeviceService)
}

// mainLoopPlatform simulates a platform that must own the main loop.
type mainLoopPlatform struct {
	*HeadlessPlatform
	handoffs int
}

func (p *mainLoopPlatform) NeedsPlatformMainLoop() bool { return true }

// RunPlatformMainLoop records the handoff and returns so the test can
// observe it; a real platform would never return from here.
func (p *mainLoopPlatform) RunPlatformMainLoop(g *Game) { p.handoffs++ }

func TestRunHandsOffToPlatformMainLoop(t *testing.T) {
	platform := &mainLoopPlatform{HeadlessPlatform: NewHeadlessPlatform()}
	clock := &fakeClock{}
	loop := &recordingLoop{}
	game, err := NewGame(platform, WithClock(clock), WithLoop(loop))
	require.NoError(t, err)
	t.Cleanup(game.Dispose)

	require.NoError(t, game.Run())

	assert.Equal(t, 1, platform.handoffs)
	assert.Empty(t, loop.updates, "the self-owned loop must not run after handoff")
	assert.Equal(t, 1, loop.beginRuns)
	assert.Zero(t, loop.endRuns, "EndRun does not fire on platform-owned loops")
}
