package fna

import (
	"context"
	"fmt"
	"time"
)

// State is the top-level lifecycle state of a Game. Active/Inactive is an
// orthogonal boolean attribute of StateRunning, not a separate state.
type State int

const (
	StateCreated State = iota
	StateInitializing
	StateRunning
	StateExiting
	StateExited
	StateDisposed
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateExiting:
		return "exiting"
	case StateExited:
		return "exited"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Default timing configuration. The target matches a 60Hz frame cadence.
const (
	DefaultTargetElapsedTime = time.Second / 60
	DefaultInactiveSleepTime = 20 * time.Millisecond
)

// Default window geometry used when launch parameters don't specify one.
const (
	defaultWindowTitle  = "FNA Game"
	defaultWindowWidth  = 800
	defaultWindowHeight = 480
)

// Game is the lifecycle controller. It owns the application's state machine,
// drives the per-frame timing loop, and coordinates the Loop's update/draw
// callbacks with the platform and the optional graphics device manager.
//
// A Game is owned by exactly one goroutine; no operation on it is safe for
// concurrent use, and no internal locking is used on the frame path.
type Game struct {
	logger     Logger
	launch     LaunchParameters
	services   ServiceRegistry
	platform   Platform
	clock      Clock
	dispatcher *Dispatcher
	loop       Loop

	window  *Window
	adapter *AdapterHandle
	input   InputState

	state        State
	initialized  bool
	disposed     bool
	isActive     bool
	mouseVisible bool
	keepRunning  bool
	suppressDraw bool

	time           GameTime
	previousSample time.Duration

	targetElapsed time.Duration
	inactiveSleep time.Duration

	stats runtimeStats
	debug *debugServer
}

// GameOption configures a Game during construction.
type GameOption func(g *Game) error

// WithLogger sets the structured logger used by the core.
func WithLogger(logger Logger) GameOption {
	return func(g *Game) error {
		g.logger = logger
		return nil
	}
}

// WithLoop sets the per-frame behavior.
func WithLoop(loop Loop) GameOption {
	return func(g *Game) error {
		g.loop = loop
		return nil
	}
}

// WithLaunchParameters sets the immutable launch configuration.
func WithLaunchParameters(params LaunchParameters) GameOption {
	return func(g *Game) error {
		g.launch = params
		return nil
	}
}

// WithClock replaces the monotonic clock, typically with a fake in tests.
func WithClock(clock Clock) GameOption {
	return func(g *Game) error {
		g.clock = clock
		return nil
	}
}

// WithService registers a service during construction, before the window is
// created. This is how a graphics device manager is supplied.
func WithService(name string, service any) GameOption {
	return func(g *Game) error {
		return g.services.Register(name, service)
	}
}

// NewGame creates a game on the given platform. The window is created here;
// the game owns it until Dispose. The process-wide unhandled-error hook is
// registered here and released at disposal.
func NewGame(platform Platform, opts ...GameOption) (*Game, error) {
	g := &Game{
		logger:        noopLogger{},
		launch:        NewLaunchParameters(nil),
		services:      make(ServiceRegistry),
		platform:      platform,
		clock:         NewSystemClock(),
		targetElapsed: DefaultTargetElapsedTime,
		inactiveSleep: DefaultInactiveSleepTime,
		state:         StateCreated,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	g.dispatcher = NewDispatcher(g.logger)

	window, err := platform.CreateWindow(
		g.launch.String("window.title", defaultWindowTitle),
		g.launch.Int("window.width", defaultWindowWidth),
		g.launch.Int("window.height", defaultWindowHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	g.window = window
	g.stats.setState(g.state)
	g.stats.targetNanos.Store(int64(g.targetElapsed))

	registerErrorHook(g)

	if g.launch.Bool("debugServer", false) {
		port := g.launch.Int("debugServer.port", 0)
		debug, err := startDebugServer(g, port)
		if err != nil {
			unregisterErrorHook(g)
			platform.DisposeWindow(window)
			return nil, fmt.Errorf("failed to start debug server: %w", err)
		}
		g.debug = debug
		g.logger.Info("Debug server listening", "port", debug.port())
	}

	return g, nil
}

// Logger returns the game's logger.
func (g *Game) Logger() Logger { return g.logger }

// LaunchParameters returns the immutable launch configuration.
func (g *Game) LaunchParameters() LaunchParameters { return g.launch }

// Services returns the game's service registry.
func (g *Game) Services() ServiceRegistry { return g.services }

// Window returns the game's window, or nil after disposal.
func (g *Game) Window() *Window { return g.window }

// Time returns the current timing snapshot.
func (g *Game) Time() GameTime { return g.time }

// State returns the current lifecycle state.
func (g *Game) State() State { return g.state }

// IsActive reports whether the game currently has platform focus.
func (g *Game) IsActive() bool { return g.isActive }

// IsMouseVisible reports the current mouse visibility.
func (g *Game) IsMouseVisible() bool { return g.mouseVisible }

// TargetElapsedTime returns the configured target frame duration.
func (g *Game) TargetElapsedTime() time.Duration { return g.targetElapsed }

// InactiveSleepTime returns the per-iteration sleep applied while inactive.
func (g *Game) InactiveSleepTime() time.Duration { return g.inactiveSleep }

// SetTargetElapsedTime sets the target frame duration. Non-positive values
// are rejected and the previous value is retained.
func (g *Game) SetTargetElapsedTime(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %v", ErrTargetElapsedNotPositive, d)
	}
	g.targetElapsed = d
	g.stats.targetNanos.Store(int64(d))
	return nil
}

// SetInactiveSleepTime sets the sleep applied per loop iteration while the
// game is inactive. Negative values are rejected and the previous value is
// retained.
func (g *Game) SetInactiveSleepTime(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: %v", ErrInactiveSleepNegative, d)
	}
	g.inactiveSleep = d
	return nil
}

// RegisterObserver subscribes an observer to lifecycle notifications,
// optionally filtered by event type.
func (g *Game) RegisterObserver(observer Observer, eventTypes ...string) {
	g.dispatcher.Register(observer, eventTypes...)
}

// UnregisterObserver removes a lifecycle observer. Idempotent.
func (g *Game) UnregisterObserver(observer Observer) {
	g.dispatcher.Unregister(observer)
}

// GraphicsDeviceManager returns the registered device manager, or
// ErrNoGraphicsDeviceService when none is registered.
func (g *Game) GraphicsDeviceManager() (GraphicsDeviceManager, error) {
	gdm, ok := GetService[GraphicsDeviceManager](g.services, ServiceGraphicsDeviceManager)
	if !ok {
		return nil, ErrNoGraphicsDeviceService
	}
	return gdm, nil
}

// DebugAddr returns the listen address of the diagnostics server, or the
// empty string when it is not enabled.
func (g *Game) DebugAddr() string {
	if g.debug == nil {
		return ""
	}
	return g.debug.listener.Addr().String()
}

// Initialize performs one-time setup: it looks up the graphics device
// manager service, asks it to create a device if present, then invokes the
// loop's Initialize hook. Subsequent calls are no-ops; Run and RunOneFrame
// call it implicitly.
func (g *Game) Initialize() error {
	if g.disposed {
		return ErrGameDisposed
	}
	if g.initialized {
		return nil
	}
	g.setState(StateInitializing)

	if gdm, err := g.GraphicsDeviceManager(); err == nil {
		if err := gdm.CreateDevice(); err != nil {
			return fmt.Errorf("failed to create graphics device: %w", err)
		}
		g.logger.Debug("Graphics device created")
	} else {
		g.logger.Debug("No graphics device manager registered, skipping device creation")
	}

	if init, ok := g.loop.(Initializer); ok {
		init.Initialize(g)
	}

	g.initialized = true
	g.setState(StateRunning)
	g.logger.Info("Game initialized", "window", g.window.Title)
	return nil
}

// Run blocks for the application's lifetime. It initializes if needed,
// fires the BeginRun hook, registers with the platform and starts the
// clock, then either drives its own poll/tick loop or transfers control
// permanently to the platform's main loop.
func (g *Game) Run() error {
	if g.disposed {
		return ErrGameDisposed
	}
	if err := g.Initialize(); err != nil {
		return err
	}

	if rb, ok := g.loop.(RunBracket); ok {
		rb.BeginRun(g)
	}

	g.keepRunning = true
	g.SetActive(true)
	g.adapter = g.platform.RegisterGame(g)
	g.clock.Start()
	g.previousSample = 0

	if g.platform.NeedsPlatformMainLoop() {
		g.logger.Info("Transferring control to platform main loop")
		g.platform.RunPlatformMainLoop(g)
		// Unreachable on conforming platforms: RunPlatformMainLoop never
		// returns and process exit happens through platform channels.
		return nil
	}

	for g.keepRunning {
		if !g.isActive && g.inactiveSleep > 0 {
			time.Sleep(g.inactiveSleep)
		}
		g.platform.PollEvents(g, g.adapter, &g.input)
		if err := g.Tick(); err != nil {
			return err
		}
	}

	g.setState(StateExiting)
	g.dispatcher.Notify(context.Background(), NewGameEvent(EventTypeExiting, g.window.Title, nil))
	g.setState(StateExited)

	g.platform.UnregisterGame(g)
	if rb, ok := g.loop.(RunBracket); ok {
		rb.EndRun(g)
	}
	g.logger.Info("Run loop finished", "totalElapsed", g.time.Total)
	return nil
}

// RunOneFrame runs a single poll/tick cycle. It is intended for hosts that
// drive their own outer loop; it initializes on the first call (restarting
// the clock at that point) and does not manage activation registration.
func (g *Game) RunOneFrame() error {
	if g.disposed {
		return ErrGameDisposed
	}
	if !g.initialized {
		if err := g.Initialize(); err != nil {
			return err
		}
		g.clock.Start()
		g.previousSample = 0
	}
	g.platform.PollEvents(g, g.adapter, &g.input)
	return g.Tick()
}

// Tick runs one full timing/update/draw cycle.
func (g *Game) Tick() error {
	if g.disposed {
		return ErrGameDisposed
	}

	now := g.clock.ElapsedSinceStart()
	delta := now - g.previousSample
	g.previousSample = now
	if delta < 0 {
		// A well-behaved monotonic source never goes backwards; clamp so
		// Total stays non-decreasing if it does.
		g.logger.Warn("Clock went backwards, clamping frame delta", "delta", delta)
		delta = 0
	}
	g.time.Elapsed = delta
	g.time.Total += delta
	g.stats.recordTick(g.time)

	if g.loop != nil {
		g.loop.Update(g.time)
	}

	if g.suppressDraw {
		g.suppressDraw = false
		return nil
	}
	if !g.beginDraw() {
		return nil
	}
	if g.loop != nil {
		g.loop.Draw(g.time)
	}
	g.stats.recordDraw()
	g.endDraw()
	return nil
}

// RedrawWindow redraws outside the normal cadence, with a synthetic snapshot
// of the accumulated total and a zero frame delta. Used for
// platform-requested repaints. It does nothing before the loop has ticked
// at least once, or when BeginDraw declines the frame.
func (g *Game) RedrawWindow() {
	if g.disposed || g.time.Total == 0 {
		return
	}
	if !g.beginDraw() {
		return
	}
	if g.loop != nil {
		g.loop.Draw(GameTime{Total: g.time.Total})
	}
	g.stats.recordDraw()
	g.endDraw()
}

// Exit requests loop termination and suppresses any further draw this
// cycle.
func (g *Game) Exit() {
	g.keepRunning = false
	g.suppressDraw = true
}

// SuppressDraw causes exactly the next Tick to skip drawing. It does not
// request termination.
func (g *Game) SuppressDraw() {
	g.suppressDraw = true
}

// SetActive toggles platform focus. Setting the current value again fires
// nothing; a real transition fires exactly one Activated or Deactivated
// notification. Calling this on a disposed game is a programming error and
// panics.
func (g *Game) SetActive(active bool) {
	if g.disposed {
		panic(ErrGameDisposed)
	}
	if g.isActive == active {
		return
	}
	g.isActive = active
	g.stats.setActive(active)

	eventType := EventTypeDeactivated
	if active {
		eventType = EventTypeActivated
	}
	g.dispatcher.Notify(context.Background(), NewGameEvent(eventType, g.window.Title, nil))
}

// SetMouseVisible changes mouse visibility, forwarding real changes to the
// platform. Setting the current value again does nothing.
func (g *Game) SetMouseVisible(visible bool) {
	if g.mouseVisible == visible {
		return
	}
	g.mouseVisible = visible
	g.platform.OnMouseVisibilityChanged(visible)
}

// Dispose releases the game's resources: the owned graphics device manager
// and window are each released exactly once, the process-wide error hook is
// unregistered, and the Disposed notification fires exactly once. All later
// calls are no-ops.
func (g *Game) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.keepRunning = false
	g.setState(StateDisposed)

	if g.debug != nil {
		g.debug.stop()
		g.debug = nil
	}

	if gdm, err := g.GraphicsDeviceManager(); err == nil {
		if d, ok := gdm.(Disposer); ok {
			d.Dispose()
		}
	}

	windowTitle := defaultWindowTitle
	if g.window != nil {
		windowTitle = g.window.Title
		g.platform.DisposeWindow(g.window)
		g.window = nil
	}

	unregisterErrorHook(g)

	g.dispatcher.Notify(context.Background(), NewGameEvent(EventTypeDisposed, windowTitle, nil))
	g.logger.Info("Game disposed")
}

// setState transitions the state machine and mirrors the value into the
// stats snapshot read by the debug server.
func (g *Game) setState(s State) {
	g.state = s
	g.stats.setState(s)
}

// beginDraw resolves the frame bracketing: the loop's DrawBracket override
// when present, the graphics device manager otherwise, trivial success when
// neither exists.
func (g *Game) beginDraw() bool {
	if db, ok := g.loop.(DrawBracket); ok {
		return db.BeginDraw(g)
	}
	if gdm, err := g.GraphicsDeviceManager(); err == nil {
		return gdm.BeginDraw()
	}
	return true
}

// endDraw mirrors beginDraw's resolution.
func (g *Game) endDraw() {
	if db, ok := g.loop.(DrawBracket); ok {
		db.EndDraw(g)
		return
	}
	if gdm, err := g.GraphicsDeviceManager(); err == nil {
		gdm.EndDraw()
	}
}
