package fna

import (
	"sync"

	"github.com/google/uuid"
)

// Window identifies a platform window. The Game exclusively owns its window
// for disposal purposes; the platform releases it via DisposeWindow exactly
// once.
type Window struct {
	Title  string
	Width  int
	Height int
}

// AdapterHandle identifies a game's registration with the platform's event
// machinery.
type AdapterHandle struct {
	ID string
}

// InputState is the shared input snapshot mutated by PollEvents. Decoding
// device input into it is the platform's responsibility; the core only
// carries it between the platform and the loop.
type InputState struct {
	MouseX   int
	MouseY   int
	KeysDown map[string]bool
}

// Platform supplies window, event, and diagnostic primitives to the Game.
// Implementations wrap a native windowing/event backend; from the core's
// perspective a platform is single-threaded, and marshaling events from
// other native threads onto the main one is the platform's responsibility.
type Platform interface {
	// CreateWindow creates the application window.
	CreateWindow(title string, width, height int) (*Window, error)

	// DisposeWindow releases a window created by CreateWindow.
	DisposeWindow(w *Window)

	// PollEvents drains pending platform events. It may mutate the shared
	// input state and call back into the game (activation changes, Exit).
	// It must not block indefinitely on platforms that do not own the main
	// loop.
	PollEvents(g *Game, adapter *AdapterHandle, input *InputState)

	// RegisterGame attaches the game to the platform's event machinery for
	// the duration of Run.
	RegisterGame(g *Game) *AdapterHandle

	// UnregisterGame detaches a previously registered game.
	UnregisterGame(g *Game)

	// NeedsPlatformMainLoop reports whether this platform requires owning
	// the main loop. When true, Run transfers control permanently to
	// RunPlatformMainLoop instead of driving its own loop.
	NeedsPlatformMainLoop() bool

	// RunPlatformMainLoop transfers control to the platform's native main
	// loop. On conforming platforms this call never returns; the platform
	// drives Tick/RunOneFrame out-of-band and process exit happens through
	// platform-specific channels.
	RunPlatformMainLoop(g *Game)

	// ShowRuntimeError displays a user-facing diagnostic dialog.
	ShowRuntimeError(title, message string)

	// OnMouseVisibilityChanged is invoked when the game's mouse visibility
	// changes.
	OnMouseVisibilityChanged(visible bool)
}

// HeadlessPlatform is an in-process Platform with no native backend. It is
// used by tests, tools, and embedders that drive the game loop themselves.
// Events are injected with Enqueue and applied on the next PollEvents call,
// mirroring how a native backend marshals events onto the main thread.
type HeadlessPlatform struct {
	mu      sync.Mutex
	pending []func(g *Game)

	registered      map[string]*AdapterHandle
	runtimeErrors   []string
	mouseVisible    bool
	windowsDisposed int
}

// NewHeadlessPlatform creates an empty headless platform.
func NewHeadlessPlatform() *HeadlessPlatform {
	return &HeadlessPlatform{registered: make(map[string]*AdapterHandle)}
}

// Enqueue schedules fn to run against the game during its next PollEvents.
// Safe to call from any goroutine.
func (p *HeadlessPlatform) Enqueue(fn func(g *Game)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, fn)
}

// CreateWindow returns a window descriptor; headless windows have no native
// surface.
func (p *HeadlessPlatform) CreateWindow(title string, width, height int) (*Window, error) {
	return &Window{Title: title, Width: width, Height: height}, nil
}

// DisposeWindow counts the release; headless windows hold no native surface.
func (p *HeadlessPlatform) DisposeWindow(w *Window) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.windowsDisposed++
}

// PollEvents applies all queued event callbacks in FIFO order.
func (p *HeadlessPlatform) PollEvents(g *Game, adapter *AdapterHandle, input *InputState) {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, fn := range pending {
		fn(g)
	}
}

// RegisterGame hands out an adapter handle for the run.
func (p *HeadlessPlatform) RegisterGame(g *Game) *AdapterHandle {
	handle := &AdapterHandle{ID: uuid.NewString()}
	p.mu.Lock()
	p.registered[handle.ID] = handle
	p.mu.Unlock()
	return handle
}

// UnregisterGame releases the game's adapter handle.
func (p *HeadlessPlatform) UnregisterGame(g *Game) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if g.adapter != nil {
		delete(p.registered, g.adapter.ID)
	}
}

// NeedsPlatformMainLoop is false: headless hosts never own the loop.
func (p *HeadlessPlatform) NeedsPlatformMainLoop() bool {
	return false
}

// RunPlatformMainLoop panics: the headless platform reports that it does not
// own the main loop, so the Game never transfers control to it.
func (p *HeadlessPlatform) RunPlatformMainLoop(g *Game) {
	panic(ErrPlatformOwnsMainLoop)
}

// ShowRuntimeError records the diagnostic instead of displaying a dialog.
func (p *HeadlessPlatform) ShowRuntimeError(title, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.runtimeErrors = append(p.runtimeErrors, title+": "+message)
}

// OnMouseVisibilityChanged records the requested visibility.
func (p *HeadlessPlatform) OnMouseVisibilityChanged(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mouseVisible = visible
}

// RuntimeErrors returns the diagnostics recorded by ShowRuntimeError.
func (p *HeadlessPlatform) RuntimeErrors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.runtimeErrors...)
}

// WindowsDisposed returns the number of DisposeWindow calls.
func (p *HeadlessPlatform) WindowsDisposed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.windowsDisposed
}

// MouseVisible returns the last visibility forwarded by the game.
func (p *HeadlessPlatform) MouseVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mouseVisible
}
