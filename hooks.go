package fna

// Loop is the per-frame behavior a game supplies. The Game invokes Update
// and Draw once per Tick, in that order, passing the current timing
// snapshot. A Game without a Loop runs with no-op behavior at every hook
// point, which is useful for lifecycle-only embedding and tests.
//
// Loops can opt into additional lifecycle hooks by implementing the
// Initializer, RunBracket, and DrawBracket interfaces.
type Loop interface {
	// Update advances game logic by one frame.
	Update(t GameTime)

	// Draw renders one frame. It is bracketed by BeginDraw/EndDraw and may
	// be skipped entirely for a Tick (draw suppression, or BeginDraw
	// returning false).
	Draw(t GameTime)
}

// Initializer is an optional interface for loops that need one-time setup.
// Initialize runs on the first Game.Initialize call, after the graphics
// device (if any) has been created, and never again.
type Initializer interface {
	Initialize(g *Game)
}

// RunBracket is an optional interface for loops that want hooks around the
// run loop itself. BeginRun fires before the first frame of Run; EndRun
// fires after the loop has finished, before Run returns. Neither fires on
// platforms that take permanent ownership of the main loop.
type RunBracket interface {
	BeginRun(g *Game)
	EndRun(g *Game)
}

// DrawBracket is an optional interface overriding the frame draw
// bracketing. When implemented, the Game calls these instead of delegating
// to the graphics device manager. BeginDraw returning false means "skip
// this frame's draw" and is not an error.
type DrawBracket interface {
	BeginDraw(g *Game) bool
	EndDraw(g *Game)
}
