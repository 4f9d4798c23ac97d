// Package fna provides the execution core of an interactive real-time
// application: lifecycle state, a per-frame timing loop, and coordination of
// update/draw callbacks with an external rendering subsystem.
//
// The central type is Game. A Game owns the monotonic clock, the accumulated
// GameTime, the service registry, and the lifecycle state machine. Per-frame
// behavior is supplied as a Loop implementation; window creation, event
// polling, and error dialogs come from a Platform implementation. Both are
// narrow interfaces so that hosts can bring their own windowing and graphics
// backends, and so that everything is testable headless.
//
// Basic usage:
//
//	game, err := fna.NewGame(fna.NewHeadlessPlatform(),
//		fna.WithLoop(myLoop),
//		fna.WithLogger(myLogger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer game.Dispose()
//	if err := game.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// Run blocks for the lifetime of the application, or transfers control
// permanently to the platform's native main loop on platforms that require
// owning it. Hosts that drive their own outer loop call RunOneFrame instead.
package fna
