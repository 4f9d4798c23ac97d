package fna

import (
	"errors"
	"sync"
)

// The process-wide unhandled-error hook. Exactly one Game owns it at a
// time: registration happens at construction, release at disposal.
var (
	errorHookMu   sync.Mutex
	errorHookGame *Game
)

// registerErrorHook claims the process-wide hook for g. If another game
// already holds it, the claim is skipped; the first registration wins.
func registerErrorHook(g *Game) {
	errorHookMu.Lock()
	defer errorHookMu.Unlock()
	if errorHookGame == nil {
		errorHookGame = g
	}
}

// unregisterErrorHook releases the hook if g holds it.
func unregisterErrorHook(g *Game) {
	errorHookMu.Lock()
	defer errorHookMu.Unlock()
	if errorHookGame == g {
		errorHookGame = nil
	}
}

// HandleUnhandledError is the top-level hook for errors that reached the end
// of the world. Missing-hardware errors get a best-effort user-facing
// diagnostic through the owning game's platform; every error, classified or
// not, is returned unchanged so the caller still terminates abnormally.
// Nothing is swallowed here.
func HandleUnhandledError(err error) error {
	if err == nil {
		return nil
	}

	errorHookMu.Lock()
	g := errorHookGame
	errorHookMu.Unlock()
	if g == nil {
		return err
	}

	title := defaultWindowTitle
	if g.window != nil {
		title = g.window.Title
	}

	switch {
	case errors.Is(err, ErrNoAudioHardware):
		g.platform.ShowRuntimeError(title,
			"Could not find a suitable audio device. "+
				"Verify that a sound card is installed and the drivers are up to date.")
	case errors.Is(err, ErrNoSuitableGraphicsDevice):
		g.platform.ShowRuntimeError(title,
			"Could not find a suitable graphics device. "+
				"No required hardware support was detected; verify the video drivers are up to date.")
	}
	return err
}
