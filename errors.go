package fna

import (
	"errors"
)

// Game errors
var (
	// Configuration errors
	ErrTargetElapsedNotPositive = errors.New("target elapsed time must be positive")
	ErrInactiveSleepNegative    = errors.New("inactive sleep time cannot be negative")

	// Lifecycle errors
	ErrGameDisposed = errors.New("game has been disposed")

	// Service registry errors
	ErrServiceAlreadyRegistered = errors.New("service already registered")
	ErrNoGraphicsDeviceService  = errors.New("no graphics device service registered")

	// Hardware errors surfaced through the unhandled-error hook
	ErrNoAudioHardware          = errors.New("no audio hardware available")
	ErrNoSuitableGraphicsDevice = errors.New("no suitable graphics device found")

	// Launch parameter errors
	ErrLaunchParametersFormat = errors.New("unsupported launch parameters file format")

	// Platform errors
	ErrPlatformOwnsMainLoop = errors.New("platform does not own the main loop")
)
