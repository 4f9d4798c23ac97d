// Command fnademo runs a headless game for a fixed number of frames. It is
// a smoke-test harness for the lifecycle core: wire a loop, run, observe the
// lifecycle events on stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	fna "github.com/lukepaw/FNA"
)

// slogLogger adapts slog to the framework's Logger interface.
type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

// demoLoop exits the game once it has updated frames times.
type demoLoop struct {
	game      *fna.Game
	frames    int
	remaining int
}

func (d *demoLoop) Initialize(g *fna.Game) {
	d.game = g
	d.remaining = d.frames
}

func (d *demoLoop) Update(t fna.GameTime) {
	d.remaining--
	if d.remaining <= 0 {
		d.game.Exit()
	}
}

func (d *demoLoop) Draw(t fna.GameTime) {}

func main() {
	frames := flag.Int("frames", 300, "number of frames to run before exiting")
	paramsPath := flag.String("params", "", "optional launch parameters file (YAML or TOML)")
	flag.Parse()

	logger := &slogLogger{logger: slog.New(slog.NewTextHandler(os.Stderr, nil))}

	params := fna.NewLaunchParameters(nil)
	if *paramsPath != "" {
		loaded, err := fna.LoadLaunchParameters(*paramsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		params = loaded
	}

	game, err := fna.NewGame(fna.NewHeadlessPlatform(),
		fna.WithLogger(logger),
		fna.WithLaunchParameters(params),
		fna.WithLoop(&demoLoop{frames: *frames}),
		fna.WithService(fna.ServiceGraphicsDeviceManager, fna.NewHeadlessGraphicsDeviceManager()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer game.Dispose()

	game.RegisterObserver(fna.NewFunctionalObserver("demo", func(_ context.Context, event cloudevents.Event) error {
		logger.Info("Lifecycle event", "type", event.Type())
		return nil
	}))

	if err := game.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", fna.HandleUnhandledError(err))
		os.Exit(1)
	}
}
