package fna

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// debugServer serves JSON snapshots of the game's runtime state over HTTP.
// It is opt-in via the "debugServer" launch parameter and reads only the
// lock-free runtimeStats mirror, never the frame path's plain fields.
type debugServer struct {
	server   *http.Server
	listener net.Listener
}

// runtimeSnapshot is the /runtime response body.
type runtimeSnapshot struct {
	State  string `json:"state"`
	Active bool   `json:"active"`
	Ticks  uint64 `json:"ticks"`
	Draws  uint64 `json:"draws"`
}

// timingSnapshot is the /timing response body.
type timingSnapshot struct {
	TotalMs   float64 `json:"totalMs"`
	ElapsedMs float64 `json:"elapsedMs"`
	TargetMs  float64 `json:"targetMs"`
}

// startDebugServer binds the listener first to fail fast on port conflicts,
// then serves in the background. Port 0 picks an ephemeral port.
func startDebugServer(g *Game, port int) (*debugServer, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("debug server listen: %w", err)
	}

	r := chi.NewRouter()
	r.Get("/runtime", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, runtimeSnapshot{
			State:  State(g.stats.state.Load()).String(),
			Active: g.stats.active.Load(),
			Ticks:  g.stats.ticks.Load(),
			Draws:  g.stats.draws.Load(),
		})
	})
	r.Get("/timing", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, timingSnapshot{
			TotalMs:   float64(g.stats.totalNanos.Load()) / float64(time.Millisecond),
			ElapsedMs: float64(g.stats.elapsedNanos.Load()) / float64(time.Millisecond),
			TargetMs:  float64(g.stats.targetNanos.Load()) / float64(time.Millisecond),
		})
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	srv := &http.Server{Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			g.logger.Error("Debug server stopped unexpectedly", "error", err)
		}
	}()

	return &debugServer{server: srv, listener: listener}, nil
}

// port returns the bound port, useful with ephemeral allocation.
func (d *debugServer) port() int {
	return d.listener.Addr().(*net.TCPAddr).Port
}

// stop shuts the server down, waiting briefly for in-flight requests.
func (d *debugServer) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = d.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
