package fna

import "sync/atomic"

// runtimeStats is a lock-free mirror of the game's frame accounting. The
// main goroutine publishes into it during Tick so the debug server can read
// a consistent snapshot from its own goroutine without touching the frame
// path's plain fields.
type runtimeStats struct {
	ticks        atomic.Uint64
	draws        atomic.Uint64
	totalNanos   atomic.Int64
	elapsedNanos atomic.Int64
	targetNanos  atomic.Int64
	state        atomic.Int32
	active       atomic.Bool
}

func (s *runtimeStats) recordTick(t GameTime) {
	s.ticks.Add(1)
	s.totalNanos.Store(int64(t.Total))
	s.elapsedNanos.Store(int64(t.Elapsed))
}

func (s *runtimeStats) recordDraw() {
	s.draws.Add(1)
}

func (s *runtimeStats) setState(state State) {
	s.state.Store(int32(state))
}

func (s *runtimeStats) setActive(active bool) {
	s.active.Store(active)
}
