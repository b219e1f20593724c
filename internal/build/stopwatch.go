package build

import (
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
)

// Stopwatch transition errors.
var (
	ErrStopwatchRunning    = errors.New("stopwatch already running")
	ErrStopwatchNotRunning = errors.New("stopwatch not running")
)

// WatchState is the state of a Stopwatch.
type WatchState int

const (
	WatchNotStarted WatchState = iota
	WatchRunning
	WatchStopped
)

func (s WatchState) String() string {
	switch s {
	case WatchNotStarted:
		return "not_started"
	case WatchRunning:
		return "running"
	case WatchStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Stopwatch accumulates elapsed time across Start/Stop pairs.
// Start while running and Stop while not running are errors and leave the state unchanged.
type Stopwatch struct {
	clock   clockwork.Clock
	state   WatchState
	started time.Time
	elapsed time.Duration
}

// NewStopwatch returns a stopped-at-zero stopwatch reading from clock (real clock when nil).
func NewStopwatch(clock clockwork.Clock) *Stopwatch {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Stopwatch{clock: clock}
}

// Start begins or resumes timing.
func (w *Stopwatch) Start() error {
	if w.state == WatchRunning {
		return ErrStopwatchRunning
	}
	w.started = w.clock.Now()
	w.state = WatchRunning
	return nil
}

// Stop pauses timing.
func (w *Stopwatch) Stop() error {
	if w.state != WatchRunning {
		return ErrStopwatchNotRunning
	}
	w.elapsed += w.since()
	w.state = WatchStopped
	return nil
}

// State returns the current state.
func (w *Stopwatch) State() WatchState { return w.state }

// Elapsed returns the accumulated time, including the current running span.
func (w *Stopwatch) Elapsed() time.Duration {
	if w.state == WatchRunning {
		return w.elapsed + w.since()
	}
	return w.elapsed
}

// Seconds returns Elapsed in whole milliseconds divided by 1000.
func (w *Stopwatch) Seconds() float64 {
	return float64(w.Elapsed().Milliseconds()) / 1000
}

func (w *Stopwatch) since() time.Duration {
	d := w.clock.Since(w.started)
	if d < 0 {
		return 0
	}
	return d
}
