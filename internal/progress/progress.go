// Package progress defines the sink that long-running tasks report incremental progress to.
package progress

import (
	"log/slog"
	"sync"
)

// Sink receives count/total progress updates for a titled activity.
type Sink interface {
	Report(title string, done, total int)
	Clear()
}

// Noop discards progress.
type Noop struct{}

func (Noop) Report(string, int, int) {}
func (Noop) Clear()                  {}

// LogSink writes progress updates as debug log lines.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Report implements Sink.
func (s LogSink) Report(title string, done, total int) {
	s.logger().Debug("Progress", "title", title, "done", done, "total", total)
}

// Clear implements Sink.
func (s LogSink) Clear() {}

// Event is one recorded progress call.
type Event struct {
	Title   string
	Done    int
	Total   int
	Cleared bool
}

// Recorder keeps every progress call in order; useful for tests and reports.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Report implements Sink.
func (r *Recorder) Report(title string, done, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Title: title, Done: done, Total: total})
}

// Clear implements Sink.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Cleared: true})
}

// Events returns a copy of the recorded calls.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
