package progress

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Report("verify", 1, 2)
	r.Report("verify", 2, 2)
	r.Clear()

	assert.Equal(t, []Event{
		{Title: "verify", Done: 1, Total: 2},
		{Title: "verify", Done: 2, Total: 2},
		{Cleared: true},
	}, r.Events())
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	s := LogSink{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	s.Report("verify", 3, 4)
	s.Clear()
	assert.Contains(t, buf.String(), "done=3 total=4")

	var _ Sink = Noop{}
	var _ Sink = &Recorder{}
}
