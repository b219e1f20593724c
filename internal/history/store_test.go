package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bundlebuilder/internal/metrics"
	"git.home.luguber.info/inful/bundlebuilder/internal/pipeline"
)

func sampleReport(runID string, outcome metrics.BuildOutcomeLabel, start time.Time) *pipeline.Report {
	return &pipeline.Report{
		RunID:       runID,
		Start:       start,
		End:         start.Add(3 * time.Second),
		BuildMode:   "IncrementalBuild",
		BuildTarget: "Android",
		Tasks: []pipeline.TaskRecord{
			{Name: pipeline.TaskPrepare, Result: metrics.ResultSuccess, Duration: time.Second},
			{Name: pipeline.TaskBuilding, Result: metrics.ResultSuccess, Duration: 2 * time.Second},
		},
		Outcome:     outcome,
		Diagnostics: map[string]int{"unmatched_asset": 2},
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordRun(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordRun(ctx, sampleReport("run-1", metrics.OutcomeSuccess, start)))

	events, err := s.ByRun(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, EventTaskCompleted, events[0].Type)
	assert.Equal(t, "prepare", events[0].Metadata["task"])
	assert.Equal(t, "1000", events[0].Metadata["duration_ms"])
	assert.True(t, events[1].Timestamp.Equal(start.Add(3*time.Second)))

	last := events[2]
	assert.Equal(t, EventRunCompleted, last.Type)
	var report map[string]any
	require.NoError(t, yaml.Unmarshal(last.Payload, &report))
	assert.Equal(t, "run-1", report["run_id"])
}

func TestRecent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordRun(ctx, sampleReport("run-1", metrics.OutcomeSuccess, start)))
	require.NoError(t, s.RecordRun(ctx, sampleReport("run-2", metrics.OutcomeFailed, start.Add(time.Hour))))
	require.NoError(t, s.RecordRun(ctx, sampleReport("run-3", metrics.OutcomeCanceled, start.Add(2*time.Hour))))

	runs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].RunID)
	assert.Equal(t, "canceled", runs[0].Outcome)
	assert.Equal(t, "run-2", runs[1].RunID)
	assert.Equal(t, "2", runs[1].Diagnostics)
	assert.Equal(t, "Android", runs[1].BuildTarget)
}

func TestObserver_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)

	Observer{Store: s}.OnRunComplete(sampleReport("run-9", metrics.OutcomeSuccess, time.Now()))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	runs, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-9", runs[0].RunID)
}

var _ pipeline.Observer = Observer{}
