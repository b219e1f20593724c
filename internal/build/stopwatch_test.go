package build

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopwatch_StateMachine(t *testing.T) {
	clock := clockwork.NewFakeClock()
	w := NewStopwatch(clock)

	assert.Equal(t, WatchNotStarted, w.State())
	assert.ErrorIs(t, w.Stop(), ErrStopwatchNotRunning)

	require.NoError(t, w.Start())
	assert.ErrorIs(t, w.Start(), ErrStopwatchRunning)
	assert.Equal(t, WatchRunning, w.State())

	clock.Advance(1500 * time.Millisecond)
	assert.InDelta(t, 1.5, w.Seconds(), 1e-9)

	require.NoError(t, w.Stop())
	assert.Equal(t, WatchStopped, w.State())
	assert.ErrorIs(t, w.Stop(), ErrStopwatchNotRunning)

	clock.Advance(time.Hour)
	assert.InDelta(t, 1.5, w.Seconds(), 1e-9)

	require.NoError(t, w.Start())
	clock.Advance(250 * time.Millisecond)
	require.NoError(t, w.Stop())
	assert.InDelta(t, 1.75, w.Seconds(), 1e-9)
}

func TestStopwatch_SecondsTruncatesToMilliseconds(t *testing.T) {
	clock := clockwork.NewFakeClock()
	w := NewStopwatch(clock)
	require.NoError(t, w.Start())
	clock.Advance(1234567 * time.Microsecond)
	assert.InDelta(t, 1.234, w.Seconds(), 1e-9)
}

func TestParametersContext_Watch(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c, err := NewParametersContext(baseParams(ModeIncrementalBuild), WithClock(clock))
	require.NoError(t, err)

	assert.ErrorIs(t, c.StopWatch(), ErrStopwatchNotRunning)
	require.NoError(t, c.BeginWatch())
	clock.Advance(2 * time.Second)
	assert.InDelta(t, 2.0, c.BuildingSeconds(), 1e-9)
	require.NoError(t, c.StopWatch())
	assert.Equal(t, WatchStopped, c.WatchState())
}
