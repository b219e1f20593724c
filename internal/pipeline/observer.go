package pipeline

import (
	"time"

	"git.home.luguber.info/inful/bundlebuilder/internal/metrics"
)

// Observer receives callbacks around task execution and run completion.
type Observer interface {
	OnTaskStart(task TaskName)
	OnTaskComplete(task TaskName, duration time.Duration, result metrics.ResultLabel)
	OnRunComplete(report *Report)
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnTaskStart(TaskName)                                         {}
func (NoopObserver) OnTaskComplete(TaskName, time.Duration, metrics.ResultLabel) {}
func (NoopObserver) OnRunComplete(*Report)                                        {}

// RecorderObserver adapts metrics.Recorder into an Observer.
type RecorderObserver struct{ Recorder metrics.Recorder }

func (RecorderObserver) OnTaskStart(TaskName) {}

func (r RecorderObserver) OnTaskComplete(task TaskName, d time.Duration, result metrics.ResultLabel) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.ObserveTaskDuration(string(task), d)
	r.Recorder.IncTaskResult(string(task), result)
}

func (r RecorderObserver) OnRunComplete(report *Report) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.ObserveBuildDuration(report.Duration())
	r.Recorder.IncBuildOutcome(report.Outcome)
	r.Recorder.SetBuildingSeconds(report.BuildingSeconds)
	for kind, n := range report.Diagnostics {
		for range n {
			r.Recorder.IncVerificationDiagnostic(kind)
		}
	}
}
