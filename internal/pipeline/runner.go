package pipeline

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
	"git.home.luguber.info/inful/bundlebuilder/internal/metrics"
)

// Runner executes tasks strictly one after another.
type Runner struct {
	observers []Observer
	logger    *slog.Logger
	clock     clockwork.Clock
}

// NewRunner creates a Runner with no metrics.
func NewRunner() *Runner {
	return &Runner{logger: slog.Default(), clock: clockwork.NewRealClock()}
}

// WithRecorder forwards task and run results to rec.
func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	if rec != nil {
		r.observers = append(r.observers, RecorderObserver{Recorder: rec})
	}
	return r
}

// WithObserver adds an observer; observers are called in registration order.
func (r *Runner) WithObserver(o Observer) *Runner {
	if o != nil {
		r.observers = append(r.observers, o)
	}
	return r
}

// WithLogger sets the logger.
func (r *Runner) WithLogger(l *slog.Logger) *Runner {
	if l != nil {
		r.logger = l
	}
	return r
}

// WithClock sets the clock used for task timings.
func (r *Runner) WithClock(c clockwork.Clock) *Runner {
	if c != nil {
		r.clock = c
	}
	return r
}

// Run executes tasks in order against bc. Cancellation is checked before each
// task; the first task error ends the run as a *TaskError.
func (r *Runner) Run(ctx context.Context, bc *BuildContext, tasks []Task) error {
	if bc == nil || bc.Parameters == nil {
		return errors.InternalError("pipeline run requires a build context with parameters").Build()
	}
	if bc.RunID == "" {
		bc.RunID = NewRunID()
	}
	bc.Report = r.newReport(bc)
	logger := r.logger.With(logfields.RunID(bc.RunID))

	err := r.runTasks(ctx, bc, tasks, logger)
	r.finish(bc, err)

	if err != nil {
		logger.Error("Build pipeline failed", logfields.Error(err), slog.String("outcome", string(bc.Report.Outcome)))
		return err
	}
	logger.Info("Build pipeline completed", slog.String("summary", bc.Report.Summary()))
	return nil
}

func (r *Runner) runTasks(ctx context.Context, bc *BuildContext, tasks []Task, logger *slog.Logger) error {
	for _, t := range tasks {
		name := t.Name()
		if err := ctx.Err(); err != nil {
			te := newCanceledTaskError(name, err)
			r.record(bc, name, 0, metrics.ResultCanceled, te)
			return te
		}

		for _, o := range r.observers {
			o.OnTaskStart(name)
		}
		logger.Debug("Task started", logfields.Task(string(name)))

		t0 := r.clock.Now()
		err := t.Run(ctx, bc)
		dur := r.clock.Since(t0)

		if err != nil {
			var te *TaskError
			result := metrics.ResultFatal
			if stdErrors.Is(err, context.Canceled) || stdErrors.Is(err, context.DeadlineExceeded) {
				te = newCanceledTaskError(name, err)
				result = metrics.ResultCanceled
			} else {
				te = newFatalTaskError(name, err)
			}
			r.record(bc, name, dur, result, te)
			return te
		}

		r.record(bc, name, dur, metrics.ResultSuccess, nil)
		logger.Info("Task completed", logfields.Task(string(name)), logfields.DurationMS(float64(dur.Microseconds())/1000))
	}
	return nil
}

func (r *Runner) record(bc *BuildContext, name TaskName, dur time.Duration, result metrics.ResultLabel, err error) {
	rec := TaskRecord{Name: name, Result: result, Duration: dur}
	if err != nil {
		rec.Error = err.Error()
	}
	bc.Report.Tasks = append(bc.Report.Tasks, rec)
	for _, o := range r.observers {
		o.OnTaskComplete(name, dur, result)
	}
}

func (r *Runner) newReport(bc *BuildContext) *Report {
	p := bc.Parameters.Parameters()
	return &Report{
		RunID:        bc.RunID,
		Start:        r.clock.Now(),
		BuildMode:    string(p.BuildMode),
		BuildTarget:  p.BuildTarget,
		BuildVersion: p.BuildVersion,
		Pipeline:     string(p.BuildPipeline),
		Diagnostics:  map[string]int{},
	}
}

func (r *Runner) finish(bc *BuildContext, err error) {
	rep := bc.Report
	rep.End = r.clock.Now()
	rep.BuildingSeconds = bc.Parameters.BuildingSeconds()
	rep.PackageDirectory = bc.Parameters.PackageDirectory()
	if bc.EngineResult != nil {
		rep.BundlesBuilt = len(bc.EngineResult.BundleNames)
	}
	if bc.Verification != nil {
		for _, d := range bc.Verification.Diagnostics {
			rep.Diagnostics[string(d.Kind)]++
		}
	}

	var te *TaskError
	switch {
	case err == nil:
		rep.Outcome = metrics.OutcomeSuccess
	case stdErrors.As(err, &te) && te.Kind == TaskErrorCanceled:
		rep.Outcome = metrics.OutcomeCanceled
	default:
		rep.Outcome = metrics.OutcomeFailed
	}
	for _, o := range r.observers {
		o.OnRunComplete(rep)
	}
}
