package history

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
	"git.home.luguber.info/inful/bundlebuilder/internal/pipeline"
)

// Observer records every finished run in a Store. Write failures are logged;
// they never change the outcome of the run.
type Observer struct {
	pipeline.NoopObserver
	Store *Store
}

// OnRunComplete implements pipeline.Observer.
func (o Observer) OnRunComplete(r *pipeline.Report) {
	if o.Store == nil {
		return
	}
	if err := o.Store.RecordRun(context.Background(), r); err != nil {
		slog.Error("Failed to record run history", logfields.RunID(r.RunID), logfields.Error(err))
	}
}
