package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
	"git.home.luguber.info/inful/bundlebuilder/internal/metrics"
	"git.home.luguber.info/inful/bundlebuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	RunFlags `embed:""`
	Debounce    time.Duration `name:"debounce" help:"Quiet period before a rebuild" default:"2s"`
	Every       time.Duration `name:"every" help:"Also rebuild on this interval (0 disables)" default:"0s"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9464)"`
	Initial     bool          `name:"initial" help:"Run once before waiting for changes" default:"true" negatable:""`
}

func (w *WatchCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	rec := metrics.NewPrometheusRecorder(nil)
	if w.MetricsAddr != "" {
		srv := &http.Server{Addr: w.MetricsAddr, Handler: metrics.HTTPHandler(rec.Registry()), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	run := func(ctx context.Context) error {
		// The configuration is re-read so edits take effect on the next run.
		current, err := loadConfig(root)
		if err != nil {
			return err
		}
		cfg = current
		spec := runSpec{flags: w.RunFlags, recorder: rec}
		bc, err := runOnce(ctx, g, cfg, spec)
		if metricsFile := withOutputDefaults(cfg, w.RunFlags).MetricsFile; metricsFile != "" {
			if werr := rec.WriteTextfile(metricsFile); werr != nil {
				slog.Error("Failed to write metrics file", logfields.Error(werr))
			}
		}
		if err != nil {
			return err
		}
		slog.Info("Watch build finished", slog.String("summary", bc.Report.Summary()))
		return nil
	}

	if w.Initial {
		if err := run(ctx); err != nil {
			slog.Error("Initial build failed", logfields.Error(err))
		}
	}

	watcher, err := watch.New([]string{root.Config, cfg.Resolve(cfg.BuildMap)}, run)
	if err != nil {
		return err
	}
	return watcher.WithDebounce(w.Debounce).WithInterval(w.Every).WithLogger(g.Logger).Run(ctx)
}
