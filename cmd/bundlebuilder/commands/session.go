package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/bundlebuilder/internal/assetdb"
	"git.home.luguber.info/inful/bundlebuilder/internal/build"
	"git.home.luguber.info/inful/bundlebuilder/internal/buildmap"
	"git.home.luguber.info/inful/bundlebuilder/internal/config"
	"git.home.luguber.info/inful/bundlebuilder/internal/engine"
	"git.home.luguber.info/inful/bundlebuilder/internal/history"
	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
	"git.home.luguber.info/inful/bundlebuilder/internal/metrics"
	"git.home.luguber.info/inful/bundlebuilder/internal/notify"
	"git.home.luguber.info/inful/bundlebuilder/internal/pipeline"
	"git.home.luguber.info/inful/bundlebuilder/internal/progress"
	"git.home.luguber.info/inful/bundlebuilder/internal/tasks"
)

// RunFlags are the per-run overrides shared by build, verify and watch.
type RunFlags struct {
	Mode        string `name:"mode" help:"Override build.build_mode (SimulateBuild|DryRunBuild|ForceRebuild|IncrementalBuild)"`
	Target      string `name:"target" help:"Override build.build_target"`
	Report      string `name:"report" help:"Write a YAML build report to this path" type:"path"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this path" type:"path"`
}

// runSpec describes how a single pipeline run is assembled.
type runSpec struct {
	flags    RunFlags
	prebuilt bool
	verify   bool
	recorder metrics.Recorder
}

// parameters applies CLI overrides on top of the configured build parameters.
func parameters(cfg *config.Config, spec runSpec) (*build.ParametersContext, error) {
	p, err := cfg.Parameters()
	if err != nil {
		return nil, err
	}
	if spec.flags.Mode != "" {
		if p.BuildMode, err = build.ParseBuildMode(spec.flags.Mode); err != nil {
			return nil, err
		}
	}
	if spec.flags.Target != "" {
		p.BuildTarget = spec.flags.Target
	}
	if spec.verify {
		p.VerifyBuildingResult = true
	}
	return build.NewParametersContext(p)
}

// openResolver returns the identity resolver configured for cfg and a close func.
func openResolver(ctx context.Context, cfg *config.Config) (assetdb.Resolver, func(), error) {
	if cfg.AssetDatabase.Index == "" {
		return assetdb.NewMetaResolver(cfg.Resolve(cfg.AssetDatabase.ProjectRoot)), func() {}, nil
	}
	idx, err := assetdb.OpenSQLiteIndex(cfg.Resolve(cfg.AssetDatabase.Index))
	if err != nil {
		return nil, nil, err
	}
	if n, err := idx.Count(ctx); err == nil && n == 0 {
		slog.Warn("Asset identity index is empty; run `bundlebuilder index` first", logfields.Path(cfg.AssetDatabase.Index))
	}
	return idx, func() { _ = idx.Close() }, nil
}

// withOutputDefaults fills unset output flags from the configuration file.
func withOutputDefaults(cfg *config.Config, f RunFlags) RunFlags {
	if f.Report == "" && cfg.Output.Report != "" {
		f.Report = cfg.Resolve(cfg.Output.Report)
	}
	if f.MetricsFile == "" && cfg.Output.MetricsFile != "" {
		f.MetricsFile = cfg.Resolve(cfg.Output.MetricsFile)
	}
	return f
}

func selectEngine(cfg *config.Config, prebuilt bool, logger *slog.Logger) engine.Engine {
	if prebuilt || cfg.Engine.Command == "" {
		return engine.Prebuilt{}
	}
	return engine.Command{Path: cfg.Engine.Command, Args: cfg.Engine.Args, Logger: logger}
}

// runOnce executes one full pipeline run and writes the optional report and
// metrics outputs. The build context is returned even when the run failed.
func runOnce(ctx context.Context, g *Global, cfg *config.Config, spec runSpec) (*pipeline.BuildContext, error) {
	spec.flags = withOutputDefaults(cfg, spec.flags)
	params, err := parameters(cfg, spec)
	if err != nil {
		return nil, err
	}
	plan, err := buildmap.Load(cfg.Resolve(cfg.BuildMap))
	if err != nil {
		return nil, err
	}
	resolver, closeResolver, err := openResolver(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeResolver()

	rec := spec.recorder
	var prom *metrics.PrometheusRecorder
	if rec == nil && spec.flags.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		rec = prom
	}

	runner := pipeline.NewRunner().WithLogger(g.Logger).WithRecorder(rec)
	if cfg.Output.History != "" {
		store, err := history.Open(cfg.Resolve(cfg.Output.History))
		if err != nil {
			return nil, err
		}
		defer func() { _ = store.Close() }()
		runner = runner.WithObserver(history.Observer{Store: store})
	}
	if cfg.Output.NATS.URL != "" {
		conn, err := notify.Connect(cfg.Output.NATS.URL)
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		runner = runner.WithObserver(notify.Observer{Publisher: conn, Subject: cfg.Output.NATS.Subject})
	}

	bc := pipeline.NewBuildContext(params, plan)
	bc.Progress = progress.LogSink{Logger: g.Logger}
	deps := tasks.Deps{Engine: selectEngine(cfg, spec.prebuilt, g.Logger), Resolver: resolver, Logger: g.Logger}

	runErr := runner.Run(ctx, bc, tasks.Standard(params, deps).Build())

	if spec.flags.Report != "" && bc.Report != nil {
		if err := bc.Report.Save(spec.flags.Report); err != nil {
			slog.Error("Failed to write build report", logfields.Error(err))
		}
	}
	if prom != nil {
		if err := prom.WriteTextfile(spec.flags.MetricsFile); err != nil {
			slog.Error("Failed to write metrics file", logfields.Error(err))
		}
	}
	return bc, runErr
}
