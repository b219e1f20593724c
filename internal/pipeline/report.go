package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/metrics"
	"git.home.luguber.info/inful/bundlebuilder/internal/version"
)

// TaskRecord is the outcome of one executed task.
type TaskRecord struct {
	Name     TaskName
	Result   metrics.ResultLabel
	Duration time.Duration
	Error    string
}

// Report captures what happened during one run.
type Report struct {
	RunID            string
	Start            time.Time
	End              time.Time
	BuildMode        string
	BuildTarget      string
	BuildVersion     string
	Pipeline         string
	Tasks            []TaskRecord
	Outcome          metrics.BuildOutcomeLabel
	BuildingSeconds  float64
	PackageDirectory string
	BundlesBuilt     int
	// Diagnostics counts verification findings by kind.
	Diagnostics map[string]int
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// TaskDuration returns how long the named task ran; zero if it never ran.
func (r *Report) TaskDuration(name TaskName) time.Duration {
	for _, t := range r.Tasks {
		if t.Name == name {
			return t.Duration
		}
	}
	return 0
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	diags := 0
	for _, n := range r.Diagnostics {
		diags += n
	}
	return fmt.Sprintf("mode=%s target=%s tasks=%d bundles=%d diagnostics=%d building=%.3fs outcome=%s",
		r.BuildMode, r.BuildTarget, len(r.Tasks), r.BundlesBuilt, diags, r.BuildingSeconds, r.Outcome)
}

type reportFile struct {
	SchemaVersion    int              `yaml:"schema_version"`
	ToolVersion      string           `yaml:"tool_version"`
	RunID            string           `yaml:"run_id"`
	Start            time.Time        `yaml:"start"`
	End              time.Time        `yaml:"end"`
	BuildMode        string           `yaml:"build_mode"`
	BuildTarget      string           `yaml:"build_target"`
	BuildVersion     string           `yaml:"build_version,omitempty"`
	Pipeline         string           `yaml:"pipeline"`
	Outcome          string           `yaml:"outcome"`
	BuildingSeconds  float64          `yaml:"building_seconds"`
	PackageDirectory string           `yaml:"package_directory,omitempty"`
	BundlesBuilt     int              `yaml:"bundles_built"`
	Tasks            []reportTaskFile `yaml:"tasks"`
	Diagnostics      map[string]int   `yaml:"diagnostics,omitempty"`
}

type reportTaskFile struct {
	Name       string `yaml:"name"`
	Result     string `yaml:"result"`
	DurationMS int64  `yaml:"duration_ms"`
	Error      string `yaml:"error,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (r *Report) MarshalYAML() (any, error) {
	f := reportFile{
		SchemaVersion:    1,
		ToolVersion:      version.Version,
		RunID:            r.RunID,
		Start:            r.Start,
		End:              r.End,
		BuildMode:        r.BuildMode,
		BuildTarget:      r.BuildTarget,
		BuildVersion:     r.BuildVersion,
		Pipeline:         r.Pipeline,
		Outcome:          string(r.Outcome),
		BuildingSeconds:  r.BuildingSeconds,
		PackageDirectory: r.PackageDirectory,
		BundlesBuilt:     r.BundlesBuilt,
		Tasks:            make([]reportTaskFile, 0, len(r.Tasks)),
		Diagnostics:      r.Diagnostics,
	}
	for _, t := range r.Tasks {
		f.Tasks = append(f.Tasks, reportTaskFile{
			Name:       string(t.Name),
			Result:     string(t.Result),
			DurationMS: t.Duration.Milliseconds(),
			Error:      t.Error,
		})
	}
	return f, nil
}

// Save writes the report as YAML, replacing path atomically.
func (r *Report) Save(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "marshal build report").Build()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.FileSystemError("create report directory").WithCause(err).WithContext("path", path).Build()
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.FileSystemError("write build report").WithCause(err).WithContext("path", path).Build()
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.FileSystemError("replace build report").WithCause(err).WithContext("path", path).Build()
	}
	return nil
}
