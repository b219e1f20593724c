// Package notify publishes finished runs to NATS so downstream stages (upload,
// CDN invalidation) can react to a verified package directory.
package notify

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
	"git.home.luguber.info/inful/bundlebuilder/internal/metrics"
	"git.home.luguber.info/inful/bundlebuilder/internal/pipeline"
)

// DefaultSubject is used when none is configured.
const DefaultSubject = "bundlebuilder.runs"

// RunEvent is the message body.
type RunEvent struct {
	RunID            string         `json:"run_id"`
	Outcome          string         `json:"outcome"`
	BuildMode        string         `json:"build_mode"`
	BuildTarget      string         `json:"build_target"`
	BuildVersion     string         `json:"build_version"`
	PackageDirectory string         `json:"package_directory,omitempty"`
	BundlesBuilt     int            `json:"bundles_built"`
	BuildingSeconds  float64        `json:"building_seconds"`
	Diagnostics      map[string]int `json:"diagnostics,omitempty"`
	FinishedAt       time.Time      `json:"finished_at"`
}

// NewRunEvent condenses a report.
func NewRunEvent(r *pipeline.Report) RunEvent {
	ev := RunEvent{
		RunID:           r.RunID,
		Outcome:         string(r.Outcome),
		BuildMode:       r.BuildMode,
		BuildTarget:     r.BuildTarget,
		BuildVersion:    r.BuildVersion,
		BundlesBuilt:    r.BundlesBuilt,
		BuildingSeconds: r.BuildingSeconds,
		FinishedAt:      r.End,
	}
	// Only a successful run has a package directory worth acting on.
	if r.Outcome == metrics.OutcomeSuccess {
		ev.PackageDirectory = r.PackageDirectory
	}
	if len(r.Diagnostics) > 0 {
		ev.Diagnostics = r.Diagnostics
	}
	return ev
}

// Publisher is satisfied by *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Observer publishes a RunEvent when a run completes. Publish failures are
// logged and never fail the build.
type Observer struct {
	pipeline.NoopObserver
	Publisher Publisher
	Subject   string
}

// OnRunComplete implements pipeline.Observer.
func (o Observer) OnRunComplete(r *pipeline.Report) {
	if o.Publisher == nil {
		return
	}
	subject := o.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	data, err := json.Marshal(NewRunEvent(r))
	if err != nil {
		slog.Error("Failed to encode run event", logfields.RunID(r.RunID), logfields.Error(err))
		return
	}
	if err := o.Publisher.Publish(subject, data); err != nil {
		slog.Error("Failed to publish run event", logfields.RunID(r.RunID), slog.String("subject", subject), logfields.Error(err))
		return
	}
	slog.Debug("Published run event", logfields.RunID(r.RunID), slog.String("subject", subject))
}

// Conn is a NATS connection that flushes on Close so the last event is not lost.
type Conn struct {
	*nats.Conn
}

// Connect dials url with a bounded timeout.
func Connect(url string) (*Conn, error) {
	nc, err := nats.Connect(url, nats.Name("bundlebuilder"), nats.Timeout(5*time.Second))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "connect to NATS").WithContext("url", url).Build()
	}
	return &Conn{Conn: nc}, nil
}

// Close flushes pending messages and closes the connection.
func (c *Conn) Close() {
	if err := c.FlushTimeout(5 * time.Second); err != nil {
		slog.Warn("NATS flush failed", logfields.Error(err))
	}
	c.Conn.Close()
}
