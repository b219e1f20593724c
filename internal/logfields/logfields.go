package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID       = "run_id"
	KeyTask        = "task"
	KeyDurationMS  = "duration_ms"
	KeyBuildMode   = "build_mode"
	KeyBuildTarget = "build_target"
	KeyBundle      = "bundle"
	KeyAsset       = "asset"
	KeyReason      = "reason"
	KeyPath        = "path"
	KeyOptions     = "options"
	KeyCommand     = "command"
	KeyStdout      = "stdout"
	KeyStderr      = "stderr"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Task(name string) slog.Attr       { return slog.String(KeyTask, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func BuildMode(m string) slog.Attr     { return slog.String(KeyBuildMode, m) }
func BuildTarget(t string) slog.Attr   { return slog.String(KeyBuildTarget, t) }
func Bundle(name string) slog.Attr     { return slog.String(KeyBundle, name) }
func Asset(path string) slog.Attr      { return slog.String(KeyAsset, path) }
func Reason(r string) slog.Attr        { return slog.String(KeyReason, r) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Options(opts string) slog.Attr    { return slog.String(KeyOptions, opts) }
func Command(path string) slog.Attr    { return slog.String(KeyCommand, path) }
func Stdout(out string) slog.Attr      { return slog.String(KeyStdout, out) }
func Stderr(out string) slog.Attr      { return slog.String(KeyStderr, out) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
