package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID       = "run_id"
	KeyEvent       = "event"
	KeyEntry       = "entry"
	KeyProjectRoot = "project_root"
	KeySource      = "source"
	KeyDest        = "dest"
	KeyPath        = "path"
	KeyGlob        = "glob"
	KeyPlugin      = "plugin"
	KeyCount       = "count"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Event(kind string) slog.Attr     { return slog.String(KeyEvent, kind) }
func Entry(index int) slog.Attr       { return slog.Int(KeyEntry, index) }
func ProjectRoot(p string) slog.Attr  { return slog.String(KeyProjectRoot, p) }
func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func Dest(p string) slog.Attr         { return slog.String(KeyDest, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Glob(pattern string) slog.Attr   { return slog.String(KeyGlob, pattern) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
