package logging

import (
	"log/slog"

	"github.com/scopeboard/scopeboard/internal/scope"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeySource    = "source"
	KeyScope     = "scope"
	KeyLeaf      = "leaf"
	KeyOverride  = "override"
	KeyEffective = "effective"
	KeyDuration  = "duration"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyTool      = "tool"
)

// Status values for log attributes, matching the instrumentation package's
// status labels. Instrumentation imports this package, so the values are
// defined here as well.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Source type values. Each matches the gateway's path segment for the
// integration.
const (
	SourceDiscord = "discord"
	SourceSlack   = "slack"
	SourceGDrive  = "gdrive"
	SourceNotes   = "notes"
)

// WithSource returns a logger with the source attribute set.
func WithSource(logger *slog.Logger, source string) *slog.Logger {
	return logger.With(slog.String(KeySource, source))
}

// WithScope returns a logger with the parent scope id attribute set.
func WithScope(logger *slog.Logger, scopeID string) *slog.Logger {
	return logger.With(slog.String(KeyScope, scopeID))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Source returns a slog attribute for the source type.
func Source(source string) slog.Attr {
	return slog.String(KeySource, source)
}

// Scope returns a slog attribute for a parent scope id.
func Scope(scopeID string) slog.Attr {
	return slog.String(KeyScope, scopeID)
}

// Leaf returns a slog attribute for a leaf id.
func Leaf(leafID string) slog.Attr {
	return slog.String(KeyLeaf, leafID)
}

// OverrideValue returns a slog attribute for a tri-state override.
func OverrideValue(o scope.Override) slog.Attr {
	return slog.String(KeyOverride, o.String())
}

// Effective returns a slog attribute for a resolved collection decision.
func Effective(collect bool) slog.Attr {
	return slog.Bool(KeyEffective, collect)
}

// Tool returns a slog attribute for the MCP tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from
// output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}
