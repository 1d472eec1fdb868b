// Package logging provides slog attribute helpers with consistent key names
// for scope operations across the codebase: which source type, which parent
// scope, which leaf, which override value.
package logging
