// Package common provides shared helpers for MCP tool handlers:
// argument extraction, scope rendering, and instrumentation wrappers
// that record metrics and audit logs around every tool call.
package common
