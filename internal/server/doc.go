// Package server wires the per-source scope clients, instrumentation,
// and operational HTTP endpoints into a single context shared by the
// MCP tool handlers.
//
// A ServerContext owns one gateway client and one typed client per
// integration source (Discord, Slack, Google Drive, notes). The
// MetricsServer exposes Prometheus metrics and Kubernetes probes on a
// port separate from the MCP transport.
package server
