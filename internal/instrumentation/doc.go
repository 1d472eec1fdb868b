// Package instrumentation wires OpenTelemetry metrics and tracing for the
// scope panel backend: gateway call counters and latencies, scope toggle
// intents, and MCP tool invocations. Metrics export through Prometheus by
// default, with OTLP and stdout exporters available for development.
package instrumentation
