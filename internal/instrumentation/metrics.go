package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency.
const (
	attrSource    = "source"
	attrOperation = "operation"
	attrStatus    = "status"
	attrTool      = "tool"
	attrOverride  = "override"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// Gateway metrics
	gatewayOperationsTotal   metric.Int64Counter
	gatewayOperationDuration metric.Float64Histogram

	// Scope resolution and intent metrics
	scopeResolutionsTotal metric.Int64Counter
	scopeIntentsTotal     metric.Int64Counter

	// MCP tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.gatewayOperationsTotal, err = meter.Int64Counter(
		"gateway_operations_total",
		metric.WithDescription("Total number of sync gateway operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway_operations_total counter: %w", err)
	}

	m.gatewayOperationDuration, err = meter.Float64Histogram(
		"gateway_operation_duration_seconds",
		metric.WithDescription("Sync gateway operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway_operation_duration_seconds histogram: %w", err)
	}

	m.scopeResolutionsTotal, err = meter.Int64Counter(
		"scope_resolutions_total",
		metric.WithDescription("Total number of leaf collection-state resolutions served"),
		metric.WithUnit("{resolution}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scope_resolutions_total counter: %w", err)
	}

	m.scopeIntentsTotal, err = meter.Int64Counter(
		"scope_intents_total",
		metric.WithDescription("Total number of scope mutation intents sent to the gateway"),
		metric.WithUnit("{intent}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scope_intents_total counter: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordGatewayOperation records a gateway call with source, operation,
// status, and duration.
//
// Parameters:
//   - source: integration name (discord, slack, gdrive, notes)
//   - operation: operation type (list, get, set_override, set_default, set_exclusions)
//   - status: result status ("success" or "error")
//   - duration: time taken for the operation
func (m *Metrics) RecordGatewayOperation(ctx context.Context, source, operation, status string, duration time.Duration) {
	if m.gatewayOperationsTotal == nil || m.gatewayOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrSource, source),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.gatewayOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.gatewayOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordScopeResolutions records leaf collection-state resolutions served to
// a caller: one per leaf when a scope snapshot is rendered, one when a single
// leaf or descendant is resolved.
func (m *Metrics) RecordScopeResolutions(ctx context.Context, source string, count int) {
	if m.scopeResolutionsTotal == nil || count <= 0 {
		return // Instrumentation not initialized
	}

	m.scopeResolutionsTotal.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String(attrSource, source),
	))
}

// RecordScopeIntent records a scope mutation intent: which source it targets
// and the override value being persisted ("on", "off", "inherit", or
// "default" for parent-default flips, "exclusions" for exclusion patches).
func (m *Metrics) RecordScopeIntent(ctx context.Context, source, override string) {
	if m.scopeIntentsTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrSource, source),
		attribute.String(attrOverride, override),
	}

	m.scopeIntentsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordToolInvocation records an MCP tool invocation with tool name,
// status, and duration.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
