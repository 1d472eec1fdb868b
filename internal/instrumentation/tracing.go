package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the scopeboard package.
const TracerName = "github.com/scopeboard/scopeboard"

// Span attribute keys for scope operations.
const (
	// SpanAttrTool is the MCP tool name attribute.
	SpanAttrTool = "mcp.tool"

	// SpanAttrSource is the integration source attribute.
	SpanAttrSource = "scope.source"

	// SpanAttrScope is the parent scope id attribute.
	SpanAttrScope = "scope.parent_id"

	// SpanAttrLeaf is the leaf id attribute.
	SpanAttrLeaf = "scope.leaf_id"

	// SpanAttrOperation is the operation type attribute.
	SpanAttrOperation = "scope.operation"

	// SpanAttrStatus is the operation status attribute.
	SpanAttrStatus = "scope.status"
)

// StartGatewaySpan starts a span for a gateway operation using the global
// tracer. The caller must end the returned span.
func StartGatewaySpan(ctx context.Context, source, operation string) (context.Context, trace.Span) {
	tracer := otel.Tracer(TracerName)
	return tracer.Start(ctx, "gateway."+operation,
		trace.WithAttributes(
			attribute.String(SpanAttrSource, source),
			attribute.String(SpanAttrOperation, operation),
		),
	)
}

// EndSpan records the outcome on a span and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(SpanAttrStatus, StatusError))
	} else {
		span.SetStatus(codes.Ok, "")
		span.SetAttributes(attribute.String(SpanAttrStatus, StatusSuccess))
	}
	span.End()
}

// SpanContextIDs extracts the trace and span ids from a context, returning
// empty strings when no span is recording.
func SpanContextIDs(ctx context.Context) (traceID, spanID string) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", ""
	}
	return sc.TraceID().String(), sc.SpanID().String()
}
