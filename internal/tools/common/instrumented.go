package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/trace"

	"github.com/scopeboard/scopeboard/internal/instrumentation"
	"github.com/scopeboard/scopeboard/internal/server"
)

// InstrumentedToolHandler wraps a tool handler with metrics and audit logging.
// It records tool invocation metrics and logs the invocation for audit purposes.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return instrumented(toolName, "", "", sc, handler)
}

// InstrumentedToolHandlerWithSource is like InstrumentedToolHandler but also
// tags the invocation with the integration source and operation type, so the
// audit trail shows which gateway surface a tool touched.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithSource("my_tool", "discord", "cycle", sc, handler))
func InstrumentedToolHandlerWithSource(
	toolName string,
	source string,
	operation string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return instrumented(toolName, source, operation, sc, handler)
}

func instrumented(
	toolName, source, operation string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// Get metrics and audit logger (may be nil if not configured)
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		// If no instrumentation configured, just call the handler
		if metrics == nil && auditLogger == nil {
			return handler(ctx, request)
		}

		// Wrap source-tagged handlers in a span so the audit record carries
		// trace ids and the gateway call shows up in traces.
		var span trace.Span
		if source != "" && operation != "" {
			ctx, span = instrumentation.StartGatewaySpan(ctx, source, operation)
		}

		// Start timing and create invocation record
		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx)
		if operation != "" {
			invocation.WithOperation(operation)
		}

		// Extract the scope target from request arguments
		scopeID, leafID := ScopeTargetFromArgs(request.GetArguments())
		invocation.WithTarget(source, scopeID, leafID)

		// Call the actual handler
		result, err := handler(ctx, request)
		duration := time.Since(start)

		if span != nil {
			instrumentation.EndSpan(span, err)
		}

		// Determine status
		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			if err != nil {
				invocation.CompleteWithError(err)
			} else {
				invocation.Complete(false, nil)
			}
		} else {
			invocation.CompleteSuccess()
		}

		// Record metrics
		if metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, status, duration)
			if source != "" && operation != "" {
				metrics.RecordGatewayOperation(ctx, source, operation, status, duration)
			}
		}

		// Log audit
		if auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		return result, err
	}
}
