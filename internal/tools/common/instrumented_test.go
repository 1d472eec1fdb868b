package common

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeboard/scopeboard/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(), server.Config{
		GatewayURL: "http://localhost:8080",
	})
	require.NoError(t, err)
	return sc
}

func newRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestInstrumentedToolHandlerPassesThrough(t *testing.T) {
	sc := newTestServerContext(t)

	called := false
	handler := InstrumentedToolHandler("test_tool", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := handler(context.Background(), newRequest(map[string]interface{}{
		"server_id":  "srv-1",
		"channel_id": "chan-2",
	}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, called)
	assert.False(t, result.IsError)
}

func TestInstrumentedToolHandlerPropagatesError(t *testing.T) {
	sc := newTestServerContext(t)

	wantErr := errors.New("handler exploded")
	handler := InstrumentedToolHandlerWithSource("test_tool", "discord", "cycle", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return nil, wantErr
		})

	result, err := handler(context.Background(), newRequest(nil))
	assert.ErrorIs(t, err, wantErr)
	assert.Nil(t, result)
}

func TestInstrumentedToolHandlerToolResultError(t *testing.T) {
	sc := newTestServerContext(t)

	handler := InstrumentedToolHandler("test_tool", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("bad input"), nil
	})

	result, err := handler(context.Background(), newRequest(nil))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
