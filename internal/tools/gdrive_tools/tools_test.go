package gdrive_tools

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
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

func TestRegisterGDriveTools(t *testing.T) {
	sc := newTestServerContext(t)

	s := mcpserver.NewMCPServer("test", "0.0.1")
	require.NoError(t, RegisterGDriveTools(s, sc, false))
}

func TestRegisterGDriveToolsReadOnly(t *testing.T) {
	sc := newTestServerContext(t)

	s := mcpserver.NewMCPServer("test", "0.0.1")
	require.NoError(t, RegisterGDriveTools(s, sc, true))
}
