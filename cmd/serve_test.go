package cmd

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeboard/scopeboard/internal/scope"
	"github.com/scopeboard/scopeboard/internal/server"
)

func TestNewServeCmdFlags(t *testing.T) {
	cmd := newServeCmd()

	assert.NotNil(t, cmd.Flags().Lookup("read-only"))
	assert.NotNil(t, cmd.Flags().Lookup("metrics-enabled"))
	assert.NotNil(t, cmd.Flags().Lookup("metrics-addr"))
}

func TestRegisterAllTools(t *testing.T) {
	sc, err := server.NewServerContext(context.Background(), server.Config{
		GatewayURL: "http://localhost:8080",
	})
	require.NoError(t, err)

	s := mcpserver.NewMCPServer("test", "0.0.1")
	require.NoError(t, registerAllTools(s, sc, false))

	s = mcpserver.NewMCPServer("test", "0.0.1")
	require.NoError(t, registerAllTools(s, sc, true))
}

func TestNewSourceRow(t *testing.T) {
	sn := scope.NewScopeNode("srv-1", "Guild", true)
	require.NoError(t, sn.AddLeaf(&scope.LeafNode{ID: "a"}))
	require.NoError(t, sn.AddLeaf(&scope.LeafNode{ID: "b", Override: scope.ForceOff}))
	require.NoError(t, sn.AddLeaf(&scope.LeafNode{ID: "c", Archived: true}))

	row := newSourceRow("discord", sn)

	assert.Equal(t, "discord", row.Source)
	assert.Equal(t, 3, row.Leaves)
	assert.Equal(t, 1, row.Collecting, "only the inherit leaf follows the true default")
}
