package notes_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/scopeboard/scopeboard/internal/instrumentation"
	"github.com/scopeboard/scopeboard/internal/pathtree"
	"github.com/scopeboard/scopeboard/internal/server"
	"github.com/scopeboard/scopeboard/internal/tools/common"
)

// RegisterNotesTools registers all notes browsing tools with the MCP server
func RegisterNotesTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listFilesTool := mcp.NewTool("notes_list_files",
		mcp.WithDescription("List all synced note paths as a flat list"),
	)

	s.AddTool(listFilesTool, common.InstrumentedToolHandlerWithSource("notes_list_files", instrumentation.SourceNotes, "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			paths, err := sc.NotesClient().ListPaths(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list note paths: %v", err)), nil
			}

			result, _ := json.MarshalIndent(paths, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	browseTreeTool := mcp.NewTool("notes_browse_tree",
		mcp.WithDescription("Render the synced notes as a nested folder tree, folders before files, both sorted"),
	)

	s.AddTool(browseTreeTool, common.InstrumentedToolHandlerWithSource("notes_browse_tree", instrumentation.SourceNotes, "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			tree, err := sc.NotesClient().Tree(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to build notes tree: %v", err)), nil
			}

			var sb strings.Builder
			renderTree(tree, "", &sb)
			return mcp.NewToolResultText(sb.String()), nil
		}))

	return nil
}

// renderTree writes one line per entry, two spaces of indent per level,
// folders (with a trailing slash) before files, both sorted.
func renderTree(t *pathtree.Tree, indent string, sb *strings.Builder) {
	for _, name := range t.SortedFolders() {
		fmt.Fprintf(sb, "%s%s/\n", indent, name)
		renderTree(t.Folders[name], indent+"  ", sb)
	}
	for _, name := range t.SortedFiles() {
		fmt.Fprintf(sb, "%s%s\n", indent, name)
	}
}
