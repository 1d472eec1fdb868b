package slack_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/scopeboard/scopeboard/internal/instrumentation"
	"github.com/scopeboard/scopeboard/internal/logging"
	"github.com/scopeboard/scopeboard/internal/scope"
	"github.com/scopeboard/scopeboard/internal/server"
	"github.com/scopeboard/scopeboard/internal/tools/common"
)

// RegisterSlackTools registers all Slack scope tools with the MCP server
func RegisterSlackTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerReadTools(s, sc)
	if !readOnly {
		registerWriteTools(s, sc)
	}
	return nil
}

// registerReadTools registers tools that never mutate gateway state
func registerReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	listWorkspacesTool := mcp.NewTool("slack_list_workspaces",
		mcp.WithDescription("List all Slack workspaces with their conversations and resolved collection states"),
	)

	s.AddTool(listWorkspacesTool, common.InstrumentedToolHandlerWithSource("slack_list_workspaces", instrumentation.SourceSlack, "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			workspaces, err := sc.SlackClient().ListWorkspaces(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list Slack workspaces: %v", err)), nil
			}
			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceSlack, common.LeafCount(workspaces))

			result, _ := json.MarshalIndent(common.NewScopeViews(workspaces), "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	getWorkspaceTool := mcp.NewTool("slack_get_workspace",
		mcp.WithDescription("Get a single Slack workspace with resolved collection states for every conversation"),
		mcp.WithString("workspace_id",
			mcp.Required(),
			mcp.Description("The ID of the Slack workspace"),
		),
	)

	s.AddTool(getWorkspaceTool, common.InstrumentedToolHandlerWithSource("slack_get_workspace", instrumentation.SourceSlack, "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			workspaceID, err := common.RequiredString(args, "workspace_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sn, err := sc.SlackClient().GetWorkspace(ctx, workspaceID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Slack workspace: %v", err)), nil
			}
			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceSlack, sn.Len())

			result, _ := json.MarshalIndent(common.NewScopeView(sn), "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))
}

// registerWriteTools registers tools that persist scope changes through the gateway
func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	cycleConversationTool := mcp.NewTool("slack_cycle_conversation",
		mcp.WithDescription("Advance a conversation's override one step: inherit -> on -> off -> inherit. Archived conversations are rejected."),
		mcp.WithString("workspace_id",
			mcp.Required(),
			mcp.Description("The ID of the Slack workspace"),
		),
		mcp.WithString("conversation_id",
			mcp.Required(),
			mcp.Description("The ID of the conversation to cycle"),
		),
	)

	s.AddTool(cycleConversationTool, common.InstrumentedToolHandlerWithSource("slack_cycle_conversation", instrumentation.SourceSlack, "cycle", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			workspaceID, err := common.RequiredString(args, "workspace_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			conversationID, err := common.RequiredString(args, "conversation_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sn, err := sc.SlackClient().GetWorkspace(ctx, workspaceID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Slack workspace: %v", err)), nil
			}

			next, err := sn.CycleLeaf(conversationID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to cycle conversation: %v", err)), nil
			}

			if err := sc.SlackClient().SetConversationOverride(ctx, workspaceID, conversationID, next); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to persist conversation override: %v", err)), nil
			}
			sc.Metrics().RecordScopeIntent(ctx, instrumentation.SourceSlack, next.String())

			effective, err := sn.Effective(conversationID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve conversation: %v", err)), nil
			}
			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceSlack, 1)
			slog.Info("conversation override cycled",
				logging.Source(logging.SourceSlack),
				logging.Scope(workspaceID),
				logging.Leaf(conversationID),
				logging.OverrideValue(next),
				logging.Effective(effective),
			)
			return mcp.NewToolResultText(fmt.Sprintf("Conversation %s override is now %q, effective collection: %t", conversationID, next, effective)), nil
		}))

	setOverrideTool := mcp.NewTool("slack_set_conversation_override",
		mcp.WithDescription("Set a conversation's collection override directly"),
		mcp.WithString("workspace_id",
			mcp.Required(),
			mcp.Description("The ID of the Slack workspace"),
		),
		mcp.WithString("conversation_id",
			mcp.Required(),
			mcp.Description("The ID of the conversation"),
		),
		mcp.WithString("override",
			mcp.Required(),
			mcp.Description("The override to store: 'inherit', 'on', or 'off'"),
		),
	)

	s.AddTool(setOverrideTool, common.InstrumentedToolHandlerWithSource("slack_set_conversation_override", instrumentation.SourceSlack, "set_override", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			workspaceID, err := common.RequiredString(args, "workspace_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			conversationID, err := common.RequiredString(args, "conversation_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			overrideArg, err := common.RequiredString(args, "override")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			override, err := scope.ParseOverride(overrideArg)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sn, err := sc.SlackClient().GetWorkspace(ctx, workspaceID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Slack workspace: %v", err)), nil
			}

			if err := sn.SetLeafOverride(conversationID, override); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to set conversation override: %v", err)), nil
			}

			if err := sc.SlackClient().SetConversationOverride(ctx, workspaceID, conversationID, override); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to persist conversation override: %v", err)), nil
			}
			sc.Metrics().RecordScopeIntent(ctx, instrumentation.SourceSlack, override.String())

			effective, err := sn.Effective(conversationID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve conversation: %v", err)), nil
			}
			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceSlack, 1)
			slog.Info("conversation override set",
				logging.Source(logging.SourceSlack),
				logging.Scope(workspaceID),
				logging.Leaf(conversationID),
				logging.OverrideValue(override),
				logging.Effective(effective),
			)
			return mcp.NewToolResultText(fmt.Sprintf("Conversation %s override set to %q, effective collection: %t", conversationID, override, effective)), nil
		}))

	toggleDefaultTool := mcp.NewTool("slack_toggle_workspace_default",
		mcp.WithDescription("Flip a workspace's collection default. Conversations with an 'inherit' override pick up the new value; stored overrides are untouched."),
		mcp.WithString("workspace_id",
			mcp.Required(),
			mcp.Description("The ID of the Slack workspace"),
		),
	)

	s.AddTool(toggleDefaultTool, common.InstrumentedToolHandlerWithSource("slack_toggle_workspace_default", instrumentation.SourceSlack, "set_default", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			workspaceID, err := common.RequiredString(args, "workspace_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sn, err := sc.SlackClient().GetWorkspace(ctx, workspaceID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Slack workspace: %v", err)), nil
			}

			newDefault := sn.ToggleDefault()
			if err := sc.SlackClient().SetWorkspaceDefault(ctx, workspaceID, newDefault); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to persist workspace default: %v", err)), nil
			}
			sc.Metrics().RecordScopeIntent(ctx, instrumentation.SourceSlack, "default")
			slog.Info("workspace default toggled",
				logging.Source(logging.SourceSlack),
				logging.Scope(workspaceID),
				slog.Bool("collect_default", newDefault),
			)

			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceSlack, sn.Len())
			result, _ := json.MarshalIndent(common.NewScopeView(sn), "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Workspace %s collection default is now %t:\n%s", workspaceID, newDefault, string(result))), nil
		}))
}
