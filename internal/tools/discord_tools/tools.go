package discord_tools

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

// RegisterDiscordTools registers all Discord scope tools with the MCP server
func RegisterDiscordTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerReadTools(s, sc)
	if !readOnly {
		registerWriteTools(s, sc)
	}
	return nil
}

// registerReadTools registers tools that never mutate gateway state
func registerReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	listServersTool := mcp.NewTool("discord_list_servers",
		mcp.WithDescription("List all Discord servers with their channels and resolved collection states"),
	)

	s.AddTool(listServersTool, common.InstrumentedToolHandlerWithSource("discord_list_servers", instrumentation.SourceDiscord, "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			servers, err := sc.DiscordClient().ListServers(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list Discord servers: %v", err)), nil
			}
			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceDiscord, common.LeafCount(servers))

			result, _ := json.MarshalIndent(common.NewScopeViews(servers), "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	getServerTool := mcp.NewTool("discord_get_server",
		mcp.WithDescription("Get a single Discord server with resolved collection states for every channel"),
		mcp.WithString("server_id",
			mcp.Required(),
			mcp.Description("The ID of the Discord server"),
		),
	)

	s.AddTool(getServerTool, common.InstrumentedToolHandlerWithSource("discord_get_server", instrumentation.SourceDiscord, "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			serverID, err := common.RequiredString(args, "server_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sn, err := sc.DiscordClient().GetServer(ctx, serverID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Discord server: %v", err)), nil
			}
			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceDiscord, sn.Len())

			result, _ := json.MarshalIndent(common.NewScopeView(sn), "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))
}

// registerWriteTools registers tools that persist scope changes through the gateway
func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	cycleChannelTool := mcp.NewTool("discord_cycle_channel",
		mcp.WithDescription("Advance a channel's override one step: inherit -> on -> off -> inherit. Archived channels are rejected."),
		mcp.WithString("server_id",
			mcp.Required(),
			mcp.Description("The ID of the Discord server"),
		),
		mcp.WithString("channel_id",
			mcp.Required(),
			mcp.Description("The ID of the channel to cycle"),
		),
	)

	s.AddTool(cycleChannelTool, common.InstrumentedToolHandlerWithSource("discord_cycle_channel", instrumentation.SourceDiscord, "cycle", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			serverID, err := common.RequiredString(args, "server_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			channelID, err := common.RequiredString(args, "channel_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sn, err := sc.DiscordClient().GetServer(ctx, serverID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Discord server: %v", err)), nil
			}

			next, err := sn.CycleLeaf(channelID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to cycle channel: %v", err)), nil
			}

			if err := sc.DiscordClient().SetChannelOverride(ctx, serverID, channelID, next); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to persist channel override: %v", err)), nil
			}
			sc.Metrics().RecordScopeIntent(ctx, instrumentation.SourceDiscord, next.String())

			effective, err := sn.Effective(channelID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve channel: %v", err)), nil
			}
			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceDiscord, 1)
			slog.Info("channel override cycled",
				logging.Source(logging.SourceDiscord),
				logging.Scope(serverID),
				logging.Leaf(channelID),
				logging.OverrideValue(next),
				logging.Effective(effective),
			)
			return mcp.NewToolResultText(fmt.Sprintf("Channel %s override is now %q, effective collection: %t", channelID, next, effective)), nil
		}))

	setOverrideTool := mcp.NewTool("discord_set_channel_override",
		mcp.WithDescription("Set a channel's collection override directly"),
		mcp.WithString("server_id",
			mcp.Required(),
			mcp.Description("The ID of the Discord server"),
		),
		mcp.WithString("channel_id",
			mcp.Required(),
			mcp.Description("The ID of the channel"),
		),
		mcp.WithString("override",
			mcp.Required(),
			mcp.Description("The override to store: 'inherit', 'on', or 'off'"),
		),
	)

	s.AddTool(setOverrideTool, common.InstrumentedToolHandlerWithSource("discord_set_channel_override", instrumentation.SourceDiscord, "set_override", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			serverID, err := common.RequiredString(args, "server_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			channelID, err := common.RequiredString(args, "channel_id")
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

			sn, err := sc.DiscordClient().GetServer(ctx, serverID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Discord server: %v", err)), nil
			}

			if err := sn.SetLeafOverride(channelID, override); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to set channel override: %v", err)), nil
			}

			if err := sc.DiscordClient().SetChannelOverride(ctx, serverID, channelID, override); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to persist channel override: %v", err)), nil
			}
			sc.Metrics().RecordScopeIntent(ctx, instrumentation.SourceDiscord, override.String())

			effective, err := sn.Effective(channelID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve channel: %v", err)), nil
			}
			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceDiscord, 1)
			slog.Info("channel override set",
				logging.Source(logging.SourceDiscord),
				logging.Scope(serverID),
				logging.Leaf(channelID),
				logging.OverrideValue(override),
				logging.Effective(effective),
			)
			return mcp.NewToolResultText(fmt.Sprintf("Channel %s override set to %q, effective collection: %t", channelID, override, effective)), nil
		}))

	toggleDefaultTool := mcp.NewTool("discord_toggle_server_default",
		mcp.WithDescription("Flip a server's collection default. Channels with an 'inherit' override pick up the new value; stored overrides are untouched."),
		mcp.WithString("server_id",
			mcp.Required(),
			mcp.Description("The ID of the Discord server"),
		),
	)

	s.AddTool(toggleDefaultTool, common.InstrumentedToolHandlerWithSource("discord_toggle_server_default", instrumentation.SourceDiscord, "set_default", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			serverID, err := common.RequiredString(args, "server_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sn, err := sc.DiscordClient().GetServer(ctx, serverID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Discord server: %v", err)), nil
			}

			newDefault := sn.ToggleDefault()
			if err := sc.DiscordClient().SetServerDefault(ctx, serverID, newDefault); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to persist server default: %v", err)), nil
			}
			sc.Metrics().RecordScopeIntent(ctx, instrumentation.SourceDiscord, "default")
			slog.Info("server default toggled",
				logging.Source(logging.SourceDiscord),
				logging.Scope(serverID),
				slog.Bool("collect_default", newDefault),
			)

			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceDiscord, sn.Len())
			result, _ := json.MarshalIndent(common.NewScopeView(sn), "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Server %s collection default is now %t:\n%s", serverID, newDefault, string(result))), nil
		}))
}
