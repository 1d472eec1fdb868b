package gdrive_tools

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

// RegisterGDriveTools registers all Google Drive scope tools with the MCP server
func RegisterGDriveTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerReadTools(s, sc)
	if !readOnly {
		registerWriteTools(s, sc)
	}
	return nil
}

// registerReadTools registers tools that never mutate gateway state
func registerReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	listAccountsTool := mcp.NewTool("gdrive_list_accounts",
		mcp.WithDescription("List all Google Drive accounts with their synced folders and resolved collection states"),
	)

	s.AddTool(listAccountsTool, common.InstrumentedToolHandlerWithSource("gdrive_list_accounts", instrumentation.SourceGDrive, "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			accounts, err := sc.GDriveClient().ListAccounts(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list Drive accounts: %v", err)), nil
			}
			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceGDrive, common.LeafCount(accounts))

			result, _ := json.MarshalIndent(common.NewScopeViews(accounts), "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	getAccountTool := mcp.NewTool("gdrive_get_account",
		mcp.WithDescription("Get a single Drive account with resolved collection states for every synced folder"),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The ID of the Drive account"),
		),
	)

	s.AddTool(getAccountTool, common.InstrumentedToolHandlerWithSource("gdrive_get_account", instrumentation.SourceGDrive, "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			accountID, err := common.RequiredString(args, "account_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sn, err := sc.GDriveClient().GetAccount(ctx, accountID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Drive account: %v", err)), nil
			}
			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceGDrive, sn.Len())

			result, _ := json.MarshalIndent(common.NewScopeView(sn), "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	checkDescendantTool := mcp.NewTool("gdrive_check_descendant",
		mcp.WithDescription("Check whether a descendant of a recursive folder would be collected: the folder must resolve to collecting and the descendant must not be excluded"),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The ID of the Drive account"),
		),
		mcp.WithString("folder_id",
			mcp.Required(),
			mcp.Description("The ID of the synced folder"),
		),
		mcp.WithString("descendant_id",
			mcp.Required(),
			mcp.Description("The ID of the descendant folder to check"),
		),
	)

	s.AddTool(checkDescendantTool, common.InstrumentedToolHandlerWithSource("gdrive_check_descendant", instrumentation.SourceGDrive, "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			accountID, err := common.RequiredString(args, "account_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			folderID, err := common.RequiredString(args, "folder_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			descendantID, err := common.RequiredString(args, "descendant_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sn, err := sc.GDriveClient().GetAccount(ctx, accountID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Drive account: %v", err)), nil
			}

			collects, err := sn.CollectsDescendant(folderID, descendantID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve descendant: %v", err)), nil
			}
			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceGDrive, 1)
			return mcp.NewToolResultText(fmt.Sprintf("Descendant %s of folder %s collects: %t", descendantID, folderID, collects)), nil
		}))
}

// registerWriteTools registers tools that persist scope changes through the gateway
func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	cycleFolderTool := mcp.NewTool("gdrive_cycle_folder",
		mcp.WithDescription("Advance a synced folder's override one step: inherit -> on -> off -> inherit"),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The ID of the Drive account"),
		),
		mcp.WithString("folder_id",
			mcp.Required(),
			mcp.Description("The ID of the folder to cycle"),
		),
	)

	s.AddTool(cycleFolderTool, common.InstrumentedToolHandlerWithSource("gdrive_cycle_folder", instrumentation.SourceGDrive, "cycle", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			accountID, err := common.RequiredString(args, "account_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			folderID, err := common.RequiredString(args, "folder_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sn, err := sc.GDriveClient().GetAccount(ctx, accountID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Drive account: %v", err)), nil
			}

			next, err := sn.CycleLeaf(folderID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to cycle folder: %v", err)), nil
			}

			if err := sc.GDriveClient().SetFolderOverride(ctx, accountID, folderID, next); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to persist folder override: %v", err)), nil
			}
			sc.Metrics().RecordScopeIntent(ctx, instrumentation.SourceGDrive, next.String())

			effective, err := sn.Effective(folderID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve folder: %v", err)), nil
			}
			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceGDrive, 1)
			slog.Info("folder override cycled",
				logging.Source(logging.SourceGDrive),
				logging.Scope(accountID),
				logging.Leaf(folderID),
				logging.OverrideValue(next),
				logging.Effective(effective),
			)
			return mcp.NewToolResultText(fmt.Sprintf("Folder %s override is now %q, effective collection: %t", folderID, next, effective)), nil
		}))

	setOverrideTool := mcp.NewTool("gdrive_set_folder_override",
		mcp.WithDescription("Set a synced folder's collection override directly"),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The ID of the Drive account"),
		),
		mcp.WithString("folder_id",
			mcp.Required(),
			mcp.Description("The ID of the folder"),
		),
		mcp.WithString("override",
			mcp.Required(),
			mcp.Description("The override to store: 'inherit', 'on', or 'off'"),
		),
	)

	s.AddTool(setOverrideTool, common.InstrumentedToolHandlerWithSource("gdrive_set_folder_override", instrumentation.SourceGDrive, "set_override", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			accountID, err := common.RequiredString(args, "account_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			folderID, err := common.RequiredString(args, "folder_id")
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

			sn, err := sc.GDriveClient().GetAccount(ctx, accountID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Drive account: %v", err)), nil
			}

			if err := sn.SetLeafOverride(folderID, override); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to set folder override: %v", err)), nil
			}

			if err := sc.GDriveClient().SetFolderOverride(ctx, accountID, folderID, override); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to persist folder override: %v", err)), nil
			}
			sc.Metrics().RecordScopeIntent(ctx, instrumentation.SourceGDrive, override.String())

			effective, err := sn.Effective(folderID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve folder: %v", err)), nil
			}
			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceGDrive, 1)
			slog.Info("folder override set",
				logging.Source(logging.SourceGDrive),
				logging.Scope(accountID),
				logging.Leaf(folderID),
				logging.OverrideValue(override),
				logging.Effective(effective),
			)
			return mcp.NewToolResultText(fmt.Sprintf("Folder %s override set to %q, effective collection: %t", folderID, override, effective)), nil
		}))

	toggleDefaultTool := mcp.NewTool("gdrive_toggle_account_default",
		mcp.WithDescription("Flip a Drive account's collection default. Folders with an 'inherit' override pick up the new value; stored overrides are untouched."),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The ID of the Drive account"),
		),
	)

	s.AddTool(toggleDefaultTool, common.InstrumentedToolHandlerWithSource("gdrive_toggle_account_default", instrumentation.SourceGDrive, "set_default", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			accountID, err := common.RequiredString(args, "account_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sn, err := sc.GDriveClient().GetAccount(ctx, accountID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Drive account: %v", err)), nil
			}

			newDefault := sn.ToggleDefault()
			if err := sc.GDriveClient().SetAccountDefault(ctx, accountID, newDefault); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to persist account default: %v", err)), nil
			}
			sc.Metrics().RecordScopeIntent(ctx, instrumentation.SourceGDrive, "default")
			slog.Info("account default toggled",
				logging.Source(logging.SourceGDrive),
				logging.Scope(accountID),
				slog.Bool("collect_default", newDefault),
			)

			sc.Metrics().RecordScopeResolutions(ctx, instrumentation.SourceGDrive, sn.Len())
			result, _ := json.MarshalIndent(common.NewScopeView(sn), "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Account %s collection default is now %t:\n%s", accountID, newDefault, string(result))), nil
		}))

	toggleExclusionTool := mcp.NewTool("gdrive_toggle_folder_exclusion",
		mcp.WithDescription("Toggle a descendant's membership in a recursive folder's exclusion set. Excluded descendants are never collected, even when the folder is. The exclusion set only prunes a collecting subtree; it never turns collection on."),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The ID of the Drive account"),
		),
		mcp.WithString("folder_id",
			mcp.Required(),
			mcp.Description("The ID of the synced folder owning the exclusion set"),
		),
		mcp.WithString("descendant_id",
			mcp.Required(),
			mcp.Description("The ID of the descendant folder to toggle"),
		),
	)

	s.AddTool(toggleExclusionTool, common.InstrumentedToolHandlerWithSource("gdrive_toggle_folder_exclusion", instrumentation.SourceGDrive, "set_exclusions", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			accountID, err := common.RequiredString(args, "account_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			folderID, err := common.RequiredString(args, "folder_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			descendantID, err := common.RequiredString(args, "descendant_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sn, err := sc.GDriveClient().GetAccount(ctx, accountID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get Drive account: %v", err)), nil
			}

			leaf := sn.Leaf(folderID)
			if leaf == nil {
				return mcp.NewToolResultError(fmt.Sprintf("Folder %s not found in account %s", folderID, accountID)), nil
			}

			excluded := leaf.Excluded.Toggle(descendantID)
			if err := sc.GDriveClient().SetFolderExclusions(ctx, accountID, folderID, excluded); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to persist exclusions: %v", err)), nil
			}
			sc.Metrics().RecordScopeIntent(ctx, instrumentation.SourceGDrive, "exclusions")
			slog.Info("folder exclusion toggled",
				logging.Source(logging.SourceGDrive),
				logging.Scope(accountID),
				logging.Leaf(folderID),
				slog.String("descendant", descendantID),
				slog.Int("exclusions", excluded.Len()),
			)

			verb := "excluded from"
			if !excluded.Contains(descendantID) {
				verb = "re-included in"
			}
			return mcp.NewToolResultText(fmt.Sprintf("Descendant %s is now %s folder %s (%d exclusions)", descendantID, verb, folderID, excluded.Len())), nil
		}))

	setExclusionsTool := mcp.NewTool("gdrive_set_folder_exclusions",
		mcp.WithDescription("Replace a recursive folder's exclusion set with the given descendant IDs"),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The ID of the Drive account"),
		),
		mcp.WithString("folder_id",
			mcp.Required(),
			mcp.Description("The ID of the synced folder owning the exclusion set"),
		),
		mcp.WithArray("exclude_folder_ids",
			mcp.Required(),
			mcp.Description("The descendant folder IDs to exclude. An empty array clears the set."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)

	s.AddTool(setExclusionsTool, common.InstrumentedToolHandlerWithSource("gdrive_set_folder_exclusions", instrumentation.SourceGDrive, "set_exclusions", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			accountID, err := common.RequiredString(args, "account_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			folderID, err := common.RequiredString(args, "folder_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			ids, err := common.StringSlice(args, "exclude_folder_ids")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			excluded := scope.NewExclusionSet(ids...)
			if err := sc.GDriveClient().SetFolderExclusions(ctx, accountID, folderID, excluded); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to persist exclusions: %v", err)), nil
			}
			sc.Metrics().RecordScopeIntent(ctx, instrumentation.SourceGDrive, "exclusions")
			slog.Info("folder exclusions replaced",
				logging.Source(logging.SourceGDrive),
				logging.Scope(accountID),
				logging.Leaf(folderID),
				slog.Int("exclusions", excluded.Len()),
			)

			return mcp.NewToolResultText(fmt.Sprintf("Folder %s now has %d exclusions", folderID, excluded.Len())), nil
		}))
}
