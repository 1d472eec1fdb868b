package slack

import (
	"context"
	"fmt"

	"github.com/scopeboard/scopeboard/internal/gateway"
	"github.com/scopeboard/scopeboard/internal/scope"
)

// Client provides Slack scope operations backed by the sync gateway.
type Client struct {
	gw *gateway.Client
}

// NewClient creates a Slack scope client.
func NewClient(gw *gateway.Client) (*Client, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway client is required")
	}
	return &Client{gw: gw}, nil
}

// ListWorkspaces fetches all configured Slack workspaces as scope snapshots.
func (c *Client) ListWorkspaces(ctx context.Context) ([]*scope.ScopeNode, error) {
	var records []WorkspaceRecord
	if err := c.gw.Get(ctx, "/slack/workspaces", &records); err != nil {
		return nil, fmt.Errorf("failed to list Slack workspaces: %w", err)
	}

	workspaces := make([]*scope.ScopeNode, 0, len(records))
	for _, rec := range records {
		sn, err := convertWorkspace(rec)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, sn)
	}
	return workspaces, nil
}

// GetWorkspace fetches a single workspace's scope snapshot.
func (c *Client) GetWorkspace(ctx context.Context, workspaceID string) (*scope.ScopeNode, error) {
	if workspaceID == "" {
		return nil, fmt.Errorf("workspaceID is required")
	}

	var rec WorkspaceRecord
	if err := c.gw.Get(ctx, fmt.Sprintf("/slack/workspaces/%s", workspaceID), &rec); err != nil {
		return nil, fmt.Errorf("failed to get Slack workspace %s: %w", workspaceID, err)
	}
	return convertWorkspace(rec)
}

// SetConversationOverride persists a conversation's tri-state override.
func (c *Client) SetConversationOverride(ctx context.Context, workspaceID, conversationID string, o scope.Override) error {
	if workspaceID == "" {
		return fmt.Errorf("workspaceID is required")
	}
	if conversationID == "" {
		return fmt.Errorf("conversationID is required")
	}

	patch := gateway.OverridePatch{CollectMessages: gateway.FlagFromOverride(o)}
	path := fmt.Sprintf("/slack/workspaces/%s/conversations/%s", workspaceID, conversationID)
	if err := c.gw.Patch(ctx, path, patch, nil); err != nil {
		return fmt.Errorf("failed to set override for conversation %s: %w", conversationID, err)
	}
	return nil
}

// SetWorkspaceDefault persists a workspace's collection default.
func (c *Client) SetWorkspaceDefault(ctx context.Context, workspaceID string, collect bool) error {
	if workspaceID == "" {
		return fmt.Errorf("workspaceID is required")
	}

	patch := gateway.DefaultPatch{CollectMessages: collect}
	path := fmt.Sprintf("/slack/workspaces/%s", workspaceID)
	if err := c.gw.Patch(ctx, path, patch, nil); err != nil {
		return fmt.Errorf("failed to set default for workspace %s: %w", workspaceID, err)
	}
	return nil
}

// convertWorkspace converts a gateway workspace record to the generic model.
func convertWorkspace(rec WorkspaceRecord) (*scope.ScopeNode, error) {
	sn := scope.NewScopeNode(rec.ID, rec.Name, rec.CollectMessages)
	for _, conv := range rec.Conversations {
		leaf := &scope.LeafNode{
			ID:       conv.ID,
			Name:     conv.Name,
			Override: conv.CollectMessages.Override(),
			Archived: conv.IsArchived,
		}
		if err := sn.AddLeaf(leaf); err != nil {
			return nil, fmt.Errorf("invalid Slack workspace %s: %w", rec.ID, err)
		}
	}
	return sn, nil
}
