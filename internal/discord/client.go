package discord

import (
	"context"
	"fmt"

	"github.com/scopeboard/scopeboard/internal/gateway"
	"github.com/scopeboard/scopeboard/internal/scope"
)

// Client provides Discord scope operations backed by the sync gateway.
type Client struct {
	gw *gateway.Client
}

// NewClient creates a Discord scope client.
func NewClient(gw *gateway.Client) (*Client, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway client is required")
	}
	return &Client{gw: gw}, nil
}

// ListServers fetches all configured Discord servers as scope snapshots.
func (c *Client) ListServers(ctx context.Context) ([]*scope.ScopeNode, error) {
	var records []ServerRecord
	if err := c.gw.Get(ctx, "/discord/servers", &records); err != nil {
		return nil, fmt.Errorf("failed to list Discord servers: %w", err)
	}

	servers := make([]*scope.ScopeNode, 0, len(records))
	for _, rec := range records {
		sn, err := convertServer(rec)
		if err != nil {
			return nil, err
		}
		servers = append(servers, sn)
	}
	return servers, nil
}

// GetServer fetches a single server's scope snapshot.
func (c *Client) GetServer(ctx context.Context, serverID string) (*scope.ScopeNode, error) {
	if serverID == "" {
		return nil, fmt.Errorf("serverID is required")
	}

	var rec ServerRecord
	if err := c.gw.Get(ctx, fmt.Sprintf("/discord/servers/%s", serverID), &rec); err != nil {
		return nil, fmt.Errorf("failed to get Discord server %s: %w", serverID, err)
	}
	return convertServer(rec)
}

// SetChannelOverride persists a channel's tri-state override.
func (c *Client) SetChannelOverride(ctx context.Context, serverID, channelID string, o scope.Override) error {
	if serverID == "" {
		return fmt.Errorf("serverID is required")
	}
	if channelID == "" {
		return fmt.Errorf("channelID is required")
	}

	patch := gateway.OverridePatch{CollectMessages: gateway.FlagFromOverride(o)}
	path := fmt.Sprintf("/discord/servers/%s/channels/%s", serverID, channelID)
	if err := c.gw.Patch(ctx, path, patch, nil); err != nil {
		return fmt.Errorf("failed to set override for channel %s: %w", channelID, err)
	}
	return nil
}

// SetServerDefault persists a server's collection default.
func (c *Client) SetServerDefault(ctx context.Context, serverID string, collect bool) error {
	if serverID == "" {
		return fmt.Errorf("serverID is required")
	}

	patch := gateway.DefaultPatch{CollectMessages: collect}
	path := fmt.Sprintf("/discord/servers/%s", serverID)
	if err := c.gw.Patch(ctx, path, patch, nil); err != nil {
		return fmt.Errorf("failed to set default for server %s: %w", serverID, err)
	}
	return nil
}

// convertServer converts a gateway server record to the generic scope model.
func convertServer(rec ServerRecord) (*scope.ScopeNode, error) {
	sn := scope.NewScopeNode(rec.ID, rec.Name, rec.CollectMessages)
	for _, ch := range rec.Channels {
		leaf := &scope.LeafNode{
			ID:       ch.ID,
			Name:     ch.Name,
			Override: ch.CollectMessages.Override(),
			Archived: ch.IsArchived,
		}
		if err := sn.AddLeaf(leaf); err != nil {
			return nil, fmt.Errorf("invalid Discord server %s: %w", rec.ID, err)
		}
	}
	return sn, nil
}
