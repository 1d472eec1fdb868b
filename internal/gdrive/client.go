package gdrive

import (
	"context"
	"fmt"

	"github.com/scopeboard/scopeboard/internal/gateway"
	"github.com/scopeboard/scopeboard/internal/scope"
)

// Client provides Drive scope operations backed by the sync gateway.
type Client struct {
	gw *gateway.Client
}

// NewClient creates a Drive scope client.
func NewClient(gw *gateway.Client) (*Client, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway client is required")
	}
	return &Client{gw: gw}, nil
}

// ListAccounts fetches all connected Drive accounts as scope snapshots.
func (c *Client) ListAccounts(ctx context.Context) ([]*scope.ScopeNode, error) {
	var records []AccountRecord
	if err := c.gw.Get(ctx, "/gdrive/accounts", &records); err != nil {
		return nil, fmt.Errorf("failed to list Drive accounts: %w", err)
	}

	accounts := make([]*scope.ScopeNode, 0, len(records))
	for _, rec := range records {
		sn, err := convertAccount(rec)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, sn)
	}
	return accounts, nil
}

// GetAccount fetches a single account's scope snapshot.
func (c *Client) GetAccount(ctx context.Context, accountID string) (*scope.ScopeNode, error) {
	if accountID == "" {
		return nil, fmt.Errorf("accountID is required")
	}

	var rec AccountRecord
	if err := c.gw.Get(ctx, fmt.Sprintf("/gdrive/accounts/%s", accountID), &rec); err != nil {
		return nil, fmt.Errorf("failed to get Drive account %s: %w", accountID, err)
	}
	return convertAccount(rec)
}

// SetFolderOverride persists a synced folder's tri-state override.
func (c *Client) SetFolderOverride(ctx context.Context, accountID, folderID string, o scope.Override) error {
	if accountID == "" {
		return fmt.Errorf("accountID is required")
	}
	if folderID == "" {
		return fmt.Errorf("folderID is required")
	}

	patch := gateway.OverridePatch{CollectMessages: gateway.FlagFromOverride(o)}
	path := fmt.Sprintf("/gdrive/accounts/%s/folders/%s", accountID, folderID)
	if err := c.gw.Patch(ctx, path, patch, nil); err != nil {
		return fmt.Errorf("failed to set override for folder %s: %w", folderID, err)
	}
	return nil
}

// SetFolderExclusions persists a recursive folder's full exclusion set.
// The set is sent whole; the gateway replaces rather than merges, matching
// the immutable-set discipline of scope.ExclusionSet.
func (c *Client) SetFolderExclusions(ctx context.Context, accountID, folderID string, excluded scope.ExclusionSet) error {
	if accountID == "" {
		return fmt.Errorf("accountID is required")
	}
	if folderID == "" {
		return fmt.Errorf("folderID is required")
	}

	patch := gateway.ExclusionsPatch{ExcludeFolderIDs: excluded.IDs()}
	path := fmt.Sprintf("/gdrive/accounts/%s/folders/%s/exclusions", accountID, folderID)
	if err := c.gw.Patch(ctx, path, patch, nil); err != nil {
		return fmt.Errorf("failed to set exclusions for folder %s: %w", folderID, err)
	}
	return nil
}

// SetAccountDefault persists an account's collection default.
func (c *Client) SetAccountDefault(ctx context.Context, accountID string, collect bool) error {
	if accountID == "" {
		return fmt.Errorf("accountID is required")
	}

	patch := gateway.DefaultPatch{CollectMessages: collect}
	path := fmt.Sprintf("/gdrive/accounts/%s", accountID)
	if err := c.gw.Patch(ctx, path, patch, nil); err != nil {
		return fmt.Errorf("failed to set default for account %s: %w", accountID, err)
	}
	return nil
}

// convertAccount converts a gateway account record to the generic model.
func convertAccount(rec AccountRecord) (*scope.ScopeNode, error) {
	sn := scope.NewScopeNode(rec.ID, rec.Email, rec.CollectMessages)
	for _, folder := range rec.Folders {
		name := folder.Path
		if name == "" {
			// No display path fetched yet; the id still identifies the leaf.
			name = folder.ID
		}
		leaf := &scope.LeafNode{
			ID:        folder.ID,
			Name:      name,
			Override:  folder.CollectMessages.Override(),
			Recursive: folder.Recursive,
			Excluded:  scope.NewExclusionSet(folder.ExcludeFolderIDs...),
		}
		if err := sn.AddLeaf(leaf); err != nil {
			return nil, fmt.Errorf("invalid Drive account %s: %w", rec.ID, err)
		}
	}
	return sn, nil
}
