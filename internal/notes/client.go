package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/scopeboard/scopeboard/internal/gateway"
	"github.com/scopeboard/scopeboard/internal/pathtree"
)

// Client provides the notes browser operations backed by the sync gateway.
type Client struct {
	gw *gateway.Client
}

// NewClient creates a notes browser client.
func NewClient(gw *gateway.Client) (*Client, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway client is required")
	}
	return &Client{gw: gw}, nil
}

// ListPaths fetches the flat note paths with the storage prefix stripped.
func (c *Client) ListPaths(ctx context.Context) ([]string, error) {
	var listing gateway.FileListing
	if err := c.gw.Get(ctx, "/notes/files", &listing); err != nil {
		return nil, fmt.Errorf("failed to list note files: %w", err)
	}
	return stripPrefix(listing.Prefix, listing.Paths), nil
}

// Tree fetches the note paths and builds the browse tree.
func (c *Client) Tree(ctx context.Context) (*pathtree.Tree, error) {
	paths, err := c.ListPaths(ctx)
	if err != nil {
		return nil, err
	}
	return pathtree.Build(paths), nil
}

// stripPrefix removes the gateway's storage prefix from each path. The
// prefix is treated as a directory: a separating slash is consumed too.
func stripPrefix(prefix string, paths []string) []string {
	if prefix == "" {
		return paths
	}
	prefix = strings.TrimSuffix(prefix, "/") + "/"

	stripped := make([]string, 0, len(paths))
	for _, p := range paths {
		stripped = append(stripped, strings.TrimPrefix(p, prefix))
	}
	return stripped
}
