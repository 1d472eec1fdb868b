package scope

import "fmt"

// LeafNode is a single collectible resource under a parent scope: a chat
// channel, a conversation, or a synced folder.
type LeafNode struct {
	// ID is the leaf's identifier, unique within its parent.
	ID string

	// Name is the human-readable name, used for display only.
	Name string

	// Override is the stored tri-state local setting.
	Override Override

	// Archived pins the leaf to non-collecting and makes its toggle inert.
	Archived bool

	// Recursive marks a folder leaf whose descendants are synced too.
	Recursive bool

	// Excluded holds descendant ids excluded from a recursive folder's sync.
	// Only meaningful when Recursive is true.
	Excluded ExclusionSet
}

// ScopeNode is a parent scope: a Discord server, a Slack workspace, or a
// Drive account. It is the root of inheritance for its leaves.
type ScopeNode struct {
	// ID is the scope's identifier, unique within its source type.
	ID string

	// Name is the human-readable name, used for display only.
	Name string

	// CollectDefault is the scope's own collection setting, inherited by
	// every leaf whose override is Inherit.
	CollectDefault bool

	leaves []*LeafNode
	index  map[string]int
}

// NewScopeNode creates an empty parent scope.
func NewScopeNode(id, name string, collectDefault bool) *ScopeNode {
	return &ScopeNode{
		ID:             id,
		Name:           name,
		CollectDefault: collectDefault,
		index:          make(map[string]int),
	}
}

// AddLeaf appends a leaf, preserving insertion order. Leaf ids must be
// unique within the scope.
func (sn *ScopeNode) AddLeaf(leaf *LeafNode) error {
	if leaf == nil {
		return fmt.Errorf("leaf is required")
	}
	if leaf.ID == "" {
		return fmt.Errorf("leaf id is required")
	}
	if _, exists := sn.index[leaf.ID]; exists {
		return fmt.Errorf("duplicate leaf id %q in scope %q", leaf.ID, sn.ID)
	}
	sn.index[leaf.ID] = len(sn.leaves)
	sn.leaves = append(sn.leaves, leaf)
	return nil
}

// Leaf returns the leaf with the given id, or nil if the scope has none.
func (sn *ScopeNode) Leaf(id string) *LeafNode {
	i, ok := sn.index[id]
	if !ok {
		return nil
	}
	return sn.leaves[i]
}

// Leaves returns the leaves in insertion order. The returned slice is shared;
// callers must not reorder it.
func (sn *ScopeNode) Leaves() []*LeafNode {
	return sn.leaves
}

// Len returns the number of leaves.
func (sn *ScopeNode) Len() int {
	return len(sn.leaves)
}
