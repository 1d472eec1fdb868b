package scope

import (
	"errors"
	"fmt"
)

// ErrLeafArchived is returned when attempting to toggle an archived leaf.
// Archived leaves are pinned to non-collecting and their controls are inert.
var ErrLeafArchived = errors.New("leaf is archived and cannot be toggled")

// ErrLeafNotFound is returned when a leaf id does not exist in the scope.
var ErrLeafNotFound = errors.New("leaf not found")

// EffectiveCollect resolves the collection decision for a leaf given its
// parent's collection default. Precedence, highest first:
//
//  1. Archived leaves never collect.
//  2. ForceOn collects, ForceOff does not.
//  3. Inherit follows parentDefault.
//
// The parent default must be passed in fresh at resolution time; it is never
// snapshotted into the leaf, so parent and leaf mutations within one update
// batch resolve identically regardless of mutation order.
func EffectiveCollect(leaf *LeafNode, parentDefault bool) bool {
	if leaf.Archived {
		return false
	}
	switch leaf.Override {
	case ForceOn:
		return true
	case ForceOff:
		return false
	default:
		return parentDefault
	}
}

// Effective resolves a leaf of this scope by id.
func (sn *ScopeNode) Effective(leafID string) (bool, error) {
	leaf := sn.Leaf(leafID)
	if leaf == nil {
		return false, fmt.Errorf("%w: %q in scope %q", ErrLeafNotFound, leafID, sn.ID)
	}
	return EffectiveCollect(leaf, sn.CollectDefault), nil
}

// ToggleDefault flips the scope's own collection default and returns the new
// value. The scope is the inheritance root, so there is no ancestor to
// consult, and no child override is rewritten: Inherit leaves pick up the new
// value on their next resolution.
func (sn *ScopeNode) ToggleDefault() bool {
	sn.CollectDefault = !sn.CollectDefault
	return sn.CollectDefault
}

// CycleLeaf advances a leaf's override by one click of the toggle cycle and
// returns the new override. Archived leaves are rejected.
func (sn *ScopeNode) CycleLeaf(leafID string) (Override, error) {
	leaf := sn.Leaf(leafID)
	if leaf == nil {
		return Inherit, fmt.Errorf("%w: %q in scope %q", ErrLeafNotFound, leafID, sn.ID)
	}
	if leaf.Archived {
		return leaf.Override, fmt.Errorf("%w: %q", ErrLeafArchived, leafID)
	}
	leaf.Override = NextOverride(leaf.Override)
	return leaf.Override, nil
}

// SetLeafOverride sets a leaf's override directly. Archived leaves are
// rejected, matching the inert toggle in the panel.
func (sn *ScopeNode) SetLeafOverride(leafID string, o Override) error {
	leaf := sn.Leaf(leafID)
	if leaf == nil {
		return fmt.Errorf("%w: %q in scope %q", ErrLeafNotFound, leafID, sn.ID)
	}
	if leaf.Archived {
		return fmt.Errorf("%w: %q", ErrLeafArchived, leafID)
	}
	leaf.Override = o
	return nil
}

// CollectsDescendant is the final collection decision for a descendant of a
// recursive folder leaf: the folder must resolve to collecting and the
// descendant must not be excluded. Exclusions apply only to descendants,
// never to the folder's own resolution.
func (sn *ScopeNode) CollectsDescendant(folderID, descendantID string) (bool, error) {
	leaf := sn.Leaf(folderID)
	if leaf == nil {
		return false, fmt.Errorf("%w: %q in scope %q", ErrLeafNotFound, folderID, sn.ID)
	}
	effective := EffectiveCollect(leaf, sn.CollectDefault)
	return leaf.Excluded.Apply(effective, descendantID), nil
}
