package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveCollect(t *testing.T) {
	tests := []struct {
		name          string
		leaf          LeafNode
		parentDefault bool
		expected      bool
	}{
		{
			name:          "inherit follows collecting parent",
			leaf:          LeafNode{ID: "c1", Override: Inherit},
			parentDefault: true,
			expected:      true,
		},
		{
			name:          "inherit follows non-collecting parent",
			leaf:          LeafNode{ID: "c1", Override: Inherit},
			parentDefault: false,
			expected:      false,
		},
		{
			name:          "force on overrides non-collecting parent",
			leaf:          LeafNode{ID: "c1", Override: ForceOn},
			parentDefault: false,
			expected:      true,
		},
		{
			name:          "force off overrides collecting parent",
			leaf:          LeafNode{ID: "c1", Override: ForceOff},
			parentDefault: true,
			expected:      false,
		},
		{
			name:          "archived beats force on",
			leaf:          LeafNode{ID: "c1", Override: ForceOn, Archived: true},
			parentDefault: true,
			expected:      false,
		},
		{
			name:          "archived beats inherited collecting parent",
			leaf:          LeafNode{ID: "c1", Override: Inherit, Archived: true},
			parentDefault: true,
			expected:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectiveCollect(&tt.leaf, tt.parentDefault))
		})
	}
}

// Flipping the parent default changes only Inherit leaves; explicit overrides
// are untouched, and no leaf state is rewritten by the parent toggle.
func TestToggleDefaultInheritancePurity(t *testing.T) {
	sn := NewScopeNode("guild1", "Guild", true)
	require.NoError(t, sn.AddLeaf(&LeafNode{ID: "a", Override: Inherit}))
	require.NoError(t, sn.AddLeaf(&LeafNode{ID: "b", Override: ForceOff}))
	require.NoError(t, sn.AddLeaf(&LeafNode{ID: "c", Override: ForceOn}))

	collects := func(id string) bool {
		v, err := sn.Effective(id)
		require.NoError(t, err)
		return v
	}

	assert.True(t, collects("a"))
	assert.False(t, collects("b"))
	assert.True(t, collects("c"))

	got := sn.ToggleDefault()
	assert.False(t, got)

	assert.False(t, collects("a"), "inherit leaf follows new parent value")
	assert.False(t, collects("b"), "explicit off stays off")
	assert.True(t, collects("c"), "explicit on stays on")

	// The parent toggle never rewrites stored overrides.
	assert.Equal(t, Inherit, sn.Leaf("a").Override)
	assert.Equal(t, ForceOff, sn.Leaf("b").Override)
	assert.Equal(t, ForceOn, sn.Leaf("c").Override)
}

// Resolution must read the parent default fresh, so the answer is the same
// no matter whether the parent or the child was mutated first in a batch.
func TestResolutionOrderIndependence(t *testing.T) {
	build := func() *ScopeNode {
		sn := NewScopeNode("ws", "Workspace", false)
		require.NoError(t, sn.AddLeaf(&LeafNode{ID: "general", Override: ForceOn}))
		require.NoError(t, sn.AddLeaf(&LeafNode{ID: "random", Override: Inherit}))
		return sn
	}

	// Parent first, then child.
	first := build()
	first.ToggleDefault()
	_, err := first.CycleLeaf("general") // ForceOn → ForceOff
	require.NoError(t, err)

	// Child first, then parent.
	second := build()
	_, err = second.CycleLeaf("general")
	require.NoError(t, err)
	second.ToggleDefault()

	for _, id := range []string{"general", "random"} {
		a, err := first.Effective(id)
		require.NoError(t, err)
		b, err := second.Effective(id)
		require.NoError(t, err)
		assert.Equal(t, a, b, "leaf %s must resolve identically regardless of mutation order", id)
	}
}

func TestCycleLeaf(t *testing.T) {
	sn := NewScopeNode("ws", "Workspace", true)
	require.NoError(t, sn.AddLeaf(&LeafNode{ID: "general", Override: Inherit}))
	require.NoError(t, sn.AddLeaf(&LeafNode{ID: "old", Override: ForceOn, Archived: true}))

	o, err := sn.CycleLeaf("general")
	require.NoError(t, err)
	assert.Equal(t, ForceOn, o)

	o, err = sn.CycleLeaf("general")
	require.NoError(t, err)
	assert.Equal(t, ForceOff, o)

	o, err = sn.CycleLeaf("general")
	require.NoError(t, err)
	assert.Equal(t, Inherit, o)

	// Archived leaves have an inert toggle.
	_, err = sn.CycleLeaf("old")
	assert.ErrorIs(t, err, ErrLeafArchived)
	assert.Equal(t, ForceOn, sn.Leaf("old").Override, "archived leaf override must not change")

	_, err = sn.CycleLeaf("missing")
	assert.ErrorIs(t, err, ErrLeafNotFound)
}

func TestSetLeafOverride(t *testing.T) {
	sn := NewScopeNode("ws", "Workspace", true)
	require.NoError(t, sn.AddLeaf(&LeafNode{ID: "general", Override: Inherit}))
	require.NoError(t, sn.AddLeaf(&LeafNode{ID: "old", Archived: true}))

	require.NoError(t, sn.SetLeafOverride("general", ForceOff))
	assert.Equal(t, ForceOff, sn.Leaf("general").Override)

	assert.ErrorIs(t, sn.SetLeafOverride("old", ForceOn), ErrLeafArchived)
	assert.ErrorIs(t, sn.SetLeafOverride("missing", ForceOn), ErrLeafNotFound)
}

// Scenario from the panel: parent collecting, leaf A inherits, leaf B is
// forced off. Flipping the parent flips A and leaves B alone.
func TestExampleScenarioParentFlip(t *testing.T) {
	sn := NewScopeNode("srv", "Server", true)
	require.NoError(t, sn.AddLeaf(&LeafNode{ID: "A", Override: Inherit}))
	require.NoError(t, sn.AddLeaf(&LeafNode{ID: "B", Override: ForceOff}))

	a, err := sn.Effective("A")
	require.NoError(t, err)
	b, err := sn.Effective("B")
	require.NoError(t, err)
	assert.True(t, a)
	assert.False(t, b)

	sn.ToggleDefault()

	a, err = sn.Effective("A")
	require.NoError(t, err)
	b, err = sn.Effective("B")
	require.NoError(t, err)
	assert.False(t, a)
	assert.False(t, b)
}

func TestCollectsDescendant(t *testing.T) {
	sn := NewScopeNode("acct", "Drive", true)
	require.NoError(t, sn.AddLeaf(&LeafNode{
		ID:        "F",
		Override:  Inherit,
		Recursive: true,
		Excluded:  NewExclusionSet("sub1"),
	}))

	got, err := sn.CollectsDescendant("F", "sub1")
	require.NoError(t, err)
	assert.False(t, got, "excluded descendant is not collected")

	got, err = sn.CollectsDescendant("F", "sub2")
	require.NoError(t, err)
	assert.True(t, got, "sibling descendant is unaffected")

	// A non-collecting folder collects no descendants at all.
	sn.ToggleDefault()
	got, err = sn.CollectsDescendant("F", "sub2")
	require.NoError(t, err)
	assert.False(t, got)

	_, err = sn.CollectsDescendant("missing", "sub1")
	assert.ErrorIs(t, err, ErrLeafNotFound)
}
