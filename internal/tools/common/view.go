package common

import "github.com/scopeboard/scopeboard/internal/scope"

// LeafView is the wire shape of a leaf in tool output, with the stored
// override and the resolved effective state side by side.
type LeafView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Override  string   `json:"override"`
	Archived  bool     `json:"archived,omitempty"`
	Effective bool     `json:"effective"`
	Recursive bool     `json:"recursive,omitempty"`
	Excluded  []string `json:"excluded_folder_ids,omitempty"`
}

// ScopeView is the wire shape of a parent scope in tool output.
type ScopeView struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	CollectDefault bool       `json:"collect_default"`
	Leaves         []LeafView `json:"leaves"`
}

// NewScopeView resolves every leaf of a scope against the scope's current
// default and renders the result for tool output.
func NewScopeView(sn *scope.ScopeNode) ScopeView {
	view := ScopeView{
		ID:             sn.ID,
		Name:           sn.Name,
		CollectDefault: sn.CollectDefault,
		Leaves:         make([]LeafView, 0, sn.Len()),
	}
	for _, leaf := range sn.Leaves() {
		lv := LeafView{
			ID:        leaf.ID,
			Name:      leaf.Name,
			Override:  leaf.Override.String(),
			Archived:  leaf.Archived,
			Effective: scope.EffectiveCollect(leaf, sn.CollectDefault),
			Recursive: leaf.Recursive,
		}
		if leaf.Excluded.Len() > 0 {
			lv.Excluded = leaf.Excluded.IDs()
		}
		view.Leaves = append(view.Leaves, lv)
	}
	return view
}

// NewScopeViews renders a list of scopes.
func NewScopeViews(scopes []*scope.ScopeNode) []ScopeView {
	views := make([]ScopeView, 0, len(scopes))
	for _, sn := range scopes {
		views = append(views, NewScopeView(sn))
	}
	return views
}

// LeafCount returns the total number of leaves across scopes, which is the
// number of resolutions rendering them performs.
func LeafCount(scopes []*scope.ScopeNode) int {
	count := 0
	for _, sn := range scopes {
		count += sn.Len()
	}
	return count
}
