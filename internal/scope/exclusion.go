package scope

import "sort"

// ExclusionSet holds the descendant ids excluded from a recursively synced
// folder. Membership is authoritative on ids alone: an id excluded in a prior
// session is honored even when its display name or path was never fetched.
//
// The set is treated as immutable. Toggle returns a new set, so multiple
// panel components holding the previous value never observe a partial edit;
// callers must replace their stored set with the return value.
type ExclusionSet map[string]struct{}

// NewExclusionSet builds a set from raw gateway ids. Duplicates collapse.
func NewExclusionSet(ids ...string) ExclusionSet {
	set := make(ExclusionSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether the id is excluded.
func (s ExclusionSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Toggle returns a copy of the set with the id's membership flipped.
// The receiver is left untouched.
func (s ExclusionSet) Toggle(id string) ExclusionSet {
	next := make(ExclusionSet, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return next
}

// Apply is the final collection decision for a descendant: the owning
// folder's effective state, minus exclusion.
func (s ExclusionSet) Apply(effectiveCollect bool, descendantID string) bool {
	return effectiveCollect && !s.Contains(descendantID)
}

// IDs returns the excluded ids sorted lexicographically, the order used when
// persisting the set back to the gateway.
func (s ExclusionSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of excluded ids.
func (s ExclusionSet) Len() int {
	return len(s)
}
