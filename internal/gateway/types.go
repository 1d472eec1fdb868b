package gateway

import (
	"fmt"

	"github.com/scopeboard/scopeboard/internal/scope"
)

// CollectFlag is the wire representation of a leaf's tri-state override:
// true, false, or null. Any other JSON value is a decode error, never a
// silent coercion to the inherit state, so a corrupt gateway response
// surfaces as a reload/error state instead of a miscomputed scope.
//
// The zero value (field absent) decodes as null, i.e. inherit.
type CollectFlag struct {
	value *bool
}

// FlagFromOverride converts a stored override to its wire form.
func FlagFromOverride(o scope.Override) CollectFlag {
	return CollectFlag{value: o.CollectFlag()}
}

// Override converts the wire value to the stored tri-state enum.
func (f CollectFlag) Override() scope.Override {
	return scope.OverrideFromCollectFlag(f.value)
}

// UnmarshalJSON accepts exactly true, false, or null.
func (f *CollectFlag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null":
		f.value = nil
	case "true":
		v := true
		f.value = &v
	case "false":
		v := false
		f.value = &v
	default:
		return fmt.Errorf("invalid collect_messages value %s: must be true, false or null", data)
	}
	return nil
}

// MarshalJSON emits true, false, or null, reproducing the fetched value
// exactly for persistence.
func (f CollectFlag) MarshalJSON() ([]byte, error) {
	if f.value == nil {
		return []byte("null"), nil
	}
	if *f.value {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

// OverridePatch is the intent persisting a leaf's tri-state override.
type OverridePatch struct {
	CollectMessages CollectFlag `json:"collect_messages"`
}

// DefaultPatch is the intent persisting a parent scope's collection default.
// The parent default is a plain boolean, never tri-state.
type DefaultPatch struct {
	CollectMessages bool `json:"collect_messages"`
}

// ExclusionsPatch is the intent persisting a recursive folder's exclusion
// set. The full set is sent each time; the gateway does not merge.
type ExclusionsPatch struct {
	ExcludeFolderIDs []string `json:"exclude_folder_ids"`
}

// FileListing is the response of the gateway's flat file-listing endpoints.
type FileListing struct {
	// Prefix is the fixed storage prefix the gateway prepends to every
	// path. Callers strip it before building a browse tree.
	Prefix string `json:"prefix,omitempty"`

	// Paths are slash-delimited file paths under the prefix.
	Paths []string `json:"paths"`
}
