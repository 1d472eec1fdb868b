package scope

import "fmt"

// Override is the tri-state local collection setting stored on a leaf.
// It deliberately keeps "not set" distinct from "set to false": an Inherit
// leaf follows its parent's collection default, while ForceOn and ForceOff
// pin the leaf regardless of the parent.
type Override int

const (
	// Inherit means the leaf follows the parent scope's collection default.
	Inherit Override = iota

	// ForceOn pins the leaf to collecting, regardless of the parent.
	ForceOn

	// ForceOff pins the leaf to not collecting, regardless of the parent.
	ForceOff
)

// String returns the canonical lowercase name used in CLI output, tool
// arguments and log attributes.
func (o Override) String() string {
	switch o {
	case Inherit:
		return "inherit"
	case ForceOn:
		return "on"
	case ForceOff:
		return "off"
	default:
		return fmt.Sprintf("override(%d)", int(o))
	}
}

// OverrideFromCollectFlag maps the gateway's nullable collect_messages field
// to an Override: nil → Inherit, true → ForceOn, false → ForceOff.
// The mapping is total and lossless; CollectFlag is its exact inverse.
func OverrideFromCollectFlag(v *bool) Override {
	switch {
	case v == nil:
		return Inherit
	case *v:
		return ForceOn
	default:
		return ForceOff
	}
}

// CollectFlag maps the override back to the gateway's nullable boolean.
// Round-tripping through OverrideFromCollectFlag reproduces the original
// value exactly, so persisting never loses the "not set" state.
func (o Override) CollectFlag() *bool {
	switch o {
	case ForceOn:
		v := true
		return &v
	case ForceOff:
		v := false
		return &v
	default:
		return nil
	}
}

// ParseOverride parses a user-supplied override name as produced by String.
func ParseOverride(s string) (Override, error) {
	switch s {
	case "inherit":
		return Inherit, nil
	case "on":
		return ForceOn, nil
	case "off":
		return ForceOff, nil
	default:
		return Inherit, fmt.Errorf("invalid override %q, must be one of: inherit, on, off", s)
	}
}

// NextOverride advances an override by one click of the toggle control.
// The cycle is fixed: Inherit → ForceOn → ForceOff → Inherit. It depends only
// on the stored override, never on the leaf's current effective value, so
// repeated clicks are deterministic modulo 3.
func NextOverride(current Override) Override {
	switch current {
	case Inherit:
		return ForceOn
	case ForceOn:
		return ForceOff
	default:
		return Inherit
	}
}
