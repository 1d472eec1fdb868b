package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideFromCollectFlag(t *testing.T) {
	on := true
	off := false

	tests := []struct {
		name     string
		flag     *bool
		expected Override
	}{
		{name: "nil maps to inherit", flag: nil, expected: Inherit},
		{name: "true maps to force on", flag: &on, expected: ForceOn},
		{name: "false maps to force off", flag: &off, expected: ForceOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OverrideFromCollectFlag(tt.flag))
		})
	}
}

// The wire mapping must be lossless: converting back to the nullable boolean
// reproduces the original value exactly, so persisting an untouched leaf
// never turns "not set" into an explicit false.
func TestCollectFlagRoundTrip(t *testing.T) {
	for _, o := range []Override{Inherit, ForceOn, ForceOff} {
		t.Run(o.String(), func(t *testing.T) {
			assert.Equal(t, o, OverrideFromCollectFlag(o.CollectFlag()))
		})
	}

	// And starting from the wire side.
	on := true
	off := false
	for _, flag := range []*bool{nil, &on, &off} {
		back := OverrideFromCollectFlag(flag).CollectFlag()
		if flag == nil {
			assert.Nil(t, back)
		} else {
			require.NotNil(t, back)
			assert.Equal(t, *flag, *back)
		}
	}
}

func TestNextOverrideCycle(t *testing.T) {
	tests := []struct {
		current Override
		next    Override
	}{
		{Inherit, ForceOn},
		{ForceOn, ForceOff},
		{ForceOff, Inherit},
	}

	for _, tt := range tests {
		t.Run(tt.current.String(), func(t *testing.T) {
			assert.Equal(t, tt.next, NextOverride(tt.current))
		})
	}
}

// Three clicks return to the starting value for every starting point.
func TestNextOverrideCycleDeterminism(t *testing.T) {
	for _, start := range []Override{Inherit, ForceOn, ForceOff} {
		o := start
		for i := 0; i < 3; i++ {
			o = NextOverride(o)
		}
		assert.Equal(t, start, o, "three clicks from %s should return to %s", start, start)
	}
}

func TestParseOverride(t *testing.T) {
	tests := []struct {
		input    string
		expected Override
		wantErr  bool
	}{
		{input: "inherit", expected: Inherit},
		{input: "on", expected: ForceOn},
		{input: "off", expected: ForceOff},
		{input: "true", wantErr: true},
		{input: "ON", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			o, err := ParseOverride(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, o)
		})
	}
}

func TestOverrideString(t *testing.T) {
	assert.Equal(t, "inherit", Inherit.String())
	assert.Equal(t, "on", ForceOn.String())
	assert.Equal(t, "off", ForceOff.String())
}
