package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredString(t *testing.T) {
	args := map[string]interface{}{"server_id": "srv-1", "empty": "", "num": 7}

	v, err := RequiredString(args, "server_id")
	require.NoError(t, err)
	assert.Equal(t, "srv-1", v)

	_, err = RequiredString(args, "empty")
	assert.EqualError(t, err, "empty is required")

	_, err = RequiredString(args, "missing")
	assert.EqualError(t, err, "missing is required")

	_, err = RequiredString(args, "num")
	assert.Error(t, err)
}

func TestOptionalString(t *testing.T) {
	args := map[string]interface{}{"name": "general"}

	assert.Equal(t, "general", OptionalString(args, "name"))
	assert.Equal(t, "", OptionalString(args, "missing"))
}

func TestStringSlice(t *testing.T) {
	args := map[string]interface{}{
		"ids":   []interface{}{"a", "b"},
		"mixed": []interface{}{"a", 1},
		"str":   "not-an-array",
	}

	ids, err := StringSlice(args, "ids")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	missing, err := StringSlice(args, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = StringSlice(args, "mixed")
	assert.Error(t, err)

	_, err = StringSlice(args, "str")
	assert.Error(t, err)
}

func TestScopeTargetFromArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]interface{}
		wantScope string
		wantLeaf  string
	}{
		{
			name:      "discord target",
			args:      map[string]interface{}{"server_id": "srv-1", "channel_id": "chan-2"},
			wantScope: "srv-1",
			wantLeaf:  "chan-2",
		},
		{
			name:      "slack target",
			args:      map[string]interface{}{"workspace_id": "ws-1", "conversation_id": "conv-2"},
			wantScope: "ws-1",
			wantLeaf:  "conv-2",
		},
		{
			name:      "gdrive scope only",
			args:      map[string]interface{}{"account_id": "acct-1"},
			wantScope: "acct-1",
		},
		{
			name: "no target",
			args: map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scopeID, leafID := ScopeTargetFromArgs(tt.args)
			assert.Equal(t, tt.wantScope, scopeID)
			assert.Equal(t, tt.wantLeaf, leafID)
		})
	}
}
