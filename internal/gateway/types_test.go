package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeboard/scopeboard/internal/scope"
)

func TestCollectFlagUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected scope.Override
		wantErr  string
	}{
		{name: "true", body: `{"collect_messages": true}`, expected: scope.ForceOn},
		{name: "false", body: `{"collect_messages": false}`, expected: scope.ForceOff},
		{name: "null", body: `{"collect_messages": null}`, expected: scope.Inherit},
		{name: "absent field", body: `{}`, expected: scope.Inherit},
		{
			name:    "string is rejected, never coerced",
			body:    `{"collect_messages": "true"}`,
			wantErr: "invalid collect_messages value",
		},
		{
			name:    "number is rejected",
			body:    `{"collect_messages": 1}`,
			wantErr: "invalid collect_messages value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec struct {
				CollectMessages CollectFlag `json:"collect_messages"`
			}
			err := json.Unmarshal([]byte(tt.body), &rec)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rec.CollectMessages.Override())
		})
	}
}

// The wire value must survive fetch → model → persist unchanged, including
// the null case.
func TestCollectFlagRoundTrip(t *testing.T) {
	for _, raw := range []string{"true", "false", "null"} {
		t.Run(raw, func(t *testing.T) {
			var flag CollectFlag
			require.NoError(t, json.Unmarshal([]byte(raw), &flag))

			back := FlagFromOverride(flag.Override())
			encoded, err := json.Marshal(back)
			require.NoError(t, err)
			assert.Equal(t, raw, string(encoded))
		})
	}
}

func TestOverridePatchEncoding(t *testing.T) {
	tests := []struct {
		override scope.Override
		expected string
	}{
		{scope.ForceOn, `{"collect_messages":true}`},
		{scope.ForceOff, `{"collect_messages":false}`},
		{scope.Inherit, `{"collect_messages":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.override.String(), func(t *testing.T) {
			encoded, err := json.Marshal(OverridePatch{CollectMessages: FlagFromOverride(tt.override)})
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(encoded))
		})
	}
}

func TestExclusionArrayRejectsNonStrings(t *testing.T) {
	var rec struct {
		ExcludeFolderIDs []string `json:"exclude_folder_ids"`
	}

	err := json.Unmarshal([]byte(`{"exclude_folder_ids": ["a", 2]}`), &rec)
	assert.Error(t, err, "a non-string exclusion entry must fail decoding, not be dropped")

	require.NoError(t, json.Unmarshal([]byte(`{"exclude_folder_ids": ["a", "b"]}`), &rec))
	assert.Equal(t, []string{"a", "b"}, rec.ExcludeFolderIDs)
}
