package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeboard/scopeboard/internal/scope"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "valid https URL", baseURL: "https://backend.example.com/api"},
		{name: "valid http URL", baseURL: "http://localhost:8080"},
		{name: "empty URL", baseURL: "", wantErr: true},
		{name: "missing scheme", baseURL: "backend.example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, "")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.baseURL, client.BaseURL())
		})
	}
}

func TestClientGet(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/discord/servers", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "g1", "collect_messages": true}]`))
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL, "")
	require.NoError(t, err)

	var out []struct {
		ID              string `json:"id"`
		CollectMessages bool   `json:"collect_messages"`
	}
	require.NoError(t, client.Get(context.Background(), "/discord/servers", &out))
	require.Len(t, out, 1)
	assert.Equal(t, "g1", out[0].ID)
	assert.True(t, out[0].CollectMessages)
}

func TestClientPatch(t *testing.T) {
	var received map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL, "")
	require.NoError(t, err)

	patch := OverridePatch{CollectMessages: FlagFromOverride(scope.Inherit)}
	require.NoError(t, client.Patch(context.Background(), "/slack/workspaces/w1/channels/c1", patch, nil))

	// Inherit must be persisted as an explicit null, not dropped.
	val, ok := received["collect_messages"]
	require.True(t, ok)
	assert.Nil(t, val)
}

func TestClientSendsBearerToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL, "sekrit")
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, client.Get(context.Background(), "/notes/files", &out))
}

func TestClientErrorResponses(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "scope not found", http.StatusNotFound)
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL, "")
	require.NoError(t, err)

	err = client.Get(context.Background(), "/discord/servers/missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "scope not found")
}

func TestClientInvalidTriStateFailsLoudly(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "c1", "collect_messages": "yes"}`))
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL, "")
	require.NoError(t, err)

	var out struct {
		ID              string      `json:"id"`
		CollectMessages CollectFlag `json:"collect_messages"`
	}
	err = client.Get(context.Background(), "/discord/servers/g1/channels/c1", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid collect_messages value")
}
