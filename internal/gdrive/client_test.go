package gdrive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeboard/scopeboard/internal/gateway"
	"github.com/scopeboard/scopeboard/internal/scope"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	gw, err := gateway.NewClient(ts.URL, "")
	require.NoError(t, err)
	client, err := NewClient(gw)
	require.NoError(t, err)
	return client
}

func TestGetAccount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gdrive/accounts/acct1", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": "acct1",
			"email": "jane@example.com",
			"collect_messages": true,
			"folders": [
				{
					"id": "F",
					"path": "Projects/Research",
					"collect_messages": null,
					"recursive": true,
					"exclude_folder_ids": ["sub1"]
				},
				{
					"id": "G",
					"collect_messages": false,
					"recursive": false
				}
			]
		}`))
	})

	acct, err := client.GetAccount(context.Background(), "acct1")
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", acct.Name)
	assert.True(t, acct.CollectDefault)

	folder := acct.Leaf("F")
	require.NotNil(t, folder)
	assert.True(t, folder.Recursive)
	assert.Equal(t, scope.Inherit, folder.Override)
	assert.True(t, folder.Excluded.Contains("sub1"))

	// Folder with no fetched path falls back to its id for display.
	assert.Equal(t, "G", acct.Leaf("G").Name)

	// Exclusion scenario: folder collects, sub1 is excluded, sub2 is not.
	collected, err := acct.CollectsDescendant("F", "sub1")
	require.NoError(t, err)
	assert.False(t, collected)
	collected, err = acct.CollectsDescendant("F", "sub2")
	require.NoError(t, err)
	assert.True(t, collected)
}

func TestSetFolderExclusionsSendsSortedSet(t *testing.T) {
	var gotBody gateway.ExclusionsPatch
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gdrive/accounts/acct1/folders/F/exclusions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	})

	excluded := scope.NewExclusionSet("zeta", "alpha")
	require.NoError(t, client.SetFolderExclusions(context.Background(), "acct1", "F", excluded))
	assert.Equal(t, []string{"alpha", "zeta"}, gotBody.ExcludeFolderIDs)
}

func TestSetFolderOverrideValidation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	assert.Error(t, client.SetFolderOverride(context.Background(), "", "F", scope.ForceOn))
	assert.Error(t, client.SetFolderOverride(context.Background(), "acct1", "", scope.ForceOn))
	assert.Error(t, client.SetFolderExclusions(context.Background(), "acct1", "", nil))
	assert.Error(t, client.SetAccountDefault(context.Background(), "", true))
}

func TestListAccountsRejectsInvalidExclusionEntry(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "a", "folders": [{"id": "F", "exclude_folder_ids": [1]}]}]`))
	})

	_, err := client.ListAccounts(context.Background())
	assert.Error(t, err, "non-string exclusion entries must fail decoding")
}
