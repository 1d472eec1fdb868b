package gdrive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/scopeboard/scopeboard/internal/scope"
)

func newTestPicker(t *testing.T, handler http.HandlerFunc) *Picker {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	picker, err := NewPicker(context.Background(),
		option.WithEndpoint(ts.URL),
		option.WithHTTPClient(ts.Client()),
	)
	require.NoError(t, err)
	return picker
}

const folderListing = `{
	"files": [
		{"id": "root1", "name": "Projects"},
		{"id": "res", "name": "Research", "parents": ["root1"]},
		{"id": "sub1", "name": "Archive", "parents": ["res"]},
		{"id": "orphan", "name": "Shared", "parents": ["unfetched"]}
	]
}`

func TestFolderPaths(t *testing.T) {
	picker := newTestPicker(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(folderListing))
	})

	paths, err := picker.FolderPaths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Projects",
		"Projects/Research",
		"Projects/Research/Archive",
		"Shared",
	}, paths)
}

func TestFolderNames(t *testing.T) {
	picker := newTestPicker(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(folderListing))
	})

	excluded := scope.NewExclusionSet("sub1", "ghost-id")
	names, err := picker.FolderNames(context.Background(), excluded)
	require.NoError(t, err)

	// Known ids resolve to paths; unknown ids are absent but remain valid
	// exclusions.
	assert.Equal(t, map[string]string{"sub1": "Projects/Research/Archive"}, names)
	assert.True(t, excluded.Contains("ghost-id"))
}

func TestComposePathBoundedOnCorruptData(t *testing.T) {
	// Two entries pointing at each other must not hang the walk.
	entries := map[string]folderEntry{
		"a": {name: "A", parent: "b"},
		"b": {name: "B", parent: "a"},
	}
	assert.NotEmpty(t, composePath(entries, "a"))
}
