package gdrive

import (
	"context"
	"fmt"
	"sort"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/scopeboard/scopeboard/internal/scope"
)

// FolderMimeType is the MIME type Drive uses for folders.
const FolderMimeType = "application/vnd.google-apps.folder"

// pickerPageSize is the page size used when listing folders.
const pickerPageSize = 1000

// Picker lists an account's folder hierarchy straight from the Drive API so
// the panel can offer slash-delimited paths when editing exclusions. It is a
// presentation helper: exclusion correctness never depends on it.
type Picker struct {
	service *drive.Service
}

// NewPicker creates a folder picker from Drive client options, typically an
// authenticated HTTP client supplied by the caller.
func NewPicker(ctx context.Context, opts ...option.ClientOption) (*Picker, error) {
	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	return &Picker{service: service}, nil
}

// folderEntry is the minimal folder metadata needed to compose paths.
type folderEntry struct {
	name   string
	parent string
}

// FolderPaths returns the slash-delimited path of every non-trashed folder,
// sorted lexicographically. A folder whose parent was not returned (shared
// roots, "My Drive") appears as a top-level path.
func (p *Picker) FolderPaths(ctx context.Context) ([]string, error) {
	entries, err := p.listFolders(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for id := range entries {
		paths = append(paths, composePath(entries, id))
	}
	sort.Strings(paths)
	return paths, nil
}

// FolderNames returns display names for the given excluded folder ids.
// Ids with no fetched metadata are simply absent from the result; they stay
// valid exclusions without a name.
func (p *Picker) FolderNames(ctx context.Context, excluded scope.ExclusionSet) (map[string]string, error) {
	entries, err := p.listFolders(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, excluded.Len())
	for _, id := range excluded.IDs() {
		if _, ok := entries[id]; ok {
			names[id] = composePath(entries, id)
		}
	}
	return names, nil
}

func (p *Picker) listFolders(ctx context.Context) (map[string]folderEntry, error) {
	entries := make(map[string]folderEntry)
	pageToken := ""
	for {
		call := p.service.Files.List().
			Context(ctx).
			Q(fmt.Sprintf("mimeType='%s' and trashed=false", FolderMimeType)).
			PageSize(pickerPageSize).
			Fields("nextPageToken, files(id, name, parents)")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		list, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list Drive folders: %w", err)
		}

		for _, f := range list.Files {
			entry := folderEntry{name: f.Name}
			if len(f.Parents) > 0 {
				entry.parent = f.Parents[0]
			}
			entries[f.Id] = entry
		}

		if list.NextPageToken == "" {
			return entries, nil
		}
		pageToken = list.NextPageToken
	}
}

// composePath walks the parent chain up to a root or an unfetched parent.
// Cycles cannot occur in Drive's folder graph, but the walk is bounded by the
// entry count anyway so corrupt data cannot hang it.
func composePath(entries map[string]folderEntry, id string) string {
	path := entries[id].name
	parent := entries[id].parent
	for steps := 0; parent != "" && steps < len(entries); steps++ {
		entry, ok := entries[parent]
		if !ok {
			break
		}
		path = entry.name + "/" + path
		parent = entry.parent
	}
	return path
}
