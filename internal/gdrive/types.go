package gdrive

import "github.com/scopeboard/scopeboard/internal/gateway"

// AccountRecord is a connected Drive account as returned by the gateway.
type AccountRecord struct {
	// ID is the account identifier.
	ID string `json:"id"`

	// Email is the account's address, used for display.
	Email string `json:"email"`

	// CollectMessages is the account's own collection default.
	CollectMessages bool `json:"collect_messages"`

	// Folders are the account's synced folders in gateway order.
	Folders []FolderRecord `json:"folders"`
}

// FolderRecord is a synced Drive folder as returned by the gateway.
type FolderRecord struct {
	// ID is the Drive folder identifier, unique within the account.
	ID string `json:"id"`

	// Path is the folder's slash-delimited display path, when known. Ids
	// excluded in earlier sessions may have no path; they stay valid.
	Path string `json:"path,omitempty"`

	// CollectMessages is the folder's tri-state local override.
	CollectMessages gateway.CollectFlag `json:"collect_messages"`

	// Recursive marks folders whose descendants are synced too.
	Recursive bool `json:"recursive"`

	// ExcludeFolderIDs are descendant folder ids excluded from a recursive
	// sync. Only meaningful when Recursive is true.
	ExcludeFolderIDs []string `json:"exclude_folder_ids"`
}
