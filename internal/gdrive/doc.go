// Package gdrive maps the gateway's Google Drive wire shapes (accounts and
// synced folders) into the generic collection-scope model. Drive is the one
// integration with recursive leaves: a synced folder can carry an exclusion
// set of descendant folder ids that are skipped regardless of the folder's
// own effective state.
//
// The folder picker additionally talks to the Drive API directly to list
// folder paths for browsing; that listing is display decoration only and is
// never consulted when resolving scope.
package gdrive
