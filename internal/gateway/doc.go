// Package gateway is the client for the scope sync gateway, the backend
// store of truth for collection-scope settings. Integration packages fetch
// their snapshots through it and persist user intents (override patches,
// exclusion patches, default patches) back to it.
//
// The gateway applies intents last-write-wins; the panel reloads its snapshot
// wholesale after every successful patch.
package gateway
