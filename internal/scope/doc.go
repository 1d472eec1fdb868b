// Package scope implements the collection-scope model shared by all
// data-source integrations: a parent scope (Discord server, Slack workspace,
// Drive account) with a boolean collection default, leaf resources (channels,
// conversations, synced folders) with a tri-state local override, and
// per-folder exclusion sets for recursively synced folders.
//
// The package is pure in-memory computation. Snapshots are fetched from the
// sync gateway, mutated locally in response to user intents, and replaced
// wholesale after each successful persist; nothing here performs I/O.
package scope
