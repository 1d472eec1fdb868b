// Package notes_tools registers MCP tools for browsing the synced
// notes vault: a flat path listing and a nested folder tree built from
// the slash-separated paths the gateway returns.
package notes_tools
