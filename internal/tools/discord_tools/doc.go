// Package discord_tools registers MCP tools for managing Discord
// collection scope: listing servers with resolved effective states,
// cycling channel overrides, setting overrides directly, and flipping
// a server's collection default.
package discord_tools
