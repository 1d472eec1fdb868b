// Package slack_tools registers MCP tools for managing Slack collection
// scope: listing workspaces with resolved effective states, cycling
// conversation overrides, setting overrides directly, and flipping a
// workspace's collection default.
package slack_tools
