// Package gdrive_tools registers MCP tools for managing Google Drive
// collection scope. On top of the override and default tools shared
// with the chat sources, Drive folders are recursive: a folder leaf
// carries an exclusion set that prunes individual descendants from an
// otherwise collecting subtree.
package gdrive_tools
