package slack

import "github.com/scopeboard/scopeboard/internal/gateway"

// WorkspaceRecord is a Slack workspace as returned by the gateway.
type WorkspaceRecord struct {
	// ID is the workspace (team) identifier.
	ID string `json:"id"`

	// Name is the workspace's display name.
	Name string `json:"name"`

	// CollectMessages is the workspace's own collection default.
	CollectMessages bool `json:"collect_messages"`

	// Conversations are the workspace's channels, groups and DMs in the
	// order the gateway lists them.
	Conversations []ConversationRecord `json:"conversations"`
}

// ConversationRecord is a Slack conversation as returned by the gateway.
type ConversationRecord struct {
	// ID is the conversation identifier, unique within the workspace.
	ID string `json:"id"`

	// Name is the conversation's display name.
	Name string `json:"name"`

	// CollectMessages is the conversation's tri-state local override.
	CollectMessages gateway.CollectFlag `json:"collect_messages"`

	// IsArchived pins archived conversations to non-collecting.
	IsArchived bool `json:"is_archived"`
}
