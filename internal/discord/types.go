package discord

import "github.com/scopeboard/scopeboard/internal/gateway"

// ServerRecord is a Discord server as returned by the gateway.
type ServerRecord struct {
	// ID is the server (guild) identifier.
	ID string `json:"id"`

	// Name is the server's display name.
	Name string `json:"name"`

	// CollectMessages is the server's own collection default, the root of
	// inheritance for its channels.
	CollectMessages bool `json:"collect_messages"`

	// Channels are the server's channels in the order the gateway lists them.
	Channels []ChannelRecord `json:"channels"`
}

// ChannelRecord is a Discord channel or thread as returned by the gateway.
type ChannelRecord struct {
	// ID is the channel identifier, unique within the server.
	ID string `json:"id"`

	// Name is the channel's display name.
	Name string `json:"name"`

	// CollectMessages is the channel's tri-state local override.
	CollectMessages gateway.CollectFlag `json:"collect_messages"`

	// IsArchived marks archived threads; archived channels never collect
	// and their toggle is inert.
	IsArchived bool `json:"is_archived"`
}
