package model

import "time"

// ChannelKind discriminates the channel variants
type ChannelKind string

const (
	ChannelKindText  ChannelKind = "text"  // Server text channel
	ChannelKindVoice ChannelKind = "voice" // Server voice channel
	ChannelKindGroup ChannelKind = "group" // Standalone group chat
	ChannelKindDM    ChannelKind = "dm"    // Direct message channel
)

// Channel represents a message channel. Server channels carry a ServerID;
// group and DM channels carry a recipient list instead.
type Channel struct {
	ID           string      `json:"id"`
	Kind         ChannelKind `json:"kind"`
	Name         string      `json:"name,omitempty"`
	Description  *string     `json:"description,omitempty"`
	Icon         *string     `json:"icon,omitempty"`
	ServerID     *string     `json:"server_id,omitempty"`
	OwnerID      *string     `json:"owner_id,omitempty"`
	RecipientIDs []string    `json:"recipients,omitempty"`
	CreatedOn    time.Time   `json:"created_on"`
	UpdatedOn    time.Time   `json:"updated_on"`
}

// IsGroup returns true if the channel is a standalone group chat
func (c *Channel) IsGroup() bool {
	return c.Kind == ChannelKindGroup
}

// HasRecipient returns true if the user is in the channel's recipient list
func (c *Channel) HasRecipient(userID string) bool {
	for _, id := range c.RecipientIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Business constraints
const (
	MaxChannelNameLength = 100
	MaxChannelDescLength = 500
)
