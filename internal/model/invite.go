package model

import (
	"errors"
	"time"
)

// InviteKind discriminates the invite variants
type InviteKind string

const (
	InviteKindServer InviteKind = "server"
	InviteKindGroup  InviteKind = "group"
)

// Invite is a shareable token resolving to either a server or a group chat.
// Exactly one variant shape is valid: server invites carry a ServerID (and
// optionally the channel the invite points at), group invites carry only a
// ChannelID. The Kind tag is authoritative; it is set by the store at
// creation and forwarded untouched by resolution.
type Invite struct {
	ID        string     `json:"id"`
	Kind      InviteKind `json:"kind"`
	ServerID  *string    `json:"server_id,omitempty"`
	ChannelID *string    `json:"channel_id,omitempty"`
	CreatorID string     `json:"creator_id"`
	CreatedOn time.Time  `json:"created_on"`
}

// Validate checks the variant invariant: exactly one variant shape is set
func (i *Invite) Validate() error {
	switch i.Kind {
	case InviteKindServer:
		if i.ServerID == nil || *i.ServerID == "" {
			return errors.New("server invite missing server id")
		}
	case InviteKindGroup:
		if i.ChannelID == nil || *i.ChannelID == "" {
			return errors.New("group invite missing channel id")
		}
		if i.ServerID != nil {
			return errors.New("group invite must not reference a server")
		}
	default:
		return errors.New("unknown invite kind")
	}
	return nil
}

// InviteJoinResult is the variant-tagged response of a successful join.
// Callers discriminate on Type: server joins carry Server and Channels,
// group joins carry Channel and Users.
type InviteJoinResult struct {
	Type InviteKind `json:"type"`

	// Server variant
	Server   *Server   `json:"server,omitempty"`
	Channels []Channel `json:"channels,omitempty"`

	// Group variant
	Channel *Channel            `json:"channel,omitempty"`
	Users   []*RelativeUserView `json:"users,omitempty"`
}

// InvitePreview is the public shape of an invite returned without joining
type InvitePreview struct {
	ID          string     `json:"id"`
	Kind        InviteKind `json:"kind"`
	ServerID    *string    `json:"server_id,omitempty"`
	ServerName  string     `json:"server_name,omitempty"`
	ChannelID   *string    `json:"channel_id,omitempty"`
	ChannelName string     `json:"channel_name,omitempty"`
	MemberCount int        `json:"member_count"`
}

// Business constraints
const (
	InviteCodeLength = 8
)
