package model

import "time"

// RelationshipStatus describes how another user relates to the acting user
type RelationshipStatus string

const (
	RelationshipNone         RelationshipStatus = "none"
	RelationshipSelf         RelationshipStatus = "self"
	RelationshipFriend       RelationshipStatus = "friend"
	RelationshipOutgoing     RelationshipStatus = "outgoing"      // Actor sent a friend request
	RelationshipIncoming     RelationshipStatus = "incoming"      // Actor received a friend request
	RelationshipBlocked      RelationshipStatus = "blocked"       // Actor blocked the user
	RelationshipBlockedOther RelationshipStatus = "blocked_other" // The user blocked the actor
)

// BotInfo marks an account as bot-controlled
type BotInfo struct {
	OwnerID string `json:"owner_id"`
}

// Relation is one entry in a user's relationship list
type Relation struct {
	UserID string             `json:"user_id"`
	Status RelationshipStatus `json:"status"`
}

// User represents a user account
type User struct {
	ID           string            `json:"id"`
	Username     string            `json:"username"`
	Email        string            `json:"email"`
	Hash         *string           `json:"-"` // Never expose password hash
	DisplayName  *string           `json:"display_name,omitempty"`
	Avatar       *string           `json:"avatar,omitempty"`
	Bot          *BotInfo          `json:"bot,omitempty"`
	Relations    []Relation        `json:"-"` // Only ever surfaced through relative views
	Subscription *PushSubscription `json:"-"` // Never exposed over the API
	CreatedOn    time.Time         `json:"created_on"`
	UpdatedOn    time.Time         `json:"updated_on"`
}

// IsBot returns true if the account is bot-controlled
func (u *User) IsBot() bool {
	return u.Bot != nil
}

// RelationshipWith returns the actor-side relationship status toward another user
func (u *User) RelationshipWith(otherID string) RelationshipStatus {
	if u.ID == otherID {
		return RelationshipSelf
	}
	for _, rel := range u.Relations {
		if rel.UserID == otherID {
			return rel.Status
		}
	}
	return RelationshipNone
}

// RelativeUserView is a user entity rebound to what a specific acting user
// is permitted to know. Constructed per response, never persisted.
type RelativeUserView struct {
	ID           string             `json:"id"`
	Username     string             `json:"username"`
	DisplayName  *string            `json:"display_name,omitempty"`
	Avatar       *string            `json:"avatar,omitempty"`
	Bot          bool               `json:"bot,omitempty"`
	Relationship RelationshipStatus `json:"relationship"`
}

// RelativeTo projects the user into a view scoped to the acting user.
// Pure and safe to call concurrently for disjoint pairs. A nil actor
// yields an anonymous view with no relationship.
func (u *User) RelativeTo(actor *User) *RelativeUserView {
	relationship := RelationshipNone
	if actor != nil {
		relationship = actor.RelationshipWith(u.ID)
	}

	view := &RelativeUserView{
		ID:           u.ID,
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		Bot:          u.IsBot(),
		Relationship: relationship,
	}

	// A blocked pair sees no avatar in either direction
	if view.Relationship != RelationshipBlocked && view.Relationship != RelationshipBlockedOther {
		view.Avatar = u.Avatar
	}

	return view
}

// PushSubscription is a web-push subscription stored on the user's account
type PushSubscription struct {
	Endpoint string `json:"endpoint"`
	P256DH   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

// TokenClaims represents extracted JWT claims
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}
