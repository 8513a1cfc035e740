package model

import "time"

// Server represents a community server containing channels
type Server struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	ChannelIDs  []string  `json:"channels"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// Member is the join record linking a user to a server
type Member struct {
	ID       string    `json:"id"`
	ServerID string    `json:"server_id"`
	UserID   string    `json:"user_id"`
	Nickname *string   `json:"nickname,omitempty"`
	JoinedOn time.Time `json:"joined_on"`
}

// Business constraints
const (
	MaxServerNameLength = 100
	MaxServerDescLength = 500
)
