package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/haven/api/internal/database"
	"github.com/forgo/haven/api/internal/model"
)

// InviteRepository handles invite data access
type InviteRepository struct {
	db database.Database
}

// NewInviteRepository creates a new invite repository
func NewInviteRepository(db database.Database) *InviteRepository {
	return &InviteRepository{db: db}
}

// Create creates a new invite under its code as the record ID
func (r *InviteRepository) Create(ctx context.Context, invite *model.Invite) error {
	if err := invite.Validate(); err != nil {
		return fmt.Errorf("%w: %v", database.ErrQuery, err)
	}

	query := `
		CREATE type::record($id) CONTENT {
			kind: $kind,
			server: IF $server_id IS NOT NULL THEN type::record($server_id) ELSE NONE END,
			channel: IF $channel_id IS NOT NULL THEN type::record($channel_id) ELSE NONE END,
			creator: type::record($creator_id),
			created_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"id":         invite.ID,
		"kind":       string(invite.Kind),
		"server_id":  ptrToNone(invite.ServerID),
		"channel_id": ptrToNone(invite.ChannelID),
		"creator_id": invite.CreatorID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: invite code already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	invite.ID = created.ID
	invite.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves an invite by ID. The stored kind tag is forwarded
// untouched so callers can dispatch on the variant.
func (r *InviteRepository) GetByID(ctx context.Context, id string) (*model.Invite, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	invite, err := parseInviteResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return invite, nil
}

// DeleteOrphaned removes invites whose target no longer exists. Record
// link traversal yields NONE for deleted records, so an invite is
// orphaned when its channel is gone, or for server invites, when the
// server is gone. Returns the number of invites removed.
func (r *InviteRepository) DeleteOrphaned(ctx context.Context) (int, error) {
	query := `
		DELETE invite
		WHERE channel.id IS NONE OR (kind = 'server' AND server.id IS NONE)
		RETURN BEFORE
	`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return 0, err
	}

	if deleted, ok := extractQueryResults(result); ok {
		return len(deleted), nil
	}
	return 0, nil
}

// Delete deletes an invite
func (r *InviteRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

func parseInviteResult(result interface{}) (*model.Invite, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	invite := &model.Invite{
		Kind: model.InviteKind(getString(data, "kind")),
	}

	if id, ok := data["id"]; ok {
		invite.ID = convertSurrealID(id)
	}
	if server, ok := data["server"]; ok && server != nil {
		if id := convertSurrealID(server); id != "" && id != "<nil>" {
			invite.ServerID = &id
		}
	}
	if channel, ok := data["channel"]; ok && channel != nil {
		if id := convertSurrealID(channel); id != "" && id != "<nil>" {
			invite.ChannelID = &id
		}
	}
	if creator, ok := data["creator"]; ok {
		invite.CreatorID = convertSurrealID(creator)
	}
	if t := getTime(data, "created_on"); t != nil {
		invite.CreatedOn = *t
	}

	if err := invite.Validate(); err != nil {
		return nil, fmt.Errorf("%w: malformed invite record: %v", database.ErrQuery, err)
	}

	return invite, nil
}
