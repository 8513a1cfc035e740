package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/haven/api/internal/database"
	"github.com/forgo/haven/api/internal/model"
)

// ServerRepository handles server and membership data access
type ServerRepository struct {
	db database.Database
}

// NewServerRepository creates a new server repository
func NewServerRepository(db database.Database) *ServerRepository {
	return &ServerRepository{db: db}
}

// GetByID retrieves a server by ID
func (r *ServerRepository) GetByID(ctx context.Context, id string) (*model.Server, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	server, err := parseServerResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return server, nil
}

// IsMember reports whether the user has a membership record for the server
func (r *ServerRepository) IsMember(ctx context.Context, serverID, userID string) (bool, error) {
	query := `
		SELECT count() FROM member
		WHERE server = type::record($server_id) AND user = type::record($user_id)
		GROUP ALL
	`
	vars := map[string]interface{}{
		"server_id": serverID,
		"user_id":   userID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return extractCount(result) > 0, nil
}

// CountForUser returns the number of servers the user is a member of
func (r *ServerRepository) CountForUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT count() FROM member WHERE user = type::record($user_id) GROUP ALL`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return extractCount(result), nil
}

// CountMembers returns the number of members in a server
func (r *ServerRepository) CountMembers(ctx context.Context, serverID string) (int, error) {
	query := `SELECT count() FROM member WHERE server = type::record($server_id) GROUP ALL`
	vars := map[string]interface{}{"server_id": serverID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return extractCount(result), nil
}

// CreateMember creates a membership record and returns the server's channels.
// Both run in one transaction so a failed channel read leaves no membership
// behind.
func (r *ServerRepository) CreateMember(ctx context.Context, serverID, userID string) ([]model.Channel, error) {
	tb := database.NewTxBuilder()
	tb.Add(`
		CREATE member CONTENT {
			server: type::record($server_id),
			user: type::record($user_id),
			joined_on: time::now()
		}
	`, map[string]interface{}{
		"server_id": serverID,
		"user_id":   userID,
	})
	tb.Add(`SELECT * FROM channel WHERE server = type::record($server_id)`, map[string]interface{}{
		"server_id": serverID,
	})

	results, err := database.ExecuteTransaction(ctx, r.db, tb)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, fmt.Errorf("%w: already a member", database.ErrDuplicate)
		}
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.New("no result returned")
	}

	// Channel list is the last statement's result
	return parseChannelList(results[len(results)-1])
}

// GetChannels retrieves all channels belonging to a server
func (r *ServerRepository) GetChannels(ctx context.Context, serverID string) ([]model.Channel, error) {
	query := `SELECT * FROM channel WHERE server = type::record($server_id)`
	vars := map[string]interface{}{"server_id": serverID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}

	return parseChannelList(result[0])
}

func parseServerResult(result interface{}) (*model.Server, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	server := &model.Server{
		Name:        getString(data, "name"),
		Description: getStringPtr(data, "description"),
		Icon:        getStringPtr(data, "icon"),
	}

	if id, ok := data["id"]; ok {
		server.ID = convertSurrealID(id)
	}
	if owner, ok := data["owner"]; ok {
		server.OwnerID = convertSurrealID(owner)
	}
	if channels, ok := data["channels"].([]interface{}); ok {
		server.ChannelIDs = make([]string, 0, len(channels))
		for _, ch := range channels {
			if id := convertSurrealID(ch); id != "" {
				server.ChannelIDs = append(server.ChannelIDs, id)
			}
		}
	}
	if t := getTime(data, "created_on"); t != nil {
		server.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		server.UpdatedOn = *t
	}

	return server, nil
}
