package repository

import (
	"context"
	"errors"

	"github.com/forgo/haven/api/internal/database"
	"github.com/forgo/haven/api/internal/model"
)

// ChannelRepository handles channel data access
type ChannelRepository struct {
	db database.Database
}

// NewChannelRepository creates a new channel repository
func NewChannelRepository(db database.Database) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// GetByID retrieves a channel by ID
func (r *ChannelRepository) GetByID(ctx context.Context, id string) (*model.Channel, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	channel, err := parseChannelResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return channel, nil
}

// AddRecipient appends the user to the channel's recipient list and returns
// the updated channel. The append is a set union so replays are no-ops.
// invitedBy is the id of the user whose invite admitted the new recipient;
// a join audit record is written alongside the recipient update so the
// admission stays attributable.
func (r *ChannelRepository) AddRecipient(ctx context.Context, channelID, userID, invitedBy string) (*model.Channel, error) {
	tb := database.NewTxBuilder()
	tb.Add(`
		UPDATE type::record($id) SET
			recipients = array::union(recipients, [type::record($user_id)]),
			updated_on = time::now()
	`, map[string]interface{}{
		"id":      channelID,
		"user_id": userID,
	})
	tb.Add(`
		CREATE group_join CONTENT {
			channel: type::record($id),
			user: type::record($user_id),
			invited_by: type::record($invited_by),
			joined_on: time::now()
		}
	`, map[string]interface{}{
		"id":         channelID,
		"user_id":    userID,
		"invited_by": invitedBy,
	})

	results, err := database.ExecuteTransaction(ctx, r.db, tb)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.New("no result returned")
	}

	// Updated channel is the first statement's result
	records, ok := extractQueryResults([]interface{}{results[0]})
	if !ok || len(records) == 0 {
		return nil, nil
	}
	data, ok := records[0].(map[string]interface{})
	if !ok {
		return nil, nil
	}
	return channelFromRecord(data), nil
}

func parseChannelResult(result interface{}) (*model.Channel, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}
	return channelFromRecord(data), nil
}

// parseChannelList parses one statement result into a channel slice
func parseChannelList(result interface{}) ([]model.Channel, error) {
	records, ok := extractQueryResults([]interface{}{result})
	if !ok {
		// Direct array of records
		if arr, ok := result.([]interface{}); ok {
			records = arr
		} else {
			return nil, nil
		}
	}

	channels := make([]model.Channel, 0, len(records))
	for _, record := range records {
		data, ok := record.(map[string]interface{})
		if !ok {
			continue
		}
		channels = append(channels, *channelFromRecord(data))
	}
	return channels, nil
}

func channelFromRecord(data map[string]interface{}) *model.Channel {
	channel := &model.Channel{
		Kind:        model.ChannelKind(getString(data, "kind")),
		Name:        getString(data, "name"),
		Description: getStringPtr(data, "description"),
		Icon:        getStringPtr(data, "icon"),
	}

	if id, ok := data["id"]; ok {
		channel.ID = convertSurrealID(id)
	}
	if server, ok := data["server"]; ok && server != nil {
		if id := convertSurrealID(server); id != "" && id != "<nil>" {
			channel.ServerID = &id
		}
	}
	if owner, ok := data["owner"]; ok && owner != nil {
		if id := convertSurrealID(owner); id != "" && id != "<nil>" {
			channel.OwnerID = &id
		}
	}
	if recipients, ok := data["recipients"].([]interface{}); ok {
		channel.RecipientIDs = make([]string, 0, len(recipients))
		for _, rec := range recipients {
			if id := convertSurrealID(rec); id != "" {
				channel.RecipientIDs = append(channel.RecipientIDs, id)
			}
		}
	}
	if t := getTime(data, "created_on"); t != nil {
		channel.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		channel.UpdatedOn = *t
	}

	return channel
}
