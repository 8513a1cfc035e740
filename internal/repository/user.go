package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/forgo/haven/api/internal/database"
	"github.com/forgo/haven/api/internal/model"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			username: $username,
			email: $email,
			hash: IF $hash IS NOT NULL THEN $hash ELSE NONE END,
			display_name: IF $display_name IS NOT NULL THEN $display_name ELSE NONE END,
			relations: [],
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"username":     user.Username,
		"email":        user.Email,
		"hash":         ptrToNone(user.Hash),
		"display_name": ptrToNone(user.DisplayName),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email or username already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// SetSubscription stores a web-push subscription on the user's account
func (r *UserRepository) SetSubscription(ctx context.Context, userID string, sub *model.PushSubscription) error {
	query := `
		UPDATE type::record($id) SET
			subscription = {
				endpoint: $endpoint,
				p256dh: $p256dh,
				auth: $auth
			},
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":       userID,
		"endpoint": sub.Endpoint,
		"p256dh":   sub.P256DH,
		"auth":     sub.Auth,
	}

	return r.db.Execute(ctx, query, vars)
}

// ClearSubscription removes the web-push subscription from the user's account
func (r *UserRepository) ClearSubscription(ctx context.Context, userID string) error {
	query := `UPDATE type::record($id) SET subscription = NONE, updated_on = time::now()`
	vars := map[string]interface{}{"id": userID}

	return r.db.Execute(ctx, query, vars)
}

// Helper functions

type createdRecord struct {
	ID        string
	CreatedOn time.Time
	UpdatedOn time.Time
}

func extractCreatedRecord(result []interface{}) (*createdRecord, error) {
	if len(result) == 0 {
		return nil, errors.New("no result returned")
	}

	// Navigate through SurrealDB response structure
	first := result[0]
	if resp, ok := first.(map[string]interface{}); ok {
		if resultData, ok := resp["result"].([]interface{}); ok && len(resultData) > 0 {
			first = resultData[0]
		}
	}

	data, ok := first.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	record := &createdRecord{}

	// Handle SurrealDB's complex ID format
	if id, ok := data["id"]; ok {
		record.ID = convertSurrealID(id)
	}
	if t := getTime(data, "created_on"); t != nil {
		record.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		record.UpdatedOn = *t
	}

	return record, nil
}

func parseUserResult(result interface{}) (*model.User, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	// Handle SurrealDB's complex ID format (Thing type)
	// The Go client returns ID as an object, need to convert to string
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}

	// Extract fields hidden from JSON before the roundtrip (json:"-")
	var hash *string
	if h, ok := data["hash"].(string); ok {
		hash = &h
	}
	relations := parseRelations(data["relations"])
	subscription := parseSubscription(data["subscription"])

	// Convert to JSON and back to struct for proper parsing
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(jsonBytes, &user); err != nil {
		return nil, err
	}

	user.Hash = hash
	user.Relations = relations
	user.Subscription = subscription

	return &user, nil
}

func parseRelations(v interface{}) []model.Relation {
	items, ok := v.([]interface{})
	if !ok || len(items) == 0 {
		return nil
	}

	relations := make([]model.Relation, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		userID := getString(m, "user_id")
		if userID == "" {
			if id, ok := m["user_id"]; ok {
				userID = convertSurrealID(id)
			}
		}
		if userID == "" {
			continue
		}
		relations = append(relations, model.Relation{
			UserID: userID,
			Status: model.RelationshipStatus(getString(m, "status")),
		})
	}
	return relations
}

func parseSubscription(v interface{}) *model.PushSubscription {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	sub := &model.PushSubscription{
		Endpoint: getString(m, "endpoint"),
		P256DH:   getString(m, "p256dh"),
		Auth:     getString(m, "auth"),
	}
	if sub.Endpoint == "" {
		return nil
	}
	return sub
}

// unwrapRecord navigates the SurrealDB response structure down to a single
// record map, returning database.ErrNotFound for empty result sets.
func unwrapRecord(result interface{}) (map[string]interface{}, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, database.ErrNotFound
				}
				result = resultData[0]
			}
		}
	}

	// Handle array wrapper
	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return data, nil
}

// convertSurrealID converts a SurrealDB ID (which may be a complex object) to a string
func convertSurrealID(id interface{}) string {
	// Already a string
	if str, ok := id.(string); ok {
		return str
	}

	// Handle models.RecordID from SurrealDB Go client
	if rid, ok := id.(models.RecordID); ok {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}
	if rid, ok := id.(*models.RecordID); ok && rid != nil {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}

	// Handle map format: {"tb": "user", "id": {"String": "demo"}} or similar
	if m, ok := id.(map[string]interface{}); ok {
		tb := ""
		idPart := ""

		// Get table name
		if t, ok := m["tb"].(string); ok {
			tb = t
		} else if t, ok := m["TB"].(string); ok {
			tb = t
		} else if t, ok := m["Table"].(string); ok {
			tb = t
		}

		// Get ID part - could be nested
		if idVal, ok := m["id"]; ok {
			idPart = extractIDValue(idVal)
		} else if idVal, ok := m["ID"]; ok {
			idPart = extractIDValue(idVal)
		}

		if tb != "" && idPart != "" {
			return tb + ":" + idPart
		}
		if idPart != "" {
			return idPart
		}
	}

	// Fallback: use fmt.Sprintf
	return fmt.Sprintf("%v", id)
}

// extractIDValue extracts the ID value which may be nested
func extractIDValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		// Check for {"String": "value"} format
		if s, ok := m["String"].(string); ok {
			return s
		}
		// Check for other common formats
		if s, ok := m["string"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// ptrToNone converts a string pointer to either the string value or nil.
// When used with SurrealDB queries that check for NONE, this allows proper
// handling of optional fields.
func ptrToNone(s *string) interface{} {
	if s == nil {
		return nil // Will be checked with != NONE in query
	}
	return *s
}
