package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
)

// SurrealDB is the Database implementation backed by the SurrealDB driver
type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

// NewSurrealDB creates an unconnected SurrealDB handle
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{config: cfg}
}

// Connect dials the websocket endpoint, signs in, and selects the
// configured namespace and database.
func (s *SurrealDB) Connect(ctx context.Context) error {
	endpoint := fmt.Sprintf("ws://%s:%s", s.config.Host, s.config.Port)

	db, err := surrealdb.FromEndpointURLString(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if _, err := db.SignIn(ctx, &surrealdb.Auth{
		Username: s.config.User,
		Password: s.config.Password,
	}); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.db = db
	return nil
}

// Close tears down the driver connection
func (s *SurrealDB) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close(context.Background())
}

// Ping verifies the connection is alive by asking the server its version
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	if _, err := s.db.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query runs the statement block and returns one wrapped result per
// statement, in the shape {status, result}. Any statement with a non-OK
// status fails the whole call with ErrQuery.
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if s.db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if results == nil {
		return nil, nil
	}

	wrapped := make([]interface{}, 0, len(*results))
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, fmt.Errorf("%w: %s", ErrQuery, r.Error.Message)
			}
			return nil, ErrQuery
		}
		wrapped = append(wrapped, map[string]interface{}{
			"status": r.Status,
			"result": r.Result,
		})
	}

	return wrapped, nil
}

// QueryOne runs a query and unwraps the first record of the first
// statement. An empty result set reads as ErrNotFound; a scalar result
// (counts, aggregates) is returned as-is.
func (s *SurrealDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	resp, ok := results[0].(map[string]interface{})
	if !ok {
		return results[0], nil
	}
	if status, ok := resp["status"].(string); !ok || status != "OK" {
		return results[0], nil
	}

	records, ok := resp["result"].([]interface{})
	if !ok {
		// Scalar result
		return resp["result"], nil
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// Execute runs a mutation, discarding the result
func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}
