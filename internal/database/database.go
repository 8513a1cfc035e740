// Package database wraps SurrealDB access behind a small interface so the
// repository layer never touches the driver directly.
//
// # Queries
//
// Three query shapes cover every repository call:
//   - Query: full statement results, one entry per statement
//   - QueryOne: the first record of the first statement, or ErrNotFound
//   - Execute: run a mutation and discard the result
//
// Multi-statement atomic writes go through TxBuilder (see transaction.go),
// which wraps statements in BEGIN/COMMIT TRANSACTION and namespaces their
// variables. SurrealDB applies the whole block or none of it; there is no
// interactive transaction handle.
//
// # Errors
//
// Failures are classified into sentinel errors checked with errors.Is:
// ErrNotFound, ErrDuplicate, ErrConnection, and ErrQuery.
package database

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to reach the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a statement failed to execute.
	ErrQuery = errors.New("query error")
)

// Database is the storage contract the repositories depend on
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query runs one or more statements and returns a result per statement
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne runs a query and returns the first record, or ErrNotFound
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a mutation and discards its result
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds database connection settings
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
