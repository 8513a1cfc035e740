// Package repository provides data access for the Haven API.
//
// Each repository wraps the database abstraction with entity-specific
// queries and parsing: users, servers (and their memberships), channels,
// and invites. Repositories return model types and the database package's
// sentinel errors; they hold no business rules.
//
// SurrealDB returns records in several shapes depending on the query, so
// parsing goes through shared helpers (unwrapRecord, convertSurrealID,
// getString and friends) rather than direct struct decoding.
//
// Multi-statement writes that must be atomic use the database package's
// TxBuilder, which wraps the statements in BEGIN/COMMIT TRANSACTION.
package repository
