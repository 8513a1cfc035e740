// Package config manages application configuration for the Haven API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//   - PushConfig: Web push notification settings (VAPID keys)
//   - LimitsConfig: Platform capacity limits (server membership, group size)
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT                 - HTTP server port (default: 8080)
//	DB_HOST                     - SurrealDB host
//	DB_PORT                     - SurrealDB port
//	DB_NAMESPACE                - Database namespace
//	DB_DATABASE                 - Database name
//	JWT_PRIVATE_KEY_PATH        - RSA private key for token signing
//	JWT_EXPIRATION_MINS         - Token expiration in minutes
//	PUSH_ENABLED                - Enable web push delivery
//	LIMIT_MAX_SERVERS_PER_USER  - Server membership cap per user
//	LIMIT_MAX_GROUP_SIZE        - Recipient cap per group channel
//
// # Default Values
//
// Sensible defaults are provided for development; Validate reports every
// missing or invalid value at once so misconfiguration fails fast at startup.
package config
