// Package middleware provides HTTP middleware for the Haven API.
//
// The middleware package contains reusable middleware components for
// authentication, rate limiting, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: JWT token validation and user extraction
//   - RateLimit: Token bucket rate limiting per user/IP
//   - RequestID, Logger, Recovery, CORS, Compress: request plumbing
//
// # Authentication
//
// The auth middleware validates bearer tokens and places the claims in
// the request context. After authentication, handlers can access user
// info:
//
//	userID := middleware.GetUserID(r.Context())
//
// OptionalAuth does the same but lets unauthenticated requests through.
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): Returns authenticated user ID
//   - GetUserEmail(ctx): Returns authenticated user email
//   - GetClaims(ctx): Returns the full token claims
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
