// Package handler contains the HTTP layer for the Haven API.
//
// Handlers decode requests, pull the acting user from the request context
// (set by the auth middleware), call a service, and write responses.
// Successful responses go through WriteData; failures go through
// MapServiceError, which translates service sentinel errors into RFC 9457
// problem responses with stable status codes.
package handler
