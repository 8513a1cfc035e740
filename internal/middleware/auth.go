package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/forgo/haven/api/internal/model"
	"github.com/forgo/haven/api/pkg/jwt"
)

// AuthService defines the interface for token validation
type AuthService interface {
	ValidateAccessToken(token string) (*model.TokenClaims, error)
}

// ClaimsKey is the context key for token claims
const ClaimsKey contextKey = "claims"

// UserEmailKey is the context key for user email
const UserEmailKey contextKey = "userEmail"

// bearerToken extracts the bearer token from the Authorization header.
// Returns an empty string when the header is missing or not bearer-shaped.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// withClaims stores the validated claims and their shortcuts in the context
func withClaims(ctx context.Context, claims *model.TokenClaims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
	return context.WithValue(ctx, ClaimsKey, claims)
}

// Auth returns a middleware that requires a valid bearer token. The
// rejection message distinguishes expired tokens and bad signatures so
// clients know whether to refresh or re-authenticate.
func Auth(authService AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				model.NewUnauthorizedError("missing or malformed authorization header").WriteJSON(w)
				return
			}

			claims, err := authService.ValidateAccessToken(token)
			if err != nil {
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					model.NewUnauthorizedError("token expired").WriteJSON(w)
				case errors.Is(err, jwt.ErrInvalidSignature):
					model.NewUnauthorizedError("invalid token signature").WriteJSON(w)
				default:
					model.NewUnauthorizedError("invalid token").WriteJSON(w)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth validates a bearer token when one is present but lets
// anonymous requests through untouched. An invalid token is treated as
// anonymous rather than rejected.
func OptionalAuth(authService AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.ValidateAccessToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// GetUserID extracts the authenticated user id from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUserEmail extracts the authenticated user's email from context
func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(UserEmailKey).(string); ok {
		return email
	}
	return ""
}

// GetClaims extracts the full token claims from context
func GetClaims(ctx context.Context) *model.TokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*model.TokenClaims); ok {
		return claims
	}
	return nil
}
