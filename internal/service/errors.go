package service

import (
	"errors"

	"github.com/forgo/haven/api/internal/database"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameRequired   = errors.New("username is required")
	ErrUsernameTooLong    = errors.New("username exceeds maximum length")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
)

// ===== Invite Errors =====
var (
	ErrInviteNotFound    = errors.New("invite not found")
	ErrIsBot             = errors.New("bot accounts cannot use invites")
	ErrMaxServersReached = errors.New("maximum number of servers reached")
	ErrServerNotFound    = errors.New("server not found")
	ErrAlreadyMember     = errors.New("already a member of this server")
	ErrGroupNotFound     = errors.New("group not found")
	ErrAlreadyInGroup    = errors.New("already in this group")
	ErrGroupFull         = errors.New("group has reached maximum size")
	ErrNotInChannel      = errors.New("not a participant of this channel")
)

// ===== Push Notification Errors =====
var (
	ErrPushDisabled        = errors.New("push notifications are disabled")
	ErrNoSubscription      = errors.New("no push subscription found for user")
	ErrInvalidSubscription = errors.New("invalid push subscription")
)

// isDuplicateError reports whether a repository error is a unique
// constraint violation surfaced by the database layer.
func isDuplicateError(err error) bool {
	return errors.Is(err, database.ErrDuplicate)
}
