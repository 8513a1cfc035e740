package handler

import (
	"errors"

	"github.com/forgo/haven/api/internal/database"
	"github.com/forgo/haven/api/internal/model"
	"github.com/forgo/haven/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrIsBot),
		errors.Is(err, service.ErrNotInChannel):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrInviteNotFound):
		return model.NewNotFoundError("invite")
	case errors.Is(err, service.ErrServerNotFound):
		return model.NewNotFoundError("server")
	case errors.Is(err, service.ErrGroupNotFound):
		return model.NewNotFoundError("group")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrAlreadyInGroup):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "credentials", Message: err.Error()}})

	case errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrUsernameTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "username", Message: err.Error()}})

	// Limit/capacity errors → 422
	case errors.Is(err, service.ErrMaxServersReached),
		errors.Is(err, service.ErrGroupFull):
		return model.NewValidationError([]model.FieldError{{Field: "limit", Message: err.Error()}})

	// ===== Push Notification Errors → 400 =====
	case errors.Is(err, service.ErrPushDisabled),
		errors.Is(err, service.ErrNoSubscription),
		errors.Is(err, service.ErrInvalidSubscription):
		return model.NewBadRequestError(err.Error())

	// ===== Store Errors → 503 =====
	case errors.Is(err, database.ErrConnection):
		return &model.ProblemDetails{
			Type:   "https://haven-api.forgo.software/errors/store-unavailable",
			Title:  "Service Unavailable",
			Status: 503,
			Detail: "the data store is unreachable",
		}

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
