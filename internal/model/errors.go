package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// errorTypeBase prefixes the type URI of every problem response
const errorTypeBase = "https://haven-api.forgo.software/errors/"

// ErrorCode is a stable machine-readable error identifier, grouped by
// thousands: 1xxx authentication, 2xxx authorization, 3xxx resources,
// 4xxx validation, 5xxx internal.
type ErrorCode int

const (
	ErrCodeUnauthorized ErrorCode = 1001

	ErrCodeForbidden ErrorCode = 2001

	ErrCodeNotFound ErrorCode = 3001
	ErrCodeConflict ErrorCode = 3003

	ErrCodeValidation   ErrorCode = 4001
	ErrCodeInvalidInput ErrorCode = 4002

	ErrCodeInternal ErrorCode = 5001
)

// ProblemDetails is the RFC 9457 problem shape every error response uses
type ProblemDetails struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Status int          `json:"status"`
	Detail string       `json:"detail,omitempty"`
	Errors []FieldError `json:"errors,omitempty"`
	Code   ErrorCode    `json:"code,omitempty"`
}

// FieldError pins a validation failure to a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// WriteJSON writes the problem with the problem+json media type
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func newProblem(slug, title string, status int, code ErrorCode, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   errorTypeBase + slug,
		Title:  title,
		Status: status,
		Detail: detail,
		Code:   code,
	}
}

// NewUnauthorizedError builds a 401 problem
func NewUnauthorizedError(detail string) *ProblemDetails {
	return newProblem("unauthorized", "Unauthorized", http.StatusUnauthorized, ErrCodeUnauthorized, detail)
}

// NewForbiddenError builds a 403 problem
func NewForbiddenError(detail string) *ProblemDetails {
	return newProblem("forbidden", "Forbidden", http.StatusForbidden, ErrCodeForbidden, detail)
}

// NewNotFoundError builds a 404 problem naming the missing resource
func NewNotFoundError(resource string) *ProblemDetails {
	return newProblem("not-found", "Not Found", http.StatusNotFound, ErrCodeNotFound,
		fmt.Sprintf("%s not found", resource))
}

// NewConflictError builds a 409 problem
func NewConflictError(detail string) *ProblemDetails {
	return newProblem("conflict", "Conflict", http.StatusConflict, ErrCodeConflict, detail)
}

// NewValidationError builds a 422 problem carrying per-field failures.
// The detail summarizes the first failure so clients that ignore the
// errors array still see something useful.
func NewValidationError(fieldErrors []FieldError) *ProblemDetails {
	detail := "One or more fields failed validation"
	if len(fieldErrors) > 0 {
		detail = fmt.Sprintf("%s: %s", fieldErrors[0].Field, fieldErrors[0].Message)
		if rest := len(fieldErrors) - 1; rest > 0 {
			detail = fmt.Sprintf("%s (and %d more errors)", detail, rest)
		}
	}
	p := newProblem("validation", "Validation Error", http.StatusUnprocessableEntity, ErrCodeValidation, detail)
	p.Errors = fieldErrors
	return p
}

// NewBadRequestError builds a 400 problem
func NewBadRequestError(detail string) *ProblemDetails {
	return newProblem("bad-request", "Bad Request", http.StatusBadRequest, ErrCodeInvalidInput, detail)
}

// NewInternalError builds a 500 problem; an empty detail gets a generic one
func NewInternalError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	return newProblem("internal", "Internal Server Error", http.StatusInternalServerError, ErrCodeInternal, detail)
}

// NewRateLimitError builds a 429 problem mirroring the Retry-After header
func NewRateLimitError(retryAfter int) *ProblemDetails {
	return newProblem("rate-limited", "Too Many Requests", http.StatusTooManyRequests, 0,
		fmt.Sprintf("Rate limit exceeded. Retry after %d seconds", retryAfter))
}
