package handler

import (
	"net/http"

	"github.com/forgo/haven/api/internal/middleware"
	"github.com/forgo/haven/api/internal/model"
	"github.com/forgo/haven/api/internal/service"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type authResponse struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"access_token"`
}

// Register handles POST /v1/auth/register - create a new account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.svc.Register(r.Context(), service.RegisterRequest{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, authResponse{
		User:        result.User,
		AccessToken: result.AccessToken,
	}, nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /v1/auth/login - authenticate with email/password
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.svc.Login(r.Context(), service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, authResponse{
		User:        result.User,
		AccessToken: result.AccessToken,
	}, nil)
}

// Me handles GET /v1/auth/me - return the authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	user, err := h.svc.GetUserByID(ctx, userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, user, nil)
}

func (h *AuthHandler) handleError(w http.ResponseWriter, err error) {
	WriteError(w, MapServiceError(err))
}
