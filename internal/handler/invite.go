package handler

import (
	"net/http"

	"github.com/forgo/haven/api/internal/middleware"
	"github.com/forgo/haven/api/internal/model"
	"github.com/forgo/haven/api/internal/service"
)

// InviteHandler handles invite HTTP requests
type InviteHandler struct {
	svc *service.InviteService
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(svc *service.InviteService) *InviteHandler {
	return &InviteHandler{svc: svc}
}

// Get handles GET /v1/invites/{inviteId} - public invite preview
func (h *InviteHandler) Get(w http.ResponseWriter, r *http.Request) {
	inviteID := r.PathValue("inviteId")
	if inviteID == "" {
		WriteError(w, model.NewBadRequestError("invite ID required"))
		return
	}

	preview, err := h.svc.GetPreview(r.Context(), inviteID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, preview, nil)
}

// Join handles POST /v1/invites/{inviteId}/join - join through an invite
func (h *InviteHandler) Join(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	inviteID := r.PathValue("inviteId")
	if inviteID == "" {
		WriteError(w, model.NewBadRequestError("invite ID required"))
		return
	}

	result, err := h.svc.Join(ctx, userID, inviteID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// Create handles POST /v1/channels/{channelId}/invites - create an invite
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	channelID := r.PathValue("channelId")
	if channelID == "" {
		WriteError(w, model.NewBadRequestError("channel ID required"))
		return
	}

	invite, err := h.svc.CreateForChannel(ctx, userID, channelID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, invite, nil)
}

// Delete handles DELETE /v1/invites/{inviteId} - delete an invite
func (h *InviteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	inviteID := r.PathValue("inviteId")
	if inviteID == "" {
		WriteError(w, model.NewBadRequestError("invite ID required"))
		return
	}

	if err := h.svc.Delete(ctx, userID, inviteID); err != nil {
		h.handleError(w, err)
		return
	}

	WriteNoContent(w)
}

func (h *InviteHandler) handleError(w http.ResponseWriter, err error) {
	WriteError(w, MapServiceError(err))
}
