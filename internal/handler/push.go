package handler

import (
	"net/http"

	"github.com/forgo/haven/api/internal/middleware"
	"github.com/forgo/haven/api/internal/model"
	"github.com/forgo/haven/api/internal/service"
)

// PushHandler handles web-push subscription HTTP requests
type PushHandler struct {
	svc *service.PushService
}

// NewPushHandler creates a new push handler
func NewPushHandler(svc *service.PushService) *PushHandler {
	return &PushHandler{svc: svc}
}

type subscribeRequest struct {
	Endpoint string `json:"endpoint"`
	P256DH   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

// Subscribe handles POST /v1/push/subscribe - store a push subscription
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req subscribeRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	err := h.svc.Subscribe(ctx, userID, &model.PushSubscription{
		Endpoint: req.Endpoint,
		P256DH:   req.P256DH,
		Auth:     req.Auth,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteNoContent(w)
}

// Unsubscribe handles POST /v1/push/unsubscribe - remove the push subscription
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.svc.Unsubscribe(ctx, userID); err != nil {
		h.handleError(w, err)
		return
	}

	WriteNoContent(w)
}

func (h *PushHandler) handleError(w http.ResponseWriter, err error) {
	WriteError(w, MapServiceError(err))
}
