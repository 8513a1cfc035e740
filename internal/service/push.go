package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/forgo/haven/api/internal/model"
)

// PushNotification represents a push notification to send
type PushNotification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Tag   string            `json:"tag,omitempty"`
	Data  map[string]string `json:"data,omitempty"`
}

// PushResult represents the result of sending a push notification
type PushResult struct {
	Success   bool   `json:"success"`
	Endpoint  string `json:"endpoint"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SubscriptionRepository defines the interface for push subscription storage
type SubscriptionRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	SetSubscription(ctx context.Context, userID string, sub *model.PushSubscription) error
	ClearSubscription(ctx context.Context, userID string) error
}

// PushService manages web-push subscriptions and delivery
type PushService struct {
	subRepo SubscriptionRepository
	logger  *slog.Logger
	enabled bool
}

// PushServiceConfig holds configuration for the push service
type PushServiceConfig struct {
	SubRepo SubscriptionRepository
	Logger  *slog.Logger
	Enabled bool
}

// NewPushService creates a new push service
func NewPushService(cfg PushServiceConfig) *PushService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PushService{
		subRepo: cfg.SubRepo,
		logger:  logger,
		enabled: cfg.Enabled,
	}
}

// IsEnabled returns whether push notifications are enabled
func (s *PushService) IsEnabled() bool {
	return s.enabled
}

// Subscribe stores a web-push subscription on the user's account,
// replacing any previous one.
func (s *PushService) Subscribe(ctx context.Context, userID string, sub *model.PushSubscription) error {
	if sub == nil || sub.Endpoint == "" || sub.P256DH == "" || sub.Auth == "" {
		return ErrInvalidSubscription
	}
	if !strings.HasPrefix(sub.Endpoint, "https://") {
		return ErrInvalidSubscription
	}

	user, err := s.subRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	return s.subRepo.SetSubscription(ctx, userID, sub)
}

// Unsubscribe removes the user's web-push subscription. Removing an
// absent subscription is a no-op.
func (s *PushService) Unsubscribe(ctx context.Context, userID string) error {
	user, err := s.subRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	return s.subRepo.ClearSubscription(ctx, userID)
}

// SendToUser delivers a notification to the user's subscribed endpoint
func (s *PushService) SendToUser(ctx context.Context, userID string, notification *PushNotification) (*PushResult, error) {
	if !s.enabled {
		return nil, ErrPushDisabled
	}

	user, err := s.subRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Subscription == nil {
		return nil, ErrNoSubscription
	}

	// TODO: integrate a web-push sender (VAPID signing against the
	// stored endpoint/p256dh/auth triple) once keys are provisioned
	s.logger.Info("would send push notification",
		"user_id", userID,
		"endpoint", maskEndpoint(user.Subscription.Endpoint),
		"title", notification.Title,
	)

	return &PushResult{
		Success:   true,
		Endpoint:  user.Subscription.Endpoint,
		MessageID: fmt.Sprintf("stub_%d", time.Now().UnixNano()),
	}, nil
}

// maskEndpoint masks a push endpoint for logging
func maskEndpoint(endpoint string) string {
	if len(endpoint) <= 24 {
		return "***"
	}
	return endpoint[:24] + "..."
}
