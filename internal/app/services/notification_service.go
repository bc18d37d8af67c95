package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/repositories"
	"github.com/arnav/gradlink/internal/pkg/websocket"
)

// NotificationService persists notifications and pushes them to connected
// clients. The row is the source of truth; the WebSocket push is
// best-effort and never blocks the caller.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	hub              *websocket.Hub
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo *repositories.NotificationRepository, hub *websocket.Hub, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		hub:              hub,
		logger:           logger,
	}
}

// Notify writes a notification row and pushes it to the recipient's open
// connections. A failed push is not an error; the user catches up over REST.
func (s *NotificationService) Notify(ctx context.Context, recipientID int64, kind models.NotificationKind, title, body string) error {
	n := &models.Notification{
		RecipientID: recipientID,
		Kind:        kind,
		Title:       title,
		Body:        body,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error().Err(err).Int64("recipientID", recipientID).Str("kind", string(kind)).Msg("Failed to persist notification")
		return err
	}

	s.hub.Push(&websocket.Event{
		Kind:        "notification",
		RecipientID: recipientID,
		Payload:     n,
		Timestamp:   time.Now(),
	})
	return nil
}

// List returns the recipient's notifications, newest first
func (s *NotificationService) List(ctx context.Context, recipientID int64, unreadOnly bool) ([]models.Notification, error) {
	return s.notificationRepo.ListByRecipient(ctx, recipientID, unreadOnly)
}

// MarkRead marks one notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, recipientID)
}

// MarkAllRead marks every unread notification as read
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}

// CountUnread returns the badge count
func (s *NotificationService) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, recipientID)
}
