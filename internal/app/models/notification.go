package models

import (
	"time"
)

// NotificationKind labels what produced a notification
type NotificationKind string

const (
	NotificationApprovalDecided  NotificationKind = "approval_decided"
	NotificationEventDecided     NotificationKind = "event_decided"
	NotificationBookingConfirmed NotificationKind = "booking_confirmed"
	NotificationPaymentFailed    NotificationKind = "payment_failed"
)

// Notification defines a queued, non-blocking user notification based on
// the 'notifications' table. Rows are written by approval decisions and
// payment outcomes and pushed to connected clients over WebSocket.
type Notification struct {
	ID          int64            `json:"id" db:"id"`
	RecipientID int64            `json:"recipientId" db:"recipient_id"`
	Kind        NotificationKind `json:"kind" db:"kind"`
	Title       string           `json:"title" db:"title"`
	Body        string           `json:"body" db:"body"`
	IsRead      bool             `json:"isRead" db:"is_read"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}
