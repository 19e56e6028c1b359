package notification

import (
	"context"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Repository defines notification persistence operations
type Repository interface {
	// Create stores a new notification
	Create(ctx context.Context, notification *Notification) error

	// ListByUser retrieves a user's notifications, newest first
	ListByUser(ctx context.Context, userID kernel.UserID, limit int) ([]*Notification, error)

	// CountUnread counts a user's unread notifications
	CountUnread(ctx context.Context, userID kernel.UserID) (int, error)

	// MarkAllRead marks every notification of a user as read
	MarkAllRead(ctx context.Context, userID kernel.UserID) error
}
