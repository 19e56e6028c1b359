package notification

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Notification is a short in-app message shown in the user's bell menu.
// The link points at the page the event happened on.
type Notification struct {
	ID        kernel.NotificationID `json:"id" db:"id"`
	UserID    kernel.UserID         `json:"user_id" db:"user_id"`
	Message   string                `json:"message" db:"message"`
	Link      string                `json:"link" db:"link"`
	Read      bool                  `json:"read" db:"read"`
	CreatedAt time.Time             `json:"created_at" db:"created_at"`
}
