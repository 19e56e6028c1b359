package notificationinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redlaboral/portal/marketplace/notification"
	"github.com/redlaboral/portal/pkg/kernel"
)

// PostgresNotificationRepository implements notification.Repository
// using PostgreSQL
type PostgresNotificationRepository struct {
	db *sqlx.DB
}

// NewPostgresNotificationRepository creates a new PostgreSQL
// notification repository
func NewPostgresNotificationRepository(db *sqlx.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{
		db: db,
	}
}

type notificationModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Message   string    `db:"message"`
	Link      string    `db:"link"`
	Read      bool      `db:"read"`
	CreatedAt time.Time `db:"created_at"`
}

func (m *notificationModel) toEntity() *notification.Notification {
	return &notification.Notification{
		ID:        kernel.NotificationID(m.ID),
		UserID:    kernel.UserID(m.UserID),
		Message:   m.Message,
		Link:      m.Link,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

// Create stores a new notification
func (r *PostgresNotificationRepository) Create(ctx context.Context, entity *notification.Notification) error {
	model := &notificationModel{
		ID:        string(entity.ID),
		UserID:    string(entity.UserID),
		Message:   entity.Message,
		Link:      entity.Link,
		Read:      entity.Read,
		CreatedAt: entity.CreatedAt,
	}

	query := `
		INSERT INTO notifications (id, user_id, message, link, read, created_at)
		VALUES (:id, :user_id, :message, :link, :read, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's notifications, newest first
func (r *PostgresNotificationRepository) ListByUser(ctx context.Context, userID kernel.UserID, limit int) ([]*notification.Notification, error) {
	query := `
		SELECT id, user_id, message, link, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var models []notificationModel
	if err := r.db.SelectContext(ctx, &models, query, string(userID), limit); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*notification.Notification, 0, len(models))
	for i := range models {
		notifications = append(notifications, models[i].toEntity())
	}

	return notifications, nil
}

// CountUnread counts a user's unread notifications
func (r *PostgresNotificationRepository) CountUnread(ctx context.Context, userID kernel.UserID) (int, error) {
	var total int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`

	if err := r.db.GetContext(ctx, &total, query, string(userID)); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return total, nil
}

// MarkAllRead marks every notification of a user as read
func (r *PostgresNotificationRepository) MarkAllRead(ctx context.Context, userID kernel.UserID) error {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`

	if _, err := r.db.ExecContext(ctx, query, string(userID)); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}
