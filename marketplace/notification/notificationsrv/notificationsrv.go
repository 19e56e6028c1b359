package notificationsrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redlaboral/portal/marketplace/notification"
	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/redlaboral/portal/pkg/logx"
)

const defaultListLimit = 50

// NotificationService manages the in-app bell feed
type NotificationService struct {
	repo notification.Repository
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(repo notification.Repository) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

// Notify stores a notification for a user
func (s *NotificationService) Notify(ctx context.Context, userID kernel.UserID, message, link string) error {
	if strings.TrimSpace(message) == "" {
		return notification.ErrEmptyMessage()
	}

	return s.repo.Create(ctx, &notification.Notification{
		ID:        kernel.NewNotificationID(uuid.NewString()),
		UserID:    userID,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now(),
	})
}

// NotifyQuietly stores a notification and swallows any failure. Used
// for side-effect notifications that must never break the main flow.
func (s *NotificationService) NotifyQuietly(ctx context.Context, userID kernel.UserID, message, link string) {
	if err := s.Notify(ctx, userID, message, link); err != nil {
		logx.Warnf("notification for user %s dropped: %v", userID.String(), err)
	}
}

// ListNotifications retrieves the user's feed, newest first, with the
// unread count
func (s *NotificationService) ListNotifications(ctx context.Context, userID kernel.UserID) (*notification.FeedResponse, error) {
	items, err := s.repo.ListByUser(ctx, userID, defaultListLimit)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.Notification, 0, len(items))
	for _, item := range items {
		responses = append(responses, *item)
	}

	return &notification.FeedResponse{
		Notifications: responses,
		Unread:        unread,
	}, nil
}

// MarkAllRead clears the user's unread badge
func (s *NotificationService) MarkAllRead(ctx context.Context, userID kernel.UserID) error {
	return s.repo.MarkAllRead(ctx, userID)
}
