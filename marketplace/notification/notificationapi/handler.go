package notificationapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redlaboral/portal/marketplace/notification/notificationsrv"
	"github.com/redlaboral/portal/pkg/iam/auth"
)

// Handlers provides HTTP handlers for notification operations
type Handlers struct {
	service *notificationsrv.NotificationService
}

// NewHandlers creates a new notification handlers instance
func NewHandlers(service *notificationsrv.NotificationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListNotifications returns the caller's feed with the unread count
// GET /api/notifications
func (h *Handlers) ListNotifications(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	feed, err := h.service.ListNotifications(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(feed)
}

// MarkAllRead clears the caller's unread badge
// POST /api/notifications/read-all
func (h *Handlers) MarkAllRead(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	if err := h.service.MarkAllRead(c.Context(), authContext.UserID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers all notification routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/notifications")

	api.Get("/", authMiddleware.RequireAuth(), handlers.ListNotifications)
	api.Post("/read-all", authMiddleware.RequireAuth(), handlers.MarkAllRead)
}
