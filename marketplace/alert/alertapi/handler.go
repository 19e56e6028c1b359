package alertapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redlaboral/portal/marketplace/alert"
	"github.com/redlaboral/portal/marketplace/alert/alertsrv"
	"github.com/redlaboral/portal/pkg/iam/auth"
	"github.com/redlaboral/portal/pkg/kernel"
)

// Handlers provides HTTP handlers for alert operations
type Handlers struct {
	service *alertsrv.AlertService
}

// NewHandlers creates a new alert handlers instance
func NewHandlers(service *alertsrv.AlertService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateAlert subscribes an email to new offers. Open to anonymous
// visitors.
// POST /api/alerts
func (h *Handlers) CreateAlert(c *fiber.Ctx) error {
	var req alert.CreateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return alert.ErrInvalidEmail().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateAlert(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListMyAlerts lists the alerts created with the authenticated email
// GET /api/alerts
func (h *Handlers) ListMyAlerts(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	alerts, err := h.service.ListAlertsByEmail(c.Context(), authContext.Email)
	if err != nil {
		return err
	}

	return c.JSON(alerts)
}

// DeleteAlert removes one of the authenticated user's alerts
// DELETE /api/alerts/:id
func (h *Handlers) DeleteAlert(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	alertID := kernel.AlertID(c.Params("id"))
	if alertID.IsEmpty() {
		return alert.ErrAlertNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteOwnAlert(c.Context(), alertID, authContext.Email); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers all alert routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/alerts")

	// Anyone can subscribe, no account needed
	api.Post("/", handlers.CreateAlert)

	api.Get("/",
		authMiddleware.RequireAuth(),
		handlers.ListMyAlerts,
	)

	api.Delete("/:id",
		authMiddleware.RequireAuth(),
		handlers.DeleteAlert,
	)
}
