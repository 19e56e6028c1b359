package newsletterapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redlaboral/portal/marketplace/newsletter"
	"github.com/redlaboral/portal/marketplace/newsletter/newslettersrv"
	"github.com/redlaboral/portal/pkg/iam/auth"
)

// Handlers provides HTTP handlers for newsletter operations
type Handlers struct {
	service *newslettersrv.NewsletterService
}

// NewHandlers creates a new newsletter handlers instance
func NewHandlers(service *newslettersrv.NewsletterService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Subscribe adds an email to the newsletter list. Open to anonymous
// visitors.
// POST /api/newsletter
func (h *Handlers) Subscribe(c *fiber.Ctx) error {
	var req newsletter.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return newsletter.ErrInvalidEmail().WithDetail("parse_error", err.Error())
	}

	subscribed, err := h.service.Subscribe(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(subscribed)
}

// Unsubscribe removes an email from the newsletter list
// DELETE /api/newsletter
func (h *Handlers) Unsubscribe(c *fiber.Ctx) error {
	var req newsletter.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return newsletter.ErrInvalidEmail().WithDetail("parse_error", err.Error())
	}

	if err := h.service.Unsubscribe(c.Context(), req.Email); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListSubscribers lists the full subscriber list
// GET /api/newsletter/subscribers
func (h *Handlers) ListSubscribers(c *fiber.Ctx) error {
	subscribers, err := h.service.ListSubscribers(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(subscribers)
}

// RegisterRoutes registers all newsletter routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/newsletter")

	// Anyone can join or leave, no account needed
	api.Post("/", handlers.Subscribe)
	api.Delete("/", handlers.Unsubscribe)

	api.Get("/subscribers",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleAdmin),
		handlers.ListSubscribers,
	)
}
