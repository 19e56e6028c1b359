package accountapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redlaboral/portal/marketplace/account"
	"github.com/redlaboral/portal/marketplace/account/accountsrv"
	"github.com/redlaboral/portal/pkg/iam/auth"
)

// Handlers provides HTTP handlers for account operations
type Handlers struct {
	service *accountsrv.AccountService
}

// NewHandlers creates a new account handlers instance
func NewHandlers(service *accountsrv.AccountService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Register creates a new account
// POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req account.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return account.ErrInvalidEmail().WithDetail("parse_error", err.Error())
	}

	response, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// Login authenticates with email and password
// POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req account.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return auth.ErrInvalidCredentials().WithDetail("parse_error", err.Error())
	}

	response, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// Me returns the authenticated account
// GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	user, err := h.service.GetUser(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

// DeleteAccount removes the authenticated account and everything it owns
// DELETE /api/auth/me
func (h *Handlers) DeleteAccount(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	if err := h.service.DeleteAccount(c.Context(), authContext.UserID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers all account routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/auth")

	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)

	api.Get("/me",
		authMiddleware.RequireAuth(),
		handlers.Me,
	)

	api.Delete("/me",
		authMiddleware.RequireAuth(),
		handlers.DeleteAccount,
	)
}
