package applicationapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redlaboral/portal/marketplace/application"
	"github.com/redlaboral/portal/marketplace/application/applicationsrv"
	"github.com/redlaboral/portal/pkg/iam/auth"
	"github.com/redlaboral/portal/pkg/kernel"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Apply creates an application to an offer
// POST /api/applications/offers/:offerId
func (h *Handlers) Apply(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	offerID := kernel.OfferID(c.Params("offerId"))
	if offerID.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("offer_id", "missing or empty")
	}

	created, err := h.service.Apply(c.Context(), authContext.UserID, offerID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListMyApplications lists the caller's applications
// GET /api/applications/mine
func (h *Handlers) ListMyApplications(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	applications, err := h.service.ListMyApplications(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(applications)
}

// ListApplicants lists the applications for an owned offer
// GET /api/applications/offers/:offerId
func (h *Handlers) ListApplicants(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	offerID := kernel.OfferID(c.Params("offerId"))
	if offerID.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("offer_id", "missing or empty")
	}

	applicants, err := h.service.ListApplicants(c.Context(), authContext.UserID, offerID)
	if err != nil {
		return err
	}

	return c.JSON(applicants)
}

// UpdateStatus moves an application through the funnel
// PUT /api/applications/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidStatus().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateStatus(c.Context(), authContext.UserID, applicationID, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/applications")

	api.Post("/offers/:offerId",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleCandidate),
		handlers.Apply,
	)
	api.Get("/mine",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleCandidate),
		handlers.ListMyApplications,
	)
	api.Get("/offers/:offerId",
		authMiddleware.RequireAuth(),
		handlers.ListApplicants,
	)
	api.Put("/:id/status",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireScope(auth.ScopeApplicationsManage),
		handlers.UpdateStatus,
	)
}
