package companyapi

import (
	"context"
	"io"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/redlaboral/portal/marketplace/company"
	"github.com/redlaboral/portal/marketplace/company/companysrv"
	"github.com/redlaboral/portal/pkg/iam/auth"
	"github.com/redlaboral/portal/pkg/kernel"
)

// Handlers provides HTTP handlers for company operations
type Handlers struct {
	service *companysrv.CompanyService
}

// NewHandlers creates a new company handlers instance
func NewHandlers(service *companysrv.CompanyService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// UpsertProfile creates or updates the caller's company profile
// PUT /api/companies/me
func (h *Handlers) UpsertProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req company.UpsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrMissingName().WithDetail("parse_error", err.Error())
	}

	profile, err := h.service.UpsertProfile(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// GetOwnProfile returns the caller's company profile
// GET /api/companies/me
func (h *Handlers) GetOwnProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	profile, err := h.service.GetOwnProfile(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// UploadLogo stores the caller's company logo
// POST /api/companies/me/logo
func (h *Handlers) UploadLogo(c *fiber.Ctx) error {
	return h.uploadImage(c, h.service.UploadLogo)
}

// UploadBanner stores the caller's company banner
// POST /api/companies/me/banner
func (h *Handlers) UploadBanner(c *fiber.Ctx) error {
	return h.uploadImage(c, h.service.UploadBanner)
}

func (h *Handlers) uploadImage(
	c *fiber.Ctx,
	upload func(ctx context.Context, userID kernel.UserID, data []byte, contentType string) (*company.CompanyResponse, error),
) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	file, err := c.FormFile("image")
	if err != nil {
		return company.ErrMissingName().WithDetail("image", "file is required")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	profile, err := upload(c.Context(), authContext.UserID, data, file.Header.Get("Content-Type"))
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// ListCompanies lists public company profiles
// GET /api/companies
func (h *Handlers) ListCompanies(c *fiber.Ctx) error {
	companies, err := h.service.ListCompanies(c.Context(), c.Query("q"))
	if err != nil {
		return err
	}

	return c.JSON(companies)
}

// ListFeatured lists the featured companies carousel
// GET /api/companies/featured
func (h *Handlers) ListFeatured(c *fiber.Ctx) error {
	companies, err := h.service.ListFeatured(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(companies)
}

// GetProfilePage returns the public page for a company name
// GET /api/companies/by-name/:name
func (h *Handlers) GetProfilePage(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return company.ErrCompanyNotFound().WithDetail("name", "missing or empty")
	}

	page, err := h.service.GetProfilePage(c.Context(), name)
	if err != nil {
		return err
	}

	return c.JSON(page)
}

// UpgradeToPremium simulates a successful plan checkout
// POST /api/companies/me/premium
func (h *Handlers) UpgradeToPremium(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	profile, err := h.service.UpgradeToPremium(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// SubmitRating stores a visitor review for moderation
// POST /api/companies/by-name/:name/ratings
func (h *Handlers) SubmitRating(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return company.ErrCompanyNotFound().WithDetail("name", "missing or empty")
	}

	var req company.SubmitRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrInvalidStars().WithDetail("parse_error", err.Error())
	}

	if err := h.service.SubmitRating(c.Context(), name, req); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusCreated)
}

// ListPendingRatings lists ratings awaiting moderation
// GET /api/companies/ratings/pending
func (h *Handlers) ListPendingRatings(c *fiber.Ctx) error {
	ratings, err := h.service.ListPendingRatings(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(ratings)
}

// ApproveRating publishes a pending rating
// POST /api/companies/ratings/:id/approve
func (h *Handlers) ApproveRating(c *fiber.Ctx) error {
	ratingID := kernel.RatingID(c.Params("id"))
	if ratingID.IsEmpty() {
		return company.ErrRatingNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.ApproveRating(c.Context(), ratingID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers all company routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/companies")

	// Public browsing
	api.Get("/", handlers.ListCompanies)
	api.Get("/featured", handlers.ListFeatured)
	api.Get("/by-name/:name", handlers.GetProfilePage)

	// Any visitor can review a company; moderation gates visibility
	api.Post("/by-name/:name/ratings", handlers.SubmitRating)

	// Company self-service
	api.Get("/me",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleCompany),
		handlers.GetOwnProfile,
	)
	api.Put("/me",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleCompany),
		handlers.UpsertProfile,
	)
	api.Post("/me/logo",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleCompany),
		handlers.UploadLogo,
	)
	api.Post("/me/banner",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleCompany),
		handlers.UploadBanner,
	)
	api.Post("/me/premium",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleCompany),
		handlers.UpgradeToPremium,
	)

	// Moderation
	api.Get("/ratings/pending",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireScope(auth.ScopeRatingsApprove),
		handlers.ListPendingRatings,
	)
	api.Post("/ratings/:id/approve",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireScope(auth.ScopeRatingsApprove),
		handlers.ApproveRating,
	)
}
