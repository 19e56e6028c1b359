package serviceapi

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/redlaboral/portal/marketplace/service"
	"github.com/redlaboral/portal/marketplace/service/servicesrv"
	"github.com/redlaboral/portal/pkg/iam/auth"
	"github.com/redlaboral/portal/pkg/kernel"
)

// Handlers provides HTTP handlers for freelance service listings
type Handlers struct {
	service *servicesrv.ServiceService
}

// NewHandlers creates a new service handlers instance
func NewHandlers(service *servicesrv.ServiceService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// SearchServices lists published listings
// GET /api/services
func (h *Handlers) SearchServices(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))

	result, err := h.service.SearchServices(c.Context(), service.SearchServicesRequest{
		Query:    c.Query("q"),
		Industry: kernel.Industry(c.Query("industry")),
		Region:   kernel.Region(c.Query("region")),
		Pagination: kernel.PaginationOptions{
			Page: page,
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// GetService returns a single listing
// GET /api/services/:id
func (h *Handlers) GetService(c *fiber.Ctx) error {
	serviceID := kernel.ServiceID(c.Params("id"))
	if serviceID.IsEmpty() {
		return service.ErrServiceNotFound().WithDetail("id", "missing or empty")
	}

	listing, err := h.service.GetService(c.Context(), serviceID)
	if err != nil {
		return err
	}

	return c.JSON(listing)
}

// ListMyServices returns the caller's listings
// GET /api/services/mine
func (h *Handlers) ListMyServices(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	listings, err := h.service.ListMyServices(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(listings)
}

// CreateService publishes a new listing owned by the caller
// POST /api/services
func (h *Handlers) CreateService(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req service.CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ErrMissingTitle().WithDetail("parse_error", err.Error())
	}

	listing, err := h.service.CreateService(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(listing)
}

// UpdateService edits one of the caller's listings
// PUT /api/services/:id
func (h *Handlers) UpdateService(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	serviceID := kernel.ServiceID(c.Params("id"))
	if serviceID.IsEmpty() {
		return service.ErrServiceNotFound().WithDetail("id", "missing or empty")
	}

	var req service.UpdateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ErrMissingTitle().WithDetail("parse_error", err.Error())
	}

	listing, err := h.service.UpdateService(c.Context(), authContext.UserID, serviceID, req)
	if err != nil {
		return err
	}

	return c.JSON(listing)
}

// DeleteService removes one of the caller's listings
// DELETE /api/services/:id
func (h *Handlers) DeleteService(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	serviceID := kernel.ServiceID(c.Params("id"))
	if serviceID.IsEmpty() {
		return service.ErrServiceNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteService(c.Context(), authContext.UserID, serviceID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadImage stores the listing's showcase image
// POST /api/services/:id/image
func (h *Handlers) UploadImage(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	serviceID := kernel.ServiceID(c.Params("id"))
	if serviceID.IsEmpty() {
		return service.ErrServiceNotFound().WithDetail("id", "missing or empty")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return service.ErrMissingFile().WithDetail("field", "image")
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

	listing, err := h.service.UploadImage(c.Context(), authContext.UserID, serviceID, data, file.Header.Get("Content-Type"))
	if err != nil {
		return err
	}

	return c.JSON(listing)
}

// RegisterRoutes registers all service listing routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/services")

	// Registered before /:id so "mine" never resolves as a listing ID.
	api.Get("/mine",
		authMiddleware.RequireAuth(),
		handlers.ListMyServices,
	)

	// Public browsing
	api.Get("/", handlers.SearchServices)
	api.Get("/:id", handlers.GetService)

	// Owner operations
	api.Post("/",
		authMiddleware.RequireAuth(),
		handlers.CreateService,
	)
	api.Put("/:id",
		authMiddleware.RequireAuth(),
		handlers.UpdateService,
	)
	api.Delete("/:id",
		authMiddleware.RequireAuth(),
		handlers.DeleteService,
	)
	api.Post("/:id/image",
		authMiddleware.RequireAuth(),
		handlers.UploadImage,
	)
}
