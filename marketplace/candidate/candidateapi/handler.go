package candidateapi

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/redlaboral/portal/marketplace/candidate"
	"github.com/redlaboral/portal/marketplace/candidate/candidatesrv"
	"github.com/redlaboral/portal/pkg/iam/auth"
	"github.com/redlaboral/portal/pkg/kernel"
)

// Handlers provides HTTP handlers for candidate profile operations
type Handlers struct {
	service *candidatesrv.CandidateService
}

// NewHandlers creates a new candidate handlers instance
func NewHandlers(service *candidatesrv.CandidateService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// SearchCandidates lists published profiles
// GET /api/candidates
func (h *Handlers) SearchCandidates(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))

	result, err := h.service.SearchCandidates(c.Context(), candidate.SearchCandidatesRequest{
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

// GetCandidate returns a single profile. Contact details depend on who
// is asking.
// GET /api/candidates/:id
func (h *Handlers) GetCandidate(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	profile, err := h.service.GetCandidate(c.Context(), candidateID, viewerFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// GetCVPreview serves the first page of the resume as an image
// GET /api/candidates/:id/cv-preview
func (h *Handlers) GetCVPreview(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	preview, err := h.service.GetCVPreview(c.Context(), candidateID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(preview)
}

// DownloadCV serves the resume file to authorized viewers
// GET /api/candidates/:id/cv
func (h *Handlers) DownloadCV(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	content, err := h.service.DownloadCV(c.Context(), candidateID, viewerFrom(c))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(content)
}

// GetOwnProfile returns the caller's profile
// GET /api/candidates/me
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

// UpsertProfile creates or updates the caller's profile
// PUT /api/candidates/me
func (h *Handlers) UpsertProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req candidate.UpsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrMissingHeadline().WithDetail("parse_error", err.Error())
	}

	profile, err := h.service.UpsertProfile(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// DeleteProfile removes the caller's profile
// DELETE /api/candidates/me
func (h *Handlers) DeleteProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	if err := h.service.DeleteProfile(c.Context(), authContext.UserID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadPhoto stores the caller's profile photo
// POST /api/candidates/me/photo
func (h *Handlers) UploadPhoto(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	filename, contentType, data, err := readUpload(c, "photo")
	if err != nil {
		return err
	}

	profile, err := h.service.UploadPhoto(c.Context(), authContext.UserID, filename, contentType, data)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// UploadCV stores the caller's resume
// POST /api/candidates/me/cv
func (h *Handlers) UploadCV(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	filename, _, data, err := readUpload(c, "cv")
	if err != nil {
		return err
	}

	profile, err := h.service.UploadCV(c.Context(), authContext.UserID, filename, data)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// SuggestProfile prefills profile fields from the uploaded resume
// GET /api/candidates/me/cv/suggestion
func (h *Handlers) SuggestProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	suggestion, err := h.service.SuggestProfileFromCV(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(suggestion)
}

func readUpload(c *fiber.Ctx, field string) (string, string, []byte, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", "", nil, candidate.ErrMissingFile().WithDetail("field", field)
	}

	src, err := file.Open()
	if err != nil {
		return "", "", nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", "", nil, err
	}

	return file.Filename, file.Header.Get("Content-Type"), data, nil
}

func viewerFrom(c *fiber.Ctx) candidatesrv.Viewer {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidatesrv.Viewer{}
	}
	return candidatesrv.Viewer{
		UserID: authContext.UserID,
		Role:   authContext.Role,
	}
}

// RegisterRoutes registers all candidate routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/candidates")

	// Candidate self-service. Registered before /:id so "me" never
	// resolves as a profile ID.
	api.Get("/me",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleCandidate),
		handlers.GetOwnProfile,
	)
	api.Put("/me",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleCandidate),
		handlers.UpsertProfile,
	)
	api.Delete("/me",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleCandidate),
		handlers.DeleteProfile,
	)
	api.Post("/me/photo",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleCandidate),
		handlers.UploadPhoto,
	)
	api.Post("/me/cv",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleCandidate),
		handlers.UploadCV,
	)
	api.Get("/me/cv/suggestion",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleCandidate),
		handlers.SuggestProfile,
	)

	// Public browsing
	api.Get("/", handlers.SearchCandidates)
	api.Get("/:id", authMiddleware.OptionalAuth(), handlers.GetCandidate)
	api.Get("/:id/cv-preview", handlers.GetCVPreview)
	api.Get("/:id/cv",
		authMiddleware.RequireAuth(),
		handlers.DownloadCV,
	)
}
