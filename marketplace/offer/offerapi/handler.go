package offerapi

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/redlaboral/portal/marketplace/offer"
	"github.com/redlaboral/portal/marketplace/offer/offersrv"
	"github.com/redlaboral/portal/pkg/iam/auth"
	"github.com/redlaboral/portal/pkg/kernel"
)

const featuredCarouselSize = 5

// Handlers provides HTTP handlers for offer operations
type Handlers struct {
	service *offersrv.OfferService
}

// NewHandlers creates a new offer handlers instance
func NewHandlers(service *offersrv.OfferService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListOffers lists published offers with filters
// GET /api/offers
func (h *Handlers) ListOffers(c *fiber.Ctx) error {
	result, err := h.service.ListOffers(c.Context(), searchRequestFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ListFeatured lists the featured offer carousel
// GET /api/offers/featured
func (h *Handlers) ListFeatured(c *fiber.Ctx) error {
	offers, err := h.service.ListFeaturedOffers(c.Context(), featuredCarouselSize)
	if err != nil {
		return err
	}

	return c.JSON(offers)
}

// ListInternships lists published internships
// GET /api/offers/internships
func (h *Handlers) ListInternships(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))

	result, err := h.service.ListInternships(
		c.Context(),
		kernel.Region(c.Query("region")),
		kernel.PaginationOptions{Page: page},
	)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// RegionStats returns the published offer count per region
// GET /api/offers/stats/regions
func (h *Handlers) RegionStats(c *fiber.Ctx) error {
	stats, err := h.service.RegionStats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// GetOfferDetail returns the detail page for an offer
// GET /api/offers/:id
func (h *Handlers) GetOfferDetail(c *fiber.Ctx) error {
	offerID := kernel.OfferID(c.Params("id"))
	if offerID.IsEmpty() {
		return offer.ErrOfferNotFound().WithDetail("id", "missing or empty")
	}

	var viewer kernel.UserID
	if authContext, ok := auth.GetAuthContext(c); ok {
		viewer = authContext.UserID
	}

	detail, err := h.service.GetOfferDetail(c.Context(), offerID, viewer)
	if err != nil {
		return err
	}

	return c.JSON(detail)
}

// CreateOffer stores a new draft offer
// POST /api/offers
func (h *Handlers) CreateOffer(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req offer.CreateOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return offer.ErrMissingTitle().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateOffer(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// PublishOffer makes an owned draft visible
// POST /api/offers/:id/publish
func (h *Handlers) PublishOffer(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	offerID := kernel.OfferID(c.Params("id"))
	if offerID.IsEmpty() {
		return offer.ErrOfferNotFound().WithDetail("id", "missing or empty")
	}

	published, err := h.service.PublishOffer(c.Context(), authContext.UserID, offerID)
	if err != nil {
		return err
	}

	return c.JSON(published)
}

// ListMyOffers lists the caller's offers with management tokens
// GET /api/offers/mine
func (h *Handlers) ListMyOffers(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	offers, err := h.service.ListMyOffers(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(offers)
}

// GetOfferByToken returns an offer through its management token
// GET /api/offers/manage/:token
func (h *Handlers) GetOfferByToken(c *fiber.Ctx) error {
	managed, err := h.service.GetOfferByToken(c.Context(), c.Params("token"))
	if err != nil {
		return err
	}

	return c.JSON(managed)
}

// UpdateOfferByToken edits an offer through its management token
// PUT /api/offers/manage/:token
func (h *Handlers) UpdateOfferByToken(c *fiber.Ctx) error {
	var req offer.UpdateOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return offer.ErrMissingTitle().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateOfferByToken(c.Context(), c.Params("token"), req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// UploadImageByToken stores the offer banner through its management token
// POST /api/offers/manage/:token/image
func (h *Handlers) UploadImageByToken(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return offer.ErrMissingTitle().WithDetail("image", "file is required")
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

	updated, err := h.service.UploadImageByToken(c.Context(), c.Params("token"), data, file.Header.Get("Content-Type"))
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// DeleteOfferByToken removes an offer through its management token
// DELETE /api/offers/manage/:token
func (h *Handlers) DeleteOfferByToken(c *fiber.Ctx) error {
	if err := h.service.DeleteOfferByToken(c.Context(), c.Params("token")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleFavorite bookmarks or unbookmarks an offer
// POST /api/offers/:id/favorite
func (h *Handlers) ToggleFavorite(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	offerID := kernel.OfferID(c.Params("id"))
	if offerID.IsEmpty() {
		return offer.ErrOfferNotFound().WithDetail("id", "missing or empty")
	}

	saved, err := h.service.ToggleFavorite(c.Context(), authContext.UserID, offerID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"saved": saved})
}

// ListFavorites lists the caller's bookmarked offers
// GET /api/offers/favorites
func (h *Handlers) ListFavorites(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	offers, err := h.service.ListFavoriteOffers(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(offers)
}

// FeatureOffer marks an offer as featured
// POST /api/offers/:id/feature
func (h *Handlers) FeatureOffer(c *fiber.Ctx) error {
	offerID := kernel.OfferID(c.Params("id"))
	if offerID.IsEmpty() {
		return offer.ErrOfferNotFound().WithDetail("id", "missing or empty")
	}

	var req struct {
		Featured bool `json:"featured"`
	}
	if err := c.BodyParser(&req); err != nil {
		return offer.ErrOfferNotFound().WithDetail("parse_error", err.Error())
	}

	featured, err := h.service.FeatureOffer(c.Context(), offerID, req.Featured)
	if err != nil {
		return err
	}

	return c.JSON(featured)
}

// AskQuestion posts a public question on an offer
// POST /api/offers/:id/questions
func (h *Handlers) AskQuestion(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	offerID := kernel.OfferID(c.Params("id"))
	if offerID.IsEmpty() {
		return offer.ErrOfferNotFound().WithDetail("id", "missing or empty")
	}

	var req offer.AskQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return offer.ErrEmptyQuestion().WithDetail("parse_error", err.Error())
	}

	question, err := h.service.AskQuestion(c.Context(), authContext.UserID, offerID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(question)
}

// ListQuestions lists an offer's public Q&A thread
// GET /api/offers/:id/questions
func (h *Handlers) ListQuestions(c *fiber.Ctx) error {
	offerID := kernel.OfferID(c.Params("id"))
	if offerID.IsEmpty() {
		return offer.ErrOfferNotFound().WithDetail("id", "missing or empty")
	}

	questions, err := h.service.ListOfferQuestions(c.Context(), offerID)
	if err != nil {
		return err
	}

	return c.JSON(questions)
}

// AnswerQuestion records the poster's reply through the management token
// POST /api/offers/manage/:token/questions/:questionId/answer
func (h *Handlers) AnswerQuestion(c *fiber.Ctx) error {
	questionID := kernel.QuestionID(c.Params("questionId"))
	if questionID.IsEmpty() {
		return offer.ErrQuestionNotFound().WithDetail("id", "missing or empty")
	}

	var req offer.AnswerQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return offer.ErrEmptyAnswer().WithDetail("parse_error", err.Error())
	}

	answered, err := h.service.AnswerQuestionByToken(c.Context(), c.Params("token"), questionID, req)
	if err != nil {
		return err
	}

	return c.JSON(answered)
}

// ReportOffer files an anonymous flag on an offer
// POST /api/offers/:id/report
func (h *Handlers) ReportOffer(c *fiber.Ctx) error {
	offerID := kernel.OfferID(c.Params("id"))
	if offerID.IsEmpty() {
		return offer.ErrOfferNotFound().WithDetail("id", "missing or empty")
	}

	var req offer.ReportOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return offer.ErrInvalidReason().WithDetail("parse_error", err.Error())
	}

	if err := h.service.ReportOffer(c.Context(), offerID, req); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusAccepted)
}

// ListReports lists the staff review queue
// GET /api/offers/reports
func (h *Handlers) ListReports(c *fiber.Ctx) error {
	reports, err := h.service.ListReports(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(reports)
}

// RegisterRoutes registers all offer routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/offers")

	// Public browsing. Fixed paths are registered before /:id.
	api.Get("/", handlers.ListOffers)
	api.Get("/featured", handlers.ListFeatured)
	api.Get("/internships", handlers.ListInternships)
	api.Get("/stats/regions", handlers.RegionStats)

	// Personal listings
	api.Get("/mine",
		authMiddleware.RequireAuth(),
		handlers.ListMyOffers,
	)
	api.Get("/favorites",
		authMiddleware.RequireAuth(),
		handlers.ListFavorites,
	)

	// Staff review queue
	api.Get("/reports",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(auth.RoleAdmin),
		handlers.ListReports,
	)

	// Token-based management, for employers without an account session
	api.Get("/manage/:token", handlers.GetOfferByToken)
	api.Put("/manage/:token", handlers.UpdateOfferByToken)
	api.Post("/manage/:token/image", handlers.UploadImageByToken)
	api.Post("/manage/:token/questions/:questionId/answer", handlers.AnswerQuestion)
	api.Delete("/manage/:token", handlers.DeleteOfferByToken)

	// Offer lifecycle
	api.Post("/",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireScope(auth.ScopeOffersWrite),
		handlers.CreateOffer,
	)
	api.Post("/:id/publish",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireScope(auth.ScopeOffersWrite),
		handlers.PublishOffer,
	)
	api.Post("/:id/favorite",
		authMiddleware.RequireAuth(),
		handlers.ToggleFavorite,
	)

	// Public Q&A and reporting on the detail page
	api.Get("/:id/questions", handlers.ListQuestions)
	api.Post("/:id/questions",
		authMiddleware.RequireAuth(),
		handlers.AskQuestion,
	)
	api.Post("/:id/report", handlers.ReportOffer)

	// Staff curation
	api.Post("/:id/feature",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireScope(auth.ScopeOffersFeature),
		handlers.FeatureOffer,
	)

	// Detail last so fixed paths keep precedence
	api.Get("/:id", authMiddleware.OptionalAuth(), handlers.GetOfferDetail)
}

func searchRequestFrom(c *fiber.Ctx) offer.SearchOffersRequest {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	days, _ := strconv.Atoi(c.Query("days", "0"))

	req := offer.SearchOffersRequest{
		Query:      c.Query("q"),
		Region:     kernel.Region(c.Query("region")),
		Type:       kernel.JobType(c.Query("type")),
		MaxAgeDays: days,
		Pagination: kernel.PaginationOptions{Page: page},
	}

	if raw := c.Query("min_salary"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			salary := kernel.Salary(value)
			req.MinSalary = &salary
		}
	}

	return req
}
