package offersrv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redlaboral/portal/marketplace/alert"
	"github.com/redlaboral/portal/marketplace/alert/alertsrv"
	"github.com/redlaboral/portal/marketplace/candidate"
	"github.com/redlaboral/portal/marketplace/matching"
	"github.com/redlaboral/portal/marketplace/notification/notificationsrv"
	"github.com/redlaboral/portal/marketplace/offer"
	"github.com/redlaboral/portal/pkg/errx"
	"github.com/redlaboral/portal/pkg/fsx"
	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/redlaboral/portal/pkg/logx"
)

const similarOffersLimit = 3

// Embedder produces semantic search vectors for offer text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// OfferService manages the offer lifecycle, browsing, favorites and
// the detail page with its compatibility score.
type OfferService struct {
	repo          offer.Repository
	visits        offer.VisitCounter
	favorites     offer.FavoriteRepository
	questions     offer.QuestionRepository
	reports       offer.ReportRepository
	candidates    candidate.Repository
	alerts        *alertsrv.AlertService
	notifications *notificationsrv.NotificationService
	embedder      Embedder
	files         fsx.FileSystem
}

// NewOfferService creates a new offer service instance
func NewOfferService(
	repo offer.Repository,
	visits offer.VisitCounter,
	favorites offer.FavoriteRepository,
	questions offer.QuestionRepository,
	reports offer.ReportRepository,
	candidates candidate.Repository,
	alerts *alertsrv.AlertService,
	notifications *notificationsrv.NotificationService,
	embedder Embedder,
	files fsx.FileSystem,
) *OfferService {
	return &OfferService{
		repo:          repo,
		visits:        visits,
		favorites:     favorites,
		questions:     questions,
		reports:       reports,
		candidates:    candidates,
		alerts:        alerts,
		notifications: notifications,
		embedder:      embedder,
		files:         files,
	}
}

// CreateOffer stores a new draft offer owned by userID
func (s *OfferService) CreateOffer(ctx context.Context, userID kernel.UserID, req offer.CreateOfferRequest) (*offer.OwnedOfferResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, offer.ErrMissingTitle()
	}
	if !req.Region.IsValid() {
		return nil, offer.ErrInvalidRegion().WithDetail("region", string(req.Region))
	}
	if !req.Type.IsValid() {
		return nil, offer.ErrInvalidType().WithDetail("type", string(req.Type))
	}

	modality := req.Modality
	if modality == "" {
		modality = offer.ModalityOnSite
	}
	if !modality.IsValid() {
		return nil, offer.ErrInvalidType().WithDetail("modality", string(modality))
	}

	experience := req.Experience
	if experience == "" {
		experience = kernel.ExperienceNone
	}

	now := time.Now()
	newOffer := &offer.Offer{
		ID:              kernel.NewOfferID(uuid.NewString()),
		Token:           uuid.NewString(),
		UserID:          userID,
		Title:           strings.TrimSpace(req.Title),
		CompanyName:     req.CompanyName,
		Type:            req.Type,
		Duration:        req.Duration,
		Modality:        modality,
		Region:          req.Region,
		Experience:      experience,
		Salary:          req.Salary,
		Phone:           req.Phone,
		WhatsappEnabled: req.WhatsappEnabled,
		ContactEmail:    req.ContactEmail,
		Tags:            req.Tags,
		Description:     req.Description,
		CloseDate:       req.CloseDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, newOffer); err != nil {
		return nil, err
	}

	s.refreshEmbedding(ctx, newOffer)

	return s.ownedResponse(newOffer), nil
}

// PublishOffer makes an owned offer visible and fans out alert emails.
// The notification is fire-and-forget: the publish result never
// depends on it.
func (s *OfferService) PublishOffer(ctx context.Context, userID kernel.UserID, id kernel.OfferID) (*offer.OwnedOfferResponse, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !stored.IsOwnedBy(userID) {
		return nil, offer.ErrUnauthorizedOffer()
	}

	if err := stored.Publish(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, stored.ID, stored); err != nil {
		return nil, err
	}

	s.alerts.NotifyOfferPublished(ctx, alert.OfferPublished{
		ID:     stored.ID,
		Title:  stored.Title,
		Region: stored.Region,
	})

	return s.ownedResponse(stored), nil
}

// GetOfferByToken retrieves an offer through its management token
func (s *OfferService) GetOfferByToken(ctx context.Context, token string) (*offer.OwnedOfferResponse, error) {
	stored, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.ownedResponse(stored), nil
}

// UpdateOfferByToken edits an offer through its management token
func (s *OfferService) UpdateOfferByToken(ctx context.Context, token string, req offer.UpdateOfferRequest) (*offer.OwnedOfferResponse, error) {
	stored, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	applyUpdate(stored, req)
	stored.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, stored.ID, stored); err != nil {
		return nil, err
	}

	s.refreshEmbedding(ctx, stored)

	return s.ownedResponse(stored), nil
}

// UploadImageByToken stores the offer banner image through its
// management token
func (s *OfferService) UploadImageByToken(ctx context.Context, token string, data []byte, contentType string) (*offer.OwnedOfferResponse, error) {
	stored, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("offers/%s/images/%s", stored.ID.String(), uuid.NewString())
	url, err := s.files.WriteFile(ctx, path, data, contentType)
	if err != nil {
		return nil, errx.Wrap(err, "failed to store offer image", errx.TypeExternal)
	}

	stored.ImageURL = &url
	stored.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, stored.ID, stored); err != nil {
		return nil, err
	}

	return s.ownedResponse(stored), nil
}

// DeleteOfferByToken removes an offer through its management token
func (s *OfferService) DeleteOfferByToken(ctx context.Context, token string) error {
	stored, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, stored.ID)
}

// ListOffers retrieves the public listing with filters applied
func (s *OfferService) ListOffers(ctx context.Context, req offer.SearchOffersRequest) (*kernel.Paginated[offer.OfferResponse], error) {
	page, err := s.repo.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.toResponsePage(page), nil
}

// ListFeaturedOffers retrieves the featured carousel
func (s *OfferService) ListFeaturedOffers(ctx context.Context, limit int) ([]offer.OfferResponse, error) {
	offers, err := s.repo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.toResponses(offers), nil
}

// ListInternships retrieves published internship offers, optionally
// filtered by region
func (s *OfferService) ListInternships(ctx context.Context, region kernel.Region, pagination kernel.PaginationOptions) (*kernel.Paginated[offer.OfferResponse], error) {
	return s.ListOffers(ctx, offer.SearchOffersRequest{
		Type:       kernel.JobTypeInternship,
		Region:     region,
		Pagination: pagination,
	})
}

// ListMyOffers retrieves the caller's offers with management tokens
func (s *OfferService) ListMyOffers(ctx context.Context, userID kernel.UserID) ([]offer.OwnedOfferResponse, error) {
	offers, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]offer.OwnedOfferResponse, 0, len(offers))
	for _, o := range offers {
		responses = append(responses, *s.ownedResponse(o))
	}
	return responses, nil
}

// GetOfferDetail assembles the detail page: counts the visit, loads
// similar offers (semantic first, same type as fallback) and, when the
// viewer has a candidate profile, the compatibility result. A viewer
// without a profile gets no match block, not a zero score.
func (s *OfferService) GetOfferDetail(ctx context.Context, id kernel.OfferID, viewer kernel.UserID) (*offer.OfferDetailResponse, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	visits, err := s.visits.Increment(ctx, id)
	if err != nil {
		logx.Warnf("visit counter for offer %s failed: %v", id.String(), err)
	}

	detail := &offer.OfferDetailResponse{
		Offer:   stored.ToResponse(visits),
		Similar: s.similarOffers(ctx, stored),
	}

	if !viewer.IsEmpty() {
		detail.Match = s.matchForViewer(ctx, stored, viewer)
	}

	return detail, nil
}

// ToggleFavorite bookmarks an offer, or removes the bookmark when it
// already exists. Returns true when the offer ended up saved.
func (s *OfferService) ToggleFavorite(ctx context.Context, userID kernel.UserID, offerID kernel.OfferID) (bool, error) {
	if _, err := s.repo.GetByID(ctx, offerID); err != nil {
		return false, err
	}

	exists, err := s.favorites.Exists(ctx, userID, offerID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.favorites.Remove(ctx, userID, offerID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.favorites.Add(ctx, &offer.Favorite{
		UserID:    userID,
		OfferID:   offerID,
		CreatedAt: time.Now(),
	}); err != nil {
		return false, err
	}
	return true, nil
}

// ListFavoriteOffers retrieves the offers a user bookmarked
func (s *OfferService) ListFavoriteOffers(ctx context.Context, userID kernel.UserID) ([]offer.OfferResponse, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]offer.OfferResponse, 0, len(favorites))
	for _, f := range favorites {
		stored, err := s.repo.GetByID(ctx, f.OfferID)
		if err != nil {
			if errx.IsType(err, errx.TypeNotFound) {
				continue
			}
			return nil, err
		}
		responses = append(responses, stored.ToResponse(0))
	}
	return responses, nil
}

// FavoriteOfferIDs retrieves the IDs a user bookmarked, for marking
// hearts on listings
func (s *OfferService) FavoriteOfferIDs(ctx context.Context, userID kernel.UserID) ([]kernel.OfferID, error) {
	return s.favorites.ListOfferIDsByUser(ctx, userID)
}

// RegionStats aggregates published offers per region with display names
func (s *OfferService) RegionStats(ctx context.Context) ([]offer.RegionCount, error) {
	counts, err := s.repo.CountPublishedByRegion(ctx)
	if err != nil {
		return nil, err
	}

	for i := range counts {
		counts[i].Name = counts[i].Region.DisplayName()
	}
	return counts, nil
}

// FeatureOffer marks an offer as featured so it floats to the top of
// listings and the carousel
func (s *OfferService) FeatureOffer(ctx context.Context, id kernel.OfferID, featured bool) (*offer.OfferResponse, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stored.Featured = featured
	stored.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, stored.ID, stored); err != nil {
		return nil, err
	}

	resp := stored.ToResponse(0)
	return &resp, nil
}

// ListByCompanyName retrieves published offers mentioning a company
func (s *OfferService) ListByCompanyName(ctx context.Context, name string) ([]offer.OfferResponse, error) {
	offers, err := s.repo.ListPublishedByCompanyName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.toResponses(offers), nil
}

// AskQuestion posts a public question on an offer and notifies the
// poster. Asking on your own offer stores the question without the
// notification.
func (s *OfferService) AskQuestion(ctx context.Context, userID kernel.UserID, offerID kernel.OfferID, req offer.AskQuestionRequest) (*offer.QuestionResponse, error) {
	text := strings.TrimSpace(req.Question)
	if text == "" {
		return nil, offer.ErrEmptyQuestion()
	}

	stored, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	question := &offer.Question{
		ID:        kernel.NewQuestionID(uuid.NewString()),
		OfferID:   stored.ID,
		UserID:    userID,
		Question:  text,
		CreatedAt: time.Now(),
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}

	if !stored.IsOwnedBy(userID) {
		s.notifications.NotifyQuietly(ctx, stored.UserID,
			fmt.Sprintf("❓ Nueva pregunta en %s", stored.Title),
			fmt.Sprintf("/oferta/%s/", stored.ID.String()),
		)
	}

	resp := question.ToResponse()
	return &resp, nil
}

// ListOfferQuestions retrieves an offer's public Q&A thread, oldest
// first
func (s *OfferService) ListOfferQuestions(ctx context.Context, offerID kernel.OfferID) ([]offer.QuestionResponse, error) {
	if _, err := s.repo.GetByID(ctx, offerID); err != nil {
		return nil, err
	}

	questions, err := s.questions.ListByOfferID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	responses := make([]offer.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		responses = append(responses, q.ToResponse())
	}
	return responses, nil
}

// AnswerQuestionByToken records the poster's reply through the
// management token and notifies the asker
func (s *OfferService) AnswerQuestionByToken(ctx context.Context, token string, questionID kernel.QuestionID, req offer.AnswerQuestionRequest) (*offer.QuestionResponse, error) {
	text := strings.TrimSpace(req.Answer)
	if text == "" {
		return nil, offer.ErrEmptyAnswer()
	}

	stored, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question.OfferID != stored.ID {
		return nil, offer.ErrQuestionNotFound()
	}

	question.Reply(text)
	if err := s.questions.Update(ctx, question.ID, question); err != nil {
		return nil, err
	}

	s.notifications.NotifyQuietly(ctx, question.UserID,
		fmt.Sprintf("💬 Respondieron tu pregunta en %s", stored.Title),
		fmt.Sprintf("/oferta/%s/", stored.ID.String()),
	)

	resp := question.ToResponse()
	return &resp, nil
}

// ReportOffer files an anonymous flag on an offer for staff review
func (s *OfferService) ReportOffer(ctx context.Context, offerID kernel.OfferID, req offer.ReportOfferRequest) error {
	if !req.Reason.IsValid() {
		return offer.ErrInvalidReason().WithDetail("reason", string(req.Reason))
	}

	if _, err := s.repo.GetByID(ctx, offerID); err != nil {
		return err
	}

	return s.reports.Create(ctx, &offer.Report{
		ID:        kernel.NewReportID(uuid.NewString()),
		OfferID:   offerID,
		Reason:    req.Reason,
		Detail:    strings.TrimSpace(req.Detail),
		CreatedAt: time.Now(),
	})
}

// ListReports retrieves the staff review queue, newest first
func (s *OfferService) ListReports(ctx context.Context) ([]offer.ReportResponse, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]offer.ReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, r.ToResponse())
	}
	return responses, nil
}

// ============================================================================
// Internals
// ============================================================================

func (s *OfferService) similarOffers(ctx context.Context, stored *offer.Offer) []offer.OfferResponse {
	similar, err := s.repo.ListSimilarBySemantic(ctx, stored.ID, similarOffersLimit)
	if err != nil {
		logx.Warnf("semantic similar offers for %s failed: %v", stored.ID.String(), err)
		similar = nil
	}

	if len(similar) == 0 {
		similar, err = s.repo.ListSimilarByType(ctx, stored.ID, stored.Type, similarOffersLimit)
		if err != nil {
			logx.Warnf("similar offers by type for %s failed: %v", stored.ID.String(), err)
			return []offer.OfferResponse{}
		}
	}

	return s.toResponses(similar)
}

func (s *OfferService) matchForViewer(ctx context.Context, stored *offer.Offer, viewer kernel.UserID) *matching.Result {
	profile, err := s.candidates.GetByUserID(ctx, viewer)
	if err != nil {
		// No profile means no score, not an error
		if !errx.IsType(err, errx.TypeNotFound) {
			logx.Warnf("candidate lookup for match score failed: %v", err)
		}
		return nil
	}

	result := matching.Score(
		matching.OfferProfile{
			Region: stored.Region,
			Salary: stored.Salary,
			Title:  stored.Title,
		},
		matching.CandidateProfile{
			Region:        profile.Region,
			DesiredSalary: profile.DesiredSalary,
			Headline:      profile.Headline,
		},
	)
	return &result
}

// refreshEmbedding regenerates the semantic vector. Best-effort, the
// offer exists and is browsable without one.
func (s *OfferService) refreshEmbedding(ctx context.Context, stored *offer.Offer) {
	if s.embedder == nil {
		return
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, stored.SearchText())
	if err != nil {
		logx.Warnf("embedding generation for offer %s failed: %v", stored.ID.String(), err)
		return
	}

	if err := s.repo.UpdateEmbedding(ctx, stored.ID, embedding); err != nil {
		logx.Warnf("embedding update for offer %s failed: %v", stored.ID.String(), err)
	}
}

func (s *OfferService) ownedResponse(o *offer.Offer) *offer.OwnedOfferResponse {
	return &offer.OwnedOfferResponse{
		OfferResponse: o.ToResponse(0),
		Token:         o.Token,
	}
}

func (s *OfferService) toResponses(offers []*offer.Offer) []offer.OfferResponse {
	responses := make([]offer.OfferResponse, 0, len(offers))
	for _, o := range offers {
		responses = append(responses, o.ToResponse(0))
	}
	return responses
}

func (s *OfferService) toResponsePage(page *kernel.Paginated[offer.Offer]) *kernel.Paginated[offer.OfferResponse] {
	items := make([]offer.OfferResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, page.Items[i].ToResponse(0))
	}

	return &kernel.Paginated[offer.OfferResponse]{
		Items: items,
		Page:  page.Page,
		Empty: len(items) == 0,
	}
}

func applyUpdate(stored *offer.Offer, req offer.UpdateOfferRequest) {
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		stored.Title = strings.TrimSpace(*req.Title)
	}
	if req.CompanyName != nil {
		stored.CompanyName = *req.CompanyName
	}
	if req.Type != nil && req.Type.IsValid() {
		stored.Type = *req.Type
	}
	if req.Duration != nil {
		stored.Duration = *req.Duration
	}
	if req.Modality != nil && req.Modality.IsValid() {
		stored.Modality = *req.Modality
	}
	if req.Region != nil && req.Region.IsValid() {
		stored.Region = *req.Region
	}
	if req.Experience != nil && req.Experience.IsValid() {
		stored.Experience = *req.Experience
	}
	if req.Salary != nil {
		stored.Salary = req.Salary
	}
	if req.Phone != nil {
		stored.Phone = *req.Phone
	}
	if req.WhatsappEnabled != nil {
		stored.WhatsappEnabled = *req.WhatsappEnabled
	}
	if req.ContactEmail != nil {
		stored.ContactEmail = *req.ContactEmail
	}
	if req.Tags != nil {
		stored.Tags = *req.Tags
	}
	if req.Description != nil {
		stored.Description = *req.Description
	}
	if req.CloseDate != nil {
		stored.CloseDate = req.CloseDate
	}
}
