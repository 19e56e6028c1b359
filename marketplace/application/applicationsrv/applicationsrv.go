package applicationsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redlaboral/portal/marketplace/account"
	"github.com/redlaboral/portal/marketplace/application"
	"github.com/redlaboral/portal/marketplace/candidate"
	"github.com/redlaboral/portal/marketplace/notification/notificationsrv"
	"github.com/redlaboral/portal/marketplace/offer"
	"github.com/redlaboral/portal/pkg/errx"
	"github.com/redlaboral/portal/pkg/kernel"
)

// statusMessages are the in-app texts sent to the candidate when the
// offer owner moves their application. Selection has no message, the
// company reaches out directly.
var statusMessages = map[application.Status]string{
	application.StatusViewed:    "👀 Tu postulación a %s fue vista.",
	application.StatusInterview: "🎉 ¡Felicidades! Pasaste a entrevista en %s.",
	application.StatusRejected:  "❌ Tu proceso en %s ha finalizado.",
}

// ApplicationService manages the hiring funnel between candidates and
// offers
type ApplicationService struct {
	repo          application.Repository
	offers        offer.Repository
	candidates    candidate.Repository
	accounts      account.Repository
	notifications *notificationsrv.NotificationService
}

// NewApplicationService creates a new application service instance
func NewApplicationService(
	repo application.Repository,
	offers offer.Repository,
	candidates candidate.Repository,
	accounts account.Repository,
	notifications *notificationsrv.NotificationService,
) *ApplicationService {
	return &ApplicationService{
		repo:          repo,
		offers:        offers,
		candidates:    candidates,
		accounts:      accounts,
		notifications: notifications,
	}
}

// Apply creates an application from the caller's candidate profile to
// a published offer, and notifies the offer owner
func (s *ApplicationService) Apply(ctx context.Context, userID kernel.UserID, offerID kernel.OfferID) (*application.ApplicationResponse, error) {
	profile, err := s.candidates.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	targetOffer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !targetOffer.IsPublished() || targetOffer.IsClosed() {
		return nil, application.ErrOfferNotOpen()
	}

	exists, err := s.repo.Exists(ctx, offerID, profile.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, application.ErrAlreadyApplied()
	}

	now := time.Now()
	created := &application.Application{
		ID:          kernel.NewApplicationID(uuid.NewString()),
		OfferID:     offerID,
		CandidateID: profile.ID,
		Status:      application.StatusSent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}

	s.notifications.NotifyQuietly(ctx, targetOffer.UserID,
		fmt.Sprintf("📄 Nuevo candidato: %s postuló a %s", s.applicantName(ctx, userID, profile), targetOffer.Title),
		fmt.Sprintf("/gestion-oferta/%s/candidatos/", targetOffer.ID.String()),
	)

	resp := created.ToResponse()
	return &resp, nil
}

// ListMyApplications retrieves the caller's applications with the
// offers they target
func (s *ApplicationService) ListMyApplications(ctx context.Context, userID kernel.UserID) ([]application.CandidateApplicationResponse, error) {
	profile, err := s.candidates.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applications, err := s.repo.ListByCandidate(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]application.CandidateApplicationResponse, 0, len(applications))
	for _, app := range applications {
		item := application.CandidateApplicationResponse{
			ApplicationResponse: app.ToResponse(),
		}
		if appOffer, err := s.offers.GetByID(ctx, app.OfferID); err == nil {
			offerResp := appOffer.ToResponse(0)
			item.Offer = &offerResp
		} else if !errx.IsType(err, errx.TypeNotFound) {
			return nil, err
		}
		responses = append(responses, item)
	}

	return responses, nil
}

// ListApplicants retrieves the applications for an owned offer with the
// applicants' profiles, contact details included
func (s *ApplicationService) ListApplicants(ctx context.Context, userID kernel.UserID, offerID kernel.OfferID) ([]application.ApplicantResponse, error) {
	ownedOffer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !ownedOffer.IsOwnedBy(userID) {
		return nil, application.ErrNotOfferOwner()
	}

	applications, err := s.repo.ListByOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	responses := make([]application.ApplicantResponse, 0, len(applications))
	for _, app := range applications {
		item := application.ApplicantResponse{
			ApplicationResponse: app.ToResponse(),
		}
		if profile, err := s.candidates.GetByID(ctx, app.CandidateID); err == nil {
			profileResp := profile.ToResponse(true)
			item.Candidate = &profileResp
		} else if !errx.IsType(err, errx.TypeNotFound) {
			return nil, err
		}
		responses = append(responses, item)
	}

	return responses, nil
}

// UpdateStatus moves an application through the funnel and notifies
// the candidate about the milestones that matter to them
func (s *ApplicationService) UpdateStatus(ctx context.Context, userID kernel.UserID, id kernel.ApplicationID, status application.Status) (*application.ApplicationResponse, error) {
	if !status.IsValid() {
		return nil, application.ErrInvalidStatus().WithDetail("status", string(status))
	}

	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	appOffer, err := s.offers.GetByID(ctx, stored.OfferID)
	if err != nil {
		return nil, err
	}
	if !appOffer.IsOwnedBy(userID) {
		return nil, application.ErrNotOfferOwner()
	}

	if stored.ChangeStatus(status) {
		stored.UpdatedAt = time.Now()
		if err := s.repo.Update(ctx, stored.ID, stored); err != nil {
			return nil, err
		}

		if message, ok := statusMessages[status]; ok {
			if profile, err := s.candidates.GetByID(ctx, stored.CandidateID); err == nil {
				s.notifications.NotifyQuietly(ctx, profile.UserID,
					fmt.Sprintf(message, appOffer.Title),
					fmt.Sprintf("/oferta/%s/", appOffer.ID.String()),
				)
			}
		}
	}

	resp := stored.ToResponse()
	return &resp, nil
}

// applicantName prefers the account name, falling back to the profile
// headline when the account lookup fails
func (s *ApplicationService) applicantName(ctx context.Context, userID kernel.UserID, profile *candidate.Candidate) string {
	if user, err := s.accounts.GetByID(ctx, userID); err == nil && user.Name != "" {
		return user.Name
	}
	return profile.Headline
}
