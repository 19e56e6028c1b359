package application

import (
	"time"

	"github.com/redlaboral/portal/marketplace/candidate"
	"github.com/redlaboral/portal/marketplace/offer"
	"github.com/redlaboral/portal/pkg/kernel"
)

// UpdateStatusRequest moves an application through the funnel
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// ApplicationResponse is the base API representation
type ApplicationResponse struct {
	ID         kernel.ApplicationID `json:"id"`
	OfferID    kernel.OfferID       `json:"offer_id"`
	Status     Status               `json:"status"`
	StatusName string               `json:"status_name"`
	CreatedAt  time.Time            `json:"created_at"`
}

// CandidateApplicationResponse is an application as the candidate sees
// it, with the offer it targets
type CandidateApplicationResponse struct {
	ApplicationResponse
	Offer *offer.OfferResponse `json:"offer,omitempty"`
}

// ApplicantResponse is an application as the offer owner sees it, with
// the applicant's profile
type ApplicantResponse struct {
	ApplicationResponse
	Candidate *candidate.CandidateResponse `json:"candidate,omitempty"`
}

// ToResponse converts the entity to its API representation
func (a *Application) ToResponse() ApplicationResponse {
	return ApplicationResponse{
		ID:         a.ID,
		OfferID:    a.OfferID,
		Status:     a.Status,
		StatusName: a.Status.DisplayName(),
		CreatedAt:  a.CreatedAt,
	}
}
