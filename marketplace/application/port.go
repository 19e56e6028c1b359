package application

import (
	"context"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Repository defines application persistence operations
type Repository interface {
	// Create stores a new application
	Create(ctx context.Context, application *Application) error

	// Update modifies an existing application
	Update(ctx context.Context, id kernel.ApplicationID, application *Application) error

	// GetByID retrieves an application by its ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// Exists checks whether a candidate already applied to an offer
	Exists(ctx context.Context, offerID kernel.OfferID, candidateID kernel.CandidateID) (bool, error)

	// ListByCandidate retrieves a candidate's applications, newest first
	ListByCandidate(ctx context.Context, candidateID kernel.CandidateID) ([]*Application, error)

	// ListByOffer retrieves the applications for an offer, newest first
	ListByOffer(ctx context.Context, offerID kernel.OfferID) ([]*Application, error)
}
