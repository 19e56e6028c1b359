package candidate

import (
	"context"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Repository defines candidate profile persistence operations
type Repository interface {
	// Create stores a new candidate profile
	Create(ctx context.Context, candidate *Candidate) error

	// Update modifies an existing candidate profile
	Update(ctx context.Context, id kernel.CandidateID, candidate *Candidate) error

	// GetByID retrieves a candidate profile by its ID
	GetByID(ctx context.Context, id kernel.CandidateID) (*Candidate, error)

	// GetByUserID retrieves the profile owned by a user
	GetByUserID(ctx context.Context, userID kernel.UserID) (*Candidate, error)

	// Delete removes a candidate profile
	Delete(ctx context.Context, id kernel.CandidateID) error

	// Search retrieves published profiles matching the filters
	Search(ctx context.Context, req SearchCandidatesRequest) (*kernel.Paginated[Candidate], error)
}
