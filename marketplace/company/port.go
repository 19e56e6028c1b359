package company

import (
	"context"

	"github.com/redlaboral/portal/pkg/kernel"
)

type Repository interface {
	// Create stores a new company profile
	Create(ctx context.Context, company *Company) error

	// Update updates an existing company profile
	Update(ctx context.Context, id kernel.CompanyID, company *Company) error

	// GetByID retrieves a company by ID
	GetByID(ctx context.Context, id kernel.CompanyID) (*Company, error)

	// GetByUserID retrieves the profile owned by a user
	GetByUserID(ctx context.Context, userID kernel.UserID) (*Company, error)

	// GetByName retrieves a profile by case-insensitive exact name
	GetByName(ctx context.Context, name string) (*Company, error)

	// List retrieves named profiles with a logo, optionally filtered by
	// a name substring
	List(ctx context.Context, nameQuery string) ([]*Company, error)

	// ListFeatured retrieves featured profiles with a logo
	ListFeatured(ctx context.Context) ([]*Company, error)
}

type RatingRepository interface {
	// Create stores a new rating, unapproved
	Create(ctx context.Context, rating *Rating) error

	// GetByID retrieves a rating by ID
	GetByID(ctx context.Context, id kernel.RatingID) (*Rating, error)

	// Update updates an existing rating
	Update(ctx context.Context, id kernel.RatingID, rating *Rating) error

	// ListApprovedByCompanyName retrieves approved ratings whose
	// company name contains name, newest first
	ListApprovedByCompanyName(ctx context.Context, name string) ([]*Rating, error)

	// ListPending retrieves ratings awaiting moderation
	ListPending(ctx context.Context) ([]*Rating, error)
}
