package offer

import (
	"context"

	"github.com/redlaboral/portal/pkg/kernel"
)

type Repository interface {
	// Create stores a new offer
	Create(ctx context.Context, offer *Offer) error

	// Update updates an existing offer
	Update(ctx context.Context, id kernel.OfferID, offer *Offer) error

	// GetByID retrieves an offer by ID
	GetByID(ctx context.Context, id kernel.OfferID) (*Offer, error)

	// GetByToken retrieves an offer by its management token
	GetByToken(ctx context.Context, token string) (*Offer, error)

	// Delete removes an offer by ID
	Delete(ctx context.Context, id kernel.OfferID) error

	// Search retrieves published offers matching the filters, featured
	// first then newest
	Search(ctx context.Context, req SearchOffersRequest) (*kernel.Paginated[Offer], error)

	// ListByUserID retrieves every offer posted by a user, newest first
	ListByUserID(ctx context.Context, userID kernel.UserID) ([]*Offer, error)

	// ListFeatured retrieves up to limit published featured offers
	ListFeatured(ctx context.Context, limit int) ([]*Offer, error)

	// ListPublishedByCompanyName retrieves published offers whose
	// company name contains name, newest first
	ListPublishedByCompanyName(ctx context.Context, name string) ([]*Offer, error)

	// ListSimilarByType retrieves up to limit published offers sharing
	// a type, excluding the offer itself, newest first
	ListSimilarByType(ctx context.Context, exclude kernel.OfferID, jobType kernel.JobType, limit int) ([]*Offer, error)

	// ListSimilarBySemantic retrieves up to limit published offers
	// ordered by cosine distance to the stored embedding of id. Returns
	// an empty slice when id has no embedding yet.
	ListSimilarBySemantic(ctx context.Context, id kernel.OfferID, limit int) ([]*Offer, error)

	// UpdateEmbedding stores the semantic search vector for an offer
	UpdateEmbedding(ctx context.Context, id kernel.OfferID, embedding []float32) error

	// CountPublishedByRegion aggregates published offers per region,
	// largest bucket first
	CountPublishedByRegion(ctx context.Context) ([]RegionCount, error)
}

// VisitCounter tracks per-offer page views outside the main store so a
// detail view never needs a row update.
type VisitCounter interface {
	// Increment adds one visit and returns the new total
	Increment(ctx context.Context, id kernel.OfferID) (int64, error)

	// Get returns the current total
	Get(ctx context.Context, id kernel.OfferID) (int64, error)
}

type QuestionRepository interface {
	// Create stores a new question
	Create(ctx context.Context, question *Question) error

	// Update stores the poster's answer on a question
	Update(ctx context.Context, id kernel.QuestionID, question *Question) error

	// GetByID retrieves a question by ID
	GetByID(ctx context.Context, id kernel.QuestionID) (*Question, error)

	// ListByOfferID retrieves an offer's questions, oldest first
	ListByOfferID(ctx context.Context, offerID kernel.OfferID) ([]*Question, error)
}

type ReportRepository interface {
	// Create stores a new report
	Create(ctx context.Context, report *Report) error

	// List retrieves every report, newest first
	List(ctx context.Context) ([]*Report, error)
}

type FavoriteRepository interface {
	// Add bookmarks an offer for a user
	Add(ctx context.Context, favorite *Favorite) error

	// Remove deletes a bookmark
	Remove(ctx context.Context, userID kernel.UserID, offerID kernel.OfferID) error

	// Exists checks if a user bookmarked an offer
	Exists(ctx context.Context, userID kernel.UserID, offerID kernel.OfferID) (bool, error)

	// ListByUser retrieves a user's bookmarks, newest first
	ListByUser(ctx context.Context, userID kernel.UserID) ([]*Favorite, error)

	// ListOfferIDsByUser retrieves just the bookmarked offer IDs
	ListOfferIDsByUser(ctx context.Context, userID kernel.UserID) ([]kernel.OfferID, error)
}
