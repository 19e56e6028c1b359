package offerinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redlaboral/portal/marketplace/offer"
	"github.com/redlaboral/portal/pkg/kernel"
)

// PostgresFavoriteRepository implements offer.FavoriteRepository using
// PostgreSQL. The favorites table has a unique (user_id, offer_id) pair.
type PostgresFavoriteRepository struct {
	db *sqlx.DB
}

// NewPostgresFavoriteRepository creates a new PostgreSQL favorite repository
func NewPostgresFavoriteRepository(db *sqlx.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{
		db: db,
	}
}

type favoriteModel struct {
	UserID    string    `db:"user_id"`
	OfferID   string    `db:"offer_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Add stores a bookmark. Adding an existing bookmark is not an error.
func (r *PostgresFavoriteRepository) Add(ctx context.Context, favorite *offer.Favorite) error {
	model := &favoriteModel{
		UserID:    string(favorite.UserID),
		OfferID:   string(favorite.OfferID),
		CreatedAt: favorite.CreatedAt,
	}

	query := `
		INSERT INTO favorites (user_id, offer_id, created_at)
		VALUES (:user_id, :offer_id, :created_at)
		ON CONFLICT (user_id, offer_id) DO NOTHING
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return offer.ErrOfferNotFound()
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

// Remove deletes a bookmark. Removing a missing bookmark is not an error.
func (r *PostgresFavoriteRepository) Remove(ctx context.Context, userID kernel.UserID, offerID kernel.OfferID) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND offer_id = $2`

	if _, err := r.db.ExecContext(ctx, query, string(userID), string(offerID)); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}

// Exists checks whether a user bookmarked an offer
func (r *PostgresFavoriteRepository) Exists(ctx context.Context, userID kernel.UserID, offerID kernel.OfferID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND offer_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, string(userID), string(offerID)); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	return exists, nil
}

// ListByUser retrieves a user's bookmarks, newest first
func (r *PostgresFavoriteRepository) ListByUser(ctx context.Context, userID kernel.UserID) ([]*offer.Favorite, error) {
	query := `
		SELECT user_id, offer_id, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var models []favoriteModel
	if err := r.db.SelectContext(ctx, &models, query, string(userID)); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	favorites := make([]*offer.Favorite, 0, len(models))
	for _, model := range models {
		favorites = append(favorites, &offer.Favorite{
			UserID:    kernel.UserID(model.UserID),
			OfferID:   kernel.OfferID(model.OfferID),
			CreatedAt: model.CreatedAt,
		})
	}

	return favorites, nil
}

// ListOfferIDsByUser retrieves just the bookmarked offer IDs
func (r *PostgresFavoriteRepository) ListOfferIDsByUser(ctx context.Context, userID kernel.UserID) ([]kernel.OfferID, error) {
	query := `SELECT offer_id FROM favorites WHERE user_id = $1`

	var rawIDs []string
	if err := r.db.SelectContext(ctx, &rawIDs, query, string(userID)); err != nil {
		return nil, fmt.Errorf("failed to list favorite offer ids: %w", err)
	}

	ids := make([]kernel.OfferID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		ids = append(ids, kernel.OfferID(raw))
	}

	return ids, nil
}
