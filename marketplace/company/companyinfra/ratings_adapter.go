package companyinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redlaboral/portal/marketplace/company"
	"github.com/redlaboral/portal/pkg/kernel"
)

// PostgresRatingRepository implements company.RatingRepository using PostgreSQL
type PostgresRatingRepository struct {
	db *sqlx.DB
}

// NewPostgresRatingRepository creates a new PostgreSQL rating repository
func NewPostgresRatingRepository(db *sqlx.DB) *PostgresRatingRepository {
	return &PostgresRatingRepository{
		db: db,
	}
}

type ratingModel struct {
	ID          string    `db:"id"`
	CompanyName string    `db:"company_name"`
	Stars       int       `db:"stars"`
	Comment     string    `db:"comment"`
	Approved    bool      `db:"approved"`
	CreatedAt   time.Time `db:"created_at"`
}

func (m *ratingModel) toEntity() *company.Rating {
	return &company.Rating{
		ID:          kernel.RatingID(m.ID),
		CompanyName: m.CompanyName,
		Stars:       m.Stars,
		Comment:     m.Comment,
		Approved:    m.Approved,
		CreatedAt:   m.CreatedAt,
	}
}

func ratingFromEntity(r *company.Rating) *ratingModel {
	return &ratingModel{
		ID:          string(r.ID),
		CompanyName: r.CompanyName,
		Stars:       r.Stars,
		Comment:     r.Comment,
		Approved:    r.Approved,
		CreatedAt:   r.CreatedAt,
	}
}

// Create stores a new rating, unapproved
func (r *PostgresRatingRepository) Create(ctx context.Context, rating *company.Rating) error {
	model := ratingFromEntity(rating)

	query := `
		INSERT INTO company_ratings (id, company_name, stars, comment, approved, created_at)
		VALUES (:id, :company_name, :stars, :comment, :approved, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}

	return nil
}

// GetByID retrieves a rating by ID
func (r *PostgresRatingRepository) GetByID(ctx context.Context, id kernel.RatingID) (*company.Rating, error) {
	query := `
		SELECT id, company_name, stars, comment, approved, created_at
		FROM company_ratings
		WHERE id = $1
	`

	var model ratingModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, company.ErrRatingNotFound()
		}
		return nil, fmt.Errorf("failed to get rating by id: %w", err)
	}

	return model.toEntity(), nil
}

// Update updates an existing rating
func (r *PostgresRatingRepository) Update(ctx context.Context, id kernel.RatingID, rating *company.Rating) error {
	model := ratingFromEntity(rating)
	model.ID = string(id)

	query := `
		UPDATE company_ratings SET
			stars = :stars,
			comment = :comment,
			approved = :approved
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return company.ErrRatingNotFound()
	}

	return nil
}

// ListApprovedByCompanyName retrieves approved ratings whose company
// name contains name, newest first
func (r *PostgresRatingRepository) ListApprovedByCompanyName(ctx context.Context, name string) ([]*company.Rating, error) {
	query := `
		SELECT id, company_name, stars, comment, approved, created_at
		FROM company_ratings
		WHERE approved = TRUE AND company_name ILIKE $1
		ORDER BY created_at DESC
	`

	var models []ratingModel
	if err := r.db.SelectContext(ctx, &models, query, "%"+name+"%"); err != nil {
		return nil, fmt.Errorf("failed to list approved ratings: %w", err)
	}

	ratings := make([]*company.Rating, 0, len(models))
	for i := range models {
		ratings = append(ratings, models[i].toEntity())
	}

	return ratings, nil
}

// ListPending retrieves ratings awaiting moderation
func (r *PostgresRatingRepository) ListPending(ctx context.Context) ([]*company.Rating, error) {
	query := `
		SELECT id, company_name, stars, comment, approved, created_at
		FROM company_ratings
		WHERE approved = FALSE
		ORDER BY created_at
	`

	var models []ratingModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list pending ratings: %w", err)
	}

	ratings := make([]*company.Rating, 0, len(models))
	for i := range models {
		ratings = append(ratings, models[i].toEntity())
	}

	return ratings, nil
}
