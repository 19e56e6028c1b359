package applicationinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redlaboral/portal/marketplace/application"
	"github.com/redlaboral/portal/pkg/kernel"
)

// PostgresApplicationRepository implements application.Repository using
// PostgreSQL. The applications table has a unique (offer_id,
// candidate_id) pair.
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application
// repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

type applicationModel struct {
	ID          string    `db:"id"`
	OfferID     string    `db:"offer_id"`
	CandidateID string    `db:"candidate_id"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (m *applicationModel) toEntity() *application.Application {
	return &application.Application{
		ID:          kernel.ApplicationID(m.ID),
		OfferID:     kernel.OfferID(m.OfferID),
		CandidateID: kernel.CandidateID(m.CandidateID),
		Status:      application.Status(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromEntity(a *application.Application) *applicationModel {
	return &applicationModel{
		ID:          string(a.ID),
		OfferID:     string(a.OfferID),
		CandidateID: string(a.CandidateID),
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

const applicationColumns = `id, offer_id, candidate_id, status, created_at, updated_at`

// Create stores a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, entity *application.Application) error {
	query := `
		INSERT INTO applications (id, offer_id, candidate_id, status, created_at, updated_at)
		VALUES (:id, :offer_id, :candidate_id, :status, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, fromEntity(entity))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return application.ErrAlreadyApplied()
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid offer or candidate reference: %w", err)
			}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// Update modifies an existing application
func (r *PostgresApplicationRepository) Update(ctx context.Context, id kernel.ApplicationID, entity *application.Application) error {
	model := fromEntity(entity)
	model.ID = string(id)

	query := `
		UPDATE applications SET
			status = :status,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return application.ErrApplicationNotFound()
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	var model applicationModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get application by id: %w", err)
	}

	return model.toEntity(), nil
}

// Exists checks whether a candidate already applied to an offer
func (r *PostgresApplicationRepository) Exists(ctx context.Context, offerID kernel.OfferID, candidateID kernel.CandidateID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM applications WHERE offer_id = $1 AND candidate_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, string(offerID), string(candidateID)); err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}

	return exists, nil
}

// ListByCandidate retrieves a candidate's applications, newest first
func (r *PostgresApplicationRepository) ListByCandidate(ctx context.Context, candidateID kernel.CandidateID) ([]*application.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE candidate_id = $1
		ORDER BY created_at DESC
	`

	var models []applicationModel
	if err := r.db.SelectContext(ctx, &models, query, string(candidateID)); err != nil {
		return nil, fmt.Errorf("failed to list applications by candidate: %w", err)
	}

	return toEntities(models), nil
}

// ListByOffer retrieves the applications for an offer, newest first
func (r *PostgresApplicationRepository) ListByOffer(ctx context.Context, offerID kernel.OfferID) ([]*application.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE offer_id = $1
		ORDER BY created_at DESC
	`

	var models []applicationModel
	if err := r.db.SelectContext(ctx, &models, query, string(offerID)); err != nil {
		return nil, fmt.Errorf("failed to list applications by offer: %w", err)
	}

	return toEntities(models), nil
}

func toEntities(models []applicationModel) []*application.Application {
	applications := make([]*application.Application, 0, len(models))
	for i := range models {
		applications = append(applications, models[i].toEntity())
	}
	return applications
}
