package alertinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redlaboral/portal/marketplace/alert"
	"github.com/redlaboral/portal/pkg/kernel"
)

// PostgresAlertRepository implements alert.Repository using PostgreSQL
type PostgresAlertRepository struct {
	db *sqlx.DB
}

// NewPostgresAlertRepository creates a new PostgreSQL alert repository
func NewPostgresAlertRepository(db *sqlx.DB) *PostgresAlertRepository {
	return &PostgresAlertRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type alertModel struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Keyword   string    `db:"keyword"`
	Region    string    `db:"region"`
	CreatedAt time.Time `db:"created_at"`
}

func (m *alertModel) toEntity() *alert.Alert {
	return &alert.Alert{
		ID:        kernel.AlertID(m.ID),
		Email:     kernel.Email(m.Email),
		Keyword:   m.Keyword,
		Region:    kernel.Region(m.Region),
		CreatedAt: m.CreatedAt,
	}
}

func fromEntity(a *alert.Alert) *alertModel {
	return &alertModel{
		ID:        string(a.ID),
		Email:     a.Email.String(),
		Keyword:   a.Keyword,
		Region:    string(a.Region),
		CreatedAt: a.CreatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create stores a new alert
func (r *PostgresAlertRepository) Create(ctx context.Context, alertEntity *alert.Alert) error {
	model := fromEntity(alertEntity)

	query := `
		INSERT INTO alerts (id, email, keyword, region, created_at)
		VALUES (:id, :email, :keyword, :region, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("alert %s already exists: %w", alertEntity.ID.String(), err)
			}
		}
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

// GetByID retrieves an alert by ID
func (r *PostgresAlertRepository) GetByID(ctx context.Context, id kernel.AlertID) (*alert.Alert, error) {
	query := `
		SELECT id, email, keyword, region, created_at
		FROM alerts
		WHERE id = $1
	`

	var model alertModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, alert.ErrAlertNotFound()
		}
		return nil, fmt.Errorf("failed to get alert by id: %w", err)
	}

	return model.toEntity(), nil
}

// ListByRegion retrieves every alert subscribed to a region
func (r *PostgresAlertRepository) ListByRegion(ctx context.Context, region kernel.Region) ([]*alert.Alert, error) {
	query := `
		SELECT id, email, keyword, region, created_at
		FROM alerts
		WHERE region = $1
		ORDER BY created_at
	`

	var models []alertModel
	if err := r.db.SelectContext(ctx, &models, query, string(region)); err != nil {
		return nil, fmt.Errorf("failed to list alerts by region: %w", err)
	}

	alerts := make([]*alert.Alert, 0, len(models))
	for i := range models {
		alerts = append(alerts, models[i].toEntity())
	}

	return alerts, nil
}

// ListByEmail retrieves the alerts created with an email address
func (r *PostgresAlertRepository) ListByEmail(ctx context.Context, email kernel.Email) ([]*alert.Alert, error) {
	query := `
		SELECT id, email, keyword, region, created_at
		FROM alerts
		WHERE LOWER(email) = LOWER($1)
		ORDER BY created_at
	`

	var models []alertModel
	if err := r.db.SelectContext(ctx, &models, query, email.String()); err != nil {
		return nil, fmt.Errorf("failed to list alerts by email: %w", err)
	}

	alerts := make([]*alert.Alert, 0, len(models))
	for i := range models {
		alerts = append(alerts, models[i].toEntity())
	}

	return alerts, nil
}

// Delete removes an alert by ID
func (r *PostgresAlertRepository) Delete(ctx context.Context, id kernel.AlertID) error {
	query := `DELETE FROM alerts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return alert.ErrAlertNotFound()
	}

	return nil
}
