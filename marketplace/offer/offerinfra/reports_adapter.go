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

// PostgresReportRepository implements offer.ReportRepository using
// PostgreSQL
type PostgresReportRepository struct {
	db *sqlx.DB
}

// NewPostgresReportRepository creates a new PostgreSQL report repository
func NewPostgresReportRepository(db *sqlx.DB) *PostgresReportRepository {
	return &PostgresReportRepository{
		db: db,
	}
}

type reportModel struct {
	ID        string    `db:"id"`
	OfferID   string    `db:"offer_id"`
	Reason    string    `db:"reason"`
	Detail    string    `db:"detail"`
	CreatedAt time.Time `db:"created_at"`
}

func (m *reportModel) toEntity() *offer.Report {
	return &offer.Report{
		ID:        kernel.ReportID(m.ID),
		OfferID:   kernel.OfferID(m.OfferID),
		Reason:    offer.ReportReason(m.Reason),
		Detail:    m.Detail,
		CreatedAt: m.CreatedAt,
	}
}

// Create stores a new report
func (r *PostgresReportRepository) Create(ctx context.Context, report *offer.Report) error {
	model := &reportModel{
		ID:        string(report.ID),
		OfferID:   string(report.OfferID),
		Reason:    string(report.Reason),
		Detail:    report.Detail,
		CreatedAt: report.CreatedAt,
	}

	query := `
		INSERT INTO reports (id, offer_id, reason, detail, created_at)
		VALUES (:id, :offer_id, :reason, :detail, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return offer.ErrOfferNotFound()
		}
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

// List retrieves every report, newest first
func (r *PostgresReportRepository) List(ctx context.Context) ([]*offer.Report, error) {
	query := `SELECT id, offer_id, reason, detail, created_at FROM reports ORDER BY created_at DESC`

	var models []reportModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]*offer.Report, 0, len(models))
	for i := range models {
		reports = append(reports, models[i].toEntity())
	}

	return reports, nil
}
