package companyinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redlaboral/portal/marketplace/company"
	"github.com/redlaboral/portal/pkg/kernel"
)

// PostgresCompanyRepository implements company.Repository using PostgreSQL
type PostgresCompanyRepository struct {
	db *sqlx.DB
}

// NewPostgresCompanyRepository creates a new PostgreSQL company repository
func NewPostgresCompanyRepository(db *sqlx.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type companyModel struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Name        string         `db:"name"`
	LogoURL     sql.NullString `db:"logo_url"`
	BannerURL   sql.NullString `db:"banner_url"`
	Website     string         `db:"website"`
	Description string         `db:"description"`
	Featured    bool           `db:"featured"`
	Premium     bool           `db:"premium"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (m *companyModel) toEntity() *company.Company {
	entity := &company.Company{
		ID:          kernel.CompanyID(m.ID),
		UserID:      kernel.UserID(m.UserID),
		Name:        m.Name,
		Website:     m.Website,
		Description: m.Description,
		Featured:    m.Featured,
		Premium:     m.Premium,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.LogoURL.Valid {
		url := kernel.BucketURL(m.LogoURL.String)
		entity.LogoURL = &url
	}
	if m.BannerURL.Valid {
		url := kernel.BucketURL(m.BannerURL.String)
		entity.BannerURL = &url
	}
	return entity
}

func fromEntity(c *company.Company) *companyModel {
	model := &companyModel{
		ID:          string(c.ID),
		UserID:      string(c.UserID),
		Name:        c.Name,
		Website:     c.Website,
		Description: c.Description,
		Featured:    c.Featured,
		Premium:     c.Premium,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.LogoURL != nil {
		model.LogoURL = sql.NullString{String: c.LogoURL.String(), Valid: true}
	}
	if c.BannerURL != nil {
		model.BannerURL = sql.NullString{String: c.BannerURL.String(), Valid: true}
	}
	return model
}

const companyColumns = `
	id, user_id, name, logo_url, banner_url, website,
	description, featured, premium, created_at, updated_at
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create stores a new company profile
func (r *PostgresCompanyRepository) Create(ctx context.Context, companyEntity *company.Company) error {
	model := fromEntity(companyEntity)

	query := `
		INSERT INTO companies (
			id, user_id, name, logo_url, banner_url, website,
			description, featured, premium, created_at, updated_at
		) VALUES (
			:id, :user_id, :name, :logo_url, :banner_url, :website,
			:description, :featured, :premium, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("company profile for user %s already exists: %w", companyEntity.UserID.String(), err)
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid user_id: %w", err)
			}
		}
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// Update updates an existing company profile
func (r *PostgresCompanyRepository) Update(ctx context.Context, id kernel.CompanyID, companyEntity *company.Company) error {
	model := fromEntity(companyEntity)
	model.ID = string(id)

	query := `
		UPDATE companies SET
			name = :name,
			logo_url = :logo_url,
			banner_url = :banner_url,
			website = :website,
			description = :description,
			featured = :featured,
			premium = :premium,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return company.ErrCompanyNotFound()
	}

	return nil
}

// GetByID retrieves a company by ID
func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	var model companyModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, company.ErrCompanyNotFound()
		}
		return nil, fmt.Errorf("failed to get company by id: %w", err)
	}

	return model.toEntity(), nil
}

// GetByUserID retrieves the profile owned by a user
func (r *PostgresCompanyRepository) GetByUserID(ctx context.Context, userID kernel.UserID) (*company.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE user_id = $1`

	var model companyModel
	err := r.db.GetContext(ctx, &model, query, string(userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, company.ErrCompanyNotFound()
		}
		return nil, fmt.Errorf("failed to get company by user: %w", err)
	}

	return model.toEntity(), nil
}

// GetByName retrieves a profile by case-insensitive exact name
func (r *PostgresCompanyRepository) GetByName(ctx context.Context, name string) (*company.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE LOWER(name) = LOWER($1)`

	var model companyModel
	err := r.db.GetContext(ctx, &model, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, company.ErrCompanyNotFound()
		}
		return nil, fmt.Errorf("failed to get company by name: %w", err)
	}

	return model.toEntity(), nil
}

// List retrieves named profiles with a logo, optionally filtered by a
// name substring
func (r *PostgresCompanyRepository) List(ctx context.Context, nameQuery string) ([]*company.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE name <> '' AND logo_url IS NOT NULL
	`
	args := []any{}

	if nameQuery != "" {
		query += ` AND name ILIKE $1`
		args = append(args, "%"+nameQuery+"%")
	}

	query += ` ORDER BY name`

	var models []companyModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	companies := make([]*company.Company, 0, len(models))
	for i := range models {
		companies = append(companies, models[i].toEntity())
	}

	return companies, nil
}

// ListFeatured retrieves featured profiles with a logo
func (r *PostgresCompanyRepository) ListFeatured(ctx context.Context) ([]*company.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE featured = TRUE AND logo_url IS NOT NULL
		ORDER BY name
	`

	var models []companyModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list featured companies: %w", err)
	}

	companies := make([]*company.Company, 0, len(models))
	for i := range models {
		companies = append(companies, models[i].toEntity())
	}

	return companies, nil
}
