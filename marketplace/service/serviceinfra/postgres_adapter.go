package serviceinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redlaboral/portal/marketplace/service"
	"github.com/redlaboral/portal/pkg/kernel"
)

// PostgresServiceRepository implements service.Repository using PostgreSQL
type PostgresServiceRepository struct {
	db *sqlx.DB
}

// NewPostgresServiceRepository creates a new PostgreSQL service repository
func NewPostgresServiceRepository(db *sqlx.DB) *PostgresServiceRepository {
	return &PostgresServiceRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type serviceModel struct {
	ID             string         `db:"id"`
	UserID         string         `db:"user_id"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	Industry       string         `db:"industry"`
	Region         string         `db:"region"`
	Phone          string         `db:"phone"`
	ContactEmail   string         `db:"contact_email"`
	ImageURL       sql.NullString `db:"image_url"`
	ReferencePrice sql.NullInt64  `db:"reference_price"`
	Published      bool           `db:"published"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (m *serviceModel) toEntity() *service.Service {
	entity := &service.Service{
		ID:           kernel.ServiceID(m.ID),
		UserID:       kernel.UserID(m.UserID),
		Title:        m.Title,
		Description:  m.Description,
		Industry:     kernel.Industry(m.Industry),
		Region:       kernel.Region(m.Region),
		Phone:        kernel.Phone(m.Phone),
		ContactEmail: kernel.Email(m.ContactEmail),
		Published:    m.Published,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.ImageURL.Valid {
		url := kernel.BucketURL(m.ImageURL.String)
		entity.ImageURL = &url
	}
	if m.ReferencePrice.Valid {
		price := kernel.Salary(m.ReferencePrice.Int64)
		entity.ReferencePrice = &price
	}
	return entity
}

func fromEntity(s *service.Service) *serviceModel {
	model := &serviceModel{
		ID:           string(s.ID),
		UserID:       string(s.UserID),
		Title:        s.Title,
		Description:  s.Description,
		Industry:     string(s.Industry),
		Region:       string(s.Region),
		Phone:        string(s.Phone),
		ContactEmail: string(s.ContactEmail),
		Published:    s.Published,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.ImageURL != nil {
		model.ImageURL = sql.NullString{String: s.ImageURL.String(), Valid: true}
	}
	if s.ReferencePrice != nil {
		model.ReferencePrice = sql.NullInt64{Int64: int64(*s.ReferencePrice), Valid: true}
	}
	return model
}

const serviceColumns = `
	id, user_id, title, description, industry, region, phone, contact_email,
	image_url, reference_price, published, created_at, updated_at
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create stores a new service listing
func (r *PostgresServiceRepository) Create(ctx context.Context, serviceEntity *service.Service) error {
	model := fromEntity(serviceEntity)

	query := `
		INSERT INTO services (
			id, user_id, title, description, industry, region, phone, contact_email,
			image_url, reference_price, published, created_at, updated_at
		) VALUES (
			:id, :user_id, :title, :description, :industry, :region, :phone, :contact_email,
			:image_url, :reference_price, :published, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid user_id: %w", err)
			}
		}
		return fmt.Errorf("failed to create service: %w", err)
	}

	return nil
}

// Update modifies an existing service listing
func (r *PostgresServiceRepository) Update(ctx context.Context, id kernel.ServiceID, serviceEntity *service.Service) error {
	model := fromEntity(serviceEntity)
	model.ID = string(id)

	query := `
		UPDATE services SET
			title = :title,
			description = :description,
			industry = :industry,
			region = :region,
			phone = :phone,
			contact_email = :contact_email,
			image_url = :image_url,
			reference_price = :reference_price,
			published = :published,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return service.ErrServiceNotFound()
	}

	return nil
}

// GetByID retrieves a service listing by ID
func (r *PostgresServiceRepository) GetByID(ctx context.Context, id kernel.ServiceID) (*service.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	var model serviceModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, service.ErrServiceNotFound()
		}
		return nil, fmt.Errorf("failed to get service by id: %w", err)
	}

	return model.toEntity(), nil
}

// Delete removes a service listing
func (r *PostgresServiceRepository) Delete(ctx context.Context, id kernel.ServiceID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return service.ErrServiceNotFound()
	}

	return nil
}

// ListByUserID retrieves every listing owned by a user, newest first
func (r *PostgresServiceRepository) ListByUserID(ctx context.Context, userID kernel.UserID) ([]*service.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE user_id = $1 ORDER BY created_at DESC`

	var models []serviceModel
	if err := r.db.SelectContext(ctx, &models, query, string(userID)); err != nil {
		return nil, fmt.Errorf("failed to list services by user: %w", err)
	}

	services := make([]*service.Service, 0, len(models))
	for i := range models {
		services = append(services, models[i].toEntity())
	}

	return services, nil
}

// Search retrieves published listings matching the filters, newest first
func (r *PostgresServiceRepository) Search(ctx context.Context, req service.SearchServicesRequest) (*kernel.Paginated[service.Service], error) {
	where := `WHERE published = TRUE`
	args := []any{}
	arg := 1

	if req.Query != "" {
		where += fmt.Sprintf(` AND (title ILIKE $%d OR description ILIKE $%d)`, arg, arg)
		args = append(args, "%"+req.Query+"%")
		arg++
	}
	if req.Industry != "" {
		where += fmt.Sprintf(` AND industry = $%d`, arg)
		args = append(args, string(req.Industry))
		arg++
	}
	if req.Region != "" {
		where += fmt.Sprintf(` AND region = $%d`, arg)
		args = append(args, string(req.Region))
		arg++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM services ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count services: %w", err)
	}

	pagination := req.Pagination.Normalized()
	query := fmt.Sprintf(
		`SELECT %s FROM services %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		serviceColumns, where, arg, arg+1,
	)
	args = append(args, pagination.PageSize, (pagination.Page-1)*pagination.PageSize)

	var models []serviceModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search services: %w", err)
	}

	items := make([]service.Service, 0, len(models))
	for i := range models {
		items = append(items, *models[i].toEntity())
	}

	return &kernel.Paginated[service.Service]{
		Items: items,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(items) == 0,
	}, nil
}
