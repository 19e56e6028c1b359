package offerinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/redlaboral/portal/marketplace/offer"
	"github.com/redlaboral/portal/pkg/kernel"
)

// PostgresOfferRepository implements offer.Repository using PostgreSQL.
// Semantic similarity relies on the pgvector extension.
type PostgresOfferRepository struct {
	db *sqlx.DB
}

// NewPostgresOfferRepository creates a new PostgreSQL offer repository
func NewPostgresOfferRepository(db *sqlx.DB) *PostgresOfferRepository {
	return &PostgresOfferRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type offerModel struct {
	ID              string         `db:"id"`
	Token           string         `db:"token"`
	UserID          string         `db:"user_id"`
	Title           string         `db:"title"`
	CompanyName     string         `db:"company_name"`
	Type            string         `db:"type"`
	Duration        string         `db:"duration"`
	Modality        string         `db:"modality"`
	Region          string         `db:"region"`
	Experience      string         `db:"experience"`
	Salary          sql.NullInt64  `db:"salary"`
	Phone           string         `db:"phone"`
	WhatsappEnabled bool           `db:"whatsapp_enabled"`
	ContactEmail    string         `db:"contact_email"`
	Tags            string         `db:"tags"`
	Description     string         `db:"description"`
	ImageURL        sql.NullString `db:"image_url"`
	Published       bool           `db:"published"`
	Paid            bool           `db:"paid"`
	Featured        bool           `db:"featured"`
	CloseDate       sql.NullTime   `db:"close_date"`
	PublishedAt     sql.NullTime   `db:"published_at"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (m *offerModel) toEntity() *offer.Offer {
	entity := &offer.Offer{
		ID:              kernel.OfferID(m.ID),
		Token:           m.Token,
		UserID:          kernel.UserID(m.UserID),
		Title:           m.Title,
		CompanyName:     m.CompanyName,
		Type:            kernel.JobType(m.Type),
		Duration:        m.Duration,
		Modality:        offer.Modality(m.Modality),
		Region:          kernel.Region(m.Region),
		Experience:      kernel.ExperienceLevel(m.Experience),
		Phone:           kernel.Phone(m.Phone),
		WhatsappEnabled: m.WhatsappEnabled,
		ContactEmail:    kernel.Email(m.ContactEmail),
		Tags:            m.Tags,
		Description:     m.Description,
		Published:       m.Published,
		Paid:            m.Paid,
		Featured:        m.Featured,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Salary.Valid {
		salary := kernel.Salary(m.Salary.Int64)
		entity.Salary = &salary
	}
	if m.ImageURL.Valid {
		url := kernel.BucketURL(m.ImageURL.String)
		entity.ImageURL = &url
	}
	if m.CloseDate.Valid {
		closeDate := m.CloseDate.Time
		entity.CloseDate = &closeDate
	}
	if m.PublishedAt.Valid {
		publishedAt := m.PublishedAt.Time
		entity.PublishedAt = &publishedAt
	}
	return entity
}

func fromEntity(o *offer.Offer) *offerModel {
	model := &offerModel{
		ID:              string(o.ID),
		Token:           o.Token,
		UserID:          string(o.UserID),
		Title:           o.Title,
		CompanyName:     o.CompanyName,
		Type:            string(o.Type),
		Duration:        o.Duration,
		Modality:        string(o.Modality),
		Region:          string(o.Region),
		Experience:      string(o.Experience),
		Phone:           string(o.Phone),
		WhatsappEnabled: o.WhatsappEnabled,
		ContactEmail:    string(o.ContactEmail),
		Tags:            o.Tags,
		Description:     o.Description,
		Published:       o.Published,
		Paid:            o.Paid,
		Featured:        o.Featured,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.Salary != nil {
		model.Salary = sql.NullInt64{Int64: int64(*o.Salary), Valid: true}
	}
	if o.ImageURL != nil {
		model.ImageURL = sql.NullString{String: o.ImageURL.String(), Valid: true}
	}
	if o.CloseDate != nil {
		model.CloseDate = sql.NullTime{Time: *o.CloseDate, Valid: true}
	}
	if o.PublishedAt != nil {
		model.PublishedAt = sql.NullTime{Time: *o.PublishedAt, Valid: true}
	}
	return model
}

const offerColumns = `
	id, token, user_id, title, company_name, type, duration, modality,
	region, experience, salary, phone, whatsapp_enabled, contact_email,
	tags, description, image_url, published, paid, featured, close_date,
	published_at, created_at, updated_at
`

// Featured offers float above the rest, then newest published first
const offerOrdering = ` ORDER BY featured DESC, published_at DESC NULLS LAST`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create stores a new offer
func (r *PostgresOfferRepository) Create(ctx context.Context, offerEntity *offer.Offer) error {
	model := fromEntity(offerEntity)

	query := `
		INSERT INTO offers (
			id, token, user_id, title, company_name, type, duration, modality,
			region, experience, salary, phone, whatsapp_enabled, contact_email,
			tags, description, image_url, published, paid, featured, close_date,
			published_at, created_at, updated_at
		) VALUES (
			:id, :token, :user_id, :title, :company_name, :type, :duration, :modality,
			:region, :experience, :salary, :phone, :whatsapp_enabled, :contact_email,
			:tags, :description, :image_url, :published, :paid, :featured, :close_date,
			:published_at, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("offer %s already exists: %w", offerEntity.ID.String(), err)
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid user_id: %w", err)
			}
		}
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

// Update updates an existing offer
func (r *PostgresOfferRepository) Update(ctx context.Context, id kernel.OfferID, offerEntity *offer.Offer) error {
	model := fromEntity(offerEntity)
	model.ID = string(id)

	query := `
		UPDATE offers SET
			title = :title,
			company_name = :company_name,
			type = :type,
			duration = :duration,
			modality = :modality,
			region = :region,
			experience = :experience,
			salary = :salary,
			phone = :phone,
			whatsapp_enabled = :whatsapp_enabled,
			contact_email = :contact_email,
			tags = :tags,
			description = :description,
			image_url = :image_url,
			published = :published,
			paid = :paid,
			featured = :featured,
			close_date = :close_date,
			published_at = :published_at,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update offer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return offer.ErrOfferNotFound()
	}

	return nil
}

// GetByID retrieves an offer by ID
func (r *PostgresOfferRepository) GetByID(ctx context.Context, id kernel.OfferID) (*offer.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`

	var model offerModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, offer.ErrOfferNotFound()
		}
		return nil, fmt.Errorf("failed to get offer by id: %w", err)
	}

	return model.toEntity(), nil
}

// GetByToken retrieves an offer by its management token
func (r *PostgresOfferRepository) GetByToken(ctx context.Context, token string) (*offer.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE token = $1`

	var model offerModel
	err := r.db.GetContext(ctx, &model, query, token)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, offer.ErrOfferNotFound()
		}
		return nil, fmt.Errorf("failed to get offer by token: %w", err)
	}

	return model.toEntity(), nil
}

// Delete removes an offer
func (r *PostgresOfferRepository) Delete(ctx context.Context, id kernel.OfferID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM offers WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return offer.ErrOfferNotFound()
	}

	return nil
}

// Search retrieves published offers matching the filters, featured
// first and then newest
func (r *PostgresOfferRepository) Search(ctx context.Context, req offer.SearchOffersRequest) (*kernel.Paginated[offer.Offer], error) {
	where := `WHERE published = TRUE`
	args := []any{}
	arg := 1

	if req.Query != "" {
		where += fmt.Sprintf(` AND (title ILIKE $%d OR company_name ILIKE $%d)`, arg, arg)
		args = append(args, "%"+req.Query+"%")
		arg++
	}
	if req.Region != "" {
		where += fmt.Sprintf(` AND region = $%d`, arg)
		args = append(args, string(req.Region))
		arg++
	}
	if req.Type != "" {
		where += fmt.Sprintf(` AND type = $%d`, arg)
		args = append(args, string(req.Type))
		arg++
	}
	if req.MinSalary != nil {
		where += fmt.Sprintf(` AND salary >= $%d`, arg)
		args = append(args, req.MinSalary.Int())
		arg++
	}
	if req.MaxAgeDays > 0 {
		where += fmt.Sprintf(` AND published_at >= NOW() - $%d * INTERVAL '1 day'`, arg)
		args = append(args, req.MaxAgeDays)
		arg++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM offers ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count offers: %w", err)
	}

	pagination := req.Pagination.Normalized()
	query := fmt.Sprintf(
		`SELECT %s FROM offers %s%s LIMIT $%d OFFSET $%d`,
		offerColumns, where, offerOrdering, arg, arg+1,
	)
	args = append(args, pagination.PageSize, (pagination.Page-1)*pagination.PageSize)

	var models []offerModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search offers: %w", err)
	}

	items := make([]offer.Offer, 0, len(models))
	for i := range models {
		items = append(items, *models[i].toEntity())
	}

	return &kernel.Paginated[offer.Offer]{
		Items: items,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(items) == 0,
	}, nil
}

// ListByUserID retrieves every offer owned by a user, newest first
func (r *PostgresOfferRepository) ListByUserID(ctx context.Context, userID kernel.UserID) ([]*offer.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE user_id = $1 ORDER BY created_at DESC`

	var models []offerModel
	if err := r.db.SelectContext(ctx, &models, query, string(userID)); err != nil {
		return nil, fmt.Errorf("failed to list offers by user: %w", err)
	}

	return toEntities(models), nil
}

// ListFeatured retrieves the newest published featured offers
func (r *PostgresOfferRepository) ListFeatured(ctx context.Context, limit int) ([]*offer.Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE published = TRUE AND featured = TRUE
		ORDER BY published_at DESC NULLS LAST
		LIMIT $1
	`

	var models []offerModel
	if err := r.db.SelectContext(ctx, &models, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list featured offers: %w", err)
	}

	return toEntities(models), nil
}

// ListPublishedByCompanyName retrieves published offers for a company
// name, case-insensitively
func (r *PostgresOfferRepository) ListPublishedByCompanyName(ctx context.Context, name string) ([]*offer.Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE published = TRUE AND LOWER(company_name) = LOWER($1)
		ORDER BY published_at DESC NULLS LAST
	`

	var models []offerModel
	if err := r.db.SelectContext(ctx, &models, query, name); err != nil {
		return nil, fmt.Errorf("failed to list offers by company: %w", err)
	}

	return toEntities(models), nil
}

// ListSimilarByType retrieves published offers sharing a job type
func (r *PostgresOfferRepository) ListSimilarByType(ctx context.Context, exclude kernel.OfferID, jobType kernel.JobType, limit int) ([]*offer.Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE published = TRUE AND type = $1 AND id <> $2
		ORDER BY published_at DESC NULLS LAST
		LIMIT $3
	`

	var models []offerModel
	if err := r.db.SelectContext(ctx, &models, query, string(jobType), string(exclude), limit); err != nil {
		return nil, fmt.Errorf("failed to list similar offers: %w", err)
	}

	return toEntities(models), nil
}

// ListSimilarBySemantic retrieves published offers ordered by cosine
// distance to the stored embedding of id. Offers without an embedding
// never appear, and the result is empty when id itself has none.
func (r *PostgresOfferRepository) ListSimilarBySemantic(ctx context.Context, id kernel.OfferID, limit int) ([]*offer.Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE published = TRUE
		  AND id <> $1
		  AND embedding IS NOT NULL
		  AND (SELECT embedding FROM offers WHERE id = $1) IS NOT NULL
		ORDER BY embedding <=> (SELECT embedding FROM offers WHERE id = $1)
		LIMIT $2
	`

	var models []offerModel
	if err := r.db.SelectContext(ctx, &models, query, string(id), limit); err != nil {
		return nil, fmt.Errorf("failed to list semantically similar offers: %w", err)
	}

	return toEntities(models), nil
}

// UpdateEmbedding stores the semantic vector for an offer
func (r *PostgresOfferRepository) UpdateEmbedding(ctx context.Context, id kernel.OfferID, embedding []float32) error {
	query := `UPDATE offers SET embedding = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, pgvector.NewVector(embedding), string(id))
	if err != nil {
		return fmt.Errorf("failed to update offer embedding: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return offer.ErrOfferNotFound()
	}

	return nil
}

// CountPublishedByRegion aggregates published offers per region
func (r *PostgresOfferRepository) CountPublishedByRegion(ctx context.Context) ([]offer.RegionCount, error) {
	query := `
		SELECT region, COUNT(*) AS total
		FROM offers
		WHERE published = TRUE
		GROUP BY region
		ORDER BY total DESC
	`

	var rows []struct {
		Region string `db:"region"`
		Total  int64  `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count offers by region: %w", err)
	}

	counts := make([]offer.RegionCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, offer.RegionCount{
			Region: kernel.Region(row.Region),
			Total:  row.Total,
		})
	}

	return counts, nil
}

// GetVisits reads the persisted visit total for an offer
func (r *PostgresOfferRepository) GetVisits(ctx context.Context, id kernel.OfferID) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT visits FROM offers WHERE id = $1`, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get offer visits: %w", err)
	}
	return total, nil
}

// SaveVisits persists the visit total for an offer. Totals only grow,
// so a stale flush never lowers the stored count.
func (r *PostgresOfferRepository) SaveVisits(ctx context.Context, id kernel.OfferID, total int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE offers SET visits = GREATEST(visits, $2) WHERE id = $1`,
		string(id), total,
	)
	if err != nil {
		return fmt.Errorf("failed to save offer visits: %w", err)
	}
	return nil
}

func toEntities(models []offerModel) []*offer.Offer {
	offers := make([]*offer.Offer, 0, len(models))
	for i := range models {
		offers = append(offers, models[i].toEntity())
	}
	return offers
}
