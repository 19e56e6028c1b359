package candidateinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redlaboral/portal/marketplace/candidate"
	"github.com/redlaboral/portal/pkg/kernel"
)

// PostgresCandidateRepository implements candidate.Repository using PostgreSQL
type PostgresCandidateRepository struct {
	db *sqlx.DB
}

// NewPostgresCandidateRepository creates a new PostgreSQL candidate repository
func NewPostgresCandidateRepository(db *sqlx.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type candidateModel struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	Headline      string         `db:"headline"`
	Industry      string         `db:"industry"`
	Region        string         `db:"region"`
	Experience    string         `db:"experience"`
	DesiredSalary sql.NullInt64  `db:"desired_salary"`
	Availability  string         `db:"availability"`
	Phone         string         `db:"phone"`
	Email         string         `db:"email"`
	LinkedIn      string         `db:"linkedin"`
	Presentation  string         `db:"presentation"`
	PhotoURL      sql.NullString `db:"photo_url"`
	VideoURL      string         `db:"video_url"`
	CVURL         sql.NullString `db:"cv_url"`
	Published     bool           `db:"published"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (m *candidateModel) toEntity() *candidate.Candidate {
	entity := &candidate.Candidate{
		ID:           kernel.CandidateID(m.ID),
		UserID:       kernel.UserID(m.UserID),
		Headline:     m.Headline,
		Industry:     kernel.Industry(m.Industry),
		Region:       kernel.Region(m.Region),
		Experience:   kernel.ExperienceLevel(m.Experience),
		Availability: m.Availability,
		Phone:        kernel.Phone(m.Phone),
		Email:        kernel.Email(m.Email),
		LinkedIn:     m.LinkedIn,
		Presentation: m.Presentation,
		VideoURL:     m.VideoURL,
		Published:    m.Published,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.DesiredSalary.Valid {
		salary := kernel.Salary(m.DesiredSalary.Int64)
		entity.DesiredSalary = &salary
	}
	if m.PhotoURL.Valid {
		url := kernel.BucketURL(m.PhotoURL.String)
		entity.PhotoURL = &url
	}
	if m.CVURL.Valid {
		url := kernel.BucketURL(m.CVURL.String)
		entity.CVURL = &url
	}
	return entity
}

func fromEntity(c *candidate.Candidate) *candidateModel {
	model := &candidateModel{
		ID:           string(c.ID),
		UserID:       string(c.UserID),
		Headline:     c.Headline,
		Industry:     string(c.Industry),
		Region:       string(c.Region),
		Experience:   string(c.Experience),
		Availability: c.Availability,
		Phone:        string(c.Phone),
		Email:        string(c.Email),
		LinkedIn:     c.LinkedIn,
		Presentation: c.Presentation,
		VideoURL:     c.VideoURL,
		Published:    c.Published,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.DesiredSalary != nil {
		model.DesiredSalary = sql.NullInt64{Int64: int64(*c.DesiredSalary), Valid: true}
	}
	if c.PhotoURL != nil {
		model.PhotoURL = sql.NullString{String: c.PhotoURL.String(), Valid: true}
	}
	if c.CVURL != nil {
		model.CVURL = sql.NullString{String: c.CVURL.String(), Valid: true}
	}
	return model
}

const candidateColumns = `
	id, user_id, headline, industry, region, experience, desired_salary,
	availability, phone, email, linkedin, presentation, photo_url,
	video_url, cv_url, published, created_at, updated_at
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create stores a new candidate profile
func (r *PostgresCandidateRepository) Create(ctx context.Context, candidateEntity *candidate.Candidate) error {
	model := fromEntity(candidateEntity)

	query := `
		INSERT INTO candidates (
			id, user_id, headline, industry, region, experience, desired_salary,
			availability, phone, email, linkedin, presentation, photo_url,
			video_url, cv_url, published, created_at, updated_at
		) VALUES (
			:id, :user_id, :headline, :industry, :region, :experience, :desired_salary,
			:availability, :phone, :email, :linkedin, :presentation, :photo_url,
			:video_url, :cv_url, :published, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return candidate.ErrProfileExists()
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid user_id: %w", err)
			}
		}
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

// Update updates an existing candidate profile
func (r *PostgresCandidateRepository) Update(ctx context.Context, id kernel.CandidateID, candidateEntity *candidate.Candidate) error {
	model := fromEntity(candidateEntity)
	model.ID = string(id)

	query := `
		UPDATE candidates SET
			headline = :headline,
			industry = :industry,
			region = :region,
			experience = :experience,
			desired_salary = :desired_salary,
			availability = :availability,
			phone = :phone,
			email = :email,
			linkedin = :linkedin,
			presentation = :presentation,
			photo_url = :photo_url,
			video_url = :video_url,
			cv_url = :cv_url,
			published = :published,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return candidate.ErrCandidateNotFound()
	}

	return nil
}

// GetByID retrieves a candidate by ID
func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	var model candidateModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrCandidateNotFound()
		}
		return nil, fmt.Errorf("failed to get candidate by id: %w", err)
	}

	return model.toEntity(), nil
}

// GetByUserID retrieves the profile owned by a user
func (r *PostgresCandidateRepository) GetByUserID(ctx context.Context, userID kernel.UserID) (*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE user_id = $1`

	var model candidateModel
	err := r.db.GetContext(ctx, &model, query, string(userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrCandidateNotFound()
		}
		return nil, fmt.Errorf("failed to get candidate by user: %w", err)
	}

	return model.toEntity(), nil
}

// Delete removes a candidate profile
func (r *PostgresCandidateRepository) Delete(ctx context.Context, id kernel.CandidateID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return candidate.ErrCandidateNotFound()
	}

	return nil
}

// Search retrieves published profiles matching the filters, newest first
func (r *PostgresCandidateRepository) Search(ctx context.Context, req candidate.SearchCandidatesRequest) (*kernel.Paginated[candidate.Candidate], error) {
	where := `WHERE published = TRUE`
	args := []any{}
	arg := 1

	if req.Query != "" {
		where += fmt.Sprintf(` AND (headline ILIKE $%d OR presentation ILIKE $%d)`, arg, arg)
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
	countQuery := `SELECT COUNT(*) FROM candidates ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}

	pagination := req.Pagination.Normalized()
	query := fmt.Sprintf(
		`SELECT %s FROM candidates %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		candidateColumns, where, arg, arg+1,
	)
	args = append(args, pagination.PageSize, (pagination.Page-1)*pagination.PageSize)

	var models []candidateModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}

	items := make([]candidate.Candidate, 0, len(models))
	for i := range models {
		items = append(items, *models[i].toEntity())
	}

	return &kernel.Paginated[candidate.Candidate]{
		Items: items,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(items) == 0,
	}, nil
}
