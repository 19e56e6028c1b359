package offerinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redlaboral/portal/marketplace/offer"
	"github.com/redlaboral/portal/pkg/kernel"
)

// PostgresQuestionRepository implements offer.QuestionRepository using
// PostgreSQL
type PostgresQuestionRepository struct {
	db *sqlx.DB
}

// NewPostgresQuestionRepository creates a new PostgreSQL question repository
func NewPostgresQuestionRepository(db *sqlx.DB) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{
		db: db,
	}
}

type questionModel struct {
	ID         string         `db:"id"`
	OfferID    string         `db:"offer_id"`
	UserID     string         `db:"user_id"`
	Question   string         `db:"question"`
	Answer     sql.NullString `db:"answer"`
	CreatedAt  time.Time      `db:"created_at"`
	AnsweredAt sql.NullTime   `db:"answered_at"`
}

const questionColumns = `id, offer_id, user_id, question, answer, created_at, answered_at`

func (m *questionModel) toEntity() *offer.Question {
	q := &offer.Question{
		ID:        kernel.QuestionID(m.ID),
		OfferID:   kernel.OfferID(m.OfferID),
		UserID:    kernel.UserID(m.UserID),
		Question:  m.Question,
		CreatedAt: m.CreatedAt,
	}
	if m.Answer.Valid {
		q.Answer = m.Answer.String
	}
	if m.AnsweredAt.Valid {
		answeredAt := m.AnsweredAt.Time
		q.AnsweredAt = &answeredAt
	}
	return q
}

func questionModelFrom(q *offer.Question) *questionModel {
	model := &questionModel{
		ID:        string(q.ID),
		OfferID:   string(q.OfferID),
		UserID:    string(q.UserID),
		Question:  q.Question,
		CreatedAt: q.CreatedAt,
	}
	if q.Answer != "" {
		model.Answer = sql.NullString{String: q.Answer, Valid: true}
	}
	if q.AnsweredAt != nil {
		model.AnsweredAt = sql.NullTime{Time: *q.AnsweredAt, Valid: true}
	}
	return model
}

// Create stores a new question
func (r *PostgresQuestionRepository) Create(ctx context.Context, question *offer.Question) error {
	query := `
		INSERT INTO questions (id, offer_id, user_id, question, answer, created_at, answered_at)
		VALUES (:id, :offer_id, :user_id, :question, :answer, :created_at, :answered_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, questionModelFrom(question))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return offer.ErrOfferNotFound()
		}
		return fmt.Errorf("failed to create question: %w", err)
	}

	return nil
}

// Update stores the poster's answer on a question
func (r *PostgresQuestionRepository) Update(ctx context.Context, id kernel.QuestionID, question *offer.Question) error {
	query := `
		UPDATE questions
		SET answer = :answer, answered_at = :answered_at
		WHERE id = :id
	`

	model := questionModelFrom(question)
	model.ID = string(id)

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return offer.ErrQuestionNotFound()
	}

	return nil
}

// GetByID retrieves a question by ID
func (r *PostgresQuestionRepository) GetByID(ctx context.Context, id kernel.QuestionID) (*offer.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	var model questionModel
	if err := r.db.GetContext(ctx, &model, query, string(id)); err != nil {
		if err == sql.ErrNoRows {
			return nil, offer.ErrQuestionNotFound()
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return model.toEntity(), nil
}

// ListByOfferID retrieves an offer's questions, oldest first
func (r *PostgresQuestionRepository) ListByOfferID(ctx context.Context, offerID kernel.OfferID) ([]*offer.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE offer_id = $1 ORDER BY created_at ASC`

	var models []questionModel
	if err := r.db.SelectContext(ctx, &models, query, string(offerID)); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	questions := make([]*offer.Question, 0, len(models))
	for i := range models {
		questions = append(questions, models[i].toEntity())
	}

	return questions, nil
}
