package newsletterinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redlaboral/portal/marketplace/newsletter"
	"github.com/redlaboral/portal/pkg/kernel"
)

// PostgresSubscriberRepository implements newsletter.Repository using
// PostgreSQL. The subscribers table has a unique email column.
type PostgresSubscriberRepository struct {
	db *sqlx.DB
}

// NewPostgresSubscriberRepository creates a new PostgreSQL subscriber repository
func NewPostgresSubscriberRepository(db *sqlx.DB) *PostgresSubscriberRepository {
	return &PostgresSubscriberRepository{
		db: db,
	}
}

type subscriberModel struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

func (m *subscriberModel) toEntity() *newsletter.Subscriber {
	return &newsletter.Subscriber{
		ID:        kernel.SubscriberID(m.ID),
		Email:     kernel.Email(m.Email),
		CreatedAt: m.CreatedAt,
	}
}

// Create stores a new subscriber
func (r *PostgresSubscriberRepository) Create(ctx context.Context, subscriber *newsletter.Subscriber) error {
	model := &subscriberModel{
		ID:        string(subscriber.ID),
		Email:     subscriber.Email.String(),
		CreatedAt: subscriber.CreatedAt,
	}

	query := `
		INSERT INTO subscribers (id, email, created_at)
		VALUES (:id, :email, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return newsletter.ErrAlreadySubscribed()
		}
		return fmt.Errorf("failed to create subscriber: %w", err)
	}

	return nil
}

// DeleteByEmail removes a subscriber by email address
func (r *PostgresSubscriberRepository) DeleteByEmail(ctx context.Context, email kernel.Email) error {
	query := `DELETE FROM subscribers WHERE email = $1`

	result, err := r.db.ExecContext(ctx, query, email.String())
	if err != nil {
		return fmt.Errorf("failed to delete subscriber: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return newsletter.ErrNotSubscribed()
	}

	return nil
}

// List retrieves every subscriber, newest first
func (r *PostgresSubscriberRepository) List(ctx context.Context) ([]*newsletter.Subscriber, error) {
	query := `SELECT id, email, created_at FROM subscribers ORDER BY created_at DESC`

	var models []subscriberModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}

	subscribers := make([]*newsletter.Subscriber, 0, len(models))
	for i := range models {
		subscribers = append(subscribers, models[i].toEntity())
	}

	return subscribers, nil
}
