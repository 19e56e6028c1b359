package offer

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Question is a public question on an offer's detail page. Only
// authenticated users ask; the poster answers through the management
// token.
type Question struct {
	ID         kernel.QuestionID `db:"id" json:"id"`
	OfferID    kernel.OfferID    `db:"offer_id" json:"offer_id"`
	UserID     kernel.UserID     `db:"user_id" json:"user_id"`
	Question   string            `db:"question" json:"question"`
	Answer     string            `db:"answer" json:"answer,omitempty"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
	AnsweredAt *time.Time        `db:"answered_at" json:"answered_at,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsAnswered checks if the poster already replied
func (q *Question) IsAnswered() bool {
	return q.AnsweredAt != nil
}

// Reply records the poster's answer
func (q *Question) Reply(answer string) {
	now := time.Now()
	q.Answer = answer
	q.AnsweredAt = &now
}
