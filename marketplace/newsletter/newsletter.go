package newsletter

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Subscriber is an email on the newsletter list. One row per address.
type Subscriber struct {
	ID        kernel.SubscriberID `db:"id" json:"id"`
	Email     kernel.Email        `db:"email" json:"email"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
}
