package newsletter

import (
	"context"

	"github.com/redlaboral/portal/pkg/kernel"
)

type Repository interface {
	// Create stores a new subscriber
	Create(ctx context.Context, subscriber *Subscriber) error

	// DeleteByEmail removes a subscriber by email address
	DeleteByEmail(ctx context.Context, email kernel.Email) error

	// List retrieves every subscriber, newest first
	List(ctx context.Context) ([]*Subscriber, error)
}
