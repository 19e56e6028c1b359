package alert

import (
	"context"

	"github.com/redlaboral/portal/pkg/kernel"
)

type Repository interface {
	// Create stores a new alert
	Create(ctx context.Context, alert *Alert) error

	// GetByID retrieves an alert by ID
	GetByID(ctx context.Context, id kernel.AlertID) (*Alert, error)

	// ListByRegion retrieves every alert subscribed to a region
	ListByRegion(ctx context.Context, region kernel.Region) ([]*Alert, error)

	// ListByEmail retrieves the alerts created with an email address
	ListByEmail(ctx context.Context, email kernel.Email) ([]*Alert, error)

	// Delete removes an alert by ID
	Delete(ctx context.Context, id kernel.AlertID) error
}
