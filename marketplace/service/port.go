package service

import (
	"context"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Repository defines service listing persistence operations
type Repository interface {
	// Create stores a new service listing
	Create(ctx context.Context, service *Service) error

	// Update modifies an existing service listing
	Update(ctx context.Context, id kernel.ServiceID, service *Service) error

	// GetByID retrieves a service listing by its ID
	GetByID(ctx context.Context, id kernel.ServiceID) (*Service, error)

	// Delete removes a service listing
	Delete(ctx context.Context, id kernel.ServiceID) error

	// ListByUserID retrieves every listing owned by a user
	ListByUserID(ctx context.Context, userID kernel.UserID) ([]*Service, error)

	// Search retrieves published listings matching the filters
	Search(ctx context.Context, req SearchServicesRequest) (*kernel.Paginated[Service], error)
}
