package account

import (
	"context"

	"github.com/redlaboral/portal/pkg/kernel"
)

type Repository interface {
	// Create stores a new user account
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	// GetByEmail retrieves a user by normalized email
	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)

	// Update updates an existing user
	Update(ctx context.Context, id kernel.UserID, user *User) error

	// Delete removes a user account and cascades to owned records
	Delete(ctx context.Context, id kernel.UserID) error

	// ExistsByEmail checks if an account already uses an email
	ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error)

	// Count returns the total number of accounts
	Count(ctx context.Context) (int64, error)
}
