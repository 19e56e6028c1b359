package account

import (
	"time"

	"github.com/redlaboral/portal/pkg/iam/auth"
	"github.com/redlaboral/portal/pkg/kernel"
)

// User is an authenticated account. Candidate and company profiles
// hang off a user through their own domains.
type User struct {
	ID           kernel.UserID `db:"id" json:"id"`
	Email        kernel.Email  `db:"email" json:"email"`
	Name         string        `db:"name" json:"name"`
	Role         auth.Role     `db:"role" json:"role"`
	PasswordHash string        `db:"password_hash" json:"-"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsCompany checks if the account belongs to a company
func (u *User) IsCompany() bool {
	return u.Role == auth.RoleCompany
}

// IsCandidate checks if the account belongs to a candidate
func (u *User) IsCandidate() bool {
	return u.Role == auth.RoleCandidate
}

// IsAdmin checks if the account has staff privileges
func (u *User) IsAdmin() bool {
	return u.Role == auth.RoleAdmin
}
