package service

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Service is a freelance service listing: a person offering work
// directly instead of applying to offers.
type Service struct {
	ID             kernel.ServiceID  `json:"id" db:"id"`
	UserID         kernel.UserID     `json:"user_id" db:"user_id"`
	Title          string            `json:"title" db:"title"`
	Description    string            `json:"description" db:"description"`
	Industry       kernel.Industry   `json:"industry" db:"industry"`
	Region         kernel.Region     `json:"region" db:"region"`
	Phone          kernel.Phone      `json:"phone" db:"phone"`
	ContactEmail   kernel.Email      `json:"contact_email" db:"contact_email"`
	ImageURL       *kernel.BucketURL `json:"image_url,omitempty" db:"image_url"`
	ReferencePrice *kernel.Salary    `json:"reference_price,omitempty" db:"reference_price"`
	Published      bool              `json:"published" db:"published"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
}

// IsOwnedBy checks whether the listing belongs to the given user
func (s *Service) IsOwnedBy(userID kernel.UserID) bool {
	return s.UserID == userID
}
