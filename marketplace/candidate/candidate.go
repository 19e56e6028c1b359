package candidate

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Candidate is a professional profile published on the board. The
// headline carries the title companies search against and feeds the
// compatibility score on offer pages.
type Candidate struct {
	ID            kernel.CandidateID     `json:"id" db:"id"`
	UserID        kernel.UserID          `json:"user_id" db:"user_id"`
	Headline      string                 `json:"headline" db:"headline"`
	Industry      kernel.Industry        `json:"industry" db:"industry"`
	Region        kernel.Region          `json:"region" db:"region"`
	Experience    kernel.ExperienceLevel `json:"experience" db:"experience"`
	DesiredSalary *kernel.Salary         `json:"desired_salary,omitempty" db:"desired_salary"`
	Availability  string                 `json:"availability" db:"availability"`
	Phone         kernel.Phone           `json:"phone" db:"phone"`
	Email         kernel.Email           `json:"email" db:"email"`
	LinkedIn      string                 `json:"linkedin" db:"linkedin"`
	Presentation  string                 `json:"presentation" db:"presentation"`
	PhotoURL      *kernel.BucketURL      `json:"photo_url,omitempty" db:"photo_url"`
	VideoURL      string                 `json:"video_url" db:"video_url"`
	CVURL         *kernel.BucketURL      `json:"cv_url,omitempty" db:"cv_url"`
	Published     bool                   `json:"published" db:"published"`
	CreatedAt     time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at" db:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsOwnedBy checks whether the profile belongs to the given user
func (c *Candidate) IsOwnedBy(userID kernel.UserID) bool {
	return c.UserID == userID
}

// HasCV checks whether a resume file has been uploaded
func (c *Candidate) HasCV() bool {
	return c.CVURL != nil && !c.CVURL.IsEmpty()
}

// HasPhoto checks whether a profile photo has been uploaded
func (c *Candidate) HasPhoto() bool {
	return c.PhotoURL != nil && !c.PhotoURL.IsEmpty()
}
