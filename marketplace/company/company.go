package company

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// Company is the public profile a company account curates. Offers
// reference companies loosely by name, so the profile page aggregates
// by name rather than by foreign key.
type Company struct {
	ID          kernel.CompanyID  `db:"id" json:"id"`
	UserID      kernel.UserID     `db:"user_id" json:"user_id"`
	Name        string            `db:"name" json:"name"`
	LogoURL     *kernel.BucketURL `db:"logo_url" json:"logo_url,omitempty"`
	BannerURL   *kernel.BucketURL `db:"banner_url" json:"banner_url,omitempty"`
	Website     string            `db:"website" json:"website,omitempty"`
	Description string            `db:"description" json:"description,omitempty"`
	Featured    bool              `db:"featured" json:"featured"`
	Premium     bool              `db:"premium" json:"premium"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// Rating is a visitor-submitted review of a company. Ratings stay
// hidden until an admin approves them.
type Rating struct {
	ID          kernel.RatingID `db:"id" json:"id"`
	CompanyName string          `db:"company_name" json:"company_name"`
	Stars       int             `db:"stars" json:"stars"`
	Comment     string          `db:"comment" json:"comment"`
	Approved    bool            `db:"approved" json:"approved"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// HasLogo checks if the profile carries a logo image
func (c *Company) HasLogo() bool {
	return c.LogoURL != nil && !c.LogoURL.IsEmpty()
}

// UpgradeToPremium flips the premium flag
func (c *Company) UpgradeToPremium() {
	c.Premium = true
	c.UpdatedAt = time.Now()
}

// Approve makes the rating publicly visible
func (r *Rating) Approve() {
	r.Approved = true
}
