package company

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// UpsertProfileRequest - DTO for creating or updating the caller's
// company profile
type UpsertProfileRequest struct {
	Name        string `json:"name" validate:"required"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
}

// SubmitRatingRequest - DTO for a visitor review of a company
type SubmitRatingRequest struct {
	Stars   int    `json:"stars" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

// CompanyResponse - DTO returned for a company profile
type CompanyResponse struct {
	ID          kernel.CompanyID  `json:"id"`
	Name        string            `json:"name"`
	LogoURL     *kernel.BucketURL `json:"logo_url,omitempty"`
	BannerURL   *kernel.BucketURL `json:"banner_url,omitempty"`
	Website     string            `json:"website,omitempty"`
	Description string            `json:"description,omitempty"`
	Featured    bool              `json:"featured"`
	Premium     bool              `json:"premium"`
	CreatedAt   time.Time         `json:"created_at"`
}

// RatingResponse - DTO returned for an approved rating
type RatingResponse struct {
	ID        kernel.RatingID `json:"id"`
	Stars     int             `json:"stars"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProfilePageResponse - DTO for the public company page: profile (may
// be absent when only offers mention the name), approved ratings and
// their average.
type ProfilePageResponse struct {
	Name         string           `json:"name"`
	Profile      *CompanyResponse `json:"profile,omitempty"`
	Ratings      []RatingResponse `json:"ratings"`
	AverageStars *float64         `json:"average_stars,omitempty"`
}

// ToResponse converts a company entity to its response DTO
func (c *Company) ToResponse() CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		LogoURL:     c.LogoURL,
		BannerURL:   c.BannerURL,
		Website:     c.Website,
		Description: c.Description,
		Featured:    c.Featured,
		Premium:     c.Premium,
		CreatedAt:   c.CreatedAt,
	}
}

// ToResponse converts a rating entity to its response DTO
func (r *Rating) ToResponse() RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		Stars:     r.Stars,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
