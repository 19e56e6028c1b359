package candidate

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// ============================================================================
// Request DTOs
// ============================================================================

// UpsertProfileRequest creates or replaces the caller's profile
type UpsertProfileRequest struct {
	Headline      string                 `json:"headline"`
	Industry      kernel.Industry        `json:"industry"`
	Region        kernel.Region          `json:"region"`
	Experience    kernel.ExperienceLevel `json:"experience"`
	DesiredSalary *kernel.Salary         `json:"desired_salary,omitempty"`
	Availability  string                 `json:"availability"`
	Phone         kernel.Phone           `json:"phone"`
	Email         kernel.Email           `json:"email"`
	LinkedIn      string                 `json:"linkedin"`
	Presentation  string                 `json:"presentation"`
	VideoURL      string                 `json:"video_url"`
	Published     bool                   `json:"published"`
}

// SearchCandidatesRequest filters the public profile listing
type SearchCandidatesRequest struct {
	Query      string                   `json:"q"`
	Industry   kernel.Industry          `json:"industry"`
	Region     kernel.Region            `json:"region"`
	Pagination kernel.PaginationOptions `json:"pagination"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// ContactInfo holds the fields only visible to the owner, premium
// companies and administrators
type ContactInfo struct {
	Phone    kernel.Phone `json:"phone"`
	Email    kernel.Email `json:"email"`
	LinkedIn string       `json:"linkedin"`
}

// CandidateResponse is the public view of a profile. Contact is nil
// for viewers without access to it.
type CandidateResponse struct {
	ID             kernel.CandidateID     `json:"id"`
	Headline       string                 `json:"headline"`
	Industry       kernel.Industry        `json:"industry"`
	IndustryName   string                 `json:"industry_name"`
	Region         kernel.Region          `json:"region"`
	RegionName     string                 `json:"region_name"`
	Experience     kernel.ExperienceLevel `json:"experience"`
	ExperienceName string                 `json:"experience_name"`
	DesiredSalary  *kernel.Salary         `json:"desired_salary,omitempty"`
	Availability   string                 `json:"availability"`
	Presentation   string                 `json:"presentation"`
	PhotoURL       *kernel.BucketURL      `json:"photo_url,omitempty"`
	VideoURL       string                 `json:"video_url,omitempty"`
	HasCV          bool                   `json:"has_cv"`
	Published      bool                   `json:"published"`
	Contact        *ContactInfo           `json:"contact,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

// ToResponse converts the entity to its API representation.
// Contact details are attached only when includeContact is true.
func (c *Candidate) ToResponse(includeContact bool) CandidateResponse {
	resp := CandidateResponse{
		ID:             c.ID,
		Headline:       c.Headline,
		Industry:       c.Industry,
		IndustryName:   c.Industry.DisplayName(),
		Region:         c.Region,
		RegionName:     c.Region.DisplayName(),
		Experience:     c.Experience,
		ExperienceName: c.Experience.DisplayName(),
		DesiredSalary:  c.DesiredSalary,
		Availability:   c.Availability,
		Presentation:   c.Presentation,
		PhotoURL:       c.PhotoURL,
		VideoURL:       c.VideoURL,
		HasCV:          c.HasCV(),
		Published:      c.Published,
		CreatedAt:      c.CreatedAt,
	}

	if includeContact {
		resp.Contact = &ContactInfo{
			Phone:    c.Phone,
			Email:    c.Email,
			LinkedIn: c.LinkedIn,
		}
	}

	return resp
}
