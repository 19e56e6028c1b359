package service

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// CreateServiceRequest creates a new freelance listing
type CreateServiceRequest struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Industry       kernel.Industry `json:"industry"`
	Region         kernel.Region   `json:"region"`
	Phone          kernel.Phone    `json:"phone,omitempty"`
	ContactEmail   kernel.Email    `json:"contact_email,omitempty"`
	ReferencePrice *kernel.Salary  `json:"reference_price,omitempty"`
	Published      bool            `json:"published"`
}

// UpdateServiceRequest edits an owned listing
type UpdateServiceRequest struct {
	Title          *string          `json:"title,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Industry       *kernel.Industry `json:"industry,omitempty"`
	Region         *kernel.Region   `json:"region,omitempty"`
	Phone          *kernel.Phone    `json:"phone,omitempty"`
	ContactEmail   *kernel.Email    `json:"contact_email,omitempty"`
	ReferencePrice *kernel.Salary   `json:"reference_price,omitempty"`
	Published      *bool            `json:"published,omitempty"`
}

// SearchServicesRequest filters the public listing
type SearchServicesRequest struct {
	Query      string                   `json:"q"`
	Industry   kernel.Industry          `json:"industry"`
	Region     kernel.Region            `json:"region"`
	Pagination kernel.PaginationOptions `json:"pagination"`
}

// ServiceResponse is the API representation of a listing
type ServiceResponse struct {
	ID             kernel.ServiceID  `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Industry       kernel.Industry   `json:"industry"`
	IndustryName   string            `json:"industry_name"`
	Region         kernel.Region     `json:"region"`
	RegionName     string            `json:"region_name"`
	Phone          kernel.Phone      `json:"phone,omitempty"`
	ContactEmail   kernel.Email      `json:"contact_email,omitempty"`
	ImageURL       *kernel.BucketURL `json:"image_url,omitempty"`
	ReferencePrice *kernel.Salary    `json:"reference_price,omitempty"`
	Published      bool              `json:"published"`
	CreatedAt      time.Time         `json:"created_at"`
}

// ToResponse converts the entity to its API representation
func (s *Service) ToResponse() ServiceResponse {
	return ServiceResponse{
		ID:             s.ID,
		Title:          s.Title,
		Description:    s.Description,
		Industry:       s.Industry,
		IndustryName:   s.Industry.DisplayName(),
		Region:         s.Region,
		RegionName:     s.Region.DisplayName(),
		Phone:          s.Phone,
		ContactEmail:   s.ContactEmail,
		ImageURL:       s.ImageURL,
		ReferencePrice: s.ReferencePrice,
		Published:      s.Published,
		CreatedAt:      s.CreatedAt,
	}
}
