package alert

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// CreateAlertRequest - DTO for creating a new alert. No authentication
// is required, any visitor can subscribe.
type CreateAlertRequest struct {
	Email   kernel.Email  `json:"email" validate:"required"`
	Keyword string        `json:"keyword" validate:"required"`
	Region  kernel.Region `json:"region" validate:"required"`
}

// AlertResponse - DTO returned for a stored alert
type AlertResponse struct {
	ID        kernel.AlertID `json:"id"`
	Email     kernel.Email   `json:"email"`
	Keyword   string         `json:"keyword"`
	Region    kernel.Region  `json:"region"`
	CreatedAt time.Time      `json:"created_at"`
}

// ToResponse converts an alert entity to its response DTO
func (a *Alert) ToResponse() AlertResponse {
	return AlertResponse{
		ID:        a.ID,
		Email:     a.Email,
		Keyword:   a.Keyword,
		Region:    a.Region,
		CreatedAt: a.CreatedAt,
	}
}

// OfferPublished is the snapshot of a freshly persisted offer handed to
// the notifier. The notifier never mutates the offer itself.
type OfferPublished struct {
	ID     kernel.OfferID
	Title  string
	Region kernel.Region
}
