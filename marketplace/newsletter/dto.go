package newsletter

import (
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
)

// SubscribeRequest - DTO for joining or leaving the newsletter. No
// authentication is required, any visitor can subscribe.
type SubscribeRequest struct {
	Email kernel.Email `json:"email" validate:"required"`
}

// SubscriberResponse - DTO returned for a stored subscriber
type SubscriberResponse struct {
	ID        kernel.SubscriberID `json:"id"`
	Email     kernel.Email        `json:"email"`
	CreatedAt time.Time           `json:"created_at"`
}

// ToResponse converts a subscriber entity to its response DTO
func (s *Subscriber) ToResponse() SubscriberResponse {
	return SubscriberResponse{
		ID:        s.ID,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
	}
}
