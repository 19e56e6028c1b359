package newslettersrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redlaboral/portal/marketplace/newsletter"
	"github.com/redlaboral/portal/pkg/kernel"
)

// NewsletterService manages the subscriber list
type NewsletterService struct {
	repo newsletter.Repository
}

// NewNewsletterService creates a new newsletter service instance
func NewNewsletterService(repo newsletter.Repository) *NewsletterService {
	return &NewsletterService{
		repo: repo,
	}
}

// Subscribe adds an email to the list. Open to any visitor.
func (s *NewsletterService) Subscribe(ctx context.Context, req newsletter.SubscribeRequest) (*newsletter.SubscriberResponse, error) {
	if !req.Email.IsValid() {
		return nil, newsletter.ErrInvalidEmail().WithDetail("email", req.Email.String())
	}

	subscriber := &newsletter.Subscriber{
		ID:        kernel.NewSubscriberID(uuid.NewString()),
		Email:     req.Email.Normalized(),
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, subscriber); err != nil {
		return nil, err
	}

	response := subscriber.ToResponse()
	return &response, nil
}

// Unsubscribe removes an email from the list
func (s *NewsletterService) Unsubscribe(ctx context.Context, email kernel.Email) error {
	if !email.IsValid() {
		return newsletter.ErrInvalidEmail().WithDetail("email", email.String())
	}
	return s.repo.DeleteByEmail(ctx, email.Normalized())
}

// ListSubscribers retrieves the full list, newest first
func (s *NewsletterService) ListSubscribers(ctx context.Context) ([]newsletter.SubscriberResponse, error) {
	subscribers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]newsletter.SubscriberResponse, 0, len(subscribers))
	for _, subscriber := range subscribers {
		responses = append(responses, subscriber.ToResponse())
	}
	return responses, nil
}
