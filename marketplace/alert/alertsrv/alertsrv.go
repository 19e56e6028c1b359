package alertsrv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redlaboral/portal/marketplace/alert"
	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/redlaboral/portal/pkg/logx"
	"github.com/redlaboral/portal/pkg/mailx"
)

// AlertService manages alert subscriptions and fans out notifications
// when offers are published.
type AlertService struct {
	repo    alert.Repository
	mail    *mailx.Dispatcher
	baseURL string
}

// NewAlertService creates a new alert service instance
func NewAlertService(repo alert.Repository, mail *mailx.Dispatcher, baseURL string) *AlertService {
	return &AlertService{
		repo:    repo,
		mail:    mail,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// CreateAlert stores a new subscription. Open to any visitor.
func (s *AlertService) CreateAlert(ctx context.Context, req alert.CreateAlertRequest) (*alert.AlertResponse, error) {
	if !req.Email.IsValid() {
		return nil, alert.ErrInvalidEmail().WithDetail("email", req.Email.String())
	}
	if strings.TrimSpace(req.Keyword) == "" {
		return nil, alert.ErrMissingKeyword()
	}
	if !req.Region.IsValid() {
		return nil, alert.ErrInvalidRegion().WithDetail("region", string(req.Region))
	}

	newAlert := &alert.Alert{
		ID:        kernel.NewAlertID(uuid.NewString()),
		Email:     req.Email.Normalized(),
		Keyword:   strings.TrimSpace(req.Keyword),
		Region:    req.Region,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, newAlert); err != nil {
		return nil, err
	}

	response := newAlert.ToResponse()
	return &response, nil
}

// ListAlertsByEmail returns the subscriptions created with an address
func (s *AlertService) ListAlertsByEmail(ctx context.Context, email kernel.Email) ([]alert.AlertResponse, error) {
	alerts, err := s.repo.ListByEmail(ctx, email.Normalized())
	if err != nil {
		return nil, err
	}

	responses := make([]alert.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		responses = append(responses, a.ToResponse())
	}
	return responses, nil
}

// DeleteAlert removes a subscription
func (s *AlertService) DeleteAlert(ctx context.Context, id kernel.AlertID) error {
	return s.repo.Delete(ctx, id)
}

// DeleteOwnAlert removes a subscription only when requester created it.
// Alerts of other addresses stay hidden behind a not-found error.
func (s *AlertService) DeleteOwnAlert(ctx context.Context, id kernel.AlertID, requester kernel.Email) error {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if stored.Email.Normalized() != requester.Normalized() {
		return alert.ErrAlertNotFound()
	}

	return s.repo.Delete(ctx, id)
}

// NotifyOfferPublished matches the offer against stored alerts and
// enqueues one email per distinct recipient. It is best-effort end to
// end: lookup or delivery problems are logged and swallowed so the
// publish path never fails or blocks on notifications.
func (s *AlertService) NotifyOfferPublished(ctx context.Context, offer alert.OfferPublished) {
	alerts, err := s.repo.ListByRegion(ctx, offer.Region)
	if err != nil {
		logx.Errorf("alert lookup for offer %s failed: %v", offer.ID.String(), err)
		return
	}

	recipients := matchRecipients(alerts, offer)
	if len(recipients) == 0 {
		return
	}

	subject := fmt.Sprintf("🔔 Alerta: %s", offer.Title)
	body := fmt.Sprintf("Nueva oferta: %s. Postula aquí: %s/oferta/%s/", offer.Title, s.baseURL, offer.ID.String())

	for _, recipient := range recipients {
		s.mail.Enqueue(mailx.Message{
			To:      recipient,
			Subject: subject,
			Body:    body,
		})
	}

	logx.Infof("offer %s matched %d alert recipient(s)", offer.ID.String(), len(recipients))
}

// matchRecipients collapses matching alerts into a recipient set,
// keeping first-seen order. Emails are compared case-insensitively.
func matchRecipients(alerts []*alert.Alert, offer alert.OfferPublished) []kernel.Email {
	seen := make(map[kernel.Email]bool)
	var recipients []kernel.Email

	for _, a := range alerts {
		if !a.Matches(offer.Region, offer.Title) {
			continue
		}
		normalized := a.Email.Normalized()
		if normalized.IsEmpty() || seen[normalized] {
			continue
		}
		seen[normalized] = true
		recipients = append(recipients, normalized)
	}

	return recipients
}
