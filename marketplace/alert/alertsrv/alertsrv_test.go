package alertsrv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redlaboral/portal/marketplace/alert"
	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/redlaboral/portal/pkg/mailx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAlertRepo struct {
	alerts  []*alert.Alert
	listErr error
}

func (r *memoryAlertRepo) Create(_ context.Context, a *alert.Alert) error {
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *memoryAlertRepo) GetByID(_ context.Context, id kernel.AlertID) (*alert.Alert, error) {
	for _, a := range r.alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, alert.ErrAlertNotFound()
}

func (r *memoryAlertRepo) ListByRegion(_ context.Context, region kernel.Region) ([]*alert.Alert, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*alert.Alert
	for _, a := range r.alerts {
		if a.Region == region {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryAlertRepo) ListByEmail(_ context.Context, email kernel.Email) ([]*alert.Alert, error) {
	var out []*alert.Alert
	for _, a := range r.alerts {
		if a.Email.Normalized() == email.Normalized() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryAlertRepo) Delete(_ context.Context, id kernel.AlertID) error {
	for i, a := range r.alerts {
		if a.ID == id {
			r.alerts = append(r.alerts[:i], r.alerts[i+1:]...)
			return nil
		}
	}
	return alert.ErrAlertNotFound()
}

type recordingMailer struct {
	mu      sync.Mutex
	sent    []mailx.Message
	failFor map[string]bool
}

func (m *recordingMailer) Send(_ context.Context, msg mailx.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[msg.To.String()] {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, msg := range m.sent {
		out = append(out, msg.To.String())
	}
	return out
}

func newTestService(repo alert.Repository, mailer mailx.Mailer) (*AlertService, *mailx.Dispatcher) {
	dispatcher := mailx.NewDispatcher(mailer, 2, 32, time.Second)
	return NewAlertService(repo, dispatcher, "https://www.redlaboral.cl"), dispatcher
}

func storedAlert(email, keyword string, region kernel.Region) *alert.Alert {
	return &alert.Alert{
		ID:        kernel.NewAlertID(email + "/" + keyword),
		Email:     kernel.Email(email),
		Keyword:   keyword,
		Region:    region,
		CreatedAt: time.Now(),
	}
}

func TestCreateAlertValidation(t *testing.T) {
	service, dispatcher := newTestService(&memoryAlertRepo{}, &recordingMailer{})
	defer dispatcher.Stop()

	_, err := service.CreateAlert(context.Background(), alert.CreateAlertRequest{
		Email: "no-at-sign", Keyword: "ventas", Region: kernel.RegionMetropolitana,
	})
	assert.Error(t, err)

	_, err = service.CreateAlert(context.Background(), alert.CreateAlertRequest{
		Email: "ana@example.com", Keyword: "   ", Region: kernel.RegionMetropolitana,
	})
	assert.Error(t, err)

	_, err = service.CreateAlert(context.Background(), alert.CreateAlertRequest{
		Email: "ana@example.com", Keyword: "ventas", Region: "XX",
	})
	assert.Error(t, err)

	created, err := service.CreateAlert(context.Background(), alert.CreateAlertRequest{
		Email: "Ana@Example.com", Keyword: " ventas ", Region: kernel.RegionMetropolitana,
	})
	require.NoError(t, err)
	assert.Equal(t, kernel.Email("ana@example.com"), created.Email)
	assert.Equal(t, "ventas", created.Keyword)
}

func TestNotifyMatchesSubstringAndToken(t *testing.T) {
	repo := &memoryAlertRepo{alerts: []*alert.Alert{
		storedAlert("substring@example.com", "vende", kernel.RegionMetropolitana),
		storedAlert("token@example.com", "Senior", kernel.RegionMetropolitana),
		storedAlert("othertext@example.com", "contador", kernel.RegionMetropolitana),
		storedAlert("otherregion@example.com", "vendedor", kernel.RegionValparaiso),
	}}
	mailer := &recordingMailer{}
	service, dispatcher := newTestService(repo, mailer)

	service.NotifyOfferPublished(context.Background(), alert.OfferPublished{
		ID: "of-1", Title: "Vendedor Senior", Region: kernel.RegionMetropolitana,
	})
	dispatcher.Stop()

	assert.ElementsMatch(t, []string{"substring@example.com", "token@example.com"}, mailer.recipients())
}

func TestNotifyDeduplicatesRecipients(t *testing.T) {
	repo := &memoryAlertRepo{alerts: []*alert.Alert{
		storedAlert("dup@example.com", "vendedor", kernel.RegionMetropolitana),
		storedAlert("DUP@example.com", "senior", kernel.RegionMetropolitana),
	}}
	mailer := &recordingMailer{}
	service, dispatcher := newTestService(repo, mailer)

	service.NotifyOfferPublished(context.Background(), alert.OfferPublished{
		ID: "of-2", Title: "Vendedor Senior", Region: kernel.RegionMetropolitana,
	})
	dispatcher.Stop()

	assert.Equal(t, []string{"dup@example.com"}, mailer.recipients())
}

func TestNotifyMessageContent(t *testing.T) {
	repo := &memoryAlertRepo{alerts: []*alert.Alert{
		storedAlert("dest@example.com", "garzón", kernel.RegionBiobio),
	}}
	mailer := &recordingMailer{}
	service, dispatcher := newTestService(repo, mailer)

	service.NotifyOfferPublished(context.Background(), alert.OfferPublished{
		ID: "of-77", Title: "Garzón para restaurante", Region: kernel.RegionBiobio,
	})
	dispatcher.Stop()

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "🔔 Alerta: Garzón para restaurante", mailer.sent[0].Subject)
	assert.Equal(t, "Nueva oferta: Garzón para restaurante. Postula aquí: https://www.redlaboral.cl/oferta/of-77/", mailer.sent[0].Body)
}

func TestNotifyFailureIsolation(t *testing.T) {
	repo := &memoryAlertRepo{alerts: []*alert.Alert{
		storedAlert("ok@example.com", "chofer", kernel.RegionMaule),
		storedAlert("broken@example.com", "chofer", kernel.RegionMaule),
	}}
	mailer := &recordingMailer{failFor: map[string]bool{"broken@example.com": true}}
	service, dispatcher := newTestService(repo, mailer)

	assert.NotPanics(t, func() {
		service.NotifyOfferPublished(context.Background(), alert.OfferPublished{
			ID: "of-3", Title: "Chofer reparto", Region: kernel.RegionMaule,
		})
	})
	dispatcher.Stop()

	assert.Equal(t, []string{"ok@example.com"}, mailer.recipients())
}

func TestNotifyRepositoryFailureIsSwallowed(t *testing.T) {
	repo := &memoryAlertRepo{listErr: errors.New("connection refused")}
	mailer := &recordingMailer{}
	service, dispatcher := newTestService(repo, mailer)
	defer dispatcher.Stop()

	assert.NotPanics(t, func() {
		service.NotifyOfferPublished(context.Background(), alert.OfferPublished{
			ID: "of-4", Title: "Cualquiera", Region: kernel.RegionMetropolitana,
		})
	})
	assert.Empty(t, mailer.recipients())
}

func TestNotifyEmptyTitleMatchesNothing(t *testing.T) {
	repo := &memoryAlertRepo{alerts: []*alert.Alert{
		storedAlert("dest@example.com", "vendedor", kernel.RegionMetropolitana),
	}}
	mailer := &recordingMailer{}
	service, dispatcher := newTestService(repo, mailer)
	defer dispatcher.Stop()

	service.NotifyOfferPublished(context.Background(), alert.OfferPublished{
		ID: "of-5", Title: "", Region: kernel.RegionMetropolitana,
	})
	assert.Empty(t, mailer.recipients())
}

func TestMatchRecipientsIsIdempotent(t *testing.T) {
	alerts := []*alert.Alert{
		storedAlert("a@example.com", "vendedor", kernel.RegionMetropolitana),
		storedAlert("b@example.com", "senior", kernel.RegionMetropolitana),
		storedAlert("a@example.com", "ventas", kernel.RegionMetropolitana),
	}
	offer := alert.OfferPublished{ID: "of-6", Title: "Vendedor Senior de Ventas", Region: kernel.RegionMetropolitana}

	first := matchRecipients(alerts, offer)
	second := matchRecipients(alerts, offer)

	assert.Equal(t, first, second)
	assert.Equal(t, []kernel.Email{"a@example.com", "b@example.com"}, first)
}
