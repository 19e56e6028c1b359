package newslettersrv

import (
	"context"
	"testing"

	"github.com/redlaboral/portal/marketplace/newsletter"
	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySubscriberRepo struct {
	byEmail map[kernel.Email]*newsletter.Subscriber
}

func newMemorySubscriberRepo() *memorySubscriberRepo {
	return &memorySubscriberRepo{byEmail: make(map[kernel.Email]*newsletter.Subscriber)}
}

func (r *memorySubscriberRepo) Create(_ context.Context, s *newsletter.Subscriber) error {
	if _, ok := r.byEmail[s.Email]; ok {
		return newsletter.ErrAlreadySubscribed()
	}
	r.byEmail[s.Email] = s
	return nil
}

func (r *memorySubscriberRepo) DeleteByEmail(_ context.Context, email kernel.Email) error {
	if _, ok := r.byEmail[email]; !ok {
		return newsletter.ErrNotSubscribed()
	}
	delete(r.byEmail, email)
	return nil
}

func (r *memorySubscriberRepo) List(_ context.Context) ([]*newsletter.Subscriber, error) {
	subscribers := make([]*newsletter.Subscriber, 0, len(r.byEmail))
	for _, s := range r.byEmail {
		subscribers = append(subscribers, s)
	}
	return subscribers, nil
}

func TestSubscribeNormalizesAndDeduplicates(t *testing.T) {
	svc := NewNewsletterService(newMemorySubscriberRepo())

	subscribed, err := svc.Subscribe(context.Background(), newsletter.SubscribeRequest{
		Email: "  Lector@Example.COM ",
	})
	require.NoError(t, err)
	assert.Equal(t, kernel.Email("lector@example.com"), subscribed.Email)
	assert.NotEmpty(t, subscribed.ID)

	// Same address with different casing hits the unique constraint
	_, err = svc.Subscribe(context.Background(), newsletter.SubscribeRequest{
		Email: "LECTOR@example.com",
	})
	assert.Error(t, err)

	_, err = svc.Subscribe(context.Background(), newsletter.SubscribeRequest{Email: "no-es-correo"})
	assert.Error(t, err)
}

func TestUnsubscribeRemovesTheAddress(t *testing.T) {
	svc := NewNewsletterService(newMemorySubscriberRepo())

	_, err := svc.Subscribe(context.Background(), newsletter.SubscribeRequest{Email: "lector@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Unsubscribe(context.Background(), "lector@example.com"))

	err = svc.Unsubscribe(context.Background(), "lector@example.com")
	assert.Error(t, err, "a second unsubscribe finds nothing")

	list, err := svc.ListSubscribers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
