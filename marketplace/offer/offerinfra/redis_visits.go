package offerinfra

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/redlaboral/portal/pkg/logx"
)

// visitStore reads and persists durable visit totals. Implemented by
// PostgresOfferRepository against the offers.visits column.
type visitStore interface {
	GetVisits(ctx context.Context, id kernel.OfferID) (int64, error)
	SaveVisits(ctx context.Context, id kernel.OfferID, total int64) error
}

// RedisVisitCounter implements offer.VisitCounter. Counts live in Redis
// while hot; VisitFlusher persists them so totals survive a Redis
// restart. A fresh key is seeded from the stored total.
type RedisVisitCounter struct {
	client *redis.Client
	store  visitStore
}

// NewRedisVisitCounter creates a new Redis-backed visit counter
func NewRedisVisitCounter(client *redis.Client, store visitStore) *RedisVisitCounter {
	return &RedisVisitCounter{
		client: client,
		store:  store,
	}
}

const visitKeyPrefix = "offer:visits:"

func visitKey(id kernel.OfferID) string {
	return visitKeyPrefix + id.String()
}

// Increment bumps the visit count for an offer and returns the new total
func (c *RedisVisitCounter) Increment(ctx context.Context, id kernel.OfferID) (int64, error) {
	total, err := c.client.Incr(ctx, visitKey(id)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment visits: %w", err)
	}
	if total == 1 {
		// First count since the key existed: fold in the persisted total.
		prior, err := c.store.GetVisits(ctx, id)
		if err != nil {
			logx.Warnf("Failed to seed visit count for offer %s: %v", id, err)
			return total, nil
		}
		if prior > 0 {
			total, err = c.client.IncrBy(ctx, visitKey(id), prior).Result()
			if err != nil {
				return 0, fmt.Errorf("failed to seed visits: %w", err)
			}
		}
	}
	return total, nil
}

// Get retrieves the current visit count for an offer
func (c *RedisVisitCounter) Get(ctx context.Context, id kernel.OfferID) (int64, error) {
	total, err := c.client.Get(ctx, visitKey(id)).Int64()
	if err != nil {
		if err == redis.Nil {
			return c.store.GetVisits(ctx, id)
		}
		return 0, fmt.Errorf("failed to get visits: %w", err)
	}
	return total, nil
}
