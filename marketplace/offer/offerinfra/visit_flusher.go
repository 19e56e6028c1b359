package offerinfra

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/redlaboral/portal/pkg/logx"
)

// VisitFlusher periodically copies the Redis visit counts into
// Postgres. Flush failures are logged and retried on the next tick; a
// final flush runs on Stop.
type VisitFlusher struct {
	client   *redis.Client
	store    visitStore
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewVisitFlusher creates a new visit count flusher
func NewVisitFlusher(client *redis.Client, store visitStore, interval time.Duration) *VisitFlusher {
	return &VisitFlusher{
		client:   client,
		store:    store,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background flush loop
func (f *VisitFlusher) Start() {
	go func() {
		defer close(f.done)
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				f.flush(context.Background())
			case <-f.stop:
				f.flush(context.Background())
				return
			}
		}
	}()
}

// Stop flushes once more and terminates the loop
func (f *VisitFlusher) Stop() {
	close(f.stop)
	<-f.done
}

func (f *VisitFlusher) flush(ctx context.Context) {
	iter := f.client.Scan(ctx, 0, visitKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		total, err := f.client.Get(ctx, key).Int64()
		if err != nil {
			logx.Warnf("Failed to read visit count %s: %v", key, err)
			continue
		}

		id := kernel.OfferID(strings.TrimPrefix(key, visitKeyPrefix))
		if err := f.store.SaveVisits(ctx, id, total); err != nil {
			logx.Warnf("Failed to persist visit count for offer %s: %v", id, err)
		}
	}
	if err := iter.Err(); err != nil {
		logx.Warnf("Visit count scan failed: %v", err)
	}
}
