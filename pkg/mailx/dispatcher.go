package mailx

import (
	"context"
	"sync"
	"time"

	"github.com/redlaboral/portal/pkg/logx"
)

// Dispatcher fans messages out to a worker pool. Enqueue never blocks
// the caller on delivery and delivery failures are logged, not returned.
type Dispatcher struct {
	mailer  Mailer
	queue   chan Message
	timeout time.Duration

	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
}

// NewDispatcher starts workers goroutines draining a buffered queue.
// Messages enqueued after Stop, or while the queue is full, are dropped
// with a warning.
func NewDispatcher(mailer Mailer, workers, queueSize int, timeout time.Duration) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 64
	}

	d := &Dispatcher{
		mailer:  mailer,
		queue:   make(chan Message, queueSize),
		timeout: timeout,
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}

	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := d.mailer.Send(ctx, msg); err != nil {
		logx.Errorf("mail delivery to %s failed: %v", msg.To.String(), err)
		return
	}

	logx.Debugf("mail delivered to %s", msg.To.String())
}

// Enqueue hands msg to the pool and returns immediately
func (d *Dispatcher) Enqueue(msg Message) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		logx.Warnf("mail dispatcher stopped, dropping message to %s", msg.To.String())
		return
	}

	select {
	case d.queue <- msg:
	default:
		logx.Warnf("mail queue full, dropping message to %s", msg.To.String())
	}
}

// Stop closes the queue and waits for in-flight deliveries to finish
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
