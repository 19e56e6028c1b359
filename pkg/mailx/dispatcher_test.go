package mailx

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/stretchr/testify/assert"
)

type recordingMailer struct {
	mu      sync.Mutex
	sent    []Message
	failFor map[string]bool
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[msg.To.String()] {
		return errors.New("relay rejected recipient")
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

func TestDispatcherDeliversAllEnqueued(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, 3, 16, time.Second)

	for _, addr := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		d.Enqueue(Message{To: kernel.Email(addr), Subject: "hola", Body: "cuerpo"})
	}
	d.Stop()

	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com", "c@example.com"}, mailer.recipients())
}

func TestDispatcherFailureDoesNotAffectOtherRecipients(t *testing.T) {
	mailer := &recordingMailer{failFor: map[string]bool{"broken@example.com": true}}
	d := NewDispatcher(mailer, 2, 16, time.Second)

	d.Enqueue(Message{To: kernel.Email("ok1@example.com"), Subject: "s"})
	d.Enqueue(Message{To: kernel.Email("broken@example.com"), Subject: "s"})
	d.Enqueue(Message{To: kernel.Email("ok2@example.com"), Subject: "s"})
	d.Stop()

	assert.ElementsMatch(t, []string{"ok1@example.com", "ok2@example.com"}, mailer.recipients())
}

func TestDispatcherEnqueueAfterStopIsDropped(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, 1, 4, time.Second)
	d.Stop()

	assert.NotPanics(t, func() {
		d.Enqueue(Message{To: kernel.Email("late@example.com"), Subject: "s"})
	})
	assert.Empty(t, mailer.recipients())
}
