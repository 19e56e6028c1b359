package mailx

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailerRejectsEmptyRecipient(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: "2525", From: "noreply@redlaboral.cl"})

	err := m.Send(context.Background(), Message{Subject: "hola"})
	assert.Error(t, err)
}

func TestSMTPMailerSendStopsOnCancelledContext(t *testing.T) {
	// The listener never answers, so only the context can end the call
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	m := NewSMTPMailer(SMTPConfig{Host: host, Port: port, From: "noreply@redlaboral.cl"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- m.Send(ctx, Message{To: kernel.Email("lector@example.com"), Subject: "hola"})
	}()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Send did not return after the context deadline")
	}
}

func TestSMTPMailerSpeaksFullConversation(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		r := bufio.NewReader(conn)
		write := func(line string) { conn.Write([]byte(line + "\r\n")) }

		write("220 test relay")
		var body strings.Builder
		inData := false
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\r\n")

			if inData {
				if line == "." {
					inData = false
					write("250 ok")
					received <- body.String()
					continue
				}
				body.WriteString(line + "\n")
				continue
			}

			switch {
			case strings.HasPrefix(line, "EHLO"), strings.HasPrefix(line, "HELO"):
				write("250 test relay")
			case strings.HasPrefix(line, "MAIL FROM"):
				write("250 ok")
			case strings.HasPrefix(line, "RCPT TO"):
				write("250 ok")
			case line == "DATA":
				write("354 go ahead")
				inData = true
			case line == "QUIT":
				write("221 bye")
				return
			default:
				write("250 ok")
			}
		}
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	m := NewSMTPMailer(SMTPConfig{Host: host, Port: port, From: "noreply@redlaboral.cl"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = m.Send(ctx, Message{
		To:      kernel.Email("lector@example.com"),
		Subject: "Nuevas ofertas",
		Body:    "Hay nuevas ofertas en tu región",
	})
	require.NoError(t, err)

	select {
	case payload := <-received:
		assert.Contains(t, payload, "To: lector@example.com")
		assert.Contains(t, payload, "Subject: Nuevas ofertas")
		assert.Contains(t, payload, "Hay nuevas ofertas")
	case <-time.After(2 * time.Second):
		t.Fatal("relay never received the message body")
	}
}
