// Package mail delivers outbound email. Senders are interchangeable: SMTP for
// production, a logging sender for development and a recorder for tests.
package mail

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the mail transport is known to be down and
// the message was not attempted.
var ErrUnavailable = errors.New("mail transport unavailable")

// ErrInvalidMessage is returned for messages no transport could deliver, such
// as a malformed address.
var ErrInvalidMessage = errors.New("invalid mail message")

// Message is a plain-text email.
type Message struct {
	Subject string
	Body    string
	From    string
	To      []string
}

// Sender delivers messages. Send returns only after the transport accepted or
// rejected the message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
