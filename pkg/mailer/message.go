package mailer

import "context"

// Kind tells the two copies of a report apart in logs and metrics.
type Kind string

const (
	KindAdmin Kind = "admin"
	KindUser  Kind = "user"
)

// Message is one HTML email.
type Message struct {
	Kind        Kind
	FromName    string
	FromAddress string
	To          string
	Subject     string
	HTML        string
	// MessageID is optional; when empty the transport generates one.
	MessageID string
}

// Sender delivers a single message and blocks until the transport accepted it.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
