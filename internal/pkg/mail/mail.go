package mail

import (
	"context"
	"io"
)

// Message is a provider-neutral email payload.
type Message struct {
	// From overrides the configured default sender when set.
	From     string
	To       []string
	Cc       []string
	Bcc      []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mail sends messages.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}
