package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrUnsupported is returned when the selected broker cannot honor a request,
	// such as delayed delivery on NATS.
	ErrUnsupported = errors.New("messaging: unsupported operation")

	// ErrClosed is returned when the client was already closed.
	ErrClosed = errors.New("messaging: client closed")

	// ErrDestinationRequired is returned when the topic or subject is empty.
	ErrDestinationRequired = errors.New("messaging: destination is required")

	// ErrHandlerRequired is returned when Consume is called with a nil handler.
	ErrHandlerRequired = errors.New("messaging: handler is required")
)

// Messaging publishes and consumes messages.
type Messaging interface {
	io.Closer
	Publisher
	Consumer
}

// Publisher sends a message to a destination (topic or subject).
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) error
}

// Consumer blocks delivering messages from source to handler until ctx is done.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one message. With auto-ack enabled a nil error acks the
// message and a non-nil error requests redelivery where the broker supports it.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a message to publish.
type OutgoingMessage struct {
	Body []byte
	// Key selects the Kafka partition.
	Key []byte
	// Headers are dropped by NSQ, which has no header support.
	Headers []Header
	// Delay defers delivery. Only NSQ supports it.
	Delay time.Duration
}

// Header is a message header.
type Header struct {
	Key   string
	Value []byte
}

// Message is a received message.
type Message interface {
	ID() string
	Source() string
	Body() []byte
	Key() []byte
	Headers() []Header
	// Header returns the first value stored under key.
	Header(key string) string
	Timestamp() time.Time

	Ack(ctx context.Context) error
	Nack(ctx context.Context) error
}
