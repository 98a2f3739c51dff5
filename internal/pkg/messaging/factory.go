package messaging

import (
	"errors"
	"fmt"
	"strings"
)

// Supported drivers.
const (
	DriverNATS  = "nats"
	DriverNSQ   = "nsq"
	DriverKafka = "kafka"
)

// ErrUnknownDriver indicates an unsupported messaging driver.
var ErrUnknownDriver = errors.New("messaging: unknown driver")

// Config selects a driver and carries the settings for each backend.
type Config struct {
	Driver string
	NATS   NATSConfig
	NSQ    NSQConfig
	Kafka  KafkaConfig
}

// New constructs the client for cfg.Driver.
func New(cfg Config) (Messaging, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverNATS:
		return NewNATS(cfg.NATS)
	case DriverNSQ:
		return NewNSQ(cfg.NSQ)
	case DriverKafka:
		return NewKafka(cfg.Kafka)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
