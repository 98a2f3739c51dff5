// Package messaging publishes and consumes events over NATS, NSQ or Kafka
// behind one interface, so modules can switch brokers through configuration.
package messaging
