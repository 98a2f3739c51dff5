package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type responses struct {
	acks, nacks int
}

func newTestDelivery(r *responses) *delivery {
	return &delivery{
		source:  "accounts_otp_email",
		body:    []byte(`{"id":"1"}`),
		headers: []Header{{Key: "cID", Value: []byte("abc")}, {Key: "cID", Value: []byte("dup")}},
		ack:     func(context.Context) error { r.acks++; return nil },
		nack:    func(context.Context) error { r.nacks++; return nil },
	}
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name      string
		autoAck   bool
		handler   Handler
		wantErr   bool
		wantAcks  int
		wantNacks int
	}{
		{
			name:     "success acks",
			autoAck:  true,
			handler:  func(context.Context, Message) error { return nil },
			wantAcks: 1,
		},
		{
			name:      "failure nacks",
			autoAck:   true,
			handler:   func(context.Context, Message) error { return errors.New("smtp down") },
			wantErr:   true,
			wantNacks: 1,
		},
		{
			name:      "panic is recovered and nacked",
			autoAck:   true,
			handler:   func(context.Context, Message) error { panic("boom") },
			wantErr:   true,
			wantNacks: 1,
		},
		{
			name:    "manual mode leaves message alone",
			autoAck: false,
			handler: func(context.Context, Message) error { return nil },
		},
		{
			name:    "handler response is not repeated",
			autoAck: true,
			handler: func(ctx context.Context, msg Message) error {
				return msg.Nack(ctx)
			},
			wantNacks: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r responses
			err := dispatch(context.Background(), DriverNATS, tt.handler, newTestDelivery(&r), tt.autoAck)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantAcks, r.acks)
			assert.Equal(t, tt.wantNacks, r.nacks)
		})
	}
}

func TestDelivery_Accessors(t *testing.T) {
	var r responses
	d := newTestDelivery(&r)

	assert.Equal(t, "abc", d.Header("cID"))
	assert.Empty(t, d.Header("missing"))
	assert.Equal(t, "accounts_otp_email", d.Source())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, d.Ack(ctx), context.Canceled)
	assert.Zero(t, r.acks)

	require.NoError(t, d.Ack(context.Background()))
	require.NoError(t, d.Ack(context.Background()))
	assert.Equal(t, 1, r.acks)
}

func TestNewConsumeOptions(t *testing.T) {
	co := newConsumeOptions()
	assert.Equal(t, 1, co.concurrency)
	assert.Equal(t, 1, co.maxInFlight)
	assert.False(t, co.autoAck)

	co = newConsumeOptions(WithGroup("notification"), WithConcurrency(4), WithMaxInFlight(2), WithAutoAck(true), nil)
	assert.Equal(t, "notification", co.group)
	assert.Equal(t, 4, co.concurrency)
	assert.Equal(t, 4, co.maxInFlight)
	assert.True(t, co.autoAck)

	co = newConsumeOptions(WithConcurrency(-1), WithMaxInFlight(10))
	assert.Equal(t, 1, co.concurrency)
	assert.Equal(t, 10, co.maxInFlight)
}

func TestNew(t *testing.T) {
	_, err := New(Config{Driver: "rabbitmq"})
	require.ErrorIs(t, err, ErrUnknownDriver)

	_, err = New(Config{Driver: "nats"})
	require.ErrorIs(t, err, ErrNATSURLRequired)

	_, err = New(Config{Driver: " Kafka "})
	require.ErrorIs(t, err, ErrKafkaBrokersRequired)

	m, err := New(Config{Driver: DriverKafka, Kafka: KafkaConfig{Brokers: []string{"localhost:9092"}}})
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	require.ErrorIs(t, m.Publish(context.Background(), "t", OutgoingMessage{}), ErrClosed)
}

func TestNSQ_Validation(t *testing.T) {
	n, err := NewNSQ(NSQConfig{})
	require.NoError(t, err)
	defer n.Close()

	ctx := context.Background()
	noop := func(context.Context, Message) error { return nil }

	require.ErrorIs(t, n.Publish(ctx, "", OutgoingMessage{}), ErrDestinationRequired)
	require.ErrorIs(t, n.Publish(ctx, "t", OutgoingMessage{}), ErrNSQProducerAddrRequired)
	require.ErrorIs(t, n.Consume(ctx, "t", nil), ErrHandlerRequired)
	require.ErrorIs(t, n.Consume(ctx, "t", noop), ErrNSQConsumerAddrsRequired)

	n.cfg.NSQDAddrs = []string{"127.0.0.1:4150"}
	require.ErrorIs(t, n.Consume(ctx, "t", noop), ErrNSQChannelRequired)
}

func TestKafka_Validation(t *testing.T) {
	k, err := NewKafka(KafkaConfig{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)
	defer k.Close()

	ctx := context.Background()
	noop := func(context.Context, Message) error { return nil }

	require.ErrorIs(t, k.Publish(ctx, "t", OutgoingMessage{Delay: 1}), ErrUnsupported)
	require.ErrorIs(t, k.Consume(ctx, "", noop), ErrDestinationRequired)
	require.ErrorIs(t, k.Consume(ctx, "t", noop), ErrKafkaGroupRequired)
}
