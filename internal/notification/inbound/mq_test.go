package inbound

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/nvago/internal/notification/usecase"
	"github.com/shandysiswandi/nvago/internal/pkg/config"
	"github.com/shandysiswandi/nvago/internal/pkg/goroutine"
	"github.com/shandysiswandi/nvago/internal/pkg/instrument"
	"github.com/shandysiswandi/nvago/internal/pkg/messaging"
	"github.com/shandysiswandi/nvago/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockUsecase struct{ mock.Mock }

func (m *mockUsecase) ConsumeOTPEmail(ctx context.Context, in usecase.ConsumeOTPEmailInput) error {
	return m.Called(ctx, in).Error(0)
}

type fixedUUID string

func (f fixedUUID) Generate() string { return string(f) }

type fakeMessage struct {
	body    []byte
	headers []messaging.Header
}

func (f fakeMessage) ID() string { return "msg-1" }
func (f fakeMessage) Source() string { return event.OTPEmailDestination }
func (f fakeMessage) Body() []byte { return f.body }
func (f fakeMessage) Key() []byte { return nil }
func (f fakeMessage) Headers() []messaging.Header { return f.headers }
func (f fakeMessage) Timestamp() time.Time { return time.Time{} }
func (f fakeMessage) Ack(context.Context) error { return nil }
func (f fakeMessage) Nack(context.Context) error { return nil }

func (f fakeMessage) Header(key string) string {
	for _, h := range f.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestMQHandler_OTPEmailNotification(t *testing.T) {
	body := []byte(`{"id":"evt-1","user_id":"42","email":"alice@example.com","subject":"Your OTP Code","body":"Your OTP code is 123456"}`)
	want := usecase.ConsumeOTPEmailInput{
		EventID: "evt-1",
		UserID:  42,
		Email:   "alice@example.com",
		Subject: "Your OTP Code",
		Body:    "Your OTP code is 123456",
	}

	t.Run("forwards payload with header correlation id", func(t *testing.T) {
		uc := &mockUsecase{}
		uc.On("ConsumeOTPEmail", mock.MatchedBy(func(ctx context.Context) bool {
			return instrument.GetCorrelationID(ctx) == "cid-1"
		}), want).Return(nil).Once()

		h := &MQHandler{uc: uc, uuid: fixedUUID("generated"), ins: instrument.NewNoop()}
		err := h.OTPEmailNotification(context.Background(), fakeMessage{
			body:    body,
			headers: []messaging.Header{{Key: "cID", Value: []byte("cid-1")}},
		})
		require.NoError(t, err)
		uc.AssertExpectations(t)
	})

	t.Run("generates correlation id when header is missing", func(t *testing.T) {
		uc := &mockUsecase{}
		uc.On("ConsumeOTPEmail", mock.MatchedBy(func(ctx context.Context) bool {
			return instrument.GetCorrelationID(ctx) == "generated"
		}), want).Return(nil).Once()

		h := &MQHandler{uc: uc, uuid: fixedUUID("generated"), ins: instrument.NewNoop()}
		require.NoError(t, h.OTPEmailNotification(context.Background(), fakeMessage{body: body}))
		uc.AssertExpectations(t)
	})

	t.Run("malformed body is acked", func(t *testing.T) {
		uc := &mockUsecase{}
		h := &MQHandler{uc: uc, uuid: fixedUUID("generated"), ins: instrument.NewNoop()}

		assert.NoError(t, h.OTPEmailNotification(context.Background(), fakeMessage{body: []byte("{")}))
		uc.AssertNotCalled(t, "ConsumeOTPEmail", mock.Anything, mock.Anything)
	})

	t.Run("usecase error requests redelivery", func(t *testing.T) {
		uc := &mockUsecase{}
		uc.On("ConsumeOTPEmail", mock.Anything, want).Return(assert.AnError).Once()

		h := &MQHandler{uc: uc, uuid: fixedUUID("generated"), ins: instrument.NewNoop()}
		assert.ErrorIs(t, h.OTPEmailNotification(context.Background(), fakeMessage{body: body}), assert.AnError)
	})
}

// blockingConsumer records subscriptions and blocks until ctx is done.
type blockingConsumer struct {
	mu      sync.Mutex
	sources []string
	started chan struct{}
}

func (b *blockingConsumer) Consume(ctx context.Context, source string, _ messaging.Handler, _ ...messaging.ConsumeOption) error {
	b.mu.Lock()
	b.sources = append(b.sources, source)
	b.mu.Unlock()
	b.started <- struct{}{}

	<-ctx.Done()
	return nil
}

func TestRegisterMQConsumer(t *testing.T) {
	t.Run("starts enabled consumers", func(t *testing.T) {
		cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  notification:\n    consumer_names: [accounts_otp_email_notification]\n"))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		routine := goroutine.NewManager(2)
		consumer := &blockingConsumer{started: make(chan struct{}, 1)}

		err = RegisterMQConsumer(ctx, cfg, routine, consumer, fixedUUID("x"), &mockUsecase{}, instrument.NewNoop())
		require.NoError(t, err)

		<-consumer.started
		cancel()
		require.NoError(t, routine.Wait())
		assert.Equal(t, []string{event.OTPEmailDestination}, consumer.sources)
	})

	t.Run("skips disabled consumers", func(t *testing.T) {
		cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  notification:\n    consumer_names: []\n"))
		require.NoError(t, err)

		routine := goroutine.NewManager(2)
		consumer := &blockingConsumer{started: make(chan struct{}, 1)}

		err = RegisterMQConsumer(context.Background(), cfg, routine, consumer, fixedUUID("x"), &mockUsecase{}, instrument.NewNoop())
		require.NoError(t, err)
		require.NoError(t, routine.Wait())
		assert.Empty(t, consumer.sources)
	})

	t.Run("closed manager is reported", func(t *testing.T) {
		cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  notification:\n    consumer_names: accounts_otp_email_notification\n"))
		require.NoError(t, err)

		routine := goroutine.NewManager(1)
		require.NoError(t, routine.Wait())

		err = RegisterMQConsumer(context.Background(), cfg, routine, &blockingConsumer{}, fixedUUID("x"), &mockUsecase{}, instrument.NewNoop())
		assert.ErrorIs(t, err, goroutine.ErrClosed)
	})
}
