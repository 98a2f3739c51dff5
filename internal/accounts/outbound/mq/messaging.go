package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/nvago/internal/accounts/usecase"
	"github.com/shandysiswandi/nvago/internal/pkg/instrument"
	"github.com/shandysiswandi/nvago/internal/pkg/messaging"
	"github.com/shandysiswandi/nvago/internal/pkg/uid"
	"github.com/shandysiswandi/nvago/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

// Messaging hands one-time codes to the notification module through the broker.
type Messaging struct {
	client messaging.Publisher
	uuid   uid.StringID
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, uuid uid.StringID, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, uuid: uuid, ins: ins}
}

func (m *Messaging) SendOTP(ctx context.Context, msg usecase.OTPMail) error {
	ctx, span := m.ins.Tracer("accounts.outbound.mq").Start(ctx, "SendOTP")
	defer span.End()

	body, err := json.Marshal(event.OTPEmailMessage{
		ID:      m.uuid.Generate(),
		UserID:  msg.UserID,
		Email:   msg.Email,
		Subject: msg.Subject,
		Body:    msg.Body,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if err := m.client.Publish(ctx, event.OTPEmailDestination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(msg.Email),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
