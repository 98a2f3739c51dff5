package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/nvago/internal/notification/usecase"
	"github.com/shandysiswandi/nvago/internal/pkg/instrument"
	"github.com/shandysiswandi/nvago/internal/pkg/messaging"
	"github.com/shandysiswandi/nvago/internal/pkg/uid"
	"github.com/shandysiswandi/nvago/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cID := msg.Header(keyOfCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) OTPEmailNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "OTPEmailNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: otp email notification", "msg_id", msg.ID())

	var payload event.OTPEmailMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp email notification", "msg_id", msg.ID(), "error", err)
		return nil
	}

	if err := h.uc.ConsumeOTPEmail(ctx, usecase.ConsumeOTPEmailInput{
		EventID: payload.ID,
		UserID:  payload.UserID,
		Email:   payload.Email,
		Subject: payload.Subject,
		Body:    payload.Body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume otp email", "event_id", payload.ID, "error", err)
		return err
	}

	return nil
}
