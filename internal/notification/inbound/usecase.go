package inbound

import (
	"context"

	"github.com/shandysiswandi/nvago/internal/notification/usecase"
)

type uc interface {
	ConsumeOTPEmail(ctx context.Context, in usecase.ConsumeOTPEmailInput) error
}
