package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/nvago/internal/accounts"
	"github.com/shandysiswandi/nvago/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.accounts.enabled") {
		if err := accounts.New(accounts.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Sessions:   a.sessions,
			Mail:       a.mail,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Password:   a.password,
			OTP:        a.otp,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module accounts", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Redis:      a.cacheConn,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Mail:       a.mail,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
