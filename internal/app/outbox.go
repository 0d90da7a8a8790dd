package app

import (
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/external/mailer"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"github.com/saradorri/ffarena/internal/infrastructure/outbox"
)

func (a *application) InitMailer(log *logger.Logger) domain.Mailer {
	return mailer.NewMailer(mailer.Config{
		URL:           a.config.Mail.URL,
		APIKey:        a.config.Mail.APIKey,
		From:          a.config.Mail.From,
		RatePerSecond: a.config.Mail.RatePerSecond,
		Timeout:       a.config.Mail.Timeout,
		Retries:       a.config.Mail.Retries,
	}, log.Named("mailer"))
}

func (a *application) InitOutboxProcessor(
	outboxRepo domain.OutboxRepository,
	userRepo domain.UserRepository,
	mail domain.Mailer,
	log *logger.Logger,
) domain.OutboxProcessor {
	return outbox.NewProcessor(outboxRepo, userRepo, mail, log.Named("outbox"))
}
