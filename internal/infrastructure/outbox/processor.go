package outbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Processor implements domain.OutboxProcessor.
// Delivery failures only touch the outbox row; the money movement that queued the event stays committed.
type Processor struct {
	outboxRepo domain.OutboxRepository
	emails     domain.EmailLookup
	mailer     domain.Mailer
	logger     *logger.Logger
	maxRetries int
	batchSize  int
}

// NewProcessor creates a new outbox processor
func NewProcessor(
	outboxRepo domain.OutboxRepository,
	emails domain.EmailLookup,
	mailer domain.Mailer,
	logger *logger.Logger,
) *Processor {
	return &Processor{
		outboxRepo: outboxRepo,
		emails:     emails,
		mailer:     mailer,
		logger:     logger,
		maxRetries: 5,
		batchSize:  100,
	}
}

// ProcessEvents processes all pending events
func (p *Processor) ProcessEvents(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	events, err := p.outboxRepo.GetPendingEvents(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("Failed to get pending events", zap.Error(err))
		return err
	}

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("processor cancelled: %w", err)
		}

		if err := p.ProcessEvent(ctx, event); err != nil {
			p.logger.Error("Failed to process event",
				zap.String("eventID", event.ID),
				zap.String("eventType", event.Type),
				zap.Error(err))
			p.recordFailure(ctx, event, err)
		}
	}

	return nil
}

// ProcessEvent delivers a single outbox event and marks it processed
func (p *Processor) ProcessEvent(ctx context.Context, event *domain.OutboxEvent) error {
	p.logger.Info("Processing outbox event",
		zap.String("eventID", event.ID),
		zap.String("eventType", event.Type))

	data, err := extractNotificationData(event)
	if err != nil {
		return err
	}

	email, err := p.emails.GetEmail(ctx, data.userID)
	if err != nil {
		return fmt.Errorf("failed to look up email: %w", err)
	}
	if email == "" {
		p.logger.Warn("No email on file, skipping notification",
			zap.String("eventID", event.ID),
			zap.String("userID", data.userID))
		return p.outboxRepo.MarkAsProcessed(ctx, event.ID)
	}

	switch event.Type {
	case domain.EventTypeHostPenaltyEmail:
		err = p.mailer.SendHostPenaltyEmail(ctx, email, data.tournamentName, data.amount)
	case domain.EventTypeCancellationEmail:
		err = p.mailer.SendCancellationEmail(ctx, email, data.tournamentName, data.amount)
	case domain.EventTypePrizeWinEmail:
		err = p.mailer.SendPrizeWinEmail(ctx, email, data.tournamentName, data.amount)
	default:
		p.logger.Warn("Unknown event type",
			zap.String("eventID", event.ID),
			zap.String("eventType", event.Type))
		return fmt.Errorf("unknown event type: %s", event.Type)
	}
	if err != nil {
		return fmt.Errorf("failed to send %s: %w", event.Type, err)
	}

	p.logger.Info("Notification delivered",
		zap.String("eventID", event.ID),
		zap.String("userID", data.userID))
	return p.outboxRepo.MarkAsProcessed(ctx, event.ID)
}

// recordFailure bumps the retry counter, or marks the event failed once retries are exhausted
// or the email API rejected the request itself
func (p *Processor) recordFailure(ctx context.Context, event *domain.OutboxEvent, cause error) {
	var mailErr *domain.MailServiceError
	permanent := errors.As(cause, &mailErr) && mailErr.Is4xxError()

	if !permanent && event.RetryCount < p.maxRetries {
		if retryErr := p.outboxRepo.IncrementRetryCount(ctx, event.ID); retryErr != nil {
			p.logger.Error("Failed to increment retry count", zap.Error(retryErr))
		}
		return
	}
	if failErr := p.outboxRepo.MarkAsFailed(ctx, event.ID, cause.Error()); failErr != nil {
		p.logger.Error("Failed to mark event as failed", zap.Error(failErr))
	}
}

type notificationData struct {
	userID         string
	tournamentName string
	amount         int64
}

// extractNotificationData reads the fields written by domain.NewNotificationEvent
func extractNotificationData(event *domain.OutboxEvent) (notificationData, error) {
	var data notificationData

	userID, ok := event.Data["user_id"].(string)
	if !ok || userID == "" {
		return data, fmt.Errorf("invalid user_id in event data")
	}
	data.userID = userID
	data.tournamentName, _ = event.Data["tournament_name"].(string)

	switch amount := event.Data["amount"].(type) {
	case float64:
		data.amount = int64(amount)
	case int64:
		data.amount = amount
	case int:
		data.amount = int64(amount)
	default:
		return data, fmt.Errorf("invalid amount in event data")
	}
	return data, nil
}
