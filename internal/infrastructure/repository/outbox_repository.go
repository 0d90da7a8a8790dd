package repository

import (
	"context"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"gorm.io/gorm"
)

// OutboxRepository implements domain.OutboxRepository
type OutboxRepository struct {
	db *gorm.DB
}

// NewOutboxRepository creates a new outbox repository
func NewOutboxRepository(db *gorm.DB) domain.OutboxRepository {
	return &OutboxRepository{
		db: db,
	}
}

// WithTransaction returns a repository bound to the given transaction
func (r *OutboxRepository) WithTransaction(tx *gorm.DB) domain.OutboxRepository {
	return &OutboxRepository{db: tx}
}

// Save saves an outbox event to the database
func (r *OutboxRepository) Save(ctx context.Context, event *domain.OutboxEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// GetPendingEvents retrieves pending events from the database
func (r *OutboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	var events []*domain.OutboxEvent
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.EventStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// MarkAsProcessed marks an event as processed
func (r *OutboxRepository) MarkAsProcessed(ctx context.Context, eventID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.OutboxEvent{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{
			"status":       domain.EventStatusProcessed,
			"processed_at": &now,
		}).Error
}

// MarkAsFailed marks an event as failed
func (r *OutboxRepository) MarkAsFailed(ctx context.Context, eventID string, errMsg string) error {
	return r.db.WithContext(ctx).Model(&domain.OutboxEvent{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{
			"status": domain.EventStatusFailed,
			"error":  &errMsg,
		}).Error
}

// IncrementRetryCount increments the retry count for an event
func (r *OutboxRepository) IncrementRetryCount(ctx context.Context, eventID string) error {
	return r.db.WithContext(ctx).Model(&domain.OutboxEvent{}).
		Where("id = ?", eventID).
		Update("retry_count", gorm.Expr("retry_count + ?", 1)).Error
}
