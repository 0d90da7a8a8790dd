package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// JSONB is a type for handle JSONB field that GORM can automatically marshal/unmarshal JSONB fields.
type JSONB map[string]interface{}

// Scan implements the sql.Scanner interface
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}
	return json.Unmarshal(bytes, j)
}

// Value implements the driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// OutboxEvent represents a notification stored in the outbox.
// Events are written in the same database transaction as the money movement they describe.
type OutboxEvent struct {
	ID          string     `json:"id" gorm:"primaryKey;column:id;type:varchar(64)"`
	Type        string     `json:"type" gorm:"type:varchar(64);not null"`
	Data        JSONB      `json:"data" gorm:"type:jsonb"`
	Status      string     `json:"status" gorm:"index;type:varchar(16);not null;default:'PENDING'"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	Error       *string    `json:"error,omitempty"`
	RetryCount  int        `json:"retry_count" gorm:"default:0"`
}

// TableName specifies the table name for OutboxEvent
func (o OutboxEvent) TableName() string {
	return "outbox_events"
}

// OutboxRepository defines the interface for outbox persistence
type OutboxRepository interface {
	Save(ctx context.Context, event *OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, eventID string) error
	MarkAsFailed(ctx context.Context, eventID string, errMsg string) error
	IncrementRetryCount(ctx context.Context, eventID string) error
	WithTransaction(tx *gorm.DB) OutboxRepository
}

// OutboxProcessor defines the interface for processing outbox events
type OutboxProcessor interface {
	ProcessEvents(ctx context.Context) error
	ProcessEvent(ctx context.Context, event *OutboxEvent) error
}

// Notification event types
const (
	EventTypeHostPenaltyEmail  = "HOST_PENALTY_EMAIL"
	EventTypeCancellationEmail = "CANCELLATION_EMAIL"
	EventTypePrizeWinEmail     = "PRIZE_WIN_EMAIL"
)

// Event statuses
const (
	EventStatusPending   = "PENDING"
	EventStatusProcessed = "PROCESSED"
	EventStatusFailed    = "FAILED"
)

// NewNotificationEvent builds a pending outbox event addressed to one user
func NewNotificationEvent(id, eventType, userID string, tournament *Tournament, amount int64) *OutboxEvent {
	return &OutboxEvent{
		ID:   id,
		Type: eventType,
		Data: JSONB{
			"user_id":         userID,
			"tournament_id":   tournament.ID,
			"tournament_name": tournament.Name,
			"amount":          amount,
		},
		Status:    EventStatusPending,
		CreatedAt: time.Now(),
	}
}
