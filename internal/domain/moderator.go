package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=moderator.go -destination=mocks/mock_moderator.go -package=mocks

// SweepLease serialises runs of one moderator phase across goroutines or replicas
type SweepLease interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error)
}

// TournamentSnapshot is the archived form of a tournament removed after its TTL
type TournamentSnapshot struct {
	Tournament   *Tournament          `json:"tournament"`
	Participants []*Participant       `json:"participants"`
	Winners      []*Winner            `json:"winners"`
	Transactions []*CreditTransaction `json:"transactions"`
	ArchivedAt   time.Time            `json:"archived_at"`
}

// TournamentArchiver stores snapshots before physical deletion
type TournamentArchiver interface {
	Archive(ctx context.Context, snapshot *TournamentSnapshot) error
}

// SweepResult aggregates the flagging phase
type SweepResult struct {
	Scanned                int  `json:"scanned"`
	FlaggedForPenalty      int  `json:"flagged_for_penalty"`
	FlaggedForCancellation int  `json:"flagged_for_cancellation"`
	Failed                 int  `json:"failed"`
	Skipped                bool `json:"skipped"`
}

// NotificationResult aggregates the execution phase
type NotificationResult struct {
	ProcessedPenalties     int  `json:"processed_penalties"`
	ProcessedCancellations int  `json:"processed_cancellations"`
	Failed                 int  `json:"failed"`
	Skipped                bool `json:"skipped"`
}

// PurgeResult aggregates the TTL purge
type PurgeResult struct {
	Archived int `json:"archived"`
	Deleted  int `json:"deleted"`
	Failed   int `json:"failed"`
}

// ModeratorUseCase defines the time-driven lifecycle jobs
type ModeratorUseCase interface {
	RunModeratorSweep(ctx context.Context, now time.Time) (*SweepResult, error)
	RunNotificationProcessor(ctx context.Context, now time.Time) (*NotificationResult, error)
	PurgeExpired(ctx context.Context, now time.Time) (*PurgeResult, error)
}
