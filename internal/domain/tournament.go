package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CancellationReason records why a tournament was cancelled
type CancellationReason string

const (
	CancellationReasonNone                     CancellationReason = ""
	CancellationReasonHost                     CancellationReason = "host_cancelled"
	CancellationReasonHostNoShow               CancellationReason = "host_no_show"
	CancellationReasonInsufficientParticipants CancellationReason = "insufficient_participants"
)

// PrizeDistribution maps a position label ("1st", "first", ...) to a percentage of the pool
type PrizeDistribution map[string]int

// Scan implements the sql.Scanner interface
func (p *PrizeDistribution) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal prize distribution value: %v", value)
	}
	return json.Unmarshal(bytes, p)
}

// Value implements the driver.Valuer interface
func (p PrizeDistribution) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Total returns the sum of all percentages
func (p PrizeDistribution) Total() int {
	total := 0
	for _, pct := range p {
		total += pct
	}
	return total
}

// Tournament is the aggregate holding status, entry fee and the live prize pool
type Tournament struct {
	ID                 string             `json:"id" gorm:"primaryKey;column:id;type:varchar(64)"`
	Slug               string             `json:"slug" gorm:"index;type:varchar(160)"`
	HostID             string             `json:"host_id" gorm:"index;not null;type:varchar(128)"`
	Name               string             `json:"name" gorm:"not null;type:varchar(128)"`
	EntryFee           int64              `json:"entry_fee" gorm:"type:bigint;not null;default:0"`
	MinParticipants    int                `json:"min_participants" gorm:"not null;default:1"`
	MaxPlayers         int                `json:"max_players" gorm:"not null"`
	Status             TournamentStatus   `json:"status" gorm:"index;type:varchar(32);not null"`
	StartDate          time.Time          `json:"start_date" gorm:"index;not null"`
	FilledSpots        int                `json:"filled_spots" gorm:"not null;default:0"`
	CurrentPrizePool   int64              `json:"current_prize_pool" gorm:"type:bigint;not null;default:0"`
	PrizeDistribution  PrizeDistribution  `json:"prize_distribution,omitempty" gorm:"type:jsonb"`
	HostPenalized      bool               `json:"host_penalized" gorm:"not null;default:false"`
	CancellationReason CancellationReason `json:"cancellation_reason,omitempty" gorm:"type:varchar(48)"`
	CancelledAt        *time.Time         `json:"cancelled_at,omitempty"`
	DeleteAfter        *time.Time         `json:"delete_after,omitempty" gorm:"index"`
	CreatedAt          time.Time          `json:"created_at" gorm:"not null"`
	UpdatedAt          time.Time          `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name for Tournament
func (t Tournament) TableName() string {
	return "tournaments"
}

// PenaltyNotificationSent reports whether the penalty phase has been executed.
// The debit, the flag and the email event are committed together.
func (t *Tournament) PenaltyNotificationSent() bool {
	return t.HostPenalized
}

// IsFull reports whether every spot is taken
func (t *Tournament) IsFull() bool {
	return t.MaxPlayers > 0 && t.FilledSpots >= t.MaxPlayers
}

// HasQuorum reports whether enough participants joined to hold the tournament
func (t *Tournament) HasQuorum() bool {
	return t.FilledSpots >= t.MinParticipants
}

// Participant is one entry in the ordered participant list of a tournament
type Participant struct {
	ID           int64     `json:"-" gorm:"primaryKey;autoIncrement"`
	TournamentID string    `json:"tournament_id" gorm:"uniqueIndex:idx_participant_member;not null;type:varchar(64)"`
	AuthUID      string    `json:"auth_uid" gorm:"uniqueIndex:idx_participant_member;not null;type:varchar(128)"`
	IGN          string    `json:"ign" gorm:"type:varchar(64)"`
	Position     int       `json:"position" gorm:"not null"`
	JoinedAt     time.Time `json:"joined_at" gorm:"not null"`
}

// TableName specifies the table name for Participant
func (p Participant) TableName() string {
	return "tournament_participants"
}

// Winner records a prize payout for one position
type Winner struct {
	ID            int64     `json:"-" gorm:"primaryKey;autoIncrement"`
	TournamentID  string    `json:"tournament_id" gorm:"uniqueIndex:idx_winner_position;not null;type:varchar(64)"`
	Position      string    `json:"position" gorm:"uniqueIndex:idx_winner_position;not null;type:varchar(32)"`
	AuthUID       string    `json:"auth_uid" gorm:"not null;type:varchar(128)"`
	PrizeCredits  int64     `json:"prize_credits" gorm:"type:bigint;not null"`
	DistributedAt time.Time `json:"distributed_at" gorm:"not null"`
}

// TableName specifies the table name for Winner
func (w Winner) TableName() string {
	return "tournament_winners"
}

// TournamentDetails is the read view of a tournament with its participants and winners
type TournamentDetails struct {
	Tournament   *Tournament    `json:"tournament"`
	Participants []*Participant `json:"participants"`
	Winners      []*Winner      `json:"winners"`
}

// TournamentFilter narrows tournament listings
type TournamentFilter struct {
	Status TournamentStatus
	HostID string
	Limit  int
	Offset int
}

// TournamentRepository defines the interface for tournament data
type TournamentRepository interface {
	Create(ctx context.Context, tournament *Tournament) error
	GetByID(ctx context.Context, id string) (*Tournament, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Tournament, error)
	List(ctx context.Context, filter TournamentFilter) ([]*Tournament, error)
	Update(ctx context.Context, tournament *Tournament) error
	FindDueForModeration(ctx context.Context, statuses []TournamentStatus, startedBefore time.Time, limit int) ([]*Tournament, error)
	FindByStatus(ctx context.Context, status TournamentStatus, limit int) ([]*Tournament, error)
	FindExpired(ctx context.Context, now time.Time, limit int) ([]*Tournament, error)
	Delete(ctx context.Context, id string) error

	AddParticipant(ctx context.Context, participant *Participant) error
	GetParticipant(ctx context.Context, tournamentID, authUID string) (*Participant, error)
	ListParticipants(ctx context.Context, tournamentID string) ([]*Participant, error)

	AddWinner(ctx context.Context, winner *Winner) error
	GetWinner(ctx context.Context, tournamentID, position string) (*Winner, error)
	ListWinners(ctx context.Context, tournamentID string) ([]*Winner, error)

	WithTransaction(tx *gorm.DB) TournamentRepository
}

// CreateTournamentInput carries the host-provided fields of a new tournament
type CreateTournamentInput struct {
	HostID            string
	Name              string
	EntryFee          int64
	MinParticipants   int
	MaxPlayers        int
	StartDate         time.Time
	PrizeDistribution PrizeDistribution
	Status            TournamentStatus
}

// DistributePrizeInput carries a host prize payout request
type DistributePrizeInput struct {
	TournamentID string
	CallerID     string
	WinnerID     string
	Amount       int64
	Position     string
}

// CancelResult is returned by a successful cancellation
type CancelResult struct {
	Tournament    *Tournament `json:"tournament"`
	RefundedCount int         `json:"refunded_count"`
	RefundedTotal int64       `json:"refunded_total"`
}

// TournamentUseCase defines the interface for tournament business logic
type TournamentUseCase interface {
	Create(ctx context.Context, input CreateTournamentInput) (*Tournament, error)
	Get(ctx context.Context, id string) (*TournamentDetails, error)
	List(ctx context.Context, filter TournamentFilter) ([]*Tournament, error)
	Join(ctx context.Context, tournamentID, userID, ign string) (*Tournament, error)
	Cancel(ctx context.Context, tournamentID, callerID string) (*CancelResult, error)
	Start(ctx context.Context, tournamentID, callerID string) (*Tournament, error)
	End(ctx context.Context, tournamentID, callerID string) (*Tournament, error)
	DistributePrize(ctx context.Context, input DistributePrizeInput) (*Winner, error)
}
