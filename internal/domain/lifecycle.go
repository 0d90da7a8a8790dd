package domain

import (
	"fmt"
	"net/http"
	"time"
)

// TournamentStatus represents the lifecycle state of a tournament
type TournamentStatus string

const (
	// StatusUpcoming tournament announced but not opened yet; treated like active
	StatusUpcoming TournamentStatus = "upcoming"

	// StatusActive tournament open for joins, waiting for the host to start it
	StatusActive TournamentStatus = "active"

	// StatusOngoing host started the matches
	StatusOngoing TournamentStatus = "ongoing"

	// StatusPendingPenalty moderator flagged a late host; debit not executed yet
	StatusPendingPenalty TournamentStatus = "pending_penalty"

	// StatusPenaltyApplied host debited and notified
	StatusPenaltyApplied TournamentStatus = "penalty_applied"

	// StatusPendingCancellation moderator flagged the tournament; refunds not executed yet
	StatusPendingCancellation TournamentStatus = "pending_cancellation"

	// StatusCancelled participants refunded
	StatusCancelled TournamentStatus = "cancelled"

	// StatusEnded host closed the tournament
	StatusEnded TournamentStatus = "ended"
)

var transitions = map[TournamentStatus][]TournamentStatus{
	StatusUpcoming:            {StatusActive, StatusOngoing, StatusPendingPenalty, StatusPendingCancellation, StatusCancelled},
	StatusActive:              {StatusOngoing, StatusPendingPenalty, StatusPendingCancellation, StatusCancelled},
	StatusOngoing:             {StatusEnded, StatusCancelled},
	StatusPendingPenalty:      {StatusPenaltyApplied},
	StatusPenaltyApplied:      {StatusOngoing, StatusPendingCancellation},
	StatusPendingCancellation: {StatusCancelled},
}

// Valid reports whether s is a known status
func (s TournamentStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusOngoing, StatusPendingPenalty, StatusPenaltyApplied,
		StatusPendingCancellation, StatusCancelled, StatusEnded:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s
func (s TournamentStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusEnded
}

// AllowsJoin reports whether players may join in s
func (s TournamentStatus) AllowsJoin() bool {
	return s == StatusUpcoming || s == StatusActive
}

// AllowsHostCancel reports whether the host may cancel in s
func (s TournamentStatus) AllowsHostCancel() bool {
	return s == StatusUpcoming || s == StatusActive || s == StatusOngoing
}

// AllowsPrizeDistribution reports whether prizes may be paid out in s
func (s TournamentStatus) AllowsPrizeDistribution() bool {
	return s == StatusOngoing || s == StatusEnded
}

// CanTransition reports whether from -> to is an edge of the lifecycle
func CanTransition(from, to TournamentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo moves the tournament to the given status or fails with INVALID_STATUS
func (t *Tournament) TransitionTo(to TournamentStatus) error {
	if !CanTransition(t.Status, to) {
		return NewInvalidStatusError(t.Status, to)
	}
	t.Status = to
	return nil
}

// NewInvalidStatusError creates the error returned for a rejected transition
func NewInvalidStatusError(from, to TournamentStatus) *AppError {
	return NewAppError(
		ErrCodeInvalidStatus,
		fmt.Sprintf("Tournament cannot move from '%s' to '%s'", from, to),
		http.StatusConflict,
		nil,
	)
}

// ModeratorThresholds holds the grace windows measured from start_date
type ModeratorThresholds struct {
	PenaltyAfter time.Duration
	CancelAfter  time.Duration
}

// DefaultModeratorThresholds are 10 minutes for the penalty and 20 minutes for the cancellation
var DefaultModeratorThresholds = ModeratorThresholds{
	PenaltyAfter: 10 * time.Minute,
	CancelAfter:  20 * time.Minute,
}

// ModeratorAction is the flag the sweep applies to a tournament
type ModeratorAction string

const (
	ModeratorActionNone             ModeratorAction = "none"
	ModeratorActionFlagPenalty      ModeratorAction = "flag_penalty"
	ModeratorActionFlagCancellation ModeratorAction = "flag_cancellation"
)

// ModeratorDecision is the outcome of evaluating a tournament during a sweep
type ModeratorDecision struct {
	Action ModeratorAction
	Reason CancellationReason
}

// ModeratedStatuses lists the statuses the sweep inspects
var ModeratedStatuses = []TournamentStatus{StatusUpcoming, StatusActive, StatusPenaltyApplied}

// EvaluateModeration decides which flag, if any, the sweep applies at now.
// Elapsed time alone selects between penalty and cancellation.
func EvaluateModeration(t *Tournament, now time.Time, th ModeratorThresholds) ModeratorDecision {
	none := ModeratorDecision{Action: ModeratorActionNone}
	elapsed := now.Sub(t.StartDate)

	switch t.Status {
	case StatusUpcoming, StatusActive:
		if elapsed <= th.PenaltyAfter {
			return none
		}
		if !t.HasQuorum() {
			return ModeratorDecision{Action: ModeratorActionFlagCancellation, Reason: CancellationReasonInsufficientParticipants}
		}
		if elapsed > th.CancelAfter {
			return ModeratorDecision{Action: ModeratorActionFlagCancellation, Reason: CancellationReasonHostNoShow}
		}
		if !t.HostPenalized {
			return ModeratorDecision{Action: ModeratorActionFlagPenalty}
		}
	case StatusPenaltyApplied:
		if elapsed > th.CancelAfter {
			return ModeratorDecision{Action: ModeratorActionFlagCancellation, Reason: CancellationReasonHostNoShow}
		}
	}
	return none
}
