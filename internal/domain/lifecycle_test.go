package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateModeration(t *testing.T) {
	start := time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC)
	th := DefaultModeratorThresholds

	tests := []struct {
		name       string
		tournament Tournament
		elapsed    time.Duration
		action     ModeratorAction
		reason     CancellationReason
	}{
		{
			name:       "Within_Grace_Window",
			tournament: Tournament{Status: StatusActive, MinParticipants: 2, FilledSpots: 2},
			elapsed:    5 * time.Minute,
			action:     ModeratorActionNone,
		},
		{
			name:       "Exactly_At_Penalty_Threshold",
			tournament: Tournament{Status: StatusActive, MinParticipants: 2, FilledSpots: 2},
			elapsed:    10 * time.Minute,
			action:     ModeratorActionNone,
		},
		{
			name:       "Late_Host_Flagged_For_Penalty",
			tournament: Tournament{Status: StatusActive, MinParticipants: 2, FilledSpots: 3},
			elapsed:    15 * time.Minute,
			action:     ModeratorActionFlagPenalty,
		},
		{
			name:       "Upcoming_Behaves_Like_Active",
			tournament: Tournament{Status: StatusUpcoming, MinParticipants: 1, FilledSpots: 1},
			elapsed:    15 * time.Minute,
			action:     ModeratorActionFlagPenalty,
		},
		{
			name:       "Below_Quorum_Cancelled",
			tournament: Tournament{Status: StatusActive, MinParticipants: 4, FilledSpots: 1},
			elapsed:    15 * time.Minute,
			action:     ModeratorActionFlagCancellation,
			reason:     CancellationReasonInsufficientParticipants,
		},
		{
			name:       "Past_Cancel_Threshold_Cancelled",
			tournament: Tournament{Status: StatusActive, MinParticipants: 2, FilledSpots: 2},
			elapsed:    25 * time.Minute,
			action:     ModeratorActionFlagCancellation,
			reason:     CancellationReasonHostNoShow,
		},
		{
			name:       "Already_Penalized_Active_Waits",
			tournament: Tournament{Status: StatusActive, MinParticipants: 1, FilledSpots: 1, HostPenalized: true},
			elapsed:    15 * time.Minute,
			action:     ModeratorActionNone,
		},
		{
			name:       "Penalty_Applied_Before_Cancel_Threshold",
			tournament: Tournament{Status: StatusPenaltyApplied, MinParticipants: 1, FilledSpots: 1, HostPenalized: true},
			elapsed:    19 * time.Minute,
			action:     ModeratorActionNone,
		},
		{
			name:       "Penalty_Applied_Then_Cancelled",
			tournament: Tournament{Status: StatusPenaltyApplied, MinParticipants: 1, FilledSpots: 1, HostPenalized: true},
			elapsed:    21 * time.Minute,
			action:     ModeratorActionFlagCancellation,
			reason:     CancellationReasonHostNoShow,
		},
		{
			name:       "Ongoing_Ignored",
			tournament: Tournament{Status: StatusOngoing, MinParticipants: 1, FilledSpots: 1},
			elapsed:    time.Hour,
			action:     ModeratorActionNone,
		},
		{
			name:       "Pending_Penalty_Ignored",
			tournament: Tournament{Status: StatusPendingPenalty, MinParticipants: 1, FilledSpots: 1},
			elapsed:    time.Hour,
			action:     ModeratorActionNone,
		},
		{
			name:       "Cancelled_Ignored",
			tournament: Tournament{Status: StatusCancelled},
			elapsed:    time.Hour,
			action:     ModeratorActionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tournament := tt.tournament
			tournament.StartDate = start

			decision := EvaluateModeration(&tournament, start.Add(tt.elapsed), th)
			assert.Equal(t, tt.action, decision.Action)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}

func TestTransitionTo(t *testing.T) {
	tests := []struct {
		from    TournamentStatus
		to      TournamentStatus
		allowed bool
	}{
		{StatusActive, StatusOngoing, true},
		{StatusActive, StatusPendingPenalty, true},
		{StatusActive, StatusPendingCancellation, true},
		{StatusActive, StatusCancelled, true},
		{StatusActive, StatusEnded, false},
		{StatusUpcoming, StatusActive, true},
		{StatusOngoing, StatusEnded, true},
		{StatusOngoing, StatusActive, false},
		{StatusPendingPenalty, StatusPenaltyApplied, true},
		{StatusPendingPenalty, StatusCancelled, false},
		{StatusPenaltyApplied, StatusOngoing, true},
		{StatusPenaltyApplied, StatusPendingCancellation, true},
		{StatusPendingCancellation, StatusCancelled, true},
		{StatusPendingCancellation, StatusActive, false},
		{StatusCancelled, StatusActive, false},
		{StatusEnded, StatusOngoing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			tournament := &Tournament{Status: tt.from}
			err := tournament.TransitionTo(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, tournament.Status)
				return
			}
			appErr, ok := IsAppError(err)
			assert.True(t, ok)
			assert.Equal(t, ErrCodeInvalidStatus, appErr.Code)
			assert.Equal(t, tt.from, tournament.Status)
		})
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	all := []TournamentStatus{
		StatusUpcoming, StatusActive, StatusOngoing, StatusPendingPenalty,
		StatusPenaltyApplied, StatusPendingCancellation, StatusCancelled, StatusEnded,
	}
	for _, from := range all {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range all {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestStatusGuards(t *testing.T) {
	assert.True(t, StatusActive.AllowsJoin())
	assert.True(t, StatusUpcoming.AllowsJoin())
	assert.False(t, StatusOngoing.AllowsJoin())
	assert.False(t, StatusPendingPenalty.AllowsJoin())

	assert.True(t, StatusOngoing.AllowsHostCancel())
	assert.False(t, StatusPendingCancellation.AllowsHostCancel())
	assert.False(t, StatusCancelled.AllowsHostCancel())

	assert.True(t, StatusOngoing.AllowsPrizeDistribution())
	assert.True(t, StatusEnded.AllowsPrizeDistribution())
	assert.False(t, StatusActive.AllowsPrizeDistribution())

	assert.False(t, TournamentStatus("paused").Valid())
}

func TestPenaltyNotificationSent(t *testing.T) {
	assert.False(t, (&Tournament{Status: StatusPendingPenalty}).PenaltyNotificationSent())
	assert.True(t, (&Tournament{Status: StatusPendingPenalty, HostPenalized: true}).PenaltyNotificationSent())
}

func TestPrizeDistributionScan(t *testing.T) {
	var dist PrizeDistribution
	assert.NoError(t, dist.Scan(`{"1st":60,"2nd":40}`))
	assert.Equal(t, 100, dist.Total())

	assert.NoError(t, dist.Scan(nil))
	assert.Nil(t, dist)

	assert.Error(t, dist.Scan(42))
}
