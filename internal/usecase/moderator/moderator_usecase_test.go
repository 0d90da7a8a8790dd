package moderator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/domain/mocks"
	"github.com/saradorri/ffarena/internal/infrastructure/lock"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"github.com/saradorri/ffarena/internal/infrastructure/repository"
	"github.com/saradorri/ffarena/internal/testutil"
	"github.com/saradorri/ffarena/internal/usecase/ledger"
	"github.com/saradorri/ffarena/internal/usecase/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var start = time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	uc       domain.ModeratorUseCase
	archiver *mocks.MockTournamentArchiver
}

func newFixture(t *testing.T, lease domain.SweepLease) *fixture {
	ctrl := gomock.NewController(t)
	db := testutil.NewDB(t)
	log := logger.NewLogger("test", "debug")

	if lease == nil {
		lease = lock.NewKeyedLockManager(log)
	}
	archiver := mocks.NewMockTournamentArchiver(ctrl)

	userRepo := repository.NewUserRepository(db)
	txRepo := repository.NewCreditTransactionRepository(db)
	tournamentRepo := repository.NewTournamentRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)
	ledgerUC := ledger.NewLedgerUseCase(userRepo, txRepo, db, log)
	settlement := tournament.NewSettlement(tournamentRepo, outboxRepo, ledgerUC, log)

	uc := NewModeratorUseCase(tournamentRepo, txRepo, settlement, lease, archiver, db, log, DefaultOptions)

	testutil.CreateUser(t, db, "host-1", 100, 0)
	return &fixture{db: db, uc: uc, archiver: archiver}
}

func (f *fixture) seed(t *testing.T, minParticipants int, fee int64, players ...string) *domain.Tournament {
	tr := testutil.CreateTournament(t, f.db, &domain.Tournament{
		HostID:          "host-1",
		Name:            "Sunday Squads",
		EntryFee:        fee,
		MinParticipants: minParticipants,
		MaxPlayers:      10,
		Status:          domain.StatusActive,
		StartDate:       start,
	})
	for _, id := range players {
		testutil.CreateUser(t, f.db, id, 0, 0)
	}
	testutil.AddParticipants(t, f.db, tr, players...)
	return tr
}

func TestLateHostIsPenalizedOnce(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	tr := f.seed(t, 2, 5, "player-1", "player-2")
	now := start.Add(15 * time.Minute)

	sweep, err := f.uc.RunModeratorSweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, sweep.Scanned)
	assert.Equal(t, 1, sweep.FlaggedForPenalty)
	assert.Equal(t, domain.StatusPendingPenalty, testutil.GetTournament(t, f.db, tr.ID).Status)
	// flagging alone moves no money
	assert.Equal(t, int64(100), testutil.GetUser(t, f.db, "host-1").TournamentCredits)

	notify, err := f.uc.RunNotificationProcessor(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, notify.ProcessedPenalties)

	stored := testutil.GetTournament(t, f.db, tr.ID)
	assert.Equal(t, domain.StatusPenaltyApplied, stored.Status)
	assert.True(t, stored.HostPenalized)
	assert.Equal(t, int64(10), stored.CurrentPrizePool)
	assert.Equal(t, int64(90), testutil.GetUser(t, f.db, "host-1").TournamentCredits)
	assert.Equal(t, int64(1), testutil.CountRows(t, f.db, &domain.OutboxEvent{}, "type = ?", domain.EventTypeHostPenaltyEmail))

	// overlapping reruns do nothing
	later := now.Add(time.Minute)
	sweep, err = f.uc.RunModeratorSweep(ctx, later)
	require.NoError(t, err)
	assert.Equal(t, 0, sweep.FlaggedForPenalty+sweep.FlaggedForCancellation)
	notify, err = f.uc.RunNotificationProcessor(ctx, later)
	require.NoError(t, err)
	assert.Equal(t, 0, notify.ProcessedPenalties)
	assert.Equal(t, int64(90), testutil.GetUser(t, f.db, "host-1").TournamentCredits)
	assert.Equal(t, int64(1), testutil.CountRows(t, f.db, &domain.CreditTransaction{}, "type = ?", domain.CreditTxHostPenalty))
}

func TestIdleTournamentIsCancelledWithRefunds(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	tr := f.seed(t, 2, 5, "player-1", "player-2", "player-3")
	now := start.Add(25 * time.Minute)

	sweep, err := f.uc.RunModeratorSweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, sweep.FlaggedForCancellation)

	flagged := testutil.GetTournament(t, f.db, tr.ID)
	assert.Equal(t, domain.StatusPendingCancellation, flagged.Status)
	assert.Equal(t, domain.CancellationReasonHostNoShow, flagged.CancellationReason)
	assert.Equal(t, int64(0), testutil.GetUser(t, f.db, "player-1").TournamentCredits)

	notify, err := f.uc.RunNotificationProcessor(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, notify.ProcessedCancellations)

	stored := testutil.GetTournament(t, f.db, tr.ID)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.Equal(t, int64(0), stored.CurrentPrizePool)
	require.NotNil(t, stored.DeleteAfter)
	assert.True(t, stored.DeleteAfter.Equal(now.Add(DefaultOptions.CancelTTL)))
	for _, id := range []string{"player-1", "player-2", "player-3"} {
		assert.Equal(t, int64(5), testutil.GetUser(t, f.db, id).TournamentCredits, id)
	}
	assert.Equal(t, int64(3), testutil.CountRows(t, f.db, &domain.OutboxEvent{}, "type = ?", domain.EventTypeCancellationEmail))
	// the host is not penalized on this path
	assert.Equal(t, int64(100), testutil.GetUser(t, f.db, "host-1").TournamentCredits)

	notify, err = f.uc.RunNotificationProcessor(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, notify.ProcessedCancellations)
	assert.Equal(t, int64(3), testutil.CountRows(t, f.db, &domain.CreditTransaction{}, "type = ?", domain.CreditTxTournamentCancellationRefund))
}

func TestBelowQuorumIsCancelled(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	tr := f.seed(t, 4, 5, "player-1")
	now := start.Add(12 * time.Minute)

	sweep, err := f.uc.RunModeratorSweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, sweep.FlaggedForCancellation)
	assert.Equal(t, 0, sweep.FlaggedForPenalty)

	_, err = f.uc.RunNotificationProcessor(ctx, now)
	require.NoError(t, err)

	stored := testutil.GetTournament(t, f.db, tr.ID)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.Equal(t, domain.CancellationReasonInsufficientParticipants, stored.CancellationReason)
	assert.Equal(t, int64(5), testutil.GetUser(t, f.db, "player-1").TournamentCredits)
	assert.False(t, stored.HostPenalized)
}

func TestPenaltyThenCancellation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	tr := f.seed(t, 1, 5, "player-1", "player-2")

	for _, minute := range []int{15, 21} {
		now := start.Add(time.Duration(minute) * time.Minute)
		_, err := f.uc.RunModeratorSweep(ctx, now)
		require.NoError(t, err)
		_, err = f.uc.RunNotificationProcessor(ctx, now)
		require.NoError(t, err)
	}

	stored := testutil.GetTournament(t, f.db, tr.ID)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.True(t, stored.HostPenalized)
	assert.Equal(t, int64(90), testutil.GetUser(t, f.db, "host-1").TournamentCredits)
	assert.Equal(t, int64(5), testutil.GetUser(t, f.db, "player-2").TournamentCredits)
}

func TestSweepIgnoresFreshAndStartedTournaments(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	fresh := f.seed(t, 1, 5, "player-1")
	started := f.seed(t, 1, 5, "player-2")
	started.Status = domain.StatusOngoing
	require.NoError(t, f.db.Save(started).Error)

	sweep, err := f.uc.RunModeratorSweep(ctx, start.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, sweep.Scanned)

	sweep, err = f.uc.RunModeratorSweep(ctx, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, sweep.Scanned)
	assert.Equal(t, domain.StatusPendingCancellation, testutil.GetTournament(t, f.db, fresh.ID).Status)
	assert.Equal(t, domain.StatusOngoing, testutil.GetTournament(t, f.db, started.ID).Status)
}

func TestSweepSkipsWhenLeaseHeld(t *testing.T) {
	leases := lock.NewKeyedLockManager(logger.NewLogger("test", "debug"))
	f := newFixture(t, leases)
	tr := f.seed(t, 1, 5, "player-1")

	release, acquired, err := leases.Acquire(context.Background(), SweepLeaseKey, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	sweep, err := f.uc.RunModeratorSweep(context.Background(), start.Add(15*time.Minute))
	require.NoError(t, err)
	assert.True(t, sweep.Skipped)
	assert.Equal(t, domain.StatusActive, testutil.GetTournament(t, f.db, tr.ID).Status)

	release()
	sweep, err = f.uc.RunModeratorSweep(context.Background(), start.Add(15*time.Minute))
	require.NoError(t, err)
	assert.False(t, sweep.Skipped)
	assert.Equal(t, 1, sweep.FlaggedForPenalty)
}

func TestLeaseBackendFailureRunsUnleased(t *testing.T) {
	ctrl := gomock.NewController(t)
	lease := mocks.NewMockSweepLease(ctrl)
	lease.EXPECT().
		Acquire(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, false, errors.New("redis: connection refused")).
		Times(2)

	f := newFixture(t, lease)
	tr := f.seed(t, 1, 5, "player-1")
	now := start.Add(15 * time.Minute)

	sweep, err := f.uc.RunModeratorSweep(context.Background(), now)
	require.NoError(t, err)
	assert.False(t, sweep.Skipped)
	assert.Equal(t, 1, sweep.FlaggedForPenalty)

	notify, err := f.uc.RunNotificationProcessor(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, notify.ProcessedPenalties)
	assert.Equal(t, domain.StatusPenaltyApplied, testutil.GetTournament(t, f.db, tr.ID).Status)
}

func TestPurgeExpired(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	tr := f.seed(t, 3, 5, "player-1", "player-2")
	cancelledAt := start.Add(25 * time.Minute)

	_, err := f.uc.RunModeratorSweep(ctx, cancelledAt)
	require.NoError(t, err)
	_, err = f.uc.RunNotificationProcessor(ctx, cancelledAt)
	require.NoError(t, err)

	// still inside the grace window
	result, err := f.uc.PurgeExpired(ctx, cancelledAt.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Deleted)

	f.archiver.EXPECT().
		Archive(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snapshot *domain.TournamentSnapshot) error {
			assert.Equal(t, tr.ID, snapshot.Tournament.ID)
			assert.Len(t, snapshot.Participants, 2)
			assert.Len(t, snapshot.Transactions, 2)
			return nil
		})

	result, err = f.uc.PurgeExpired(ctx, cancelledAt.Add(DefaultOptions.CancelTTL))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Archived)
	assert.Equal(t, 1, result.Deleted)

	assert.Equal(t, int64(0), testutil.CountRows(t, f.db, &domain.Tournament{}, "id = ?", tr.ID))
	assert.Equal(t, int64(0), testutil.CountRows(t, f.db, &domain.Participant{}, "tournament_id = ?", tr.ID))
	// the ledger outlives the tournament
	assert.Equal(t, int64(2), testutil.CountRows(t, f.db, &domain.CreditTransaction{}, "tournament_id = ?", tr.ID))
}

func TestPurgeKeepsTournamentWhenArchiveFails(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	tr := f.seed(t, 3, 0, "player-1")
	now := start.Add(25 * time.Minute)

	_, err := f.uc.RunModeratorSweep(ctx, now)
	require.NoError(t, err)
	_, err = f.uc.RunNotificationProcessor(ctx, now)
	require.NoError(t, err)

	f.archiver.EXPECT().Archive(gomock.Any(), gomock.Any()).Return(errors.New("bucket unavailable"))

	result, err := f.uc.PurgeExpired(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Deleted)
	assert.Equal(t, int64(1), testutil.CountRows(t, f.db, &domain.Tournament{}, "id = ?", tr.ID))
}

func TestCancellationRollsBackWhenARefundFails(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	tr := f.seed(t, 1, 5, "player-1")
	// the second participant has no user row, so its refund fails after player-1 was credited
	testutil.AddParticipants(t, f.db, tr, "player-2")
	now := start.Add(25 * time.Minute)

	_, err := f.uc.RunModeratorSweep(ctx, now)
	require.NoError(t, err)

	notify, err := f.uc.RunNotificationProcessor(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, notify.Failed)
	assert.Equal(t, 0, notify.ProcessedCancellations)

	stored := testutil.GetTournament(t, f.db, tr.ID)
	assert.Equal(t, domain.StatusPendingCancellation, stored.Status)
	assert.Equal(t, int64(10), stored.CurrentPrizePool)
	assert.Nil(t, stored.DeleteAfter)
	assert.Equal(t, int64(0), testutil.GetUser(t, f.db, "player-1").TournamentCredits)
	assert.Equal(t, int64(0), testutil.CountRows(t, f.db, &domain.CreditTransaction{}, "tournament_id = ?", tr.ID))
	assert.Equal(t, int64(0), testutil.CountRows(t, f.db, &domain.OutboxEvent{}, "type = ?", domain.EventTypeCancellationEmail))

	// once the account exists the next run refunds everyone exactly once
	testutil.CreateUser(t, f.db, "player-2", 0, 0)
	for i := 0; i < 2; i++ {
		_, err = f.uc.RunNotificationProcessor(ctx, now.Add(time.Duration(i+1)*time.Minute))
		require.NoError(t, err)
	}

	stored = testutil.GetTournament(t, f.db, tr.ID)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.Equal(t, int64(0), stored.CurrentPrizePool)
	for _, id := range []string{"player-1", "player-2"} {
		assert.Equal(t, int64(5), testutil.GetUser(t, f.db, id).TournamentCredits, id)
		assert.Equal(t, int64(1), testutil.CountRows(t, f.db, &domain.CreditTransaction{}, "user_id = ? AND type = ?", id, domain.CreditTxTournamentCancellationRefund), id)
	}
}

type sweepState struct {
	status        domain.TournamentStatus
	reason        domain.CancellationReason
	hostPenalized bool
	pool          int64
}

// state captures the tournaments plus host credits, ledger rows and outbox rows
func (f *fixture) state(t *testing.T, ids ...string) ([]sweepState, int64, int64, int64) {
	t.Helper()
	states := make([]sweepState, 0, len(ids))
	for _, id := range ids {
		tr := testutil.GetTournament(t, f.db, id)
		states = append(states, sweepState{tr.Status, tr.CancellationReason, tr.HostPenalized, tr.CurrentPrizePool})
	}
	return states,
		testutil.GetUser(t, f.db, "host-1").TournamentCredits,
		testutil.CountRows(t, f.db, &domain.CreditTransaction{}, "1 = 1"),
		testutil.CountRows(t, f.db, &domain.OutboxEvent{}, "1 = 1")
}

func TestRepeatedSweepIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	late := f.seed(t, 1, 5, "player-1")
	underfilled := f.seed(t, 3, 5, "player-2")
	now := start.Add(15 * time.Minute)

	first, err := f.uc.RunModeratorSweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, first.FlaggedForPenalty)
	assert.Equal(t, 1, first.FlaggedForCancellation)
	states, credits, txs, events := f.state(t, late.ID, underfilled.ID)

	second, err := f.uc.RunModeratorSweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, second.FlaggedForPenalty)
	assert.Equal(t, 0, second.FlaggedForCancellation)
	assert.Equal(t, 0, second.Failed)

	againStates, againCredits, againTxs, againEvents := f.state(t, late.ID, underfilled.ID)
	assert.Equal(t, states, againStates)
	assert.Equal(t, credits, againCredits)
	assert.Equal(t, txs, againTxs)
	assert.Equal(t, events, againEvents)
	assert.Equal(t, domain.StatusPendingPenalty, againStates[0].status)
	assert.Equal(t, domain.StatusPendingCancellation, againStates[1].status)
}
