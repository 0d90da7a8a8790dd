package repository

import (
	"context"
	"errors"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TournamentRepository implements domain.TournamentRepository
type TournamentRepository struct {
	db *gorm.DB
}

// NewTournamentRepository creates a new tournament repository
func NewTournamentRepository(db *gorm.DB) domain.TournamentRepository {
	return &TournamentRepository{db: db}
}

// WithTransaction returns a repository bound to the given transaction
func (r *TournamentRepository) WithTransaction(tx *gorm.DB) domain.TournamentRepository {
	return &TournamentRepository{db: tx}
}

// Create creates a new tournament
func (r *TournamentRepository) Create(ctx context.Context, tournament *domain.Tournament) error {
	tournament.CreatedAt = time.Now()
	tournament.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(tournament).Error
}

// GetByID retrieves a tournament by ID
func (r *TournamentRepository) GetByID(ctx context.Context, id string) (*domain.Tournament, error) {
	var tournament domain.Tournament
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&tournament)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &tournament, nil
}

// GetByIDForUpdate retrieves a tournament by ID and locks the row until the transaction ends
func (r *TournamentRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Tournament, error) {
	var tournament domain.Tournament
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&tournament)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &tournament, nil
}

// List retrieves tournaments matching the filter, soonest start first
func (r *TournamentRepository) List(ctx context.Context, filter domain.TournamentFilter) ([]*domain.Tournament, error) {
	var tournaments []*domain.Tournament
	query := r.db.WithContext(ctx).Model(&domain.Tournament{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.HostID != "" {
		query = query.Where("host_id = ?", filter.HostID)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	result := query.Order("start_date ASC").Limit(limit).Offset(filter.Offset).Find(&tournaments)
	if result.Error != nil {
		return nil, result.Error
	}
	return tournaments, nil
}

// Update saves every column of an existing tournament
func (r *TournamentRepository) Update(ctx context.Context, tournament *domain.Tournament) error {
	tournament.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(tournament).Error
}

// FindDueForModeration retrieves tournaments in the given statuses whose start passed before the cutoff
func (r *TournamentRepository) FindDueForModeration(ctx context.Context, statuses []domain.TournamentStatus, startedBefore time.Time, limit int) ([]*domain.Tournament, error) {
	var tournaments []*domain.Tournament
	result := r.db.WithContext(ctx).
		Where("status IN ? AND start_date <= ?", statuses, startedBefore).
		Order("start_date ASC").
		Limit(limit).
		Find(&tournaments)
	if result.Error != nil {
		return nil, result.Error
	}
	return tournaments, nil
}

// FindByStatus retrieves tournaments in one status, oldest update first
func (r *TournamentRepository) FindByStatus(ctx context.Context, status domain.TournamentStatus, limit int) ([]*domain.Tournament, error) {
	var tournaments []*domain.Tournament
	result := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("updated_at ASC").
		Limit(limit).
		Find(&tournaments)
	if result.Error != nil {
		return nil, result.Error
	}
	return tournaments, nil
}

// FindExpired retrieves cancelled tournaments whose TTL marker passed
func (r *TournamentRepository) FindExpired(ctx context.Context, now time.Time, limit int) ([]*domain.Tournament, error) {
	var tournaments []*domain.Tournament
	result := r.db.WithContext(ctx).
		Where("status = ? AND delete_after IS NOT NULL AND delete_after <= ?", domain.StatusCancelled, now).
		Order("delete_after ASC").
		Limit(limit).
		Find(&tournaments)
	if result.Error != nil {
		return nil, result.Error
	}
	return tournaments, nil
}

// Delete physically removes a tournament with its participants and winners
func (r *TournamentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tournament_id = ?", id).Delete(&domain.Participant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tournament_id = ?", id).Delete(&domain.Winner{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Tournament{}).Error
	})
}

// AddParticipant appends a participant
func (r *TournamentRepository) AddParticipant(ctx context.Context, participant *domain.Participant) error {
	if participant.JoinedAt.IsZero() {
		participant.JoinedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(participant).Error
}

// GetParticipant retrieves one participant of a tournament
func (r *TournamentRepository) GetParticipant(ctx context.Context, tournamentID, authUID string) (*domain.Participant, error) {
	var participant domain.Participant
	result := r.db.WithContext(ctx).
		Where("tournament_id = ? AND auth_uid = ?", tournamentID, authUID).
		First(&participant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &participant, nil
}

// ListParticipants retrieves participants in join order
func (r *TournamentRepository) ListParticipants(ctx context.Context, tournamentID string) ([]*domain.Participant, error) {
	var participants []*domain.Participant
	result := r.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("position ASC").
		Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}
	return participants, nil
}

// AddWinner records a prize payout
func (r *TournamentRepository) AddWinner(ctx context.Context, winner *domain.Winner) error {
	if winner.DistributedAt.IsZero() {
		winner.DistributedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(winner).Error
}

// GetWinner retrieves the payout for a position
func (r *TournamentRepository) GetWinner(ctx context.Context, tournamentID, position string) (*domain.Winner, error) {
	var winner domain.Winner
	result := r.db.WithContext(ctx).
		Where("tournament_id = ? AND position = ?", tournamentID, position).
		First(&winner)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &winner, nil
}

// ListWinners retrieves payouts in distribution order
func (r *TournamentRepository) ListWinners(ctx context.Context, tournamentID string) ([]*domain.Winner, error) {
	var winners []*domain.Winner
	result := r.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("distributed_at ASC").
		Find(&winners)
	if result.Error != nil {
		return nil, result.Error
	}
	return winners, nil
}
