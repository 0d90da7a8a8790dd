package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/http/middleware"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// TournamentHandler handles HTTP requests for tournament operations
type TournamentHandler struct {
	tournamentUseCase domain.TournamentUseCase
	errors            *middleware.ErrorHandler
	logger            *logger.Logger
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(tournamentUseCase domain.TournamentUseCase, errors *middleware.ErrorHandler, logger *logger.Logger) *TournamentHandler {
	return &TournamentHandler{
		tournamentUseCase: tournamentUseCase,
		errors:            errors,
		logger:            logger,
	}
}

// CreateTournamentRequest represents the tournament creation body
type CreateTournamentRequest struct {
	Name              string         `json:"name" binding:"required,max=128" example:"Friday Night Clash"`
	EntryFee          int64          `json:"entry_fee" binding:"gte=0" example:"5"`
	MinParticipants   int            `json:"min_participants" binding:"gte=0" example:"2"`
	MaxPlayers        int            `json:"max_players" binding:"required,gt=0" example:"48"`
	StartDate         time.Time      `json:"start_date" binding:"required" example:"2026-10-14T18:00:00Z"`
	PrizeDistribution map[string]int `json:"prize_distribution,omitempty"`
	Status            string         `json:"status,omitempty" example:"active"`
}

// JoinTournamentRequest represents the optional join body
type JoinTournamentRequest struct {
	IGN string `json:"ign" binding:"max=64" example:"HeadshotKing"`
}

// DistributePrizeRequest represents the prize payout body
type DistributePrizeRequest struct {
	WinnerID string `json:"winner_id" binding:"required" example:"player-1"`
	Amount   int64  `json:"amount" binding:"required,gt=0" example:"20"`
	Position string `json:"position" binding:"required,max=32" example:"1st"`
}

// JoinResponse is returned by a successful join
type JoinResponse struct {
	OK         bool               `json:"ok" example:"true"`
	Tournament *domain.Tournament `json:"tournament"`
}

// CancelResponse is returned by a successful cancellation
type CancelResponse struct {
	OK            bool               `json:"ok" example:"true"`
	RefundedCount int                `json:"refunded_count" example:"3"`
	RefundedTotal int64              `json:"refunded_total" example:"15"`
	Tournament    *domain.Tournament `json:"tournament"`
}

// PrizeResponse is returned by a successful payout
type PrizeResponse struct {
	OK     bool           `json:"ok" example:"true"`
	Winner *domain.Winner `json:"winner"`
}

// Create handles tournament creation
// @Summary Create tournament
// @Description Create a tournament hosted by the authenticated user
// @Tags tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTournamentRequest true "Tournament details"
// @Success 201 {object} domain.Tournament
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Router /tournaments [post]
func (h *TournamentHandler) Create(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Respond(c, invalidBody(err))
		return
	}

	t, err := h.tournamentUseCase.Create(c.Request.Context(), domain.CreateTournamentInput{
		HostID:            userID,
		Name:              req.Name,
		EntryFee:          req.EntryFee,
		MinParticipants:   req.MinParticipants,
		MaxPlayers:        req.MaxPlayers,
		StartDate:         req.StartDate,
		PrizeDistribution: req.PrizeDistribution,
		Status:            domain.TournamentStatus(req.Status),
	})
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// Get handles fetching one tournament
// @Summary Get tournament
// @Description Get a tournament with its participants and winners
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tournament ID"
// @Success 200 {object} domain.TournamentDetails
// @Failure 404 {object} domain.ErrorResponse
// @Router /tournaments/{id} [get]
func (h *TournamentHandler) Get(c *gin.Context) {
	details, err := h.tournamentUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// List handles tournament listings
// @Summary List tournaments
// @Description List tournaments, optionally filtered by status or host
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param host_id query string false "Host filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} domain.Tournament
// @Failure 400 {object} domain.ErrorResponse
// @Router /tournaments [get]
func (h *TournamentHandler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	tournaments, err := h.tournamentUseCase.List(c.Request.Context(), domain.TournamentFilter{
		Status: domain.TournamentStatus(c.Query("status")),
		HostID: c.Query("host_id"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, tournaments)
}

// Join handles joining a tournament
// @Summary Join tournament
// @Description Join as the authenticated user; the entry fee grows the prize pool
// @Tags tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tournament ID"
// @Param request body JoinTournamentRequest false "In-game name"
// @Success 200 {object} JoinResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /tournaments/{id}/join [post]
func (h *TournamentHandler) Join(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	var req JoinTournamentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.errors.Respond(c, invalidBody(err))
			return
		}
	}

	t, err := h.tournamentUseCase.Join(c.Request.Context(), c.Param("id"), userID, req.IGN)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, JoinResponse{OK: true, Tournament: t})
}

// Cancel handles host cancellation
// @Summary Cancel tournament
// @Description Cancel a tournament as its host and refund every participant
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tournament ID"
// @Success 200 {object} CancelResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /tournaments/{id}/cancel [post]
func (h *TournamentHandler) Cancel(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	result, err := h.tournamentUseCase.Cancel(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	h.logger.Info("Tournament cancelled",
		zap.String("tournamentID", result.Tournament.ID),
		zap.Int("refundedCount", result.RefundedCount))
	c.JSON(http.StatusOK, CancelResponse{
		OK:            true,
		RefundedCount: result.RefundedCount,
		RefundedTotal: result.RefundedTotal,
		Tournament:    result.Tournament,
	})
}

// Start handles starting a tournament
// @Summary Start tournament
// @Description Move a tournament to ongoing as its host
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tournament ID"
// @Success 200 {object} domain.Tournament
// @Failure 403 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /tournaments/{id}/start [post]
func (h *TournamentHandler) Start(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	t, err := h.tournamentUseCase.Start(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// End handles ending a tournament
// @Summary End tournament
// @Description Close an ongoing tournament as its host
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tournament ID"
// @Success 200 {object} domain.Tournament
// @Failure 403 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /tournaments/{id}/end [post]
func (h *TournamentHandler) End(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	t, err := h.tournamentUseCase.End(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DistributePrize handles prize payouts
// @Summary Distribute prize
// @Description Pay a winner from the prize pool as the host
// @Tags tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tournament ID"
// @Param request body DistributePrizeRequest true "Payout details"
// @Success 200 {object} PrizeResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /tournaments/{id}/prizes [post]
func (h *TournamentHandler) DistributePrize(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	var req DistributePrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Respond(c, invalidBody(err))
		return
	}

	winner, err := h.tournamentUseCase.DistributePrize(c.Request.Context(), domain.DistributePrizeInput{
		TournamentID: c.Param("id"),
		CallerID:     userID,
		WinnerID:     req.WinnerID,
		Amount:       req.Amount,
		Position:     req.Position,
	})
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, PrizeResponse{OK: true, Winner: winner})
}
