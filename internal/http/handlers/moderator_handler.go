package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/http/middleware"
)

// ModeratorHandler exposes manual triggers of the scheduled moderator jobs
type ModeratorHandler struct {
	moderatorUseCase domain.ModeratorUseCase
	errors           *middleware.ErrorHandler
}

// NewModeratorHandler creates a new moderator handler
func NewModeratorHandler(moderatorUseCase domain.ModeratorUseCase, errors *middleware.ErrorHandler) *ModeratorHandler {
	return &ModeratorHandler{
		moderatorUseCase: moderatorUseCase,
		errors:           errors,
	}
}

// Sweep handles a manual moderator sweep
// @Summary Run moderator sweep
// @Description Flag late or under-filled tournaments for penalty or cancellation
// @Tags moderator
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.SweepResult
// @Failure 403 {object} domain.ErrorResponse
// @Router /moderator/sweep [post]
func (h *ModeratorHandler) Sweep(c *gin.Context) {
	result, err := h.moderatorUseCase.RunModeratorSweep(c.Request.Context(), time.Now())
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Notifications handles a manual notification processor run
// @Summary Run notification processor
// @Description Execute flagged penalties and cancellations
// @Tags moderator
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.NotificationResult
// @Failure 403 {object} domain.ErrorResponse
// @Router /moderator/notifications [post]
func (h *ModeratorHandler) Notifications(c *gin.Context) {
	result, err := h.moderatorUseCase.RunNotificationProcessor(c.Request.Context(), time.Now())
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Purge handles a manual TTL purge
// @Summary Purge expired tournaments
// @Description Archive and delete cancelled tournaments past their TTL
// @Tags moderator
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.PurgeResult
// @Failure 403 {object} domain.ErrorResponse
// @Router /moderator/purge [post]
func (h *ModeratorHandler) Purge(c *gin.Context) {
	result, err := h.moderatorUseCase.PurgeExpired(c.Request.Context(), time.Now())
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
