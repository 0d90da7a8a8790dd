package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/http/middleware"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	userUseCase domain.UserUseCase
	errors      *middleware.ErrorHandler
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUseCase domain.UserUseCase, errors *middleware.ErrorHandler) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		errors:      errors,
	}
}

// GetWallet handles getting the caller's balances
// @Summary Get wallet
// @Description Get the tournament credits and earnings of the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Wallet
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetWallet(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	wallet, err := h.userUseCase.GetWallet(c.Request.Context(), userID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

// ListTransactions handles listing the caller's credit transactions
// @Summary List credit transactions
// @Description List the credit transactions of the authenticated user, newest first
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} domain.CreditTransaction
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Router /users/me/transactions [get]
func (h *UserHandler) ListTransactions(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	transactions, err := h.userUseCase.ListTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// Reconcile handles replaying the caller's ledger
// @Summary Reconcile wallet
// @Description Compare the cached balances with the sum of the transaction log
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Reconciliation
// @Failure 401 {object} domain.ErrorResponse
// @Router /users/me/reconcile [get]
func (h *UserHandler) Reconcile(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	result, err := h.userUseCase.Reconcile(c.Request.Context(), userID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
