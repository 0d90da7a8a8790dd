package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/http/middleware"
)

// OKResponse is the minimal success envelope
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

// getAuthenticatedUserID extracts the caller set by the JWT middleware
func getAuthenticatedUserID(c *gin.Context, errs *middleware.ErrorHandler) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		errs.Respond(c, domain.NewUnauthorizedError("User not authenticated"))
		return "", false
	}
	return userID, true
}

// queryInt reads a non-negative integer query parameter
func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid "+name+" parameter", http.StatusBadRequest, err)
	}
	return value, nil
}

func invalidBody(err error) *domain.AppError {
	return domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid format", http.StatusBadRequest, err)
}
