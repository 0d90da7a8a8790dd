package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger *logger.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *logger.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// ErrorHandlerMiddleware recovers panics into a 500 error envelope
func (h *ErrorHandler) ErrorHandlerMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		h.handlePanic(c, recovered)
	})
}

// handlePanic handles panic recovery
func (h *ErrorHandler) handlePanic(c *gin.Context, recovered interface{}) {
	requestID := h.getRequestID(c)
	userID := c.GetString("user_id")

	h.logger.Error("PANIC",
		zap.String("requestID", requestID),
		zap.String("userID", userID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Any("error", recovered),
		zap.String("stack", string(debug.Stack())))

	err := domain.NewInternalError("Internal server error", fmt.Errorf("panic: %v", recovered))
	h.decorate(c, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, domain.NewErrorResponse(err))
}

// Respond writes err as an error envelope. AppErrors keep their status; anything else is a 500.
func (h *ErrorHandler) Respond(c *gin.Context, err error) {
	appErr, ok := domain.IsAppError(err)
	if !ok {
		appErr = domain.NewInternalError("", err)
	}
	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	h.decorate(c, appErr)
	if status >= http.StatusInternalServerError {
		h.logger.WithContext(c.Request.Context()).Error("Request failed",
			zap.String("code", appErr.Code),
			zap.String("path", appErr.Path),
			zap.Error(err))
	} else {
		h.logger.WithContext(c.Request.Context()).Warn("Request rejected",
			zap.String("code", appErr.Code),
			zap.String("path", appErr.Path),
			zap.String("message", appErr.Message))
	}
	c.JSON(status, domain.NewErrorResponse(appErr))
}

func (h *ErrorHandler) decorate(c *gin.Context, err *domain.AppError) {
	err.RequestID = h.getRequestID(c)
	err.UserID = c.GetString("user_id")
	err.Path = c.Request.URL.Path
	err.Method = c.Request.Method
}

// getRequestID gets or generates a request ID
func (h *ErrorHandler) getRequestID(c *gin.Context) string {
	if requestID := c.GetString("request_id"); requestID != "" {
		return requestID
	}
	return uuid.NewString()
}

// RequestIDMiddleware adds a unique request ID to each request
func (h *ErrorHandler) RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID))
		c.Next()
	}
}

// TimeoutMiddleware bounds the request context; storage calls abort once it expires
func (h *ErrorHandler) TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			err := domain.NewAppError("TIMEOUT", "Request timeout", http.StatusRequestTimeout, ctx.Err())
			h.decorate(c, err)
			h.logger.Warn("TIMEOUT",
				zap.String("requestID", err.RequestID),
				zap.String("path", err.Path),
				zap.String("method", err.Method))
			c.AbortWithStatusJSON(http.StatusRequestTimeout, domain.NewErrorResponse(err))
		}
	}
}
