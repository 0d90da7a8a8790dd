package domain

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// AppError represents an application error
type AppError struct {
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	HTTPStatus int       `json:"-"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Path       string    `json:"path,omitempty"`
	Method     string    `json:"method,omitempty"`
	Err        error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(code, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Timestamp:  time.Now(),
		Err:        err,
	}
}

// NewValidationError creates a validation error
func NewValidationError(field, message string) *AppError {
	return NewAppError(
		ErrCodeValidation,
		fmt.Sprintf("Validation failed for field '%s': %s", field, message),
		http.StatusBadRequest,
		nil,
	)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Unauthorized access"
	}
	return NewAppError(
		ErrCodeUnauthorized,
		message,
		http.StatusUnauthorized,
		nil,
	)
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "Access forbidden"
	}
	return NewAppError(
		ErrCodeForbidden,
		message,
		http.StatusForbidden,
		nil,
	)
}

// NewNotHostError creates the error returned when the caller does not host the tournament
func NewNotHostError(action string) *AppError {
	return NewAppError(
		ErrCodeUnauthorized,
		fmt.Sprintf("Only the host can %s this tournament", action),
		http.StatusForbidden,
		nil,
	)
}

// NewConflictError creates a conflict error
func NewConflictError(code, message string) *AppError {
	return NewAppError(
		code,
		message,
		http.StatusConflict,
		nil,
	)
}

// NewInternalError creates an internal server error
func NewInternalError(message string, err error) *AppError {
	if message == "" {
		message = "Internal server error"
	}
	return NewAppError(
		ErrCodeInternal,
		message,
		http.StatusInternalServerError,
		err,
	)
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, err error) *AppError {
	return NewAppError(
		ErrCodeDatabaseQuery,
		fmt.Sprintf("Database operation failed: %s", operation),
		http.StatusInternalServerError,
		err,
	)
}

// NewExternalServiceError creates an external service error
func NewExternalServiceError(service, operation string, err error) *AppError {
	return NewAppError(
		ErrCodeExternalService,
		fmt.Sprintf("External service '%s' operation '%s' failed", service, operation),
		http.StatusServiceUnavailable,
		err,
	)
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Error   *AppError `json:"error"`
	Success bool      `json:"success"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(err *AppError) ErrorResponse {
	return ErrorResponse{
		Error:   err,
		Success: false,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError carrying the given code
func HasCode(err error, code string) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Code == code
}

// Error codes for different categories of errors
const (
	ErrCodeTokenInvalid = "TOKEN_INVALID"
	ErrCodeTokenMissing = "TOKEN_MISSING"

	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeTournamentNotFound = "TOURNAMENT_NOT_FOUND"

	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"

	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeAlreadyProcessed    = "ALREADY_PROCESSED"
	ErrCodeInsufficientPool    = "INSUFFICIENT_POOL"
	ErrCodePrizeAmountMismatch = "PRIZE_AMOUNT_MISMATCH"
	ErrCodeTournamentFull      = "TOURNAMENT_FULL"
	ErrCodeAlreadyJoined       = "ALREADY_JOINED"
	ErrCodeNotParticipant      = "NOT_PARTICIPANT"

	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInvalidFormat     = "INVALID_FORMAT"
	ErrCodeInvalidAmount     = "INVALID_AMOUNT"
	ErrCodeInvalidPrizeSplit = "INVALID_PRIZE_DISTRIBUTION"

	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeDatabaseConnection = "DATABASE_CONNECTION_ERROR"
	ErrCodeDatabaseQuery      = "DATABASE_QUERY_ERROR"
	ErrCodeExternalService    = "EXTERNAL_SERVICE_ERROR"
)
