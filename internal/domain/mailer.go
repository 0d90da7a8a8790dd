package domain

import "context"

//go:generate mockgen -source=mailer.go -destination=mocks/mock_mailer.go -package=mocks

// Mailer defines the interface for the external email provider
type Mailer interface {
	SendHostPenaltyEmail(ctx context.Context, email, tournamentName string, amount int64) error
	SendCancellationEmail(ctx context.Context, email, tournamentName string, refundAmount int64) error
	SendPrizeWinEmail(ctx context.Context, email, tournamentName string, amount int64) error
}

// MailRequest is the payload posted to the email API
type MailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// MailErrorResponse represents error responses from the email API
type MailErrorResponse struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// MailServiceError represents an email API error with status code
type MailServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface
func (e *MailServiceError) Error() string {
	return e.Message
}

// Is4xxError checks if the error is a 4xx client error
func (e *MailServiceError) Is4xxError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}
