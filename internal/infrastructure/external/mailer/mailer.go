package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds the email API settings
type Config struct {
	URL           string
	APIKey        string
	From          string
	RatePerSecond float64
	Timeout       time.Duration
	Retries       int
}

type mailerImpl struct {
	url     string
	apiKey  string
	from    string
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logger.Logger
}

// NewMailer creates an email API client. Server errors and connection failures are retried;
// client errors are returned as *domain.MailServiceError on the first attempt.
func NewMailer(cfg Config, logger *logger.Logger) domain.Mailer {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.Retries
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.Logger = nil
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	return &mailerImpl{
		url:     cfg.URL,
		apiKey:  cfg.APIKey,
		from:    cfg.From,
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

func (m *mailerImpl) SendHostPenaltyEmail(ctx context.Context, email, tournamentName string, amount int64) error {
	return m.send(ctx, domain.MailRequest{
		From:    m.from,
		To:      email,
		Subject: fmt.Sprintf("Penalty applied: %s", tournamentName),
		Text: fmt.Sprintf("Your tournament \"%s\" was not started on time. %d tournament credits were deducted from your wallet.",
			tournamentName, amount),
	})
}

func (m *mailerImpl) SendCancellationEmail(ctx context.Context, email, tournamentName string, refundAmount int64) error {
	text := fmt.Sprintf("The tournament \"%s\" was cancelled.", tournamentName)
	if refundAmount > 0 {
		text = fmt.Sprintf("%s Your entry fee of %d tournament credits was refunded.", text, refundAmount)
	}
	return m.send(ctx, domain.MailRequest{
		From:    m.from,
		To:      email,
		Subject: fmt.Sprintf("Tournament cancelled: %s", tournamentName),
		Text:    text,
	})
}

func (m *mailerImpl) SendPrizeWinEmail(ctx context.Context, email, tournamentName string, amount int64) error {
	return m.send(ctx, domain.MailRequest{
		From:    m.from,
		To:      email,
		Subject: fmt.Sprintf("You won in %s", tournamentName),
		Text:    fmt.Sprintf("Congratulations! %d credits from \"%s\" were added to your earnings.", amount, tournamentName),
	})
}

// send posts one message to the email API
func (m *mailerImpl) send(ctx context.Context, msg domain.MailRequest) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mail rate limiter: %w", err)
	}

	jsonBytes, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(jsonBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	// the passthrough handler returns the last response together with the retry policy error
	resp, err := m.client.Do(req)
	if resp == nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		svcErr := &domain.MailServiceError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("mail service error: unexpected status %d - %s", resp.StatusCode, string(respBody)),
		}
		var errResp domain.MailErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Code != "" {
			svcErr.Code = errResp.Code
			svcErr.Message = fmt.Sprintf("mail service error: %s - %s", errResp.Code, errResp.Msg)
		}
		return svcErr
	}

	m.logger.Debug("Email sent", zap.String("subject", msg.Subject))
	return nil
}
