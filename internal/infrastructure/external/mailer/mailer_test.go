package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(url string, retries int) domain.Mailer {
	return NewMailer(Config{
		URL:     url,
		APIKey:  "secret-key",
		From:    "noreply@ffarena.test",
		Retries: retries,
	}, logger.NewLogger("test", "debug"))
}

func TestSendHostPenaltyEmail(t *testing.T) {
	var got domain.MailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	err := newTestMailer(server.URL, 0).SendHostPenaltyEmail(context.Background(), "host@ffarena.test", "Sunday Squads", 10)
	require.NoError(t, err)

	assert.Equal(t, "noreply@ffarena.test", got.From)
	assert.Equal(t, "host@ffarena.test", got.To)
	assert.Contains(t, got.Subject, "Sunday Squads")
	assert.Contains(t, got.Text, "10 tournament credits")
}

func TestSendCancellationEmailText(t *testing.T) {
	var texts []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.MailRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		texts = append(texts, req.Text)
	}))
	defer server.Close()

	m := newTestMailer(server.URL, 0)
	require.NoError(t, m.SendCancellationEmail(context.Background(), "p@ffarena.test", "Cup", 5))
	require.NoError(t, m.SendCancellationEmail(context.Background(), "p@ffarena.test", "Cup", 0))

	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "entry fee of 5")
	assert.NotContains(t, texts[1], "refunded")
}

func TestSendErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		want4xx  bool
	}{
		{
			name:     "Client_Error_With_Code",
			status:   http.StatusUnprocessableEntity,
			body:     `{"code":"INVALID_RECIPIENT","msg":"address rejected"}`,
			wantCode: "INVALID_RECIPIENT",
			want4xx:  true,
		},
		{
			name:    "Client_Error_Plain_Body",
			status:  http.StatusUnauthorized,
			body:    "unauthorized",
			want4xx: true,
		},
		{
			name:   "Server_Error",
			status: http.StatusBadGateway,
			body:   "upstream down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := newTestMailer(server.URL, 0).SendPrizeWinEmail(context.Background(), "w@ffarena.test", "Cup", 20)

			var svcErr *domain.MailServiceError
			require.True(t, errors.As(err, &svcErr))
			assert.Equal(t, tt.status, svcErr.StatusCode)
			assert.Equal(t, tt.wantCode, svcErr.Code)
			assert.Equal(t, tt.want4xx, svcErr.Is4xxError())
		})
	}
}

func TestServerErrorsAreRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newTestMailer(server.URL, 2).SendPrizeWinEmail(context.Background(), "w@ffarena.test", "Cup", 20)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	err := newTestMailer(server.URL, 3).SendPrizeWinEmail(context.Background(), "w@ffarena.test", "Cup", 20)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
