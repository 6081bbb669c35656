package server

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/fairness"
	"github.com/osse101/JackpotEngine_Go/internal/handler"
	"github.com/osse101/JackpotEngine_Go/internal/identity"
	"github.com/osse101/JackpotEngine_Go/internal/round"
	"github.com/osse101/JackpotEngine_Go/internal/sse"
)

// stubService answers every round.Service call with a fixed open round
type stubService struct {
	locks int
}

func (s *stubService) Start(context.Context) error { return nil }
func (s *stubService) Current(context.Context) domain.Round {
	return domain.Round{Hash: "r1", Status: domain.RoundStatusOpen}
}
func (s *stubService) Halted() bool { return false }
func (s *stubService) Contribute(context.Context, domain.Identity, round.ContributeRequest) (domain.Round, error) {
	return domain.Round{Hash: "r1"}, nil
}
func (s *stubService) ForceLock(context.Context) error { s.locks++; return nil }
func (s *stubService) Resume(context.Context) error    { return domain.ErrNotHalted }
func (s *stubService) History(context.Context, int, int) (domain.HistoryPage, error) {
	return domain.HistoryPage{}, nil
}
func (s *stubService) HistoryEntry(context.Context, string) (*domain.ArchiveEntry, error) {
	return nil, domain.ErrRoundNotFound
}
func (s *stubService) VerifyRound(context.Context, string) (fairness.Outcome, error) {
	return fairness.Outcome{}, domain.ErrRoundNotFound
}
func (s *stubService) Shutdown(context.Context) error { return nil }

func newTestServer(t *testing.T) (*httptest.Server, *stubService, *sse.Hub) {
	t.Helper()
	svc := &stubService{}
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	router := NewRouter(Options{APIKey: "admin-key"}, svc, identity.NewHeaderResolver(), hub,
		map[string]handler.HealthChecker{})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, svc, hub
}

func TestRouter_PublicAndAdminRoutes(t *testing.T) {
	srv, svc, _ := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		apiKey string
		want   int
	}{
		{"healthz", http.MethodGet, "/healthz", "", http.StatusOK},
		{"readyz", http.MethodGet, "/readyz", "", http.StatusOK},
		{"version", http.MethodGet, "/version", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"status is public", http.MethodGet, "/api/v1/jackpot/status", "", http.StatusOK},
		{"history entry", http.MethodGet, "/api/v1/jackpot/history/nope", "", http.StatusNotFound},
		{"join needs bearer", http.MethodPost, "/api/v1/jackpot/join", "", http.StatusUnauthorized},
		{"admin lock without key", http.MethodPost, "/api/v1/admin/jackpot/lock", "", http.StatusUnauthorized},
		{"admin lock with key", http.MethodPost, "/api/v1/admin/jackpot/lock", "admin-key", http.StatusOK},
		{"admin resume with key", http.MethodPost, "/api/v1/admin/jackpot/resume", "admin-key", http.StatusConflict},
		{"unknown route", http.MethodGet, "/api/v1/nothing", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, nil)
			require.NoError(t, err)
			if tt.apiKey != "" {
				req.Header.Set(HeaderAPIKey, tt.apiKey)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
	assert.Equal(t, 1, svc.locks)
}

func TestRouter_EventStreamPassesThroughMiddleware(t *testing.T) {
	srv, _, hub := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/jackpot/events", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	idLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(idLine, "id: "), idLine)
	eventLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: "+sse.EventTypeSnapshot+"\n", eventLine)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)
	_, err := rw.Write([]byte("data"))
	require.NoError(t, err)
	rw.Flush()
	assert.True(t, rec.Flushed)
	assert.Equal(t, http.ResponseWriter(rec), rw.Unwrap())
}
