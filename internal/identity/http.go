package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
)

// HTTPResolver asks the auth service who owns a session token
type HTTPResolver struct {
	URL    string
	Client *http.Client
}

// NewHTTPResolver creates a resolver against the session endpoint at url
func NewHTTPResolver(url string, timeout time.Duration) *HTTPResolver {
	return &HTTPResolver{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

type sessionResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (r *HTTPResolver) Resolve(ctx context.Context, credential string) (domain.Identity, error) {
	if credential == "" {
		return domain.Identity{}, fmt.Errorf("%s: %w", ErrContextResolve, domain.ErrUnauthenticated)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%s: %w", ErrContextResolve, err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Accept", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgSessionLookupFailed, "error", err)
		return domain.Identity{}, fmt.Errorf("%s: %w", ErrContextResolve, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.Identity{}, fmt.Errorf("%s: %w", ErrContextResolve, domain.ErrUnauthenticated)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBodyBytes))
		return domain.Identity{}, fmt.Errorf("%s: unexpected status %d: %s", ErrContextResolve, resp.StatusCode, body)
	}

	var session sessionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxSessionBodyBytes)).Decode(&session); err != nil {
		return domain.Identity{}, fmt.Errorf("%s: %w", ErrContextResolve, err)
	}
	if session.ID == "" {
		return domain.Identity{}, fmt.Errorf("%s: %w", ErrContextResolve, domain.ErrUnauthenticated)
	}

	return domain.Identity{ID: session.ID, DisplayName: session.Username, AvatarURL: session.Avatar}, nil
}
