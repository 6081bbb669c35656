package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
)

// HTTPChecker looks items up in the inventory service:
// GET {BaseURL}/users/{owner}/items/{item}
type HTTPChecker struct {
	BaseURL  string
	Currency string
	Client   *http.Client
}

// NewHTTPChecker creates a checker for the inventory service at baseURL
func NewHTTPChecker(baseURL string, timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Currency: DefaultCurrency,
		Client:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPChecker) Check(ctx context.Context, ownerID, itemID string) (domain.Item, error) {
	endpoint := fmt.Sprintf("%s/users/%s/items/%s", c.BaseURL, url.PathEscape(ownerID), url.PathEscape(itemID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Item{}, fmt.Errorf("%s: %w", ErrContextCheckItem, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInventoryCallFailed, "item_id", itemID, "error", err)
		return domain.Item{}, fmt.Errorf("%s: %w", ErrContextCheckItem, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusForbidden, http.StatusUnprocessableEntity:
		return domain.Item{}, fmt.Errorf("%s: %w: %s (status %d)", ErrContextCheckItem, domain.ErrInvalidItem, itemID, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBodyBytes))
		return domain.Item{}, fmt.Errorf("%s: unexpected status %d: %s", ErrContextCheckItem, resp.StatusCode, body)
	}

	var r Record
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxItemBodyBytes)).Decode(&r); err != nil {
		return domain.Item{}, fmt.Errorf("%s: %w", ErrContextCheckItem, err)
	}
	if r.ID != itemID {
		return domain.Item{}, fmt.Errorf("%s: %w: service returned %s for %s", ErrContextCheckItem, domain.ErrInvalidItem, r.ID, itemID)
	}

	item, err := r.ToItem(ownerID, c.Currency)
	if err != nil {
		return domain.Item{}, fmt.Errorf("%s: %w", ErrContextCheckItem, err)
	}
	return item, nil
}
