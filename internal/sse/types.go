package sse

import "github.com/osse101/JackpotEngine_Go/internal/domain"

// SnapshotPayload is the catch-up state a client renders before live events arrive.
// Live events with a lower revision than the snapshot are stale.
type SnapshotPayload struct {
	ClientID   string       `json:"client_id"`
	Filters    []string     `json:"filters,omitempty"`
	Round      domain.Round `json:"round"`
	ServerTime int64        `json:"server_time"`
}
