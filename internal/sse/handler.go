package sse

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
)

// StateReader provides the catch-up view written when a client connects
type StateReader interface {
	Current(ctx context.Context) domain.Round
}

// Handler returns an HTTP handler for SSE connections
func Handler(hub *Hub, state StateReader) http.HandlerFunc {
	return handler(hub, state, KeepaliveInterval)
}

func handler(hub *Hub, state StateReader, keepalive time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		// Check for flusher support
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		// Set SSE headers
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		// Parse event type filters from query param
		var eventTypes []string
		if filterParam := r.URL.Query().Get(TypesQueryParam); filterParam != "" {
			for _, t := range strings.Split(filterParam, ",") {
				if t = strings.TrimSpace(t); t != "" {
					eventTypes = append(eventTypes, t)
				}
			}
		}

		// Register before reading state so nothing between the snapshot and the stream is lost
		client := hub.Register(eventTypes)
		log.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"filters", eventTypes,
			"total_clients", hub.ClientCount())

		// Ensure cleanup on disconnect
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected,
				"client_id", client.ID,
				"total_clients", hub.ClientCount())
		}()

		now := time.Now()
		snapshot := Event{
			ID:        client.ID,
			Type:      EventTypeSnapshot,
			Timestamp: now.UnixMilli(),
			Payload: SnapshotPayload{
				ClientID:   client.ID,
				Filters:    eventTypes,
				Round:      state.Current(r.Context()),
				ServerTime: now.UnixMilli(),
			},
		}
		if !writeEvent(w, flusher, snapshot) {
			return
		}

		// Keepalive ticker
		ticker := time.NewTicker(keepalive)
		defer ticker.Stop()

		// Event loop
		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// Channel closed, hub is shutting down
					return
				}
				if !writeEvent(w, flusher, event) {
					return
				}

			case <-ticker.C:
				ping := Event{Type: EventTypeKeepalive, Timestamp: time.Now().UnixMilli()}
				if !writeEvent(w, flusher, ping) {
					return
				}
			}
		}
	}
}

// writeEvent reports false when the connection is gone
func writeEvent(w http.ResponseWriter, flusher http.Flusher, event Event) bool {
	msg, err := FormatSSEMessage(event)
	if err != nil {
		logger.FromContext(context.Background()).Error(LogMsgWriteError, "event_type", event.Type, "error", err)
		return true
	}
	if _, err := w.Write(msg); err != nil {
		return false
	}
	flusher.Flush()
	return true
}
