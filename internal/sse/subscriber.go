package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/JackpotEngine_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers a forwarding handler for every round event type
func (s *Subscriber) Subscribe() {
	types := make([]string, len(event.RoundTypes))
	for i, t := range event.RoundTypes {
		s.bus.Subscribe(t, s.forward)
		types[i] = string(t)
	}
	slog.Info(LogMsgSubscribed, "types", types)
}

// forward runs on the publisher's goroutine and must not block
func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type)
	return nil
}
