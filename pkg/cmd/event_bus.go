// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/hrflow/pkg/eventbus"
	"github.com/dukex/hrflow/pkg/events"
)

// NewEventBus creates the event bus for the given provider. Only the in-process bus is
// supported, since a session lives in a single process.
func NewEventBus(provider string, logger *slog.Logger) (*eventbus.WatermillEventBus, error) {
	switch provider {
	case "", "memory", "gochannel":
		return eventbus.NewInMemory(watermill.NewSlogLogger(logger)), nil
	default:
		return nil, fmt.Errorf("unsupported event bus provider: %s", provider)
	}
}

// LogGraphChanges subscribes a handler that logs every graph change at debug level.
func LogGraphChanges(ctx context.Context, bus eventbus.EventSubscriber, logger *slog.Logger) error {
	for _, t := range events.Types() {
		err := bus.Handle(t, func(ctx context.Context, event *events.GraphChanged) error {
			logger.DebugContext(ctx, "Graph changed",
				"event_type", event.Type,
				"node_id", event.NodeID,
				"edge_id", event.EdgeID,
				"nodes", event.NodeCount,
				"edges", event.EdgeCount,
			)

			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to register handler for %s: %w", t, err)
		}
	}

	return bus.Subscribe(ctx)
}
