// Package eventbus delivers graph change events to interested front ends.
package eventbus

import (
	"context"

	"github.com/dukex/hrflow/pkg/events"
)

// Event is anything the bus can route; the type selects the handler on the receiving side.
type Event interface {
	GetType() events.EventType
}

// EventPublisher is the side a session holds. Publishing never blocks on subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event Event) error
}

// EventSubscriber is the side front ends hold. Handlers are registered per event type
// before Subscribe starts delivery; types without a handler are acknowledged and dropped.
type EventSubscriber interface {
	Handle(eventType events.EventType, handler EventHandler) error
	Subscribe(ctx context.Context) error
}

// EventHandler receives a decoded GraphChanged. A returned error nacks the message.
type EventHandler func(ctx context.Context, event *events.GraphChanged) error

// EventBus is both sides over one transport.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
	GenerateID() string
}
