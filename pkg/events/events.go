// Package events defines the notifications a designer session emits after each mutation.
package events

import (
	"time"

	"github.com/dukex/hrflow/pkg/models"
	"github.com/google/uuid"
)

type EventType string

// Topic carries every graph change event.
const Topic = "hrflow.graph"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Node events.
	NodeAddedEvent   EventType = "node.added"
	NodeUpdatedEvent EventType = "node.updated"
	NodeMovedEvent   EventType = "node.moved"
	NodeDeletedEvent EventType = "node.deleted"

	// Edge events.
	EdgeConnectedEvent EventType = "edge.connected"
	EdgeDeletedEvent   EventType = "edge.deleted"

	// Whole-graph events.
	GraphClearedEvent  EventType = "graph.cleared"
	GraphImportedEvent EventType = "graph.imported"
)

// Types returns every event type.
func Types() []EventType {
	return []EventType{
		NodeAddedEvent, NodeUpdatedEvent, NodeMovedEvent, NodeDeletedEvent,
		EdgeConnectedEvent, EdgeDeletedEvent,
		GraphClearedEvent, GraphImportedEvent,
	}
}

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// GraphChanged describes one applied mutation. Only the members relevant to Type are set.
type GraphChanged struct {
	BaseEvent

	NodeID    string          `json:"node_id,omitempty"`
	NodeType  models.NodeType `json:"node_type,omitempty"`
	EdgeID    string          `json:"edge_id,omitempty"`
	Source    string          `json:"source,omitempty"`
	Target    string          `json:"target,omitempty"`
	NodeCount int             `json:"node_count"`
	EdgeCount int             `json:"edge_count"`
}

func (e GraphChanged) GetType() EventType {
	return e.Type
}

// NewGraphChanged returns an event of the given type with a fresh id and the current time.
func NewGraphChanged(t EventType, g *models.Graph) GraphChanged {
	return GraphChanged{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      t,
			Timestamp: time.Now().UTC(),
		},
		NodeCount: len(g.Nodes),
		EdgeCount: len(g.Edges),
	}
}
