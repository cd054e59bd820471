package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/hrflow/pkg/events"
	"github.com/dukex/hrflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillEventBus_InMemoryRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewInMemory(watermill.NopLogger{})
	defer func() {
		assert.NoError(t, bus.Close())
	}()

	received := make(chan *events.GraphChanged, 1)

	require.NoError(t, bus.Handle(events.NodeAddedEvent, func(_ context.Context, e *events.GraphChanged) error {
		received <- e

		return nil
	}))
	require.NoError(t, bus.Subscribe(ctx))

	g := &models.Graph{Nodes: []*models.WorkflowNode{{ID: "node-1"}}}
	event := events.NewGraphChanged(events.NodeAddedEvent, g)
	event.NodeID = "node-1"
	event.NodeType = models.NodeTypeTask

	require.NoError(t, bus.Publish(ctx, event.NodeID, event))

	select {
	case got := <-received:
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, events.NodeAddedEvent, got.Type)
		assert.Equal(t, "node-1", got.NodeID)
		assert.Equal(t, models.NodeTypeTask, got.NodeType)
		assert.Equal(t, 1, got.NodeCount)
		assert.Equal(t, 0, got.EdgeCount)
	case <-time.After(5 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestWatermillEventBus_IgnoresUnhandledTypes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewInMemory(watermill.NopLogger{})
	defer func() {
		assert.NoError(t, bus.Close())
	}()

	received := make(chan events.EventType, 2)

	require.NoError(t, bus.Handle(events.GraphClearedEvent, func(_ context.Context, e *events.GraphChanged) error {
		received <- e.Type

		return nil
	}))
	require.NoError(t, bus.Subscribe(ctx))

	g := &models.Graph{}
	require.NoError(t, bus.Publish(ctx, "", events.NewGraphChanged(events.EdgeDeletedEvent, g)))
	require.NoError(t, bus.Publish(ctx, "", events.NewGraphChanged(events.GraphClearedEvent, g)))

	select {
	case got := <-received:
		assert.Equal(t, events.GraphClearedEvent, got)
	case <-time.After(5 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	bus := NewInMemory(watermill.NopLogger{})
	defer func() {
		assert.NoError(t, bus.Close())
	}()

	assert.NotEqual(t, bus.GenerateID(), bus.GenerateID())
}
