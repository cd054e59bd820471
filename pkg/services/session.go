package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dukex/hrflow/pkg/catalog"
	"github.com/dukex/hrflow/pkg/designer"
	"github.com/dukex/hrflow/pkg/eventbus"
	"github.com/dukex/hrflow/pkg/events"
	"github.com/dukex/hrflow/pkg/models"
	"github.com/dukex/hrflow/pkg/otelhelper"
	"github.com/dukex/hrflow/pkg/simulation"
	"github.com/dukex/hrflow/pkg/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Session is one editing session over a designer.Store. All mutations go through a single
// lock, so concurrent front-end requests are applied one at a time.
type Session struct {
	mu    sync.Mutex
	store *designer.Store

	logger    *slog.Logger
	tracer    trace.Tracer
	catalog   catalog.Catalog
	publisher eventbus.EventPublisher

	newSimulator func(seed *uint64) *simulation.Simulator
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTracer records a span for every session operation.
func WithTracer(tracer trace.Tracer) SessionOption {
	return func(s *Session) {
		s.tracer = tracer
	}
}

// WithPublisher publishes a GraphChanged event after every applied mutation.
func WithPublisher(publisher eventbus.EventPublisher) SessionOption {
	return func(s *Session) {
		s.publisher = publisher
	}
}

// WithSimulatorFactory overrides how simulators are built. seed is nil for an unseeded run.
func WithSimulatorFactory(factory func(seed *uint64) *simulation.Simulator) SessionOption {
	return func(s *Session) {
		s.newSimulator = factory
	}
}

// NewSession creates a session over an empty store.
func NewSession(logger *slog.Logger, automations catalog.Catalog, opts ...SessionOption) *Session {
	s := &Session{
		store:   designer.New(designer.WithLogger(logger)),
		logger:  logger,
		tracer:  otelhelper.NoopTracer(),
		catalog: automations,
		newSimulator: func(seed *uint64) *simulation.Simulator {
			if seed == nil {
				return simulation.New()
			}

			return simulation.NewSeeded(*seed)
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Graph returns a snapshot of the current graph.
func (s *Session) Graph(_ context.Context) models.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Graph()
}

// Snapshot returns the graph together with the id the next created node will get.
func (s *Session) Snapshot(_ context.Context) (models.Graph, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Graph(), s.store.NextID()
}

// Node returns the node with the given id.
func (s *Session) Node(_ context.Context, id string) (*models.WorkflowNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.store.Node(id)
	if !ok {
		return nil, notFound("Node", id, ErrNodeNotFound)
	}

	return n, nil
}

// AddNode creates a node of the given kind and inserts it.
func (s *Session) AddNode(ctx context.Context, kind models.NodeType, position models.Position) (*models.WorkflowNode, error) {
	cmd := &designer.AddNodeCommand{Kind: kind, Position: position}

	err := s.apply(ctx, "AddNode", cmd, func(g *models.Graph) events.GraphChanged {
		e := events.NewGraphChanged(events.NodeAddedEvent, g)
		e.NodeID = cmd.Node.ID
		e.NodeType = cmd.Node.Kind

		return e
	}, attribute.String(otelhelper.NodeTypeKey, string(kind)))
	if err != nil {
		return nil, err
	}

	return cmd.Node, nil
}

// UpdateNode merges patch into the node payload and returns the updated node.
func (s *Session) UpdateNode(ctx context.Context, id string, patch models.NodePatch) (*models.WorkflowNode, error) {
	return s.mutateNode(ctx, "UpdateNode", id, designer.UpdateNodeCommand{NodeID: id, Patch: patch}, events.NodeUpdatedEvent)
}

// MoveNode sets the node position and returns the moved node.
func (s *Session) MoveNode(ctx context.Context, id string, position models.Position) (*models.WorkflowNode, error) {
	return s.mutateNode(ctx, "MoveNode", id, designer.MoveNodeCommand{NodeID: id, Position: position}, events.NodeMovedEvent)
}

// DeleteNode removes the node and its edges.
func (s *Session) DeleteNode(ctx context.Context, id string) error {
	_, err := s.mutateNode(ctx, "DeleteNode", id, designer.DeleteNodeCommand{NodeID: id}, events.NodeDeletedEvent)

	return err
}

// Connect adds an edge between two existing nodes.
func (s *Session) Connect(ctx context.Context, source, target string) (*models.WorkflowEdge, error) {
	cmd := &designer.ConnectCommand{Source: source, Target: target}

	err := s.apply(ctx, "Connect", cmd, func(g *models.Graph) events.GraphChanged {
		e := events.NewGraphChanged(events.EdgeConnectedEvent, g)
		e.EdgeID = cmd.Edge.ID
		e.Source = source
		e.Target = target

		return e
	})
	if err != nil {
		return nil, err
	}

	return cmd.Edge, nil
}

// DeleteEdge removes a single edge.
func (s *Session) DeleteEdge(ctx context.Context, id string) error {
	return s.apply(ctx, "DeleteEdge", guarded{
		check: func(st *designer.Store) error {
			if _, ok := st.Edge(id); !ok {
				return notFound("DeleteEdge", id, ErrEdgeNotFound)
			}

			return nil
		},
		cmd: designer.DeleteEdgeCommand{EdgeID: id},
	}, func(g *models.Graph) events.GraphChanged {
		e := events.NewGraphChanged(events.EdgeDeletedEvent, g)
		e.EdgeID = id

		return e
	}, attribute.String(otelhelper.EdgeIDKey, id))
}

// Clear empties the graph and resets node numbering.
func (s *Session) Clear(ctx context.Context) error {
	return s.apply(ctx, "Clear", designer.ClearCommand{}, func(g *models.Graph) events.GraphChanged {
		return events.NewGraphChanged(events.GraphClearedEvent, g)
	})
}

// Import replaces the graph. A malformed document leaves the session unchanged.
func (s *Session) Import(ctx context.Context, text string) error {
	return s.apply(ctx, "Import", designer.ImportCommand{Text: text}, func(g *models.Graph) events.GraphChanged {
		return events.NewGraphChanged(events.GraphImportedEvent, g)
	})
}

// Export returns the graph in its textual form.
func (s *Session) Export(ctx context.Context) (string, error) {
	_, span := otelhelper.StartSpan(ctx, s.tracer, "Session.Export")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	text, err := s.store.Export()
	if err != nil {
		otelhelper.SetError(span, err)

		return "", err
	}

	return text, nil
}

// Automations lists the catalog actions.
func (s *Session) Automations(ctx context.Context) ([]models.AutomationAction, error) {
	return s.catalog.ListAutomations(ctx)
}

// Validate checks the current graph, including catalog-aware configuration warnings.
func (s *Session) Validate(ctx context.Context) (models.ValidationResult, error) {
	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "Session.Validate")
	defer span.End()

	actions, err := s.catalog.ListAutomations(ctx)
	if err != nil {
		otelhelper.SetError(span, err)

		return models.ValidationResult{}, fmt.Errorf("failed to list automations: %w", err)
	}

	result := validation.New(validation.WithCatalog(actions)).Validate(s.Graph(ctx))
	otelhelper.SetDiagnostics(span, len(result.Errors), len(result.Warnings))

	s.logger.DebugContext(ctx, "Validated graph",
		"valid", result.IsValid,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
	)

	return result, nil
}

// Simulate dry-runs a snapshot of the graph. A non-nil seed makes the run reproducible.
func (s *Session) Simulate(ctx context.Context, seed *uint64) models.SimulationResult {
	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "Session.Simulate")
	defer span.End()

	result := s.newSimulator(seed).Simulate(s.Graph(ctx))

	span.SetAttributes(attribute.Int(otelhelper.StepCountKey, len(result.Steps)))
	otelhelper.SetDiagnostics(span, len(result.Errors), 0)

	s.logger.DebugContext(ctx, "Simulated graph",
		"success", result.Success,
		"steps", len(result.Steps),
		"errors", len(result.Errors),
	)

	return result
}

// mutateNode applies cmd when node id exists and returns the node afterwards (nil when
// the command removed it).
func (s *Session) mutateNode(
	ctx context.Context,
	op, id string,
	cmd designer.Command,
	eventType events.EventType,
) (*models.WorkflowNode, error) {
	var (
		kind  models.NodeType
		after *models.WorkflowNode
	)

	err := s.apply(ctx, op, guarded{
		check: func(st *designer.Store) error {
			n, ok := st.Node(id)
			if !ok {
				return notFound(op, id, ErrNodeNotFound)
			}

			kind = n.Kind

			return nil
		},
		cmd: cmd,
		after: func(st *designer.Store) {
			after, _ = st.Node(id)
		},
	}, func(g *models.Graph) events.GraphChanged {
		e := events.NewGraphChanged(eventType, g)
		e.NodeID = id
		e.NodeType = kind

		return e
	}, attribute.String(otelhelper.NodeIDKey, id))
	if err != nil {
		return nil, err
	}

	return after, nil
}

// apply runs cmd under the session lock, then publishes the event built by changed.
func (s *Session) apply(
	ctx context.Context,
	op string,
	cmd designer.Command,
	changed func(*models.Graph) events.GraphChanged,
	attrs ...attribute.KeyValue,
) error {
	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "Session."+op, attrs...)
	defer span.End()

	s.mu.Lock()

	if err := s.store.Apply(cmd); err != nil {
		s.mu.Unlock()
		otelhelper.SetError(span, err)
		s.logger.DebugContext(ctx, "Command rejected", "op", op, "error", err)

		return err
	}

	graph := s.store.Graph()
	s.mu.Unlock()

	span.SetAttributes(
		attribute.Int(otelhelper.NodeCountKey, len(graph.Nodes)),
		attribute.Int(otelhelper.EdgeCountKey, len(graph.Edges)),
	)

	if s.publisher == nil {
		return nil
	}

	event := changed(&graph)
	if err := s.publisher.Publish(ctx, event.NodeID, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish graph event", "op", op, "event_type", event.Type, "error", err)
	}

	return nil
}

// guarded runs check before cmd and after once cmd succeeded, all under the session lock.
type guarded struct {
	check func(*designer.Store) error
	cmd   designer.Command
	after func(*designer.Store)
}

func (g guarded) Apply(st *designer.Store) error {
	if err := g.check(st); err != nil {
		return err
	}

	if err := st.Apply(g.cmd); err != nil {
		return err
	}

	if g.after != nil {
		g.after(st)
	}

	return nil
}
