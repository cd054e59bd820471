// Package designer owns the editable workflow graph: it allocates node identities, applies
// structural mutations and converts the graph to and from its textual export.
package designer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"slices"
	"strconv"

	"github.com/dukex/hrflow/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	nodeIDPrefix  = "node-"
	initialNodeID = 1
)

var nodeIDSuffix = regexp.MustCompile(`node-(\d+)`)

// Store holds the graph of one editing session together with its id counter.
// It is not safe for concurrent use; callers serialize mutations.
type Store struct {
	logger   *slog.Logger
	validate *validator.Validate
	graph    models.Graph
	nextID   int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for import diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New returns an empty store whose first created node is node-1.
func New(opts ...Option) *Store {
	s := &Store{
		logger:   slog.Default(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		graph:    models.Graph{Nodes: []*models.WorkflowNode{}, Edges: []*models.WorkflowEdge{}},
		nextID:   initialNodeID,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Graph returns a deep copy of the current graph.
func (s *Store) Graph() models.Graph {
	return s.graph.Clone()
}

// Node returns a copy of the node with the given id.
func (s *Store) Node(id string) (*models.WorkflowNode, bool) {
	n := s.graph.Node(id)
	if n == nil {
		return nil, false
	}

	return n.Clone(), true
}

// Edge returns a copy of the edge with the given id.
func (s *Store) Edge(id string) (*models.WorkflowEdge, bool) {
	for _, e := range s.graph.Edges {
		if e.ID == id {
			return e.Clone(), true
		}
	}

	return nil, false
}

// NextID reports the id the next CreateNode call will allocate.
func (s *Store) NextID() string {
	return nodeIDPrefix + strconv.Itoa(s.nextID)
}

// CreateNode allocates a new node with the default payload for kind. The node is not
// inserted; pass it to AddNode.
func (s *Store) CreateNode(kind models.NodeType, position models.Position) (*models.WorkflowNode, error) {
	data, err := models.DefaultData(kind)
	if err != nil {
		return nil, err
	}

	id := s.NextID()
	s.nextID++

	return &models.WorkflowNode{
		ID:       id,
		Kind:     kind,
		Position: position,
		Data:     data,
	}, nil
}

// AddNode appends a copy of node to the graph. The counter is moved past a node-N id so
// later CreateNode calls cannot collide with it.
func (s *Store) AddNode(node *models.WorkflowNode) {
	s.graph.Nodes = append(s.graph.Nodes, node.Clone())

	if v, ok := idSuffix(node.ID); ok {
		s.nextID = max(s.nextID, v+1)
	}
}

// Connect adds a directed edge from source to target. Self-loops, parallel edges and
// cycles are accepted; both endpoints must exist.
func (s *Store) Connect(source, target string) (*models.WorkflowEdge, error) {
	for _, id := range []string{source, target} {
		if s.graph.Node(id) == nil {
			return nil, fmt.Errorf("connect %s -> %s: %w: %s", source, target, ErrNodeNotFound, id)
		}
	}

	edge := &models.WorkflowEdge{
		ID:       uuid.NewString(),
		Source:   source,
		Target:   target,
		Type:     models.DefaultEdgeType,
		Animated: true,
		Style: &models.EdgeStyle{
			Stroke:      models.DefaultEdgeStroke,
			StrokeWidth: models.DefaultEdgeStrokeWidth,
		},
	}

	s.graph.Edges = append(s.graph.Edges, edge)

	return edge, nil
}

// UpdateNode merges patch into the payload of node id. A missing id is a no-op. A patch
// for another kind returns models.ErrPatchKindMismatch, and a merged payload that breaks a
// field constraint returns ErrInvalidNodeData; neither changes the node.
func (s *Store) UpdateNode(id string, patch models.NodePatch) error {
	n := s.graph.Node(id)
	if n == nil {
		return nil
	}

	data, err := models.ApplyPatch(n.Data, patch)
	if err != nil {
		return fmt.Errorf("update node %s: %w", id, err)
	}

	if err := s.validate.Struct(data); err != nil {
		return fmt.Errorf("update node %s: %w: %w", id, ErrInvalidNodeData, err)
	}

	n.Data = data

	return nil
}

// MoveNode sets the canvas position of node id. A missing id is a no-op.
func (s *Store) MoveNode(id string, position models.Position) {
	if n := s.graph.Node(id); n != nil {
		n.Position = position
	}
}

// DeleteNode removes node id together with every edge touching it.
func (s *Store) DeleteNode(id string) {
	s.graph.Nodes = slices.DeleteFunc(s.graph.Nodes, func(n *models.WorkflowNode) bool {
		return n.ID == id
	})
	s.graph.Edges = slices.DeleteFunc(s.graph.Edges, func(e *models.WorkflowEdge) bool {
		return e.Touches(id)
	})
}

// DeleteEdge removes edge id.
func (s *Store) DeleteEdge(id string) {
	s.graph.Edges = slices.DeleteFunc(s.graph.Edges, func(e *models.WorkflowEdge) bool {
		return e.ID == id
	})
}

// Clear empties the graph and resets the id counter.
func (s *Store) Clear() {
	s.graph = models.Graph{Nodes: []*models.WorkflowNode{}, Edges: []*models.WorkflowEdge{}}
	s.nextID = initialNodeID
}

// Export serializes the graph as indented JSON.
func (s *Store) Export() (string, error) {
	return Encode(s.graph)
}

// Import replaces the graph with the one described by text. On any error the store keeps
// its previous graph and counter.
func (s *Store) Import(text string) error {
	graph, err := s.Decode(text)
	if err != nil {
		s.logger.Debug("Rejected graph import", "error", err)

		return err
	}

	s.graph = graph
	s.nextID = nextIDAfter(graph.Nodes)

	s.logger.Debug("Imported graph",
		"nodes", len(graph.Nodes),
		"edges", len(graph.Edges),
		"next_id", s.NextID(),
	)

	return nil
}

// Encode serializes g in the export format.
func Encode(g models.Graph) (string, error) {
	doc := g.Clone()

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode graph: %w", err)
	}

	return string(b), nil
}

// Decode parses text in the export format and checks the graph invariants without touching
// the store.
func (s *Store) Decode(text string) (models.Graph, error) {
	if err := checkShape(text); err != nil {
		return models.Graph{}, err
	}

	var graph models.Graph
	if err := json.Unmarshal([]byte(text), &graph); err != nil {
		return models.Graph{}, malformed("invalid node or edge", err)
	}

	if err := s.checkGraph(&graph); err != nil {
		return models.Graph{}, err
	}

	return graph.Clone(), nil
}

func (s *Store) checkGraph(g *models.Graph) error {
	if err := s.validate.Struct(g); err != nil {
		return malformed("invalid graph", err)
	}

	ids := make(map[string]struct{}, len(g.Nodes))

	for _, n := range g.Nodes {
		if _, dup := ids[n.ID]; dup {
			return malformed(fmt.Sprintf("duplicate node id %q", n.ID), nil)
		}

		ids[n.ID] = struct{}{}

		if err := s.validate.Struct(n.Data); err != nil {
			return malformed(fmt.Sprintf("invalid data for node %q", n.ID), err)
		}
	}

	edgeIDs := make(map[string]struct{}, len(g.Edges))

	for _, e := range g.Edges {
		if _, dup := edgeIDs[e.ID]; dup {
			return malformed(fmt.Sprintf("duplicate edge id %q", e.ID), nil)
		}

		edgeIDs[e.ID] = struct{}{}

		if _, ok := ids[e.Source]; !ok {
			return malformed(fmt.Sprintf("edge %q references unknown source %q", e.ID, e.Source), nil)
		}

		if _, ok := ids[e.Target]; !ok {
			return malformed(fmt.Sprintf("edge %q references unknown target %q", e.ID, e.Target), nil)
		}
	}

	return nil
}

// nextIDAfter returns one past the highest numeric node-N suffix, and at least 1.
func nextIDAfter(nodes []*models.WorkflowNode) int {
	highest := 0

	for _, n := range nodes {
		if v, ok := idSuffix(n.ID); ok {
			highest = max(highest, v)
		}
	}

	return max(highest+1, initialNodeID)
}

// idSuffix extracts N from the first node-N in id. Suffixes the counter could not step
// past are ignored.
func idSuffix(id string) (int, bool) {
	m := nodeIDSuffix.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}

	v, err := strconv.Atoi(m[1])
	if err != nil || v >= math.MaxInt-1 {
		return 0, false
	}

	return v, true
}
