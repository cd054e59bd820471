package designer

import (
	"github.com/dukex/hrflow/pkg/models"
)

// Command is a user action coming from a front end. Front ends translate their events
// (drop on canvas, form change, drag, delete key) into commands and apply them in order.
type Command interface {
	Apply(s *Store) error
}

// Apply runs cmd against the store.
func (s *Store) Apply(cmd Command) error {
	return cmd.Apply(s)
}

// AddNodeCommand creates a node of Kind at Position and inserts it. The created node is
// stored in Node after a successful Apply.
type AddNodeCommand struct {
	Kind     models.NodeType
	Position models.Position

	Node *models.WorkflowNode
}

func (c *AddNodeCommand) Apply(s *Store) error {
	node, err := s.CreateNode(c.Kind, c.Position)
	if err != nil {
		return err
	}

	s.AddNode(node)
	c.Node = node.Clone()

	return nil
}

type UpdateNodeCommand struct {
	NodeID string
	Patch  models.NodePatch
}

func (c UpdateNodeCommand) Apply(s *Store) error {
	return s.UpdateNode(c.NodeID, c.Patch)
}

type MoveNodeCommand struct {
	NodeID   string
	Position models.Position
}

func (c MoveNodeCommand) Apply(s *Store) error {
	s.MoveNode(c.NodeID, c.Position)

	return nil
}

type DeleteNodeCommand struct {
	NodeID string
}

func (c DeleteNodeCommand) Apply(s *Store) error {
	s.DeleteNode(c.NodeID)

	return nil
}

// ConnectCommand adds an edge. The created edge is stored in Edge after Apply.
type ConnectCommand struct {
	Source string
	Target string

	Edge *models.WorkflowEdge
}

func (c *ConnectCommand) Apply(s *Store) error {
	edge, err := s.Connect(c.Source, c.Target)
	if err != nil {
		return err
	}

	c.Edge = edge.Clone()

	return nil
}

type DeleteEdgeCommand struct {
	EdgeID string
}

func (c DeleteEdgeCommand) Apply(s *Store) error {
	s.DeleteEdge(c.EdgeID)

	return nil
}

type ClearCommand struct{}

func (ClearCommand) Apply(s *Store) error {
	s.Clear()

	return nil
}

type ImportCommand struct {
	Text string
}

func (c ImportCommand) Apply(s *Store) error {
	return s.Import(c.Text)
}
