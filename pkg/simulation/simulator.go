// Package simulation dry-runs a workflow graph: it walks the graph breadth-first from the
// start node and produces the ordered trace a real execution would follow.
package simulation

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dukex/hrflow/pkg/models"
)

// DefaultRejectionProbability is the chance that an approval step is rejected.
const DefaultRejectionProbability = 0.1

// Error messages of a simulation run.
const (
	MsgMissingStart = "No Start Node found in workflow"
	MsgMissingEnd   = "No End Node found in workflow"
)

// RandomSource drives fault injection. *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Simulator produces execution traces. It is not safe for concurrent use when its random
// source is not.
type Simulator struct {
	random    RandomSource
	now       func() time.Time
	rejection float64
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithRandom sets the source used for approval fault injection.
func WithRandom(r RandomSource) Option {
	return func(s *Simulator) {
		s.random = r
	}
}

// WithClock sets the time of the first step.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) {
		s.now = now
	}
}

// WithRejectionProbability overrides the approval rejection chance.
func WithRejectionProbability(p float64) Option {
	return func(s *Simulator) {
		s.rejection = p
	}
}

// New returns a Simulator seeded from the current time.
func New(opts ...Option) *Simulator {
	seed := uint64(time.Now().UnixNano())

	return NewSeeded(seed, opts...)
}

// NewSeeded returns a Simulator whose fault injection is reproducible for a given seed.
func NewSeeded(seed uint64, opts ...Option) *Simulator {
	s := &Simulator{
		random:    rand.New(rand.NewPCG(seed, seed)),
		now:       time.Now,
		rejection: DefaultRejectionProbability,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Simulate runs g through a time-seeded Simulator.
func Simulate(g models.Graph, opts ...Option) models.SimulationResult {
	return New(opts...).Simulate(g)
}

// Simulate walks g from its start node. Each reachable node yields exactly one step, in
// breadth-first order; duplicates are dropped when dequeued. Approval rejections appear as
// error steps and do not stop the walk. g is not modified.
func (s *Simulator) Simulate(g models.Graph) models.SimulationResult {
	starts := g.NodesOfKind(models.NodeTypeStart)
	if len(starts) == 0 {
		return models.SimulationResult{
			Success: false,
			Steps:   []models.SimulationStep{},
			Errors:  []string{MsgMissingStart},
		}
	}

	errs := []string{}
	if len(g.NodesOfKind(models.NodeTypeEnd)) == 0 {
		errs = append(errs, MsgMissingEnd)
	}

	adjacency := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
	}

	nodes := make(map[string]*models.WorkflowNode, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n.ID] = n
	}

	now := s.now()
	steps := []models.SimulationStep{}
	visited := make(map[string]bool, len(g.Nodes))
	queue := []string{starts[0].ID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if visited[id] {
			continue
		}

		visited[id] = true

		node, ok := nodes[id]
		if !ok || node.Data == nil {
			continue
		}

		step := s.step(node)
		step.Timestamp = now.Add(time.Duration(len(steps)) * time.Second)
		steps = append(steps, step)

		queue = append(queue, adjacency[id]...)
	}

	disconnected := 0

	for _, n := range g.Nodes {
		if !visited[n.ID] {
			disconnected++
		}
	}

	if disconnected > 0 {
		errs = append(errs, fmt.Sprintf("%d node(s) are not connected to the workflow", disconnected))
	}

	return models.SimulationResult{
		Success: len(errs) == 0,
		Steps:   steps,
		Errors:  errs,
	}
}

func (s *Simulator) step(n *models.WorkflowNode) models.SimulationStep {
	step := models.SimulationStep{
		NodeID:    n.ID,
		NodeTitle: n.Title(),
		NodeType:  n.Kind,
		Status:    models.StepStatusCompleted,
	}

	switch d := n.Data.(type) {
	case *models.StartData:
		step.Message = "Workflow started: " + d.Title
	case *models.TaskData:
		step.Message = fmt.Sprintf("Task \"%s\" assigned to %s", d.Title, orDefault(d.Assignee, "Unassigned"))
	case *models.ApprovalData:
		step.Message = "Awaiting approval from " + d.ApproverRole

		if s.random.Float64() < s.rejection {
			step.Status = models.StepStatusError
			step.Message = "Approval rejected by " + d.ApproverRole
		}
	case *models.AutomatedData:
		step.Message = "Executing automated action: " + orDefault(d.ActionID, "None selected")
	case *models.EndData:
		step.Message = orDefault(d.EndMessage, "Workflow completed")
	default:
		step.Message = "Processing..."
	}

	return step
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}
