// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"strconv"

	"github.com/dukex/hrflow/pkg/models"
)

// CreateTestNode creates a node of kind with its default payload; overrides are applied in
// order.
func CreateTestNode(id string, kind models.NodeType, overrides ...func(*models.WorkflowNode)) *models.WorkflowNode {
	data, err := models.DefaultData(kind)
	if err != nil {
		panic(err)
	}

	node := &models.WorkflowNode{
		ID:       id,
		Kind:     kind,
		Position: models.Position{X: 100, Y: 200},
		Data:     data,
	}

	for _, override := range overrides {
		override(node)
	}

	return node
}

// WithPosition sets the node position.
func WithPosition(x, y float64) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.Position = models.Position{X: x, Y: y}
	}
}

// WithLabel sets the node label.
func WithLabel(label string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		switch d := n.Data.(type) {
		case *models.StartData:
			d.Label = label
		case *models.TaskData:
			d.Label = label
		case *models.ApprovalData:
			d.Label = label
		case *models.AutomatedData:
			d.Label = label
		case *models.EndData:
			d.Label = label
		}
	}
}

// WithTitle sets the node title. End nodes have no title and are left unchanged.
func WithTitle(title string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		switch d := n.Data.(type) {
		case *models.StartData:
			d.Title = title
		case *models.TaskData:
			d.Title = title
		case *models.ApprovalData:
			d.Title = title
		case *models.AutomatedData:
			d.Title = title
		}
	}
}

// WithAssignee sets the assignee of a task node.
func WithAssignee(assignee string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		if d, ok := n.Data.(*models.TaskData); ok {
			d.Assignee = assignee
		}
	}
}

// WithDueDate sets the due date of a task node.
func WithDueDate(date string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		if d, ok := n.Data.(*models.TaskData); ok {
			d.DueDate = date
		}
	}
}

// WithApproverRole sets the approver role of an approval node.
func WithApproverRole(role string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		if d, ok := n.Data.(*models.ApprovalData); ok {
			d.ApproverRole = role
		}
	}
}

// WithAction sets the action and its parameters on an automated node.
func WithAction(actionID string, params map[string]string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		if d, ok := n.Data.(*models.AutomatedData); ok {
			d.ActionID = actionID

			if params != nil {
				d.ActionParams = params
			}
		}
	}
}

// WithEndMessage sets the completion message of an end node.
func WithEndMessage(message string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		if d, ok := n.Data.(*models.EndData); ok {
			d.EndMessage = message
		}
	}
}

// Edge creates a plain edge.
func Edge(id, source, target string) *models.WorkflowEdge {
	return &models.WorkflowEdge{
		ID:     id,
		Source: source,
		Target: target,
		Type:   models.DefaultEdgeType,
	}
}

// Graph creates a graph from nodes and edges.
func Graph(nodes []*models.WorkflowNode, edges ...*models.WorkflowEdge) models.Graph {
	if nodes == nil {
		nodes = []*models.WorkflowNode{}
	}

	if edges == nil {
		edges = []*models.WorkflowEdge{}
	}

	return models.Graph{Nodes: nodes, Edges: edges}
}

// Linear creates a graph where each node is connected to the next one, with edge ids
// e1, e2, ...
func Linear(nodes ...*models.WorkflowNode) models.Graph {
	edges := make([]*models.WorkflowEdge, 0, len(nodes))

	for i := 1; i < len(nodes); i++ {
		edges = append(edges, Edge("e"+strconv.Itoa(i), nodes[i-1].ID, nodes[i].ID))
	}

	return Graph(nodes, edges...)
}
