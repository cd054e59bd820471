// Package models defines the workflow graph model: typed nodes, edges and the results
// produced by validation and simulation.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// NodeType is the closed set of node kinds a workflow graph can contain.
type NodeType string

const (
	NodeTypeStart     NodeType = "start"
	NodeTypeTask      NodeType = "task"
	NodeTypeApproval  NodeType = "approval"
	NodeTypeAutomated NodeType = "automated"
	NodeTypeEnd       NodeType = "end"
)

// nodeTypeSuffix is appended to the kind to form the envelope type of an exported node.
const nodeTypeSuffix = "Node"

var (
	// ErrUnknownNodeType indicates a kind outside of the closed NodeType set.
	ErrUnknownNodeType = errors.New("unknown node type")

	// ErrPatchKindMismatch indicates a payload patch whose kind differs from the node kind.
	ErrPatchKindMismatch = errors.New("patch kind does not match node kind")
)

// NodeTypes returns every node kind in palette order.
func NodeTypes() []NodeType {
	return []NodeType{NodeTypeStart, NodeTypeTask, NodeTypeApproval, NodeTypeAutomated, NodeTypeEnd}
}

// Valid reports whether t is one of the known node kinds.
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeStart, NodeTypeTask, NodeTypeApproval, NodeTypeAutomated, NodeTypeEnd:
		return true
	default:
		return false
	}
}

// EnvelopeType returns the exported node type, e.g. "taskNode".
func (t NodeType) EnvelopeType() string {
	return string(t) + nodeTypeSuffix
}

// ParseEnvelopeType is the inverse of EnvelopeType.
func ParseEnvelopeType(s string) (NodeType, error) {
	kind := NodeType(strings.TrimSuffix(s, nodeTypeSuffix))
	if !strings.HasSuffix(s, nodeTypeSuffix) || !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownNodeType, s)
	}

	return kind, nil
}

// Approver roles offered by the approval form. The role field is an open string.
const (
	ApproverRoleManager  = "Manager"
	ApproverRoleHRBP     = "HRBP"
	ApproverRoleDirector = "Director"
)

// Position is the canvas coordinate of a node. The core stores it but never reads it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WorkflowNode is a node instance in a workflow graph.
type WorkflowNode struct {
	ID       string   `validate:"required"`
	Kind     NodeType `validate:"required"`
	Position Position
	Data     NodeData `validate:"required"`
}

// Title returns the label shown for the node in diagnostics and traces.
func (n *WorkflowNode) Title() string {
	if n.Data == nil {
		return n.ID
	}

	return n.Data.DisplayTitle()
}

// Label returns the node label, falling back to the id when it is empty.
func (n *WorkflowNode) Label() string {
	if n.Data == nil || n.Data.NodeLabel() == "" {
		return n.ID
	}

	return n.Data.NodeLabel()
}

// Clone returns a deep copy of the node.
func (n *WorkflowNode) Clone() *WorkflowNode {
	c := *n
	if n.Data != nil {
		c.Data = n.Data.Clone()
	}

	return &c
}

// DefaultData returns the payload a freshly created node of the given kind starts with.
func DefaultData(kind NodeType) (NodeData, error) {
	switch kind {
	case NodeTypeStart:
		return &StartData{Label: "Start", Title: "Start", Metadata: map[string]string{}}, nil
	case NodeTypeTask:
		return &TaskData{Label: "Task", Title: "New Task", CustomFields: map[string]string{}}, nil
	case NodeTypeApproval:
		return &ApprovalData{
			Label:                "Approval",
			Title:                "Approval Required",
			ApproverRole:         ApproverRoleManager,
			AutoApproveThreshold: 0,
		}, nil
	case NodeTypeAutomated:
		return &AutomatedData{Label: "Automated", Title: "Automated Step", ActionParams: map[string]string{}}, nil
	case NodeTypeEnd:
		return &EndData{Label: "End", EndMessage: "Workflow Complete", ShowSummary: false}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, kind)
	}
}
