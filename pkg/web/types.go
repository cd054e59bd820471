// Package web provides HTTP request and response types for the designer API.
package web

import "github.com/dukex/hrflow/pkg/models"

// CreateNodeRequest represents the request body for dropping a new node on the canvas.
type CreateNodeRequest struct {
	Kind     models.NodeType `json:"kind"     validate:"required,oneof=start task approval automated end"`
	Position models.Position `json:"position"`
}

// MoveNodeRequest represents the request body for dragging a node.
type MoveNodeRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

// ConnectRequest represents the request body for connecting two nodes.
type ConnectRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// GraphResponse is the graph together with the id the next created node will receive.
type GraphResponse struct {
	Nodes  []*models.WorkflowNode `json:"nodes"`
	Edges  []*models.WorkflowEdge `json:"edges"`
	NextID string                 `json:"next_id"`
}
