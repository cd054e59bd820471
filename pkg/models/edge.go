package models

// Default edge styling applied when two nodes are connected from the canvas.
const (
	DefaultEdgeType        = "smoothstep"
	DefaultEdgeStroke      = "#94a3b8"
	DefaultEdgeStrokeWidth = 2
)

// EdgeStyle is display-only styling carried through export and import.
type EdgeStyle struct {
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// WorkflowEdge is a directed connection between two nodes. Only Source and Target are read
// by validation and simulation.
type WorkflowEdge struct {
	ID       string     `json:"id"                 validate:"required"`
	Source   string     `json:"source"             validate:"required"`
	Target   string     `json:"target"             validate:"required"`
	Type     string     `json:"type,omitempty"`
	Animated bool       `json:"animated,omitempty"`
	Style    *EdgeStyle `json:"style,omitempty"`
}

// Touches reports whether the edge starts or ends at the given node.
func (e *WorkflowEdge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// Clone returns a deep copy of the edge.
func (e *WorkflowEdge) Clone() *WorkflowEdge {
	c := *e
	if e.Style != nil {
		style := *e.Style
		c.Style = &style
	}

	return &c
}
