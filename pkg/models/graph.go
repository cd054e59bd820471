package models

// Graph is the full set of nodes and edges of one workflow. Slice order is the creation
// order and is preserved by export and import.
type Graph struct {
	Nodes []*WorkflowNode `json:"nodes" validate:"dive,required"`
	Edges []*WorkflowEdge `json:"edges" validate:"dive,required"`
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *WorkflowNode {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}

	return nil
}

// NodesOfKind returns the nodes of the given kind in graph order.
func (g *Graph) NodesOfKind(kind NodeType) []*WorkflowNode {
	var nodes []*WorkflowNode

	for _, n := range g.Nodes {
		if n.Kind == kind {
			nodes = append(nodes, n)
		}
	}

	return nodes
}

// Clone returns a deep copy. Nil slices become empty slices so the copy always exports as
// {"nodes": [], "edges": []}.
func (g *Graph) Clone() Graph {
	c := Graph{
		Nodes: make([]*WorkflowNode, 0, len(g.Nodes)),
		Edges: make([]*WorkflowEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		c.Nodes = append(c.Nodes, n.Clone())
	}

	for _, e := range g.Edges {
		c.Edges = append(c.Edges, e.Clone())
	}

	return c
}
