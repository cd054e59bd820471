package designer

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedGraph is matched by every *MalformedGraphError.
	ErrMalformedGraph = errors.New("malformed graph")

	// ErrNodeNotFound indicates an edge endpoint that is not in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrInvalidNodeData indicates an update that would leave a payload field out of range.
	ErrInvalidNodeData = errors.New("invalid node data")
)

// MalformedGraphError is returned by Import when the text does not describe a
// {nodes, edges} graph. The store is left unchanged.
type MalformedGraphError struct {
	Reason string
	Err    error
}

func (e *MalformedGraphError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed graph: %s: %v", e.Reason, e.Err)
	}

	return "malformed graph: " + e.Reason
}

func (e *MalformedGraphError) Unwrap() error {
	return e.Err
}

func (e *MalformedGraphError) Is(target error) bool {
	return target == ErrMalformedGraph
}

// IsMalformedGraph reports whether err came from a rejected import.
func IsMalformedGraph(err error) bool {
	return errors.Is(err, ErrMalformedGraph)
}

func malformed(reason string, err error) *MalformedGraphError {
	return &MalformedGraphError{Reason: reason, Err: err}
}
