package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrKindMismatch indicates an exported node whose envelope type and data type disagree.
var ErrKindMismatch = errors.New("node envelope type does not match data type")

type nodeEnvelope struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Position Position        `json:"position"`
	Data     json.RawMessage `json:"data"`
}

// MarshalJSON writes the node in the exported form
// {"id", "type": "{kind}Node", "position": {x, y}, "data": {..., "label", "type": kind}}.
func (n WorkflowNode) MarshalJSON() ([]byte, error) {
	data, err := MarshalNodeData(n.Data)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", n.ID, err)
	}

	return json.Marshal(nodeEnvelope{
		ID:       n.ID,
		Type:     n.Kind.EnvelopeType(),
		Position: n.Position,
		Data:     data,
	})
}

// UnmarshalJSON reads the exported form. The kind is taken from data.type and falls back to
// the envelope type when data.type is absent.
func (n *WorkflowNode) UnmarshalJSON(b []byte) error {
	var env nodeEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}

	var head struct {
		Type NodeType `json:"type"`
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("node %s: missing data", env.ID)
	}

	if err := json.Unmarshal(env.Data, &head); err != nil {
		return fmt.Errorf("node %s: %w", env.ID, err)
	}

	kind := head.Type
	if env.Type != "" {
		envKind, err := ParseEnvelopeType(env.Type)
		if err != nil {
			return fmt.Errorf("node %s: %w", env.ID, err)
		}

		if kind == "" {
			kind = envKind
		} else if kind != envKind {
			return fmt.Errorf("node %s: %w: %s vs %s", env.ID, ErrKindMismatch, env.Type, kind)
		}
	}

	data, err := UnmarshalNodeData(kind, env.Data)
	if err != nil {
		return fmt.Errorf("node %s: %w", env.ID, err)
	}

	*n = WorkflowNode{
		ID:       env.ID,
		Kind:     kind,
		Position: env.Position,
		Data:     data,
	}

	return nil
}

// MarshalNodeData encodes a payload with its "type" discriminator.
func MarshalNodeData(d NodeData) ([]byte, error) {
	switch v := d.(type) {
	case *StartData:
		type alias StartData

		return json.Marshal(struct {
			*alias
			Type NodeType `json:"type"`
		}{(*alias)(v), NodeTypeStart})
	case *TaskData:
		type alias TaskData

		return json.Marshal(struct {
			*alias
			Type NodeType `json:"type"`
		}{(*alias)(v), NodeTypeTask})
	case *ApprovalData:
		type alias ApprovalData

		return json.Marshal(struct {
			*alias
			Type NodeType `json:"type"`
		}{(*alias)(v), NodeTypeApproval})
	case *AutomatedData:
		type alias AutomatedData

		return json.Marshal(struct {
			*alias
			Type NodeType `json:"type"`
		}{(*alias)(v), NodeTypeAutomated})
	case *EndData:
		type alias EndData

		return json.Marshal(struct {
			*alias
			Type NodeType `json:"type"`
		}{(*alias)(v), NodeTypeEnd})
	case nil:
		return nil, errors.New("missing data")
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownNodeType, d)
	}
}

// UnmarshalNodeData decodes a payload of the given kind. Missing maps decode as empty maps.
func UnmarshalNodeData(kind NodeType, b []byte) (NodeData, error) {
	var (
		data NodeData
		err  error
	)

	switch kind {
	case NodeTypeStart:
		v := &StartData{}
		err = json.Unmarshal(b, v)
		v.Metadata = cloneStrings(v.Metadata)
		data = v
	case NodeTypeTask:
		v := &TaskData{}
		err = json.Unmarshal(b, v)
		v.CustomFields = cloneStrings(v.CustomFields)
		data = v
	case NodeTypeApproval:
		v := &ApprovalData{}
		err = json.Unmarshal(b, v)
		data = v
	case NodeTypeAutomated:
		v := &AutomatedData{}
		err = json.Unmarshal(b, v)
		v.ActionParams = cloneStrings(v.ActionParams)
		data = v
	case NodeTypeEnd:
		v := &EndData{}
		err = json.Unmarshal(b, v)
		data = v
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, kind)
	}

	if err != nil {
		return nil, err
	}

	return data, nil
}
