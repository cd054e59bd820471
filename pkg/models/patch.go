package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NodePatch is a partial payload update for one node kind. Nil fields keep their current
// value; a non-nil map replaces the whole map.
type NodePatch interface {
	Kind() NodeType

	apply(NodeData) NodeData
}

// ApplyPatch returns a copy of d with p merged in. The input is not modified.
func ApplyPatch(d NodeData, p NodePatch) (NodeData, error) {
	if d == nil || p == nil {
		return nil, fmt.Errorf("%w: nil payload or patch", ErrPatchKindMismatch)
	}

	if d.Kind() != p.Kind() {
		return nil, fmt.Errorf("%w: %s patch on %s node", ErrPatchKindMismatch, p.Kind(), d.Kind())
	}

	return p.apply(d.Clone()), nil
}

type StartPatch struct {
	Label    *string           `json:"label,omitempty"`
	Title    *string           `json:"title,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (StartPatch) Kind() NodeType { return NodeTypeStart }

func (p StartPatch) apply(d NodeData) NodeData {
	v := d.(*StartData)
	set(&v.Label, p.Label)
	set(&v.Title, p.Title)

	if p.Metadata != nil {
		v.Metadata = cloneStrings(p.Metadata)
	}

	return v
}

type TaskPatch struct {
	Label        *string           `json:"label,omitempty"`
	Title        *string           `json:"title,omitempty"`
	Description  *string           `json:"description,omitempty"`
	Assignee     *string           `json:"assignee,omitempty"`
	DueDate      *string           `json:"dueDate,omitempty"`
	CustomFields map[string]string `json:"customFields,omitempty"`
}

func (TaskPatch) Kind() NodeType { return NodeTypeTask }

func (p TaskPatch) apply(d NodeData) NodeData {
	v := d.(*TaskData)
	set(&v.Label, p.Label)
	set(&v.Title, p.Title)
	set(&v.Description, p.Description)
	set(&v.Assignee, p.Assignee)
	set(&v.DueDate, p.DueDate)

	if p.CustomFields != nil {
		v.CustomFields = cloneStrings(p.CustomFields)
	}

	return v
}

type ApprovalPatch struct {
	Label                *string `json:"label,omitempty"`
	Title                *string `json:"title,omitempty"`
	ApproverRole         *string `json:"approverRole,omitempty"`
	AutoApproveThreshold *int    `json:"autoApproveThreshold,omitempty" validate:"omitnil,gte=0"`
}

func (ApprovalPatch) Kind() NodeType { return NodeTypeApproval }

func (p ApprovalPatch) apply(d NodeData) NodeData {
	v := d.(*ApprovalData)
	set(&v.Label, p.Label)
	set(&v.Title, p.Title)
	set(&v.ApproverRole, p.ApproverRole)
	set(&v.AutoApproveThreshold, p.AutoApproveThreshold)

	return v
}

type AutomatedPatch struct {
	Label        *string           `json:"label,omitempty"`
	Title        *string           `json:"title,omitempty"`
	ActionID     *string           `json:"actionId,omitempty"`
	ActionParams map[string]string `json:"actionParams,omitempty"`
}

func (AutomatedPatch) Kind() NodeType { return NodeTypeAutomated }

func (p AutomatedPatch) apply(d NodeData) NodeData {
	v := d.(*AutomatedData)
	set(&v.Label, p.Label)
	set(&v.Title, p.Title)
	set(&v.ActionID, p.ActionID)

	if p.ActionParams != nil {
		v.ActionParams = cloneStrings(p.ActionParams)
	}

	return v
}

type EndPatch struct {
	Label       *string `json:"label,omitempty"`
	EndMessage  *string `json:"endMessage,omitempty"`
	ShowSummary *bool   `json:"showSummary,omitempty"`
}

func (EndPatch) Kind() NodeType { return NodeTypeEnd }

func (p EndPatch) apply(d NodeData) NodeData {
	v := d.(*EndData)
	set(&v.Label, p.Label)
	set(&v.EndMessage, p.EndMessage)
	set(&v.ShowSummary, p.ShowSummary)

	return v
}

// DecodePatch decodes a partial JSON payload into the patch type of the given kind. An
// optional "type" member must equal kind; any other unknown member is rejected.
func DecodePatch(kind NodeType, b []byte) (NodePatch, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}

	if raw, ok := fields["type"]; ok {
		var t NodeType
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, err
		}

		if t != kind {
			return nil, fmt.Errorf("%w: %s patch on %s node", ErrPatchKindMismatch, t, kind)
		}

		delete(fields, "type")
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	switch kind {
	case NodeTypeStart:
		return decodeStrict[StartPatch](body)
	case NodeTypeTask:
		return decodeStrict[TaskPatch](body)
	case NodeTypeApproval:
		return decodeStrict[ApprovalPatch](body)
	case NodeTypeAutomated:
		return decodeStrict[AutomatedPatch](body)
	case NodeTypeEnd:
		return decodeStrict[EndPatch](body)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, kind)
	}
}

func decodeStrict[T NodePatch](b []byte) (NodePatch, error) {
	var p T

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&p); err != nil {
		return nil, err
	}

	return p, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
