package models

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultData(t *testing.T) {
	testCases := []struct {
		kind  NodeType
		label string
		title string
	}{
		{NodeTypeStart, "Start", "Start"},
		{NodeTypeTask, "Task", "New Task"},
		{NodeTypeApproval, "Approval", "Approval Required"},
		{NodeTypeAutomated, "Automated", "Automated Step"},
		{NodeTypeEnd, "End", "End"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.kind), func(t *testing.T) {
			data, err := DefaultData(tc.kind)
			require.NoError(t, err)

			assert.Equal(t, tc.kind, data.Kind())
			assert.Equal(t, tc.label, data.NodeLabel())
			assert.Equal(t, tc.title, data.DisplayTitle())
		})
	}
}

func TestDefaultData_KindSpecificFields(t *testing.T) {
	approval, err := DefaultData(NodeTypeApproval)
	require.NoError(t, err)
	assert.Equal(t, ApproverRoleManager, approval.(*ApprovalData).ApproverRole)
	assert.Equal(t, 0, approval.(*ApprovalData).AutoApproveThreshold)

	end, err := DefaultData(NodeTypeEnd)
	require.NoError(t, err)
	assert.Equal(t, "Workflow Complete", end.(*EndData).EndMessage)
	assert.False(t, end.(*EndData).ShowSummary)

	task, err := DefaultData(NodeTypeTask)
	require.NoError(t, err)
	assert.NotNil(t, task.(*TaskData).CustomFields)
	assert.Empty(t, task.(*TaskData).Assignee)
}

func TestDefaultData_UnknownKind(t *testing.T) {
	_, err := DefaultData("webhook")
	require.ErrorIs(t, err, ErrUnknownNodeType)
}

func TestParseEnvelopeType(t *testing.T) {
	for _, kind := range NodeTypes() {
		got, err := ParseEnvelopeType(kind.EnvelopeType())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}

	for _, bad := range []string{"task", "Node", "webhookNode", ""} {
		_, err := ParseEnvelopeType(bad)
		assert.ErrorIs(t, err, ErrUnknownNodeType, bad)
	}
}

func TestWorkflowNode_TitleAndLabel(t *testing.T) {
	node := &WorkflowNode{ID: "node-3", Kind: NodeTypeTask, Data: &TaskData{Title: "Collect documents"}}

	assert.Equal(t, "Collect documents", node.Title())
	assert.Equal(t, "node-3", node.Label())

	end := &WorkflowNode{ID: "node-9", Kind: NodeTypeEnd, Data: &EndData{Label: "Done"}}
	assert.Equal(t, "Done", end.Title())
	assert.Equal(t, "Done", end.Label())
}

func TestWorkflowNode_Clone(t *testing.T) {
	original := &WorkflowNode{
		ID:   "node-1",
		Kind: NodeTypeTask,
		Data: &TaskData{Title: "Onboard", CustomFields: map[string]string{"desk": "A1"}},
	}

	clone := original.Clone()
	clone.Data.(*TaskData).CustomFields["desk"] = "B2"
	clone.Data.(*TaskData).Title = "Changed"
	clone.Position.X = 50

	assert.Equal(t, "A1", original.Data.(*TaskData).CustomFields["desk"])
	assert.Equal(t, "Onboard", original.Data.(*TaskData).Title)
	assert.Zero(t, original.Position.X)
}

func TestWorkflowNode_JSON(t *testing.T) {
	node := WorkflowNode{
		ID:       "node-2",
		Kind:     NodeTypeApproval,
		Position: Position{X: 120.5, Y: 80},
		Data: &ApprovalData{
			Label:                "Approval",
			Title:                "Manager sign-off",
			ApproverRole:         ApproverRoleHRBP,
			AutoApproveThreshold: 3,
		},
	}

	b, err := json.Marshal(node)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "node-2",
		"type": "approvalNode",
		"position": {"x": 120.5, "y": 80},
		"data": {
			"label": "Approval",
			"title": "Manager sign-off",
			"approverRole": "HRBP",
			"autoApproveThreshold": 3,
			"type": "approval"
		}
	}`, string(b))

	var decoded WorkflowNode
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, node, decoded)
}

func TestWorkflowNode_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		kind    NodeType
		wantErr error
	}{
		{
			name:  "kind from data type",
			input: `{"id":"a","position":{"x":0,"y":0},"data":{"type":"end","label":"End"}}`,
			kind:  NodeTypeEnd,
		},
		{
			name:  "kind from envelope type",
			input: `{"id":"a","type":"taskNode","position":{"x":0,"y":0},"data":{"label":"Task"}}`,
			kind:  NodeTypeTask,
		},
		{
			name:    "envelope and data disagree",
			input:   `{"id":"a","type":"taskNode","position":{"x":0,"y":0},"data":{"type":"end"}}`,
			wantErr: ErrKindMismatch,
		},
		{
			name:    "unknown kind",
			input:   `{"id":"a","position":{"x":0,"y":0},"data":{"type":"webhook"}}`,
			wantErr: ErrUnknownNodeType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var node WorkflowNode

			err := json.Unmarshal([]byte(tc.input), &node)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.kind, node.Kind)
			assert.Equal(t, tc.kind, node.Data.Kind())
		})
	}
}

func TestWorkflowNode_UnmarshalJSON_MissingData(t *testing.T) {
	var node WorkflowNode

	err := json.Unmarshal([]byte(`{"id":"a","type":"taskNode","position":{"x":0,"y":0}}`), &node)
	assert.Error(t, err)
}

func TestUnmarshalNodeData_MissingMapsAreEmpty(t *testing.T) {
	data, err := UnmarshalNodeData(NodeTypeAutomated, []byte(`{"label":"Automated","actionId":"send_email"}`))
	require.NoError(t, err)

	automated := data.(*AutomatedData)
	assert.Equal(t, "send_email", automated.ActionID)
	assert.NotNil(t, automated.ActionParams)
	assert.Empty(t, automated.ActionParams)
}

func TestApprovalData_Validation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	require.NoError(t, validate.Struct(&ApprovalData{AutoApproveThreshold: 0}))
	assert.Error(t, validate.Struct(&ApprovalData{AutoApproveThreshold: -1}))
}

func TestGraph_Clone(t *testing.T) {
	var empty Graph

	clone := empty.Clone()
	assert.NotNil(t, clone.Nodes)
	assert.NotNil(t, clone.Edges)

	b, err := json.Marshal(clone)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(b))

	g := Graph{
		Nodes: []*WorkflowNode{{ID: "n", Kind: NodeTypeEnd, Data: &EndData{Label: "End"}}},
		Edges: []*WorkflowEdge{{ID: "e", Source: "n", Target: "n", Style: &EdgeStyle{Stroke: "#000"}}},
	}

	c := g.Clone()
	c.Edges[0].Style.Stroke = "#fff"
	c.Nodes[0].Data.(*EndData).Label = "Other"

	assert.Equal(t, "#000", g.Edges[0].Style.Stroke)
	assert.Equal(t, "End", g.Nodes[0].Data.(*EndData).Label)
}

func TestGraph_NodesOfKind(t *testing.T) {
	g := Graph{Nodes: []*WorkflowNode{
		{ID: "s1", Kind: NodeTypeStart},
		{ID: "t1", Kind: NodeTypeTask},
		{ID: "s2", Kind: NodeTypeStart},
	}}

	starts := g.NodesOfKind(NodeTypeStart)
	require.Len(t, starts, 2)
	assert.Equal(t, "s1", starts[0].ID)
	assert.Equal(t, "s2", starts[1].ID)
	assert.Empty(t, g.NodesOfKind(NodeTypeEnd))
	assert.Nil(t, g.Node("missing"))
}
