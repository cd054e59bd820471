package models

import "maps"

// NodeData is the kind-specific payload of a node. The set of implementations is closed:
// StartData, TaskData, ApprovalData, AutomatedData and EndData.
type NodeData interface {
	Kind() NodeType
	NodeLabel() string
	DisplayTitle() string
	Clone() NodeData

	isNodeData()
}

// StartData is the payload of the single entry node.
type StartData struct {
	Label    string            `json:"label"`
	Title    string            `json:"title"`
	Metadata map[string]string `json:"metadata"`
}

func (d *StartData) Kind() NodeType       { return NodeTypeStart }
func (d *StartData) NodeLabel() string    { return d.Label }
func (d *StartData) DisplayTitle() string { return d.Title }
func (*StartData) isNodeData()            {}

func (d *StartData) Clone() NodeData {
	c := *d
	c.Metadata = cloneStrings(d.Metadata)

	return &c
}

// TaskData is the payload of a human task.
type TaskData struct {
	Label        string            `json:"label"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Assignee     string            `json:"assignee"`
	DueDate      string            `json:"dueDate"`
	CustomFields map[string]string `json:"customFields"`
}

func (d *TaskData) Kind() NodeType       { return NodeTypeTask }
func (d *TaskData) NodeLabel() string    { return d.Label }
func (d *TaskData) DisplayTitle() string { return d.Title }
func (*TaskData) isNodeData()            {}

func (d *TaskData) Clone() NodeData {
	c := *d
	c.CustomFields = cloneStrings(d.CustomFields)

	return &c
}

// ApprovalData is the payload of an approval gate.
type ApprovalData struct {
	Label                string `json:"label"`
	Title                string `json:"title"`
	ApproverRole         string `json:"approverRole"`
	AutoApproveThreshold int    `json:"autoApproveThreshold" validate:"gte=0"`
}

func (d *ApprovalData) Kind() NodeType       { return NodeTypeApproval }
func (d *ApprovalData) NodeLabel() string    { return d.Label }
func (d *ApprovalData) DisplayTitle() string { return d.Title }
func (*ApprovalData) isNodeData()            {}

func (d *ApprovalData) Clone() NodeData {
	c := *d

	return &c
}

// AutomatedData is the payload of a step backed by an automation catalog action.
// An empty ActionID means no action has been selected yet.
type AutomatedData struct {
	Label        string            `json:"label"`
	Title        string            `json:"title"`
	ActionID     string            `json:"actionId"`
	ActionParams map[string]string `json:"actionParams"`
}

func (d *AutomatedData) Kind() NodeType       { return NodeTypeAutomated }
func (d *AutomatedData) NodeLabel() string    { return d.Label }
func (d *AutomatedData) DisplayTitle() string { return d.Title }
func (*AutomatedData) isNodeData()            {}

func (d *AutomatedData) Clone() NodeData {
	c := *d
	c.ActionParams = cloneStrings(d.ActionParams)

	return &c
}

// EndData is the payload of a terminal node. It has no title, so the label is displayed.
type EndData struct {
	Label       string `json:"label"`
	EndMessage  string `json:"endMessage"`
	ShowSummary bool   `json:"showSummary"`
}

func (d *EndData) Kind() NodeType       { return NodeTypeEnd }
func (d *EndData) NodeLabel() string    { return d.Label }
func (d *EndData) DisplayTitle() string { return d.Label }
func (*EndData) isNodeData()            {}

func (d *EndData) Clone() NodeData {
	c := *d

	return &c
}

func cloneStrings(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}

	return maps.Clone(m)
}
