// Package validation reports structural problems of a workflow graph before it is simulated
// or deployed.
package validation

import (
	"fmt"
	"time"

	"github.com/dukex/hrflow/pkg/catalog"
	"github.com/dukex/hrflow/pkg/models"
)

const dueDateLayout = "2006-01-02"

// Diagnostic messages of the structural rules.
const (
	MsgMissingStart     = "Workflow must have a Start Node"
	MsgMultipleStarts   = "Workflow can only have one Start Node"
	MsgMissingEnd       = "Workflow should have an End Node"
	MsgStartNotOutgoing = "Start Node must have at least one outgoing connection"
)

// Validator checks a graph. The zero value applies only the structural rules.
type Validator struct {
	actions map[string]models.AutomationAction
}

// Option configures a Validator.
type Option func(*Validator)

// WithCatalog enables configuration warnings for automated and task nodes, checked against
// the given automation actions.
func WithCatalog(actions []models.AutomationAction) Option {
	return func(v *Validator) {
		v.actions = make(map[string]models.AutomationAction, len(actions))
		for _, a := range actions {
			v.actions[a.ID] = a
		}
	}
}

// New returns a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Validate applies the structural rules only.
func Validate(g models.Graph) models.ValidationResult {
	return New().Validate(g)
}

// Validate collects every diagnostic for g. It never modifies g.
func (v *Validator) Validate(g models.Graph) models.ValidationResult {
	errs := []string{}
	warnings := []string{}

	starts := g.NodesOfKind(models.NodeTypeStart)

	switch {
	case len(starts) == 0:
		errs = append(errs, MsgMissingStart)
	case len(starts) > 1:
		errs = append(errs, MsgMultipleStarts)
	}

	if len(g.NodesOfKind(models.NodeTypeEnd)) == 0 {
		warnings = append(warnings, MsgMissingEnd)
	}

	outgoing := make(map[string]int, len(g.Nodes))
	incoming := make(map[string]int, len(g.Nodes))

	for _, e := range g.Edges {
		outgoing[e.Source]++
		incoming[e.Target]++
	}

	if len(starts) == 1 && outgoing[starts[0].ID] == 0 {
		errs = append(errs, MsgStartNotOutgoing)
	}

	for _, n := range g.Nodes {
		if n.Kind == models.NodeTypeStart {
			continue
		}

		if incoming[n.ID] == 0 {
			warnings = append(warnings, fmt.Sprintf("Node \"%s\" has no incoming connections", n.Label()))
		}
	}

	if v.actions != nil {
		for _, n := range g.Nodes {
			warnings = append(warnings, v.configWarnings(n)...)
		}
	}

	return models.ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

func (v *Validator) configWarnings(n *models.WorkflowNode) []string {
	var warnings []string

	switch d := n.Data.(type) {
	case *models.AutomatedData:
		if d.ActionID == "" {
			return append(warnings, fmt.Sprintf("Automated node \"%s\" has no action selected", d.Title))
		}

		action, ok := v.actions[d.ActionID]
		if !ok {
			return append(warnings, fmt.Sprintf("Automated node \"%s\" references unknown action \"%s\"", d.Title, d.ActionID))
		}

		missing, err := catalog.CheckParams(action, d.ActionParams)
		if err != nil {
			return append(warnings, fmt.Sprintf("Automated node \"%s\" parameters could not be checked: %v", d.Title, err))
		}

		for _, p := range missing {
			warnings = append(warnings, fmt.Sprintf("Automated node \"%s\" is missing parameter \"%s\"", d.Title, p))
		}
	case *models.TaskData:
		if d.DueDate == "" {
			return nil
		}

		if _, err := time.Parse(dueDateLayout, d.DueDate); err != nil {
			warnings = append(warnings, fmt.Sprintf("Task \"%s\" has an invalid due date \"%s\"", d.Title, d.DueDate))
		}
	case *models.StartData, *models.ApprovalData, *models.EndData:
	}

	return warnings
}
