// Package catalog provides the automation actions that automated nodes can reference.
package catalog

import (
	"context"
	"errors"
	"slices"

	"github.com/dukex/hrflow/pkg/models"
)

// ErrInvalidCatalog indicates a catalog definition with missing or duplicate ids.
var ErrInvalidCatalog = errors.New("invalid automation catalog")

// Catalog lists automation actions. Implementations are read-only.
type Catalog interface {
	ListAutomations(ctx context.Context) ([]models.AutomationAction, error)
}

// Static is an in-memory catalog.
type Static struct {
	actions []models.AutomationAction
}

// NewStatic returns a catalog over a copy of actions.
func NewStatic(actions []models.AutomationAction) *Static {
	return &Static{actions: cloneActions(actions)}
}

// Default returns the built-in HR automation actions.
func Default() *Static {
	return NewStatic([]models.AutomationAction{
		{ID: "send_email", Label: "Send Email", Params: []string{"to", "subject", "body"}},
		{ID: "generate_doc", Label: "Generate Document", Params: []string{"template", "recipient"}},
		{ID: "slack_notify", Label: "Send Slack Notification", Params: []string{"channel", "message"}},
		{ID: "create_ticket", Label: "Create Support Ticket", Params: []string{"title", "priority"}},
		{ID: "update_database", Label: "Update Database Record", Params: []string{"table", "field", "value"}},
		{ID: "schedule_meeting", Label: "Schedule Meeting", Params: []string{"attendees", "duration", "title"}},
	})
}

// ListAutomations returns a copy of the actions in definition order.
func (s *Static) ListAutomations(_ context.Context) ([]models.AutomationAction, error) {
	return cloneActions(s.actions), nil
}

// Lookup returns the action with the given id.
func Lookup(ctx context.Context, c Catalog, id string) (models.AutomationAction, bool, error) {
	actions, err := c.ListAutomations(ctx)
	if err != nil {
		return models.AutomationAction{}, false, err
	}

	i := slices.IndexFunc(actions, func(a models.AutomationAction) bool { return a.ID == id })
	if i < 0 {
		return models.AutomationAction{}, false, nil
	}

	return actions[i], true, nil
}

func cloneActions(actions []models.AutomationAction) []models.AutomationAction {
	out := make([]models.AutomationAction, len(actions))
	for i, a := range actions {
		a.Params = slices.Clone(a.Params)
		out[i] = a
	}

	return out
}
