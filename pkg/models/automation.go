package models

// AutomationAction is an entry of the automation catalog. Params lists the parameter names an
// automated node must supply values for.
type AutomationAction struct {
	ID     string   `json:"id"     yaml:"id"     validate:"required"`
	Label  string   `json:"label"  yaml:"label"  validate:"required"`
	Params []string `json:"params" yaml:"params"`
}
