package models

import "time"

// StepStatus is the outcome recorded for a simulated node.
type StepStatus string

const (
	StepStatusCompleted  StepStatus = "completed"
	StepStatusInProgress StepStatus = "in-progress"
	StepStatusPending    StepStatus = "pending"
	StepStatusError      StepStatus = "error"
)

// SimulationStep is one entry of a simulation trace.
type SimulationStep struct {
	NodeID    string     `json:"nodeId"`
	NodeTitle string     `json:"nodeTitle"`
	NodeType  NodeType   `json:"nodeType"`
	Status    StepStatus `json:"status"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
}

// SimulationResult is the ordered trace of a dry run plus its errors.
type SimulationResult struct {
	Success bool             `json:"success"`
	Steps   []SimulationStep `json:"steps"`
	Errors  []string         `json:"errors"`
}

// ValidationResult holds structural diagnostics. Warnings never affect IsValid.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
