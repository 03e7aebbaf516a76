package domain

import "fmt"

// Pipeline phases used in error reporting.
const (
	PhaseConfig  = "config"
	PhaseInput   = "input"
	PhaseParse   = "parse"
	PhaseGateway = "gateway"
	PhaseOutput  = "output"
	PhaseWrite   = "write"
)

// FlowGenError is the base error type with pipeline context. StepIndex is
// 0-based and only meaningful when >= 0; Field names the offending JSON
// field or path when one is known.
type FlowGenError struct {
	Phase     string
	Source    string // input file path, when known
	StepIndex int
	Field     string
	Message   string
	Cause     error
}

func (e *FlowGenError) Error() string {
	s := fmt.Sprintf("[%s]", e.Phase)
	if e.Source != "" {
		s += fmt.Sprintf(" %s", e.Source)
	}
	if e.StepIndex >= 0 {
		s += fmt.Sprintf(" step %d", e.StepIndex)
	}
	if e.Field != "" {
		s += fmt.Sprintf(" (%s)", e.Field)
	}
	s += fmt.Sprintf(": %s", e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	return s
}

func (e *FlowGenError) Unwrap() error {
	return e.Cause
}

// NewError creates a FlowGenError without step context.
func NewError(phase, source, field, message string, cause error) *FlowGenError {
	return &FlowGenError{
		Phase:     phase,
		Source:    source,
		StepIndex: -1,
		Field:     field,
		Message:   message,
		Cause:     cause,
	}
}

// NewStepError creates a FlowGenError attached to a specific step.
func NewStepError(phase string, stepIndex int, field, message string, cause error) *FlowGenError {
	return &FlowGenError{
		Phase:     phase,
		StepIndex: stepIndex,
		Field:     field,
		Message:   message,
		Cause:     cause,
	}
}
