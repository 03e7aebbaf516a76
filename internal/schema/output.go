package schema

import (
	"encoding/json"
	"strings"

	"github.com/frherrer/GoE2E-FlowGen/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

// StepFields is the structured per-step answer expected from the model.
type StepFields struct {
	Category    domain.Category `json:"category"`
	Description string          `json:"description"`
	Action      string          `json:"action,omitempty"`
}

// SummaryFields is the structured summary answer expected from the model.
type SummaryFields struct {
	Intent     string            `json:"intent"`
	Categories []domain.Category `json:"categories"`
	StepCount  int               `json:"step_count"`
}

// ParseStepFields converts raw model text into StepFields, validating it
// against the per-step sub-schema. The text is untyped until this check
// passes; field presence is never assumed.
func ParseStepFields(text string) (*StepFields, error) {
	cleaned := stripCodeFence(text)
	if cleaned == "" {
		return nil, domain.NewError(domain.PhaseOutput, "", "", "model returned empty response", nil)
	}

	var probe any
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, domain.NewError(domain.PhaseOutput, "", "", "step response is not valid JSON", err)
	}

	field, desc, ok, err := firstViolation(compiledStepFields, gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, domain.NewError(domain.PhaseOutput, "", "", "step response validation failed", err)
	}
	if !ok {
		return nil, domain.NewError(domain.PhaseOutput, "", field, desc, nil)
	}

	var fields StepFields
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, domain.NewError(domain.PhaseOutput, "", "", "failed to decode step response", err)
	}
	if _, err := domain.ParseCategory(string(fields.Category)); err != nil {
		return nil, domain.NewError(domain.PhaseOutput, "", "category", err.Error(), nil)
	}
	return &fields, nil
}

// ParseSummaryFields converts raw model text into SummaryFields.
func ParseSummaryFields(text string) (*SummaryFields, error) {
	cleaned := stripCodeFence(text)
	if cleaned == "" {
		return nil, domain.NewError(domain.PhaseOutput, "", "", "model returned empty response", nil)
	}

	var probe any
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, domain.NewError(domain.PhaseOutput, "", "", "summary response is not valid JSON", err)
	}

	field, desc, ok, err := firstViolation(compiledSummaryFields, gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, domain.NewError(domain.PhaseOutput, "", "", "summary response validation failed", err)
	}
	if !ok {
		return nil, domain.NewError(domain.PhaseOutput, "", field, desc, nil)
	}

	var fields SummaryFields
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, domain.NewError(domain.PhaseOutput, "", "", "failed to decode summary response", err)
	}
	for _, c := range fields.Categories {
		if _, err := domain.ParseCategory(string(c)); err != nil {
			return nil, domain.NewError(domain.PhaseOutput, "", "categories", err.Error(), nil)
		}
	}
	return &fields, nil
}

// ParseInputParameters converts raw model text into the discovered input
// schema fields.
func ParseInputParameters(text string) ([]domain.InputField, error) {
	cleaned := stripCodeFence(text)
	if cleaned == "" {
		return nil, domain.NewError(domain.PhaseOutput, "", "", "model returned empty response", nil)
	}

	var probe any
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, domain.NewError(domain.PhaseOutput, "", "", "parameters response is not valid JSON", err)
	}

	field, desc, ok, err := firstViolation(compiledInputParameters, gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, domain.NewError(domain.PhaseOutput, "", "", "parameters response validation failed", err)
	}
	if !ok {
		return nil, domain.NewError(domain.PhaseOutput, "", field, desc, nil)
	}

	var wrapper struct {
		Parameters []domain.InputField `json:"parameters"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapper); err != nil {
		return nil, domain.NewError(domain.PhaseOutput, "", "", "failed to decode parameters response", err)
	}
	if wrapper.Parameters == nil {
		wrapper.Parameters = []domain.InputField{}
	}
	return wrapper.Parameters, nil
}

// ValidateDocument performs the final whole-document check before the
// workflow is handed back to the caller: schema shape plus the count and
// order invariants the schema cannot express.
func ValidateDocument(doc *domain.WorkflowDocument) error {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return domain.NewError(domain.PhaseOutput, "", "", "failed to encode document", err)
	}

	field, desc, ok, err := firstViolation(compiledDocument, gojsonschema.NewBytesLoader(encoded))
	if err != nil {
		return domain.NewError(domain.PhaseOutput, "", "", "document validation failed", err)
	}
	if !ok {
		return domain.NewError(domain.PhaseOutput, "", field, desc, nil)
	}

	if doc.Metadata.StepCount != len(doc.Steps) {
		return domain.NewError(domain.PhaseOutput, "", "metadata.step_count",
			"metadata step count does not match number of steps", nil)
	}
	if doc.Summary.StepCount != len(doc.Steps) {
		return domain.NewError(domain.PhaseOutput, "", "summary.step_count",
			"summary step count does not match number of steps", nil)
	}
	for i, step := range doc.Steps {
		if step.Index != i {
			return domain.NewStepError(domain.PhaseOutput, i, "index",
				"steps are out of order", nil)
		}
	}
	return nil
}

// stripCodeFence removes a surrounding Markdown code fence, which models
// frequently add around JSON answers despite instructions not to.
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop a language tag such as "json" on the fence line.
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
