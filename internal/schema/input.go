package schema

import (
	"encoding/json"
	"fmt"

	"github.com/frherrer/GoE2E-FlowGen/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateInput checks raw JSON bytes against the RawExecution schema and
// decodes them. Validation is all-or-nothing: the first structural
// violation fails the whole input, reported with its JSON path.
func ValidateInput(raw []byte) (*domain.RawExecution, error) {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, domain.NewError(domain.PhaseInput, "", "", "input is not valid JSON", err)
	}

	field, desc, ok, err := firstViolation(compiledRawExecution, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, domain.NewError(domain.PhaseInput, "", "", "schema validation failed", err)
	}
	if !ok {
		return nil, domain.NewError(domain.PhaseInput, "", field, desc, nil)
	}

	var exec domain.RawExecution
	if err := json.Unmarshal(raw, &exec); err != nil {
		return nil, domain.NewError(domain.PhaseInput, "", "", "failed to decode execution", err)
	}

	// Kind-specific target shape checks that JSON schema cannot express.
	for i, action := range exec.Actions {
		if err := checkTargetShape(action); err != nil {
			return nil, domain.NewStepError(domain.PhaseInput, i,
				fmt.Sprintf("actions.%d.target", i), err.Error(), nil)
		}
	}

	return &exec, nil
}

// checkTargetShape enforces the per-kind target contract: navigation kinds
// carry a URL string, element kinds carry a selector string or a selector
// list. Unknown kinds accept anything the top-level schema allowed.
func checkTargetShape(action domain.RawAction) error {
	if action.Target == nil {
		return nil
	}
	switch action.Kind {
	case "navigate", "open", "goto":
		if _, isString := action.Target.(string); !isString {
			return fmt.Errorf("target for %q must be a URL string", action.Kind)
		}
	case "click", "type", "select_option", "hover", "check", "assert", "submit":
		switch action.Target.(type) {
		case string, []any, map[string]any:
			return nil
		default:
			return fmt.Errorf("target for %q must be a selector string, object, or list", action.Kind)
		}
	}
	return nil
}
