// Package parser turns a validated RawExecution into an ordered sequence
// of NormalizedStep records, one per recorded action. Parsing is a pure
// function: no I/O, no randomness, same input always yields the same
// output.
package parser

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/frherrer/GoE2E-FlowGen/internal/domain"
)

// rule extracts the normalized target and value for one action kind.
type rule struct {
	target func(a domain.RawAction) string
	value  func(a domain.RawAction) string
}

// kindRules maps recognized action kinds to their normalization rules.
// Unrecognized kinds fall back to a generic passthrough so a single odd
// action never aborts the rest of the parse.
var kindRules = map[string]rule{
	"navigate":      {target: navigationTarget, value: rawValue},
	"open":          {target: navigationTarget, value: rawValue},
	"goto":          {target: navigationTarget, value: rawValue},
	"click":         {target: elementTarget, value: rawValue},
	"type":          {target: elementTarget, value: rawValue},
	"select_option": {target: elementTarget, value: rawValue},
	"hover":         {target: elementTarget, value: rawValue},
	"check":         {target: elementTarget, value: rawValue},
	"submit":        {target: elementTarget, value: rawValue},
	"assert":        {target: elementTarget, value: assertValue},
	"scroll":        {target: elementTarget, value: rawValue},
	"press":         {target: passthroughTarget, value: rawValue},
	"wait":          {target: passthroughTarget, value: rawValue},
}

// Parse converts the execution into normalized steps. It is total and
// order-preserving: exactly one step per action, in input order.
func Parse(exec *domain.RawExecution) []domain.NormalizedStep {
	steps := make([]domain.NormalizedStep, 0, len(exec.Actions))
	for i, action := range exec.Actions {
		steps = append(steps, normalize(i, action))
	}
	return steps
}

func normalize(index int, action domain.RawAction) domain.NormalizedStep {
	step := domain.NormalizedStep{
		Index:       index,
		Kind:        action.Kind,
		Timestamp:   normalizeTimestamp(action.Timestamp),
		Description: action.Description,
		ElementText: action.ElementText,
		ElementTag:  action.ElementTag,
		Attributes:  action.Attributes,
		Selectors:   NormalizeSelectors(action.Selectors),
		Output:      action.Output,
		TabID:       action.TabID,
		ForceNewTab: action.ForceNewTab,
	}

	if r, ok := kindRules[action.Kind]; ok {
		step.Recognized = true
		step.Target = r.target(action)
		step.Value = r.value(action)
	} else {
		step.Target = passthroughTarget(action)
		step.Value = rawValue(action)
	}
	return step
}

// NormalizeSelectors coerces selector priorities to integers (invalid
// values sink to 999) and sorts ascending, lower priority first. The sort
// is stable so recorder order breaks ties.
func NormalizeSelectors(selectors []domain.RawSelector) []domain.Selector {
	if len(selectors) == 0 {
		return nil
	}
	normalized := make([]domain.Selector, 0, len(selectors))
	for _, sel := range selectors {
		normalized = append(normalized, domain.Selector{
			Type:     sel.Type,
			Value:    sel.Value,
			Priority: coercePriority(sel.Priority),
		})
	}
	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Priority < normalized[j].Priority
	})
	return normalized
}

func coercePriority(v any) int {
	switch p := v.(type) {
	case float64:
		return int(p)
	case int:
		return p
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			return n
		}
	}
	return 999
}

func normalizeTimestamp(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	}
	return ""
}

// navigationTarget resolves the URL for navigation kinds, falling back to
// the recorded navigation output when the target field is absent.
func navigationTarget(a domain.RawAction) string {
	if url, ok := a.Target.(string); ok && url != "" {
		return url
	}
	if a.Output != nil {
		if a.Output.URL != "" {
			return a.Output.URL
		}
		if a.Output.FinalURL != "" {
			return a.Output.FinalURL
		}
	}
	return stringify(a.Target)
}

// elementTarget resolves the locator for element kinds: an explicit target
// string wins, then the best-priority selector, then a best-effort string
// form of whatever was recorded.
func elementTarget(a domain.RawAction) string {
	if sel, ok := a.Target.(string); ok && sel != "" {
		return sel
	}
	if normalized := NormalizeSelectors(a.Selectors); len(normalized) > 0 {
		best := normalized[0]
		return fmt.Sprintf("%s=%s", best.Type, best.Value)
	}
	return stringify(a.Target)
}

// passthroughTarget is the generic rule for unrecognized kinds.
func passthroughTarget(a domain.RawAction) string {
	return stringify(a.Target)
}

func rawValue(a domain.RawAction) string {
	return a.Value
}

// assertValue prefers the explicit expected value and falls back to the
// element text the recorder captured.
func assertValue(a domain.RawAction) string {
	if a.Value != "" {
		return a.Value
	}
	return a.ElementText
}

// stringify renders any recorded target shape as a compact string.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(encoded)
}
