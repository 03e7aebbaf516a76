package domain

import "fmt"

// Category classifies a workflow step. The set is closed: any other value
// coming back from the model is a validation failure, never coerced.
type Category string

const (
	CategoryNavigation  Category = "navigation"
	CategoryInteraction Category = "interaction"
	CategoryValidation  Category = "validation"
	CategoryOther       Category = "other"
)

// Categories lists every valid category in a stable order.
func Categories() []Category {
	return []Category{CategoryNavigation, CategoryInteraction, CategoryValidation, CategoryOther}
}

// ParseCategory converts a string into a Category, rejecting anything
// outside the closed set.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryNavigation, CategoryInteraction, CategoryValidation, CategoryOther:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// RawExecution is the untrusted input: an ordered recording of browser
// automation actions plus top-level metadata.
type RawExecution struct {
	FeatureName  string      `json:"feature_name,omitempty"`
	ScenarioName string      `json:"scenario_name,omitempty"`
	Target       string      `json:"target,omitempty"` // application under test
	StartedAt    string      `json:"started_at,omitempty"`
	FinishedAt   string      `json:"finished_at,omitempty"`
	Actions      []RawAction `json:"actions"`
}

// RawAction is one recorded browser interaction. Target shape varies by
// kind (URL string for navigate, selector for element actions), so it is
// kept loosely typed until the parser normalizes it.
type RawAction struct {
	Kind        string            `json:"kind"`
	Target      any               `json:"target,omitempty"`
	Value       string            `json:"value,omitempty"`
	Timestamp   any               `json:"timestamp,omitempty"` // RFC3339 string or unix float
	Description string            `json:"description,omitempty"`
	ElementText string            `json:"element_text,omitempty"`
	ElementTag  string            `json:"element_tag,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Selectors   []RawSelector     `json:"selectors,omitempty"`
	Output      *ActionOutput     `json:"output,omitempty"`
	TabID       string            `json:"tab_id,omitempty"`
	ForceNewTab bool              `json:"force_new_tab,omitempty"`
}

// RawSelector locates an element. Priority arrives as string or number
// depending on the recorder version; the parser coerces it.
type RawSelector struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Priority any    `json:"priority,omitempty"`
}

// Selector is the normalized form: integer priority, lower is better.
type Selector struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Priority int    `json:"priority"`
}

// ActionOutput is the recorded result of a navigation action.
type ActionOutput struct {
	URL        string `json:"url,omitempty"`
	FinalURL   string `json:"final_url,omitempty"`
	Title      string `json:"title,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	OK         *bool  `json:"ok,omitempty"`
}

// NormalizedStep is the parser output: one per RawAction, same order.
// Immutable once produced.
type NormalizedStep struct {
	Index       int               `json:"index"`
	Kind        string            `json:"kind"`
	Target      string            `json:"target,omitempty"`
	Value       string            `json:"value,omitempty"`
	Timestamp   string            `json:"timestamp,omitempty"`
	Description string            `json:"description,omitempty"`
	ElementText string            `json:"element_text,omitempty"`
	ElementTag  string            `json:"element_tag,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Selectors   []Selector        `json:"selectors,omitempty"`
	Output      *ActionOutput     `json:"output,omitempty"`
	TabID       string            `json:"tab_id,omitempty"`
	ForceNewTab bool              `json:"force_new_tab,omitempty"`
	Recognized  bool              `json:"-"` // false when the kind had no normalization rule
}

// CategorizedStep is a NormalizedStep enriched with model-derived fields.
type CategorizedStep struct {
	NormalizedStep
	Category Category `json:"category"`
	Enriched string   `json:"enriched_description"`
	Action   string   `json:"action,omitempty"` // single verb, e.g. "click"
}

// WorkflowSummary is the cross-step synthesis, derived once after every
// step has been categorized.
type WorkflowSummary struct {
	Intent     string     `json:"intent"`
	Categories []Category `json:"categories"`
	StepCount  int        `json:"step_count"`
}

// InputField describes one parameterizable value discovered across the
// workflow (typed text, URLs, option choices).
type InputField struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Example     any    `json:"example,omitempty"`
	Description string `json:"description,omitempty"`
}

// WorkflowMetadata describes how and from what the document was produced.
type WorkflowMetadata struct {
	WorkflowID   string       `json:"workflow_id"`
	FeatureName  string       `json:"feature_name,omitempty"`
	ScenarioName string       `json:"scenario_name,omitempty"`
	Source       string       `json:"source"`
	GeneratedAt  string       `json:"generated_at"`
	Model        string       `json:"model"`
	StepCount    int          `json:"step_count"`
	InputSchema  []InputField `json:"input_schema"`
}

// WorkflowDocument is the final artifact. Step order matches the input
// recording exactly; metadata.StepCount must equal len(Steps).
type WorkflowDocument struct {
	Metadata WorkflowMetadata  `json:"metadata"`
	Steps    []CategorizedStep `json:"steps"`
	Summary  WorkflowSummary   `json:"summary"`
}
