// Package prompt builds the textual prompts sent to the language model.
// Every builder is a pure templating function: identical input produces
// byte-identical output, which keeps conversions reproducible under a
// deterministic backend.
package prompt

import (
	"fmt"
	"strings"

	"github.com/frherrer/GoE2E-FlowGen/internal/domain"
)

// actionVerbs is the closed list offered to the model when determining
// the specific action of a step.
var actionVerbs = []string{
	"navigate", "click", "type", "select", "hover", "scroll",
	"wait", "verify", "check", "submit", "open", "close",
}

// BuildStepPrompt produces the categorization prompt for one step. The
// model must answer with a JSON object holding exactly the per-step
// fields; the closed category set is enumerated so it cannot invent new
// categories.
func BuildStepPrompt(step domain.NormalizedStep) string {
	var b strings.Builder

	b.WriteString("Analyze the following browser test step and respond with a JSON object.\n\n")
	b.WriteString("Categorize the step into exactly one of these categories:\n")
	b.WriteString("- navigation: navigates to a URL or changes pages\n")
	b.WriteString("- interaction: interacts with a UI element (clicks, typing, selections)\n")
	b.WriteString("- validation: validates or verifies something\n")
	b.WriteString("- other: none of the above\n\n")

	b.WriteString("Step data:\n")
	fmt.Fprintf(&b, "- Kind: %s\n", orNA(step.Kind))
	fmt.Fprintf(&b, "- Target: %s\n", orNA(step.Target))
	fmt.Fprintf(&b, "- Value: %s\n", orNA(step.Value))
	fmt.Fprintf(&b, "- Recorded description: %s\n", orNA(step.Description))
	fmt.Fprintf(&b, "- Element text: %s\n", orNA(step.ElementText))
	fmt.Fprintf(&b, "- Element tag: %s\n", orNA(step.ElementTag))

	b.WriteString("\nRespond with ONLY a JSON object of this exact shape and nothing else:\n")
	b.WriteString(`{"category": "<navigation|interaction|validation|other>", "description": "<one concise human-readable sentence>", "action": "<one verb>"}`)
	fmt.Fprintf(&b, "\n\nThe action verb must be one of: %s.\n", strings.Join(actionVerbs, ", "))
	b.WriteString("Do not add fields, comments, or markdown fences.")

	return b.String()
}

// BuildSummaryPrompt produces the cross-step summary prompt, given the
// full ordered sequence of categorized steps as context.
func BuildSummaryPrompt(steps []domain.CategorizedStep) string {
	var b strings.Builder

	b.WriteString("Summarize the following browser test workflow.\n\n")
	b.WriteString("Steps, in execution order:\n")
	for i, step := range steps {
		fmt.Fprintf(&b, "%d. [%s/%s] %s\n", i+1, step.Kind, step.Category, step.Enriched)
	}

	b.WriteString("\nRespond with ONLY a JSON object of this exact shape and nothing else:\n")
	b.WriteString(`{"intent": "<2-4 sentence description of the overall purpose>", "categories": [<ordered category tags observed>], "step_count": <number of steps>}`)
	b.WriteString("\n\nEach category tag must be one of: navigation, interaction, validation, other.\n")
	fmt.Fprintf(&b, "step_count must equal %d.\n", len(steps))
	b.WriteString("Do not add fields, comments, or markdown fences.")

	return b.String()
}

// BuildInputSchemaPrompt asks the model to extract parameterizable values
// (typed text, URLs, option choices) from the workflow as an input schema.
func BuildInputSchemaPrompt(featureName, scenarioName string, steps []domain.CategorizedStep) string {
	var b strings.Builder

	b.WriteString("Identify the input parameters of this browser test workflow.\n")
	b.WriteString("Parameters are values a user would change between runs: typed text, URLs, selected options.\n\n")
	fmt.Fprintf(&b, "Feature: %s\n", orNA(featureName))
	fmt.Fprintf(&b, "Scenario: %s\n\n", orNA(scenarioName))

	b.WriteString("Steps, in execution order:\n")
	for i, step := range steps {
		fmt.Fprintf(&b, "%d. %s (kind: %s, target: %s, value: %s)\n",
			i+1, step.Enriched, orNA(step.Kind), orNA(step.Target), orNA(step.Value))
	}

	b.WriteString("\nRespond with ONLY a JSON object of this exact shape and nothing else:\n")
	b.WriteString(`{"parameters": [{"name": "<snake_case name>", "type": "<string|number|boolean>", "required": <true|false>, "example": <example value>, "description": "<what it is>"}]}`)
	b.WriteString("\n\nReturn an empty parameters list if the workflow has no parameterizable values.\n")
	b.WriteString("Do not add fields, comments, or markdown fences.")

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
