// Package report renders a workflow document as a human-readable
// Markdown summary alongside the JSON artifact.
package report

import (
	"bytes"
	"text/template"

	"github.com/frherrer/GoE2E-FlowGen/internal/domain"
)

const defaultTemplate = `# Workflow: {{or .Metadata.FeatureName "Untitled"}}
{{- if .Metadata.ScenarioName}}

Scenario: {{.Metadata.ScenarioName}}
{{- end}}

- Source: {{.Metadata.Source}}
- Generated: {{.Metadata.GeneratedAt}}
- Model: {{.Metadata.Model}}
- Steps: {{.Metadata.StepCount}}

## Summary

{{.Summary.Intent}}

## Steps

| # | Kind | Category | Description |
|---|------|----------|-------------|
{{- range .Steps}}
| {{add .Index 1}} | {{.Kind}} | {{.Category}} | {{.Enriched}} |
{{- end}}
{{- if .Metadata.InputSchema}}

## Input Parameters

| Name | Type | Required | Description |
|------|------|----------|-------------|
{{- range .Metadata.InputSchema}}
| {{.Name}} | {{.Type}} | {{.Required}} | {{.Description}} |
{{- end}}
{{- end}}
`

// Renderer renders workflow documents with a parsed template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the built-in report template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("report").Funcs(funcMap()).Parse(defaultTemplate)
	if err != nil {
		return nil, domain.NewError(domain.PhaseWrite, "", "", "failed to parse report template", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the Markdown report for a document.
func (r *Renderer) Render(doc *domain.WorkflowDocument) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return "", domain.NewError(domain.PhaseWrite, "", "", "failed to render report", err)
	}
	return buf.String(), nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}
}
