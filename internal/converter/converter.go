// Package converter drives the full conversion pipeline: validate input,
// parse steps, enrich each step through the model gateway, synthesize the
// cross-step summary, and validate the assembled document. A run either
// reaches DONE or fails; partial workflows are never produced.
package converter

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/frherrer/GoE2E-FlowGen/internal/domain"
	"github.com/frherrer/GoE2E-FlowGen/internal/gateway"
	"github.com/frherrer/GoE2E-FlowGen/internal/parser"
	"github.com/frherrer/GoE2E-FlowGen/internal/prompt"
	"github.com/frherrer/GoE2E-FlowGen/internal/schema"
)

// Options carries run configuration. Now and NewID exist so tests can
// pin the generated metadata and assert byte-identical output.
type Options struct {
	Model string
	Now   func() time.Time
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = gateway.DefaultModel
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}

// Converter orchestrates one conversion run. It holds no per-run state:
// concurrent runs sharing a Converter are independent.
type Converter struct {
	gateway gateway.Gateway
	log     *logrus.Logger
	opts    Options
}

// New creates a Converter with its collaborators injected.
func New(gw gateway.Gateway, log *logrus.Logger, opts Options) *Converter {
	return &Converter{gateway: gw, log: log, opts: opts.withDefaults()}
}

// Convert transforms raw execution JSON into a validated workflow
// document. The source path is recorded in metadata and attached to
// errors for diagnosis. Steps are processed strictly in order and the
// run fails fast on the first bad step: a workflow with guessed or
// skipped steps is worse than no output.
func (c *Converter) Convert(ctx context.Context, raw []byte, source string) (*domain.WorkflowDocument, error) {
	c.log.Infof("Starting conversion of %s", source)

	exec, err := schema.ValidateInput(raw)
	if err != nil {
		return nil, withSource(err, source)
	}

	steps := parser.Parse(exec)
	c.log.Infof("Parsed %d step(s)", len(steps))
	for _, step := range steps {
		if !step.Recognized {
			c.log.Warnf("Unknown action kind %q at step %d, using passthrough normalization", step.Kind, step.Index)
		}
	}

	categorized := make([]domain.CategorizedStep, 0, len(steps))
	for _, step := range steps {
		c.log.Debugf("Enriching step %d/%d (%s)", step.Index+1, len(steps), step.Kind)

		text, err := c.gateway.Complete(ctx, prompt.BuildStepPrompt(step))
		if err != nil {
			return nil, withSource(domain.NewStepError(domain.PhaseGateway, step.Index, "",
				"model call failed", err), source)
		}

		fields, err := schema.ParseStepFields(text)
		if err != nil {
			return nil, withSource(withStep(err, step.Index), source)
		}

		categorized = append(categorized, domain.CategorizedStep{
			NormalizedStep: step,
			Category:       fields.Category,
			Enriched:       fields.Description,
			Action:         fields.Action,
		})
	}

	c.log.Info("Generating workflow summary")
	summary, err := c.summarize(ctx, categorized)
	if err != nil {
		return nil, withSource(err, source)
	}

	c.log.Info("Extracting input schema")
	inputSchema, err := c.extractInputSchema(ctx, exec, categorized)
	if err != nil {
		return nil, withSource(err, source)
	}

	doc := &domain.WorkflowDocument{
		Metadata: domain.WorkflowMetadata{
			WorkflowID:   c.opts.NewID(),
			FeatureName:  exec.FeatureName,
			ScenarioName: exec.ScenarioName,
			Source:       filepath.Base(source),
			GeneratedAt:  c.opts.Now().UTC().Format(time.RFC3339),
			Model:        c.opts.Model,
			StepCount:    len(categorized),
			InputSchema:  inputSchema,
		},
		Steps:   categorized,
		Summary: *summary,
	}

	if err := schema.ValidateDocument(doc); err != nil {
		return nil, withSource(err, source)
	}

	c.log.Info("Conversion complete")
	return doc, nil
}

func (c *Converter) summarize(ctx context.Context, steps []domain.CategorizedStep) (*domain.WorkflowSummary, error) {
	text, err := c.gateway.Complete(ctx, prompt.BuildSummaryPrompt(steps))
	if err != nil {
		return nil, domain.NewError(domain.PhaseGateway, "", "", "summary model call failed", err)
	}

	fields, err := schema.ParseSummaryFields(text)
	if err != nil {
		return nil, err
	}
	if fields.StepCount != len(steps) {
		return nil, domain.NewError(domain.PhaseOutput, "", "step_count",
			"summary step count does not match number of steps", nil)
	}

	return &domain.WorkflowSummary{
		Intent:     fields.Intent,
		Categories: fields.Categories,
		StepCount:  fields.StepCount,
	}, nil
}

func (c *Converter) extractInputSchema(ctx context.Context, exec *domain.RawExecution, steps []domain.CategorizedStep) ([]domain.InputField, error) {
	text, err := c.gateway.Complete(ctx, prompt.BuildInputSchemaPrompt(exec.FeatureName, exec.ScenarioName, steps))
	if err != nil {
		return nil, domain.NewError(domain.PhaseGateway, "", "", "input schema model call failed", err)
	}
	return schema.ParseInputParameters(text)
}

// withSource attaches the input file path to a pipeline error when the
// error does not already carry one.
func withSource(err error, source string) error {
	var fgErr *domain.FlowGenError
	if errors.As(err, &fgErr) && fgErr.Source == "" {
		fgErr.Source = source
	}
	return err
}

// withStep attaches a step index to a pipeline error when it lacks one.
func withStep(err error, index int) error {
	var fgErr *domain.FlowGenError
	if errors.As(err, &fgErr) && fgErr.StepIndex < 0 {
		fgErr.StepIndex = index
	}
	return err
}
