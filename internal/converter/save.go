package converter

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/frherrer/GoE2E-FlowGen/internal/domain"
)

// Save writes a validated workflow document to outputFile as indented
// JSON, creating parent directories as needed. Callers only invoke Save
// after Convert succeeded, so a failed run never leaves an artifact.
func (c *Converter) Save(doc *domain.WorkflowDocument, outputFile string) error {
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return domain.NewError(domain.PhaseWrite, outputFile, "", "failed to encode workflow", err)
	}
	encoded = append(encoded, '\n')

	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return domain.NewError(domain.PhaseWrite, outputFile, "", "failed to create output directory", err)
		}
	}
	if err := os.WriteFile(outputFile, encoded, 0644); err != nil {
		return domain.NewError(domain.PhaseWrite, outputFile, "", "failed to write workflow file", err)
	}

	c.log.Infof("Workflow saved to %s", outputFile)
	return nil
}
