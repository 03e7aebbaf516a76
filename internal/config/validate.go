package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/frherrer/GoE2E-FlowGen/internal/domain"
)

// Validate checks the Config for required fields and valid values.
func Validate(cfg *Config) error {
	var errs []string

	// Input validation
	if len(cfg.Input.Directories) == 0 {
		errs = append(errs, "input.directories must not be empty")
	}
	if len(cfg.Input.Include) == 0 {
		errs = append(errs, "input.include must not be empty")
	}

	// Output validation
	if cfg.Output.Directory == "" {
		errs = append(errs, "output.directory must not be empty")
	}
	if cfg.Output.FileSuffix == "" {
		errs = append(errs, "output.file_suffix must not be empty")
	}
	if !strings.HasSuffix(cfg.Output.FileSuffix, ".json") {
		errs = append(errs, "output.file_suffix must end with .json")
	}

	// LLM validation
	if cfg.LLM.Model == "" {
		errs = append(errs, "llm.model must not be empty")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		errs = append(errs, fmt.Sprintf("llm.temperature must be between 0 and 2 (got %v)", cfg.LLM.Temperature))
	}
	if cfg.LLM.Timeout != "" {
		if _, err := time.ParseDuration(cfg.LLM.Timeout); err != nil {
			errs = append(errs, fmt.Sprintf("llm.timeout is not a valid duration: %v", err))
		}
	}
	if cfg.LLM.MaxRetries < 1 {
		errs = append(errs, fmt.Sprintf("llm.max_retries must be at least 1 (got %d)", cfg.LLM.MaxRetries))
	}

	// Validate logging level
	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return domain.NewError(domain.PhaseConfig, "", "", fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}

// LLMTimeout returns the parsed timeout duration. Validate must have
// passed already; an unset value falls back to zero and the gateway's
// default applies.
func (c *LLMConfig) LLMTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}
