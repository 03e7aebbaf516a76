package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/frherrer/GoE2E-FlowGen/internal/domain"
)

// Config is the top-level configuration struct.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	LLM     LLMConfig     `yaml:"llm"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
	DryRun  bool          `yaml:"dry_run"`
}

type InputConfig struct {
	Directories []string `yaml:"directories"`
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	Recursive   *bool    `yaml:"recursive"` // pointer to distinguish unset from false
}

type OutputConfig struct {
	Directory  string `yaml:"directory"`
	FileSuffix string `yaml:"file_suffix"`
}

// LLMConfig holds backend selection and request behavior. Credentials are
// deliberately absent: the API key comes from the environment and is
// never written anywhere.
type LLMConfig struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	Timeout     string  `yaml:"timeout"`
	MaxRetries  int     `yaml:"max_retries"`
	BaseURL     string  `yaml:"base_url"`
}

type ReportConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Directory string `yaml:"directory"` // defaults to output.directory
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML configuration file and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError(domain.PhaseConfig, path, "", "failed to read config file", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewError(domain.PhaseConfig, path, "", "failed to parse config file", err)
	}

	return cfg, nil
}
