package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	recursive := true
	return &Config{
		Input: InputConfig{
			Directories: []string{"executions"},
			Include:     []string{"*.json"},
			Exclude:     []string{"vendor/**", "node_modules/**"},
			Recursive:   &recursive,
		},
		Output: OutputConfig{
			Directory:  "workflows",
			FileSuffix: ".workflow.json",
		},
		LLM: LLMConfig{
			Model:       "gpt-4.1-nano",
			Temperature: 0.3,
			Timeout:     "60s",
			MaxRetries:  3,
		},
		Report: ReportConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		DryRun: false,
	}
}
