package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/GoE2E-FlowGen/internal/config"
)

var _ = Describe("Config", func() {
	Describe("Load", func() {
		It("should load minimal config", func() {
			cfg, err := config.Load(filepath.Join("..", "..", "testdata", "configs", "minimal.yaml"))
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg).ToNot(BeNil())
			Expect(cfg.Input.Directories).To(ContainElement("executions"))
			Expect(cfg.Output.Directory).To(Equal("workflows"))
			// Unset sections keep their defaults
			Expect(cfg.LLM.Model).To(Equal("gpt-4.1-nano"))
		})

		It("should load full config", func() {
			cfg, err := config.Load(filepath.Join("..", "..", "testdata", "configs", "full.yaml"))
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg).ToNot(BeNil())
			Expect(cfg.Input.Directories).To(HaveLen(3))
			Expect(cfg.Input.Include).To(ContainElement("*.execution.json"))
			Expect(cfg.Input.Exclude).To(ContainElement("vendor/**"))
			Expect(cfg.LLM.Model).To(Equal("gpt-4o-mini"))
			Expect(cfg.LLM.MaxRetries).To(Equal(5))
			Expect(cfg.LLM.BaseURL).To(Equal("https://llm.internal.example/v1"))
			Expect(cfg.Report.Enabled).To(BeTrue())
			Expect(cfg.Logging.Level).To(Equal("debug"))
		})

		It("should return error for nonexistent file", func() {
			_, err := config.Load("nonexistent.yaml")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid YAML", func() {
			tmpFile := filepath.Join(os.TempDir(), "invalid_flowgen.yaml")
			err := os.WriteFile(tmpFile, []byte("{{invalid yaml}}"), 0644)
			Expect(err).ToNot(HaveOccurred())
			defer os.Remove(tmpFile)

			_, loadErr := config.Load(tmpFile)
			Expect(loadErr).To(HaveOccurred())
		})
	})

	Describe("DefaultConfig", func() {
		It("should return config with sensible defaults", func() {
			cfg := config.DefaultConfig()
			Expect(cfg).ToNot(BeNil())
			Expect(cfg.Input.Directories).To(ContainElement("executions"))
			Expect(cfg.Input.Include).To(ContainElement("*.json"))
			Expect(*cfg.Input.Recursive).To(BeTrue())
			Expect(cfg.Output.Directory).To(Equal("workflows"))
			Expect(cfg.Output.FileSuffix).To(Equal(".workflow.json"))
			Expect(cfg.LLM.Model).To(Equal("gpt-4.1-nano"))
			Expect(cfg.LLM.Temperature).To(Equal(0.3))
			Expect(cfg.LLM.Timeout).To(Equal("60s"))
			Expect(cfg.LLM.MaxRetries).To(Equal(3))
			Expect(cfg.Logging.Level).To(Equal("info"))
		})
	})

	Describe("Validate", func() {
		It("should pass for valid config", func() {
			cfg, err := config.Load(filepath.Join("..", "..", "testdata", "configs", "full.yaml"))
			Expect(err).ToNot(HaveOccurred())
			Expect(config.Validate(cfg)).To(Succeed())
		})

		It("should fail if directories are empty", func() {
			cfg := config.DefaultConfig()
			cfg.Input.Directories = nil
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("input.directories"))
		})

		It("should fail if the model is empty", func() {
			cfg := config.DefaultConfig()
			cfg.LLM.Model = ""
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("llm.model"))
		})

		It("should fail for an invalid timeout", func() {
			cfg := config.DefaultConfig()
			cfg.LLM.Timeout = "soon"
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("llm.timeout"))
		})

		It("should fail for an out-of-range temperature", func() {
			cfg := config.DefaultConfig()
			cfg.LLM.Temperature = 3.5
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("llm.temperature"))
		})

		It("should fail for zero retries", func() {
			cfg := config.DefaultConfig()
			cfg.LLM.MaxRetries = 0
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("llm.max_retries"))
		})

		It("should fail for a non-json output suffix", func() {
			cfg := config.DefaultConfig()
			cfg.Output.FileSuffix = ".yaml"
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("output.file_suffix"))
		})

		It("should fail for an unknown logging level", func() {
			cfg := config.DefaultConfig()
			cfg.Logging.Level = "loud"
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("logging.level"))
		})

		It("should collect multiple violations into a single error", func() {
			cfg := config.DefaultConfig()
			cfg.Input.Directories = nil
			cfg.LLM.Model = ""
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("input.directories"))
			Expect(err.Error()).To(ContainSubstring("llm.model"))
		})
	})

	Describe("LLMTimeout", func() {
		It("should parse the configured duration", func() {
			cfg := config.DefaultConfig()
			Expect(cfg.LLM.LLMTimeout()).To(Equal(60 * time.Second))
		})

		It("should return zero for an unset timeout", func() {
			cfg := config.DefaultConfig()
			cfg.LLM.Timeout = ""
			Expect(cfg.LLM.LLMTimeout()).To(Equal(time.Duration(0)))
		})
	})
})
