package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frherrer/GoE2E-FlowGen/internal/config"
	"github.com/frherrer/GoE2E-FlowGen/internal/converter"
	"github.com/frherrer/GoE2E-FlowGen/internal/gateway"
	"github.com/frherrer/GoE2E-FlowGen/internal/parser"
	"github.com/frherrer/GoE2E-FlowGen/internal/report"
	"github.com/frherrer/GoE2E-FlowGen/internal/scanner"
	"github.com/frherrer/GoE2E-FlowGen/internal/schema"
)

var (
	inputFile  string
	outputFile string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert execution recordings into workflow documents",
	Long: `Converts a single recording (--input/--output) or every recording
found under the configured input directories. A run either produces a
fully validated workflow document or fails without writing anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
		if dryRun {
			cfg.DryRun = true
		}

		log.Info("Configuration loaded successfully")
		return runConvert(cmd.Context(), cfg)
	},
}

func init() {
	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "convert a single recording file")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output path for single-file mode")
	rootCmd.AddCommand(convertCmd)
}

// runConvert wires all components and converts every selected recording.
func runConvert(ctx context.Context, cfg *config.Config) error {
	files, err := selectInputs(cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warn("No execution recordings found")
		return nil
	}
	log.Infof("Found %d recording(s)", len(files))

	if cfg.DryRun {
		return runDry(files)
	}

	gw, err := gateway.NewOpenAI(os.Getenv("OPENAI_API_KEY"), gateway.Options{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.LLMTimeout(),
		MaxRetries:  cfg.LLM.MaxRetries,
		BaseURL:     cfg.LLM.BaseURL,
	}, log)
	if err != nil {
		return err
	}
	conv := converter.New(gw, log, converter.Options{Model: cfg.LLM.Model})

	var renderer *report.Renderer
	if cfg.Report.Enabled {
		renderer, err = report.NewRenderer()
		if err != nil {
			return err
		}
	}

	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		doc, err := conv.Convert(ctx, raw, file)
		if err != nil {
			return err
		}

		outPath := resolveOutputPath(file, cfg)
		if err := conv.Save(doc, outPath); err != nil {
			return err
		}

		if renderer != nil {
			rendered, err := renderer.Render(doc)
			if err != nil {
				return err
			}
			reportPath := resolveReportPath(outPath, cfg)
			if err := os.WriteFile(reportPath, []byte(rendered), 0644); err != nil {
				return fmt.Errorf("failed to write report %s: %w", reportPath, err)
			}
			log.Infof("Report saved to %s", reportPath)
		}
	}

	log.Info("Conversion complete")
	return nil
}

// runDry validates and parses each recording without model calls or
// writes.
func runDry(files []string) error {
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		exec, err := schema.ValidateInput(raw)
		if err != nil {
			return err
		}
		steps := parser.Parse(exec)
		log.Infof("[DRY-RUN] %s: %d step(s) would be converted", file, len(steps))
		for _, step := range steps {
			if !step.Recognized {
				log.Warnf("[DRY-RUN] %s: unknown action kind %q at step %d", file, step.Kind, step.Index)
			}
		}
	}
	return nil
}

// selectInputs returns the recordings to convert: the --input file when
// given, otherwise everything discovered under the configured input
// directories.
func selectInputs(cfg *config.Config) ([]string, error) {
	if inputFile != "" {
		return []string{inputFile}, nil
	}

	recursive := true
	if cfg.Input.Recursive != nil {
		recursive = *cfg.Input.Recursive
	}
	s := scanner.NewScanner(recursive)

	var all []string
	for _, dir := range cfg.Input.Directories {
		log.Debugf("Scanning directory: %s", dir)
		files, err := s.Scan(dir, cfg.Input.Include, cfg.Input.Exclude)
		if err != nil {
			log.Warnf("Failed to scan directory %s: %v", dir, err)
			continue
		}
		all = append(all, files...)
	}
	return all, nil
}

func resolveOutputPath(inFile string, cfg *config.Config) string {
	if outputFile != "" && inputFile != "" {
		return outputFile
	}
	base := filepath.Base(inFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(cfg.Output.Directory, name+cfg.Output.FileSuffix)
}

func resolveReportPath(outPath string, cfg *config.Config) string {
	dir := cfg.Report.Directory
	if dir == "" {
		dir = filepath.Dir(outPath)
	}
	base := filepath.Base(outPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, name+".md")
}
