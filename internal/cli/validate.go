package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frherrer/GoE2E-FlowGen/internal/config"
	"github.com/frherrer/GoE2E-FlowGen/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate [recording...]",
	Short: "Validate the configuration and input recordings",
	Long: `Loads the configuration file and checks it for errors. Any file
arguments are additionally validated against the execution recording
schema, without calling the model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Printf("Configuration file %q is valid.\n", cfgFile)

		for _, file := range args {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			exec, err := schema.ValidateInput(raw)
			if err != nil {
				return err
			}
			fmt.Printf("Recording %q is valid (%d actions).\n", file, len(exec.Actions))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
