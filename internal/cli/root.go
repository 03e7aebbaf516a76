package cli

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	dryRun  bool
	log     *logrus.Logger
)

// rootCmd is the base command for flowgen.
var rootCmd = &cobra.Command{
	Use:   "flowgen",
	Short: "Convert browser test-execution recordings into structured workflows",
	Long: `GoE2E-FlowGen reads raw test-execution recordings (JSON logs of
browser automation actions), categorizes every step with a language
model, and writes a validated workflow document.

Everything is driven by a YAML configuration file (flowgen.yaml); model
credentials come from the environment (OPENAI_API_KEY).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "flowgen.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "validate and parse but don't call the model or write files")

	log = logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
