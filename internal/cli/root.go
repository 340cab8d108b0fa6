package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/frherrer/docvet/internal/config"
)

var (
	cfgFile string
	verbose bool
	log     *logrus.Logger
)

// rootCmd is the base command for docvet.
var rootCmd = &cobra.Command{
	Use:   "docvet",
	Short: "Check documentation trees for broken structure, links, and code samples",
	Long: `docvet walks a tree of Markdown documentation and checks it the way a
compiler checks source: heading structure, internal links, code sample
syntax, and optionally external links.

Everything is driven by a YAML configuration file (docvet.yaml); flags
override it per run, and the tool runs with built-in defaults when no
configuration file exists.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "docvet.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Reports go to stdout, logs to stderr, so output stays pipeable.
	log = logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
}

// applyLogLevel raises or lowers the log level from the configuration.
// The --verbose flag wins over the configured level.
func applyLogLevel(cfg *config.Config) {
	if verbose {
		return
	}
	if lvl, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		log.SetLevel(lvl)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
