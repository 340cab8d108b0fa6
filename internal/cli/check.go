package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/frherrer/docvet/internal/checks"
	"github.com/frherrer/docvet/internal/config"
	"github.com/frherrer/docvet/internal/engine"
	"github.com/frherrer/docvet/internal/links"
	"github.com/frherrer/docvet/internal/report"
	"github.com/frherrer/docvet/internal/sandbox"
	"github.com/frherrer/docvet/internal/scanner"
)

var (
	executeExamples bool
	checkLinks      bool
	fix             bool
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check a documentation tree and print the report",
	Long: `Scans the documentation root for Markdown files and checks structure,
internal links, and optionally code samples and external links. The report
goes to stdout; the command exits non-zero when any error is found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if len(args) == 1 {
			cfg.Input.Root = args[0]
		}
		// Flags only switch modes on; the config file can keep them on
		// permanently.
		cfg.ExecuteExamples = cfg.ExecuteExamples || executeExamples
		cfg.CheckLinks = cfg.CheckLinks || checkLinks
		cfg.Fix = cfg.Fix || fix

		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
		applyLogLevel(cfg)

		if abs, err := filepath.Abs(cfg.Input.Root); err == nil {
			cfg.Input.Root = abs
		}

		if cfg.Fix {
			log.Warn("--fix is accepted but not implemented yet, no files will be modified")
		}

		summary, err := runCheck(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if err := report.Render(cmd.OutOrStdout(), summary); err != nil {
			return err
		}
		if !summary.Success() {
			return fmt.Errorf("documentation check failed with %d error(s)", summary.Stats.Errors)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&executeExamples, "execute-examples", false, "syntax-check code blocks through language tools")
	checkCmd.Flags().BoolVar(&checkLinks, "check-links", false, "verify external links with HEAD requests")
	checkCmd.Flags().BoolVar(&fix, "fix", false, "reserved: automatic fixing is not implemented yet")
	rootCmd.AddCommand(checkCmd)
}

// runCheck wires all components and runs the engine.
func runCheck(ctx context.Context, cfg *config.Config) (*report.Summary, error) {
	s := scanner.NewScanner()
	checker := checks.NewChecker(cfg.Checks)
	resolver := links.NewResolver(cfg.Input.Root)

	registry := sandbox.DefaultRegistry(cfg.Sandbox, log)
	runner := sandbox.NewRunner(registry, cfg.Sandbox, log)
	external := links.NewExternalChecker(cfg.External, log)

	eng := engine.NewEngine(s, checker, resolver, runner, external, log)
	return eng.Run(ctx, cfg)
}
