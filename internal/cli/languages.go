package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/frherrer/docvet/internal/config"
	"github.com/frherrer/docvet/internal/sandbox"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages the sandbox can check",
	Long:  `Shows every fence language tag with a registered handler, the tool behind it, and whether that tool is present in PATH.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		registry := sandbox.DefaultRegistry(cfg.Sandbox, log)
		out := cmd.OutOrStdout()
		for _, lang := range registry.Languages() {
			handler, ok := registry.HandlerFor(lang)
			if !ok {
				continue
			}
			status := color.GreenString("available")
			if !handler.Available() {
				status = color.YellowString("tool missing")
			}
			fmt.Fprintf(out, "%-12s %-42s %s\n", lang, handler.Tool(), status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
