package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/firpredict/internal/config"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported LLM providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, p := range config.Providers {
			marker := "  "
			if p.ID == cfg.Provider {
				marker = "* "
			}
			fmt.Fprintf(out, "%s%-11s %s\n", marker, p.ID, p.Description)
			fmt.Fprintf(out, "    models: %s (default %s)\n", strings.Join(p.Models, ", "), p.DefaultModel)
			if len(p.EnvKeys) > 0 {
				fmt.Fprintf(out, "    key:    %s\n", strings.Join(p.EnvKeys, " or "))
			}
		}
		fmt.Fprintf(out, "\nCurrent: %s / %s (API key: %s)\n", cfg.Provider, cfg.Model, cfg.MaskedAPIKey())
		return nil
	},
}
