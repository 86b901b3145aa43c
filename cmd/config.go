package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/breaktime/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View the configuration",
	Long: `Print every configuration key with its current value. A running daemon
picks up edits to the file automatically.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if jsonOutput {
			values := make(map[string]any)
			for _, key := range config.Keys() {
				values[key], _ = app.config.Get(key)
			}
			return writeJSON(out, values)
		}

		fmt.Fprintf(out, "  Config file: %s\n\n", app.manager.Path())
		for _, key := range config.Keys() {
			value, _ := app.config.Get(key)
			fmt.Fprintf(out, "    %-30s %v\n", key, value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one configuration value",
	Long: `Validate and store a new value, for example:

  breaktime config set short_break.interval_minutes 25`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return config.Keys(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		updated, err := app.manager.Set(key, value)
		if err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		app.config = updated

		stored, _ := updated.Get(key)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %v\n", key, stored)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}
