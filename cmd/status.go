package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xvierd/breaktime/internal/adapters/tui"
	"github.com/xvierd/breaktime/internal/ports"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current status",
	Long:  `Display the timer state and the time left until the next short and long break.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withControl(cmd, func(ctx context.Context, control ports.ControlSurface) error {
			report, err := control.GetStatus(ctx)
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), report)
			}

			out := cmd.OutOrStdout()
			styled := out == os.Stdout && tui.IsTerminal()
			return tui.ShowStatus(out, report, styled)
		})
	},
}
