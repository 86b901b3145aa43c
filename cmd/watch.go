package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/xvierd/breaktime/internal/adapters/tui"
	"github.com/xvierd/breaktime/internal/ports"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the live dashboard",
	Long: `Open a terminal dashboard showing both countdowns. Keys start, skip and
postpone breaks or pause the timer; press ? for help.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withControl(cmd, func(ctx context.Context, control ports.ControlSurface) error {
			return tui.Run(ctx, control, app.config.ToTimerConfig())
		})
	},
}
