package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/ports"
)

// pauseCmd represents the pause command
var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the break countdowns",
	Long:  `Freeze both countdowns until "breaktime resume".`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, func(ctx context.Context, control ports.ControlSurface) error {
			if err := control.Pause(ctx); err != nil {
				return fmt.Errorf("failed to pause: %w", err)
			}
			return nil
		}, func(report domain.StatusReport) string {
			return fmt.Sprintf("⏸️  Paused. Short: %s, Long: %s",
				domain.FormatRemaining(report.Remaining(domain.BreakShort)),
				domain.FormatRemaining(report.Remaining(domain.BreakLong)))
		})
	},
}
