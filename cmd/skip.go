package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/ports"
)

// skipCmd represents the skip command
var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip the current break",
	Long: `End the current break early and schedule the next one a full interval
from now. Does nothing when no break is running.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, func(ctx context.Context, control ports.ControlSurface) error {
			if err := control.SkipBreak(ctx); err != nil {
				return fmt.Errorf("failed to skip break: %w", err)
			}
			return nil
		}, func(report domain.StatusReport) string {
			return "⏭️  Break skipped. State: " + report.State
		})
	},
}
