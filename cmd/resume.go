package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/ports"
)

// resumeCmd represents the resume command
var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume the break countdowns",
	Long:  `Continue both countdowns from where they were paused.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, func(ctx context.Context, control ports.ControlSurface) error {
			if err := control.Resume(ctx); err != nil {
				return fmt.Errorf("failed to resume: %w", err)
			}
			return nil
		}, func(report domain.StatusReport) string {
			return "▶️  Resumed. State: " + report.State
		})
	},
}
