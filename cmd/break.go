package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/ports"
)

// breakCmd represents the break command
var breakCmd = &cobra.Command{
	Use:       "break <short|long>",
	Short:     "Start a break now",
	Long:      `Start a short or long break immediately, regardless of the schedule.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.BreakShort), string(domain.BreakLong)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParseBreakKind(args[0])
		if err != nil {
			return err
		}

		return runVerb(cmd, func(ctx context.Context, control ports.ControlSurface) error {
			if err := control.StartBreak(ctx, string(kind)); err != nil {
				return fmt.Errorf("failed to start break: %w", err)
			}
			return nil
		}, func(report domain.StatusReport) string {
			return fmt.Sprintf("☕ %s break started", kind.Label())
		})
	},
}

// runVerb dials the daemon, applies verb and reports the resulting status,
// either as JSON or as the line produced by describe.
func runVerb(cmd *cobra.Command, verb func(context.Context, ports.ControlSurface) error, describe func(domain.StatusReport) string) error {
	return withControl(cmd, func(ctx context.Context, control ports.ControlSurface) error {
		if err := verb(ctx, control); err != nil {
			return err
		}

		report, err := control.GetStatus(ctx)
		if err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), describe(report))
		return err
	})
}
