package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/ports"
)

// postponeCmd represents the postpone command
var postponeCmd = &cobra.Command{
	Use:   "postpone <short|long>",
	Short: "Postpone a break",
	Long: `Push the next short or long break back by the configured postpone time.
A break that is already running is abandoned.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.BreakShort), string(domain.BreakLong)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParseBreakKind(args[0])
		if err != nil {
			return err
		}

		return runVerb(cmd, func(ctx context.Context, control ports.ControlSurface) error {
			if err := control.PostponeBreak(ctx, string(kind)); err != nil {
				return fmt.Errorf("failed to postpone break: %w", err)
			}
			return nil
		}, func(report domain.StatusReport) string {
			return fmt.Sprintf("⏰ %s break postponed. Next in %s",
				kind.Label(), domain.FormatRemaining(report.Remaining(kind)))
		})
	},
}
