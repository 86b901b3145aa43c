package cmd

import (
	"context"
	"fmt"

	godbus "github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"
	"github.com/xvierd/breaktime/internal/adapters/dbus"
	"github.com/xvierd/breaktime/internal/adapters/idle"
	"github.com/xvierd/breaktime/internal/adapters/notification"
	"github.com/xvierd/breaktime/internal/config"
	"github.com/xvierd/breaktime/internal/logger"
	"github.com/xvierd/breaktime/internal/ports"
	"github.com/xvierd/breaktime/internal/services"
	"golang.org/x/sync/errgroup"
)

// daemonCmd represents the daemon command
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the break scheduler",
	Long: `Run the break scheduler in the foreground. The daemon owns the timer,
exports it on the D-Bus session bus and shows desktop notifications. All other
commands talk to it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		conn, err := godbus.ConnectSessionBus()
		if err != nil {
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}
		defer conn.Close()

		d := newDaemon(app.config, conn)
		app.manager.Watch(ctx, d.applyConfig)

		logger.Info(ctx, "Daemon starting",
			"version", Version,
			"config", app.manager.Path(),
			"short_interval", d.timer.Config().Short.Interval,
			"long_interval", d.timer.Config().Long.Interval,
		)
		return d.run(ctx, dbus.NewServer(d.control, conn))
	},
}

// daemon is the set of long-lived services behind "breaktime daemon".
type daemon struct {
	timer     *services.TimerService
	control   *services.ControlService
	notifier  *notification.Notifier
	scheduler *services.Scheduler
}

func newDaemon(cfg *config.Config, conn *godbus.Conn) *daemon {
	timer := services.NewTimerService(cfg.ToTimerConfig(), ports.SystemClock)
	notifier := notification.New(cfg.Notifications)
	return &daemon{
		timer:     timer,
		control:   services.NewControlService(timer),
		notifier:  notifier,
		scheduler: services.NewScheduler(timer, idle.NewSessionProbe(conn), notifier),
	}
}

// applyConfig pushes a reloaded configuration into the running services.
func (d *daemon) applyConfig(cfg *config.Config) {
	d.timer.UpdateConfig(cfg.ToTimerConfig())
	d.notifier.UpdateConfig(cfg.Notifications)
}

// run drives the scheduler and serves remote until ctx is done or either fails.
func (d *daemon) run(ctx context.Context, remote ports.RemoteServer) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.scheduler.Run(ctx)
	})
	g.Go(func() error {
		if err := remote.Start(ctx); err != nil {
			return fmt.Errorf("control surface failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info(ctx, "Daemon stopped")
	return nil
}
