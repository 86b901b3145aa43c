package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/xvierd/breaktime/internal/adapters/dbus"
	"github.com/xvierd/breaktime/internal/config"
	"github.com/xvierd/breaktime/internal/logger"
	"github.com/xvierd/breaktime/internal/ports"
)

// appDeps groups the dependencies initialized at startup.
type appDeps struct {
	manager *config.Manager
	config  *config.Config
	logFile *os.File
}

// app holds all initialized dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// remoteControl is a control surface backed by a connection that must be closed.
type remoteControl interface {
	ports.ControlSurface
	Close() error
}

// dialControl connects to the running daemon.
var dialControl = func() (remoteControl, error) {
	return dbus.Dial()
}

// initializeServices loads configuration and installs the logger in the
// command context.
func initializeServices(cmd *cobra.Command) error {
	if logFormat != "text" && logFormat != "json" {
		return fmt.Errorf("invalid log format %q: must be text or json", logFormat)
	}

	opts := []logger.Option{logger.WithFormat(logFormat), logger.WithConsole(cmd.ErrOrStderr())}
	if debugMode {
		opts = append(opts, logger.WithDebug())
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		app.logFile = f
		opts = append(opts, logger.WithWriter(f))
	}
	ctx := logger.WithLogger(commandContext(cmd), logger.New(opts...))
	cmd.SetContext(ctx)

	manager, err := config.NewManager(configPath)
	if err != nil {
		return err
	}
	app.manager = manager

	app.config, err = manager.Load()
	if err != nil {
		// If config loading fails, use defaults
		logger.Warn(ctx, "Failed to load config, using defaults", "path", manager.Path(), "err", err)
		app.config = config.DefaultConfig()
	}

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.logFile != nil {
		err := app.logFile.Close()
		app.logFile = nil
		return err
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// withControl dials the daemon, runs fn and closes the connection.
func withControl(cmd *cobra.Command, fn func(ctx context.Context, control ports.ControlSurface) error) error {
	control, err := dialControl()
	if err != nil {
		return err
	}
	defer control.Close()

	return fn(commandContext(cmd), control)
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
