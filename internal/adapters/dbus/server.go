// Package dbus exposes the timer control surface on the D-Bus session bus
// and provides the client used by the CLI to reach a running daemon.
package dbus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	godbus "github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/xvierd/breaktime/internal/domain"
	"github.com/xvierd/breaktime/internal/logger"
	"github.com/xvierd/breaktime/internal/ports"
)

const (
	ServiceName   = "io.github.xvierd.Breaktime"
	ObjectPath    = godbus.ObjectPath("/io/github/xvierd/Breaktime")
	InterfaceName = "io.github.xvierd.Breaktime.Timer"

	ErrorInvalidArgs  = "org.freedesktop.DBus.Error.InvalidArgs"
	ErrorPolicyDenied = "io.github.xvierd.Breaktime.Error.PolicyDenied"
	ErrorFailed       = "org.freedesktop.DBus.Error.Failed"
)

var timerInterface = introspect.Interface{
	Name: InterfaceName,
	Methods: []introspect.Method{
		{Name: "StartBreak", Args: []introspect.Arg{{Name: "kind", Type: "s", Direction: "in"}}},
		{Name: "SkipBreak"},
		{Name: "PostponeBreak", Args: []introspect.Arg{{Name: "kind", Type: "s", Direction: "in"}}},
		{Name: "Pause"},
		{Name: "Resume"},
		{Name: "GetStatus", Args: []introspect.Arg{
			{Name: "state", Type: "s", Direction: "out"},
			{Name: "short_remaining", Type: "x", Direction: "out"},
			{Name: "long_remaining", Type: "x", Direction: "out"},
		}},
	},
}

// timerObject is the exported object. Its method names are the D-Bus members.
type timerObject struct {
	ctx     context.Context
	control ports.ControlSurface
}

func (o *timerObject) StartBreak(kind string) *godbus.Error {
	return toDBusError(o.control.StartBreak(o.ctx, kind))
}

func (o *timerObject) SkipBreak() *godbus.Error {
	return toDBusError(o.control.SkipBreak(o.ctx))
}

func (o *timerObject) PostponeBreak(kind string) *godbus.Error {
	return toDBusError(o.control.PostponeBreak(o.ctx, kind))
}

func (o *timerObject) Pause() *godbus.Error {
	return toDBusError(o.control.Pause(o.ctx))
}

func (o *timerObject) Resume() *godbus.Error {
	return toDBusError(o.control.Resume(o.ctx))
}

func (o *timerObject) GetStatus() (string, int64, int64, *godbus.Error) {
	report, err := o.control.GetStatus(o.ctx)
	if err != nil {
		return "", 0, 0, toDBusError(err)
	}
	return report.State, report.ShortRemainingSeconds, report.LongRemainingSeconds, nil
}

func toDBusError(err error) *godbus.Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidBreakKind):
		return godbus.NewError(ErrorInvalidArgs, []interface{}{err.Error()})
	case errors.Is(err, domain.ErrPolicyDenied):
		return godbus.NewError(ErrorPolicyDenied, []interface{}{err.Error()})
	default:
		return godbus.NewError(ErrorFailed, []interface{}{err.Error()})
	}
}

// Server owns the well-known bus name and serves the control surface.
type Server struct {
	control ports.ControlSurface
	conn    *godbus.Conn

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

var _ ports.RemoteServer = (*Server)(nil)

// NewServer creates a server on conn. The caller keeps ownership of conn.
func NewServer(control ports.ControlSurface, conn *godbus.Conn) *Server {
	return &Server{control: control, conn: conn}
}

// Start exports the object, claims ServiceName and blocks until ctx is done
// or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	obj := &timerObject{ctx: ctx, control: s.control}
	if err := s.conn.Export(obj, ObjectPath, InterfaceName); err != nil {
		return fmt.Errorf("failed to export timer object: %w", err)
	}

	node := &introspect.Node{
		Name:       string(ObjectPath),
		Interfaces: []introspect.Interface{introspect.IntrospectData, timerInterface},
	}
	if err := s.conn.Export(introspect.NewIntrospectable(node), ObjectPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspection data: %w", err)
	}

	reply, err := s.conn.RequestName(ServiceName, godbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != godbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s is taken, is another breaktime daemon running?", ServiceName)
	}

	s.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	s.ctx, s.cancel = runCtx, cancel
	s.mu.Unlock()

	logger.Info(ctx, "D-Bus control surface ready", "service", ServiceName, "path", ObjectPath)
	<-runCtx.Done()

	if _, err := s.conn.ReleaseName(ServiceName); err != nil {
		logger.Warn(ctx, "Failed to release bus name", "err", err)
	}
	if err := s.conn.Export(nil, ObjectPath, InterfaceName); err != nil {
		logger.Warn(ctx, "Failed to unexport control object", "err", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}
