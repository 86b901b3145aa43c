package dbus

import (
	"context"
	"errors"
	"testing"

	godbus "github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/breaktime/internal/domain"
)

// mockControl is a mock implementation of ports.ControlSurface for testing.
type mockControl struct {
	calls  []string
	err    error
	report domain.StatusReport
}

func (m *mockControl) StartBreak(_ context.Context, kind string) error {
	m.calls = append(m.calls, "StartBreak:"+kind)
	if _, err := domain.ParseBreakKind(kind); err != nil {
		return err
	}
	return m.err
}

func (m *mockControl) SkipBreak(context.Context) error {
	m.calls = append(m.calls, "SkipBreak")
	return m.err
}

func (m *mockControl) PostponeBreak(_ context.Context, kind string) error {
	m.calls = append(m.calls, "PostponeBreak:"+kind)
	if _, err := domain.ParseBreakKind(kind); err != nil {
		return err
	}
	return m.err
}

func (m *mockControl) Pause(context.Context) error {
	m.calls = append(m.calls, "Pause")
	return m.err
}

func (m *mockControl) Resume(context.Context) error {
	m.calls = append(m.calls, "Resume")
	return m.err
}

func (m *mockControl) GetStatus(context.Context) (domain.StatusReport, error) {
	m.calls = append(m.calls, "GetStatus")
	return m.report, m.err
}

// loopbackObject dispatches calls straight to a timerObject, converting
// replies the way the bus delivers them.
type loopbackObject struct {
	godbus.BusObject
	target  *timerObject
	methods []string
}

func (l *loopbackObject) CallWithContext(_ context.Context, method string, _ godbus.Flags, args ...interface{}) *godbus.Call {
	l.methods = append(l.methods, method)

	var dbusErr *godbus.Error
	var body []interface{}
	switch method {
	case InterfaceName + ".StartBreak":
		dbusErr = l.target.StartBreak(args[0].(string))
	case InterfaceName + ".SkipBreak":
		dbusErr = l.target.SkipBreak()
	case InterfaceName + ".PostponeBreak":
		dbusErr = l.target.PostponeBreak(args[0].(string))
	case InterfaceName + ".Pause":
		dbusErr = l.target.Pause()
	case InterfaceName + ".Resume":
		dbusErr = l.target.Resume()
	case InterfaceName + ".GetStatus":
		var state string
		var short, long int64
		state, short, long, dbusErr = l.target.GetStatus()
		body = []interface{}{state, short, long}
	default:
		return &godbus.Call{Err: godbus.Error{Name: "org.freedesktop.DBus.Error.UnknownMethod"}}
	}

	call := &godbus.Call{Body: body}
	if dbusErr != nil {
		call.Err = *dbusErr
		call.Body = nil
	}
	return call
}

func newLoopbackClient(control *mockControl) (*Client, *loopbackObject) {
	obj := &loopbackObject{target: &timerObject{ctx: context.Background(), control: control}}
	return &Client{obj: obj}, obj
}

func TestClient_ForwardsVerbs(t *testing.T) {
	control := &mockControl{}
	client, obj := newLoopbackClient(control)
	ctx := context.Background()

	require.NoError(t, client.StartBreak(ctx, "short"))
	require.NoError(t, client.SkipBreak(ctx))
	require.NoError(t, client.PostponeBreak(ctx, "long"))
	require.NoError(t, client.Pause(ctx))
	require.NoError(t, client.Resume(ctx))

	assert.Equal(t, []string{"StartBreak:short", "SkipBreak", "PostponeBreak:long", "Pause", "Resume"}, control.calls)
	assert.Equal(t, InterfaceName+".StartBreak", obj.methods[0])
}

func TestClient_GetStatus(t *testing.T) {
	control := &mockControl{report: domain.StatusReport{
		State:                 "InBreak:Long",
		ShortRemainingSeconds: 930,
		LongRemainingSeconds:  -4,
	}}
	client, _ := newLoopbackClient(control)

	report, err := client.GetStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, control.report, report)
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Run("invalid kind", func(t *testing.T) {
		client, _ := newLoopbackClient(&mockControl{})
		err := client.PostponeBreak(context.Background(), "banana")
		assert.ErrorIs(t, err, domain.ErrInvalidBreakKind)
		assert.Contains(t, err.Error(), "banana")
	})

	t.Run("policy denied", func(t *testing.T) {
		denied := errors.Join(domain.ErrPolicyDenied, errors.New("skipping breaks is disabled"))
		client, _ := newLoopbackClient(&mockControl{err: denied})
		err := client.SkipBreak(context.Background())
		assert.ErrorIs(t, err, domain.ErrPolicyDenied)
		assert.NotErrorIs(t, err, domain.ErrInvalidBreakKind)
	})

	t.Run("other failure", func(t *testing.T) {
		client, _ := newLoopbackClient(&mockControl{err: errors.New("boom")})
		_, err := client.GetStatus(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
		assert.NotErrorIs(t, err, domain.ErrPolicyDenied)
	})
}

func TestFromDBusError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no owner", err: godbus.Error{Name: "org.freedesktop.DBus.Error.ServiceUnknown"}, want: domain.ErrDaemonUnavailable},
		{name: "name has no owner", err: godbus.Error{Name: "org.freedesktop.DBus.Error.NameHasNoOwner"}, want: domain.ErrDaemonUnavailable},
		{name: "pointer error", err: godbus.NewError(ErrorPolicyDenied, []interface{}{"denied"}), want: domain.ErrPolicyDenied},
		{name: "invalid args", err: godbus.Error{Name: ErrorInvalidArgs, Body: []interface{}{"bad kind"}}, want: domain.ErrInvalidBreakKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, fromDBusError(tt.err), tt.want)
		})
	}

	assert.NoError(t, fromDBusError(nil))
	assert.ErrorContains(t, fromDBusError(errors.New("closed")), "dbus call failed")
}

func TestToDBusError(t *testing.T) {
	assert.Nil(t, toDBusError(nil))

	_, err := domain.ParseBreakKind("banana")
	assert.Equal(t, ErrorInvalidArgs, toDBusError(err).Name)
	assert.Equal(t, ErrorPolicyDenied, toDBusError(domain.ErrPolicyDenied).Name)
	assert.Equal(t, ErrorFailed, toDBusError(errors.New("x")).Name)
}

func TestServer_IsRunning(t *testing.T) {
	server := NewServer(&mockControl{}, nil)

	assert.False(t, server.IsRunning())
	assert.NoError(t, server.Stop())
}

func TestTimerInterface_ListsEveryVerb(t *testing.T) {
	var names []string
	for _, m := range timerInterface.Methods {
		names = append(names, m.Name)
	}
	assert.ElementsMatch(t, []string{"StartBreak", "SkipBreak", "PostponeBreak", "Pause", "Resume", "GetStatus"}, names)
}
