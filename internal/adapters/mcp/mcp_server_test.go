package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xvierd/breaktime/internal/domain"
)

// mockControl is a mock implementation of ports.ControlSurface for testing.
type mockControl struct {
	calls  []string
	err    error
	report domain.StatusReport
}

func (m *mockControl) StartBreak(ctx context.Context, kind string) error {
	m.calls = append(m.calls, "start:"+kind)
	return m.err
}

func (m *mockControl) SkipBreak(ctx context.Context) error {
	m.calls = append(m.calls, "skip")
	return m.err
}

func (m *mockControl) PostponeBreak(ctx context.Context, kind string) error {
	m.calls = append(m.calls, "postpone:"+kind)
	return m.err
}

func (m *mockControl) Pause(ctx context.Context) error {
	m.calls = append(m.calls, "pause")
	return m.err
}

func (m *mockControl) Resume(ctx context.Context) error {
	m.calls = append(m.calls, "resume")
	return m.err
}

func (m *mockControl) GetStatus(ctx context.Context) (domain.StatusReport, error) {
	return m.report, nil
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func TestNewServer(t *testing.T) {
	mock := &mockControl{}
	server := NewServer(mock, "test")

	if server == nil {
		t.Fatal("NewServer() returned nil")
	}

	if server.control != mock {
		t.Error("NewServer() did not set control surface correctly")
	}

	tools := server.server.ListTools()
	for _, name := range []string{"start_break", "skip_break", "postpone_break", "pause", "resume", "get_status"} {
		if _, ok := tools[name]; !ok {
			t.Errorf("tool %q not registered", name)
		}
	}
	if len(tools) != 6 {
		t.Errorf("expected 6 tools, got %d", len(tools))
	}
}

func TestServer_IsRunning(t *testing.T) {
	server := NewServer(&mockControl{}, "test")

	if server.IsRunning() {
		t.Error("IsRunning() should return false before Start()")
	}
}

func TestServer_handleGetStatus(t *testing.T) {
	mock := &mockControl{report: domain.StatusReport{
		State:                 "Running",
		ShortRemainingSeconds: 600,
		LongRemainingSeconds:  3000,
	}}
	server := NewServer(mock, "test")

	result, err := server.handleGetStatus(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleGetStatus() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("handleGetStatus() returned error result: %s", resultText(t, result))
	}

	var got domain.StatusReport
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("status is not JSON: %v", err)
	}
	if got != mock.report {
		t.Errorf("got %+v, want %+v", got, mock.report)
	}
}

func TestServer_handleStartBreak(t *testing.T) {
	mock := &mockControl{report: domain.StatusReport{State: "InBreak:Short"}}
	server := NewServer(mock, "test")
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"kind": "short",
			},
		},
	}

	result, err := server.handleStartBreak(context.Background(), request)
	if err != nil {
		t.Fatalf("handleStartBreak() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("handleStartBreak() returned error result: %s", resultText(t, result))
	}
	if len(mock.calls) != 1 || mock.calls[0] != "start:short" {
		t.Errorf("unexpected calls %v", mock.calls)
	}
	if !strings.Contains(resultText(t, result), "InBreak:Short") {
		t.Errorf("result should include the new state, got %s", resultText(t, result))
	}
}

func TestServer_handleStartBreak_MissingKind(t *testing.T) {
	mock := &mockControl{}
	server := NewServer(mock, "test")
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	result, err := server.handleStartBreak(context.Background(), request)
	if err != nil {
		t.Fatalf("handleStartBreak() error = %v", err)
	}
	if !result.IsError {
		t.Error("handleStartBreak() should return error for missing kind")
	}
	if len(mock.calls) != 0 {
		t.Errorf("control surface should not be called, got %v", mock.calls)
	}
}

func TestServer_handlePostponeBreak_Denied(t *testing.T) {
	mock := &mockControl{err: fmt.Errorf("%w: postponing breaks is disabled", domain.ErrPolicyDenied)}
	server := NewServer(mock, "test")
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"kind": "long",
			},
		},
	}

	result, err := server.handlePostponeBreak(context.Background(), request)
	if err != nil {
		t.Fatalf("handlePostponeBreak() error = %v", err)
	}
	if !result.IsError {
		t.Fatal("handlePostponeBreak() should return error result when denied")
	}
	if !strings.Contains(resultText(t, result), "postponing breaks is disabled") {
		t.Errorf("unexpected error text %q", resultText(t, result))
	}
}

func TestServer_SimpleVerbs(t *testing.T) {
	tests := []struct {
		name    string
		handler func(*Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		call    string
	}{
		{name: "skip_break", handler: func(s *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) { return s.handleSkipBreak }, call: "skip"},
		{name: "pause", handler: func(s *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) { return s.handlePause }, call: "pause"},
		{name: "resume", handler: func(s *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) { return s.handleResume }, call: "resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockControl{}
			server := NewServer(mock, "test")

			result, err := tt.handler(server)(context.Background(), mcp.CallToolRequest{})
			if err != nil {
				t.Fatalf("%s error = %v", tt.name, err)
			}
			if result.IsError {
				t.Errorf("%s returned error result", tt.name)
			}
			if len(mock.calls) != 1 || mock.calls[0] != tt.call {
				t.Errorf("unexpected calls %v", mock.calls)
			}

			mock.err = errors.New("daemon unavailable")
			result, err = tt.handler(server)(context.Background(), mcp.CallToolRequest{})
			if err != nil {
				t.Fatalf("%s error = %v", tt.name, err)
			}
			if !result.IsError {
				t.Errorf("%s should surface control errors as tool errors", tt.name)
			}
		})
	}
}

func TestServer_Stop(t *testing.T) {
	server := NewServer(&mockControl{}, "test")

	// Stop before Start should not panic
	if err := server.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
