// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/breaktime/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server  *server.MCPServer
	control ports.ControlSurface
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(control ports.ControlSurface, version string) *Server {
	s := &Server{
		control: control,
	}

	s.server = server.NewMCPServer(
		"breaktime",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: get_status
	s.server.AddTool(
		mcp.NewTool(
			"get_status",
			mcp.WithDescription("Get the break timer state and the seconds remaining until the next short and long break"),
		),
		s.handleGetStatus,
	)

	// Tool: start_break
	startBreakTool := mcp.NewTool(
		"start_break",
		mcp.WithDescription("Start a break immediately"),
		mcp.WithString(
			"kind",
			mcp.Required(),
			mcp.Description("Which break to start: short or long"),
			mcp.Enum("short", "long"),
		),
	)
	s.server.AddTool(startBreakTool, s.handleStartBreak)

	// Tool: skip_break
	s.server.AddTool(
		mcp.NewTool(
			"skip_break",
			mcp.WithDescription("End the current break early and schedule the next one"),
		),
		s.handleSkipBreak,
	)

	// Tool: postpone_break
	postponeBreakTool := mcp.NewTool(
		"postpone_break",
		mcp.WithDescription("Push the next break of the given kind back by the configured postpone time"),
		mcp.WithString(
			"kind",
			mcp.Required(),
			mcp.Description("Which break to postpone: short or long"),
			mcp.Enum("short", "long"),
		),
	)
	s.server.AddTool(postponeBreakTool, s.handlePostponeBreak)

	// Tool: pause
	s.server.AddTool(
		mcp.NewTool(
			"pause",
			mcp.WithDescription("Pause both break countdowns"),
		),
		s.handlePause,
	)

	// Tool: resume
	s.server.AddTool(
		mcp.NewTool(
			"resume",
			mcp.WithDescription("Resume both break countdowns"),
		),
		s.handleResume,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.RemoteServer.
var _ ports.RemoteServer = (*Server)(nil)

// handleGetStatus handles the get_status tool.
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.control.GetStatus(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get status: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleStartBreak handles the start_break tool.
func (s *Server) handleStartBreak(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind is required: " + err.Error()), nil
	}

	if err := s.control.StartBreak(ctx, kind); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start break: %v", err)), nil
	}
	return s.handleGetStatus(ctx, request)
}

// handleSkipBreak handles the skip_break tool.
func (s *Server) handleSkipBreak(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.control.SkipBreak(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to skip break: %v", err)), nil
	}
	return s.handleGetStatus(ctx, request)
}

// handlePostponeBreak handles the postpone_break tool.
func (s *Server) handlePostponeBreak(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind is required: " + err.Error()), nil
	}

	if err := s.control.PostponeBreak(ctx, kind); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to postpone break: %v", err)), nil
	}
	return s.handleGetStatus(ctx, request)
}

// handlePause handles the pause tool.
func (s *Server) handlePause(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.control.Pause(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to pause: %v", err)), nil
	}
	return s.handleGetStatus(ctx, request)
}

// handleResume handles the resume tool.
func (s *Server) handleResume(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.control.Resume(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to resume: %v", err)), nil
	}
	return s.handleGetStatus(ctx, request)
}
