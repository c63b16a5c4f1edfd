package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/robinmackenzie/uk-election-map/internal/app"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that answers questions about the loaded
// election results.
type Server struct {
	state *app.State
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server over loaded state.
func NewServer(state *app.State) *Server {
	s := &Server{state: state}

	s.mcp = server.NewMCPServer(
		"electionmap",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listYearsTool, s.handleListYears)
	s.mcp.AddTool(getConstituencyTool, s.handleGetConstituency)
	s.mcp.AddTool(seatSummaryTool, s.handleSeatSummary)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
