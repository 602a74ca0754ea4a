package mcpserver

import (
	"errors"

	"github.com/mark3labs/mcp-go/server"

	"github.com/JamesPrial/tasklist/internal/tasklist"
)

// NewServer creates and configures an MCP server with every task tool
// registered against board.
func NewServer(board *tasklist.Board) (*server.MCPServer, error) {
	if board == nil {
		return nil, errors.New("mcpserver: missing board")
	}
	h := NewHandlers(board)

	s := server.NewMCPServer(
		"tasklist",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.AddTool(listPagesTool(), h.HandleListPages)
	s.AddTool(listTasksTool(), h.HandleListTasks)
	s.AddTool(addTaskTool(), h.HandleAddTask)
	s.AddTool(deleteTaskTool(), h.HandleDeleteTask)

	return s, nil
}
