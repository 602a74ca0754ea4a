// Package main implements the MCP server for the task lists.
//
// The server exposes tools to list pages, list tasks, add a validated task
// and delete a task by index. Communicates via stdio JSON-RPC (Model Context
// Protocol).
//
// Environment variables:
//   - TASKLIST_DIR: Optional. Base directory for local storage and the default
//     layout file (default: current directory).
//   - TASKLIST_LAYOUT, TASKLIST_STORAGE_BACKEND and the backend variables, as
//     for the tasklist command.
package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/server"

	"github.com/JamesPrial/tasklist/internal/mcpserver"
	"github.com/JamesPrial/tasklist/internal/tasklist"
)

func run() int {
	errLogger := log.New(os.Stderr, "[mcp-server] ", log.LstdFlags)

	dir := strings.TrimSpace(os.Getenv("TASKLIST_DIR"))
	if dir == "" {
		dir = "."
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		errLogger.Printf("Invalid TASKLIST_DIR: %v", err)
		return 1
	}

	board, err := tasklist.OpenBoard(dir, "", tasklist.WithLogger(errLogger, tasklist.DebugEnabled()))
	if err != nil {
		errLogger.Printf("Failed to open task lists: %v", err)
		return 1
	}
	defer board.Close()

	srv, err := mcpserver.NewServer(board)
	if err != nil {
		errLogger.Printf("Failed to create MCP server: %v", err)
		return 1
	}

	if err := server.ServeStdio(srv, server.WithErrorLogger(errLogger)); err != nil {
		errLogger.Printf("Server error: %v", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}
