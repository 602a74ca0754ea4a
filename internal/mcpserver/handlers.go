package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/JamesPrial/tasklist/internal/form"
	"github.com/JamesPrial/tasklist/internal/tasklist"
)

// Handlers implements the task tools over one board.
type Handlers struct {
	board *tasklist.Board
}

// NewHandlers creates tool handlers that operate on board.
func NewHandlers(board *tasklist.Board) *Handlers {
	return &Handlers{board: board}
}

// HandleListPages lists the layout's pages.
func (h *Handlers) HandleListPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := tasklist.WritePages(&buf, h.board.Pages()); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list pages: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// HandleListTasks lists a page's tasks with their indices.
// Parameters:
//   - page (string, optional): page slug
func (h *Handlers) HandleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errResult := h.controller(request)
	if errResult != nil {
		return errResult, nil
	}

	tasks, err := c.Tasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list tasks: %v", err)), nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Page %s (%d tasks)\n", c.Page().Slug, len(tasks))
	if err := tasklist.WriteTable(&buf, c.Page(), tasklist.RowsOf(tasks)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list tasks: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// HandleAddTask validates and stores one task.
// Parameters:
//   - page (string, optional): page slug
//   - name1, name2, date (string, required): submitted field values
//
// A rejected submission is an error result carrying the field and message.
func (h *Handlers) HandleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errResult := h.controller(request)
	if errResult != nil {
		return errResult, nil
	}

	values := url.Values{}
	for _, key := range []string{form.FieldName1, form.FieldName2, form.FieldDate} {
		if v := request.GetString(key, ""); v != "" {
			values.Set(key, v)
		}
	}

	out, err := c.Submit(ctx, values)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add task: %v", err)), nil
	}
	if !out.Accepted {
		return mcp.NewToolResultError(fmt.Sprintf("Task rejected: %v", out.Error)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n%s | %s | %s",
		out.Notice, out.Task.Name1, out.Task.Name2, out.Task.Date)), nil
}

// HandleDeleteTask deletes the task at an index.
// Parameters:
//   - page (string, optional): page slug
//   - index (number, required): zero-based index
func (h *Handlers) HandleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errResult := h.controller(request)
	if errResult != nil {
		return errResult, nil
	}

	index, ok := indexArg(request.GetArguments()["index"])
	if !ok {
		return mcp.NewToolResultError("Missing or invalid parameter: index"), nil
	}

	deleted, err := c.Delete(ctx, index)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete task: %v", err)), nil
	}
	if !deleted {
		return mcp.NewToolResultError(fmt.Sprintf("No task at index %d", index)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted task %d from %s", index, c.Page().Slug)), nil
}

func (h *Handlers) controller(request mcp.CallToolRequest) (*tasklist.Controller, *mcp.CallToolResult) {
	slug := strings.TrimSpace(request.GetString("page", ""))
	c, err := h.board.Controller(slug)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	return c, nil
}

// indexArg accepts a JSON number with no fractional part or a numeric string.
func indexArg(v any) (int, bool) {
	switch v := v.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}
