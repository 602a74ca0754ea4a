// Package mcpserver exposes the task lists as MCP tools.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// listPagesTool returns a tool definition for listing the layout's pages.
func listPagesTool() mcp.Tool {
	return mcp.NewTool("list_pages",
		mcp.WithDescription("List the task pages: slug, title, storage key and field kinds."),
	)
}

// listTasksTool returns a tool definition for listing a page's tasks.
func listTasksTool() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List the tasks of a page with their current indices."),
		mcp.WithString("page",
			mcp.Description("Page slug (defaults to the first page)")),
	)
}

// addTaskTool returns a tool definition for submitting a task.
func addTaskTool() mcp.Tool {
	return mcp.NewTool("add_task",
		mcp.WithDescription("Add a task to a page. The task is validated like a form submission: every field is required, the date must be today or later and duplicates are rejected."),
		mcp.WithString("page",
			mcp.Description("Page slug (defaults to the first page)")),
		mcp.WithString("name1",
			mcp.Required(),
			mcp.Description("First field. For select or radio fields, the option value")),
		mcp.WithString("name2",
			mcp.Required(),
			mcp.Description("Second field. For a checkbox, any non-empty value checks it")),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date as YYYY-MM-DD")),
	)
}

// deleteTaskTool returns a tool definition for deleting a task by index.
func deleteTaskTool() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete the task at an index as reported by list_tasks. Indices shift after every change."),
		mcp.WithString("page",
			mcp.Description("Page slug (defaults to the first page)")),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Zero-based task index")),
	)
}
