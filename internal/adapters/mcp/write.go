package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"braindump/internal/application/commands"
)

// RegisterWriteTools adds all idea mutation tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, rooms *Rooms) {
	s.AddTool(addTool(), addHandler(rooms))
	s.AddTool(deleteTool(), deleteHandler(rooms))
	s.AddTool(starTool(), starHandler(rooms))
	s.AddTool(editTool(), editHandler(rooms))
}

func withID(desc string) mcp.ToolOption {
	return mcp.WithNumber("id",
		mcp.Description(desc),
		mcp.Required(),
	)
}

// --- add_idea ---

func addTool() mcp.Tool {
	return mcp.NewTool("add_idea",
		mcp.WithDescription("Capture a new idea at the top of a room."),
		withRoom(),
		mcp.WithString("text",
			mcp.Description("The idea itself"),
			mcp.Required(),
		),
		mcp.WithString("category",
			mcp.Description("idea, todo, insight or question (default idea)"),
			mcp.Enum("idea", "todo", "insight", "question"),
		),
	)
}

func addHandler(rooms *Rooms) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, err := rooms.Open(req.GetString("room", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewAddCommand(store, req.GetString("text", ""), req.GetString("category", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_idea ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete_idea",
		mcp.WithDescription("Delete an idea and drop its star. Deleting an unknown ID is a no-op."),
		withRoom(),
		withID("ID of the idea to delete"),
	)
}

func deleteHandler(rooms *Rooms) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, err := rooms.Open(req.GetString("room", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewDeleteCommand(store, ideaID(req)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- toggle_star ---

func starTool() mcp.Tool {
	return mcp.NewTool("toggle_star",
		mcp.WithDescription("Star an idea, or unstar it if it is already starred."),
		withRoom(),
		withID("ID of the idea to star or unstar"),
	)
}

func starHandler(rooms *Rooms) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, err := rooms.Open(req.GetString("room", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewStarCommand(store, ideaID(req)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- edit_idea ---

func editTool() mcp.Tool {
	return mcp.NewTool("edit_idea",
		mcp.WithDescription("Rewrite the text of an idea and optionally change its category. ID and creation time are kept."),
		withRoom(),
		withID("ID of the idea to edit"),
		mcp.WithString("text",
			mcp.Description("New text"),
			mcp.Required(),
		),
		mcp.WithString("category",
			mcp.Description("New category. Omit to keep the current one."),
			mcp.Enum("idea", "todo", "insight", "question"),
		),
	)
}

func editHandler(rooms *Rooms) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, err := rooms.Open(req.GetString("room", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewEditCommand(store, ideaID(req), req.GetString("text", ""), req.GetString("category", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// ideaID reads the id argument. IDs are millisecond timestamps, well inside
// the range a JSON number holds exactly.
func ideaID(req mcp.CallToolRequest) int64 {
	return int64(req.GetFloat("id", 0))
}
