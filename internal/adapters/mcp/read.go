package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"braindump/internal/application/commands"
	"braindump/internal/domain"
)

// RegisterReadTools adds all read-only idea tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, rooms *Rooms) {
	s.AddTool(listIdeasTool(), listIdeasHandler(rooms))
	s.AddTool(statsTool(), statsHandler(rooms))
	s.AddTool(listRoomsTool(), listRoomsHandler(rooms))
	s.AddTool(exportTool(), exportHandler(rooms))
}

func withRoom() mcp.ToolOption {
	return mcp.WithString("room",
		mcp.Description("Room ID. Omit to use the configured default room."),
	)
}

// --- list_ideas ---

func listIdeasTool() mcp.Tool {
	return mcp.NewTool("list_ideas",
		mcp.WithDescription("List the ideas of a room, newest first. Optionally narrow by filter and a case-insensitive text search."),
		withRoom(),
		mcp.WithString("filter",
			mcp.Description("all, starred, idea, todo, insight or question (default all)"),
			mcp.Enum("all", "starred", "idea", "todo", "insight", "question"),
		),
		mcp.WithString("search",
			mcp.Description("Substring to look for in the idea text"),
		),
	)
}

func listIdeasHandler(rooms *Rooms) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, err := rooms.Open(req.GetString("room", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewListCommand(store, req.GetString("filter", ""), req.GetString("search", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(result.Entries) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No ideas in room %s.", result.RoomID)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%d of %d ideas in room %s\n", len(result.Entries), result.Stats.Total, result.RoomID)
		for _, e := range result.Entries {
			sb.WriteString(formatEntry(e))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- idea_stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("idea_stats",
		mcp.WithDescription("Count the ideas of a room: total, starred and per category."),
		withRoom(),
	)
}

func statsHandler(rooms *Rooms) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, err := rooms.Open(req.GetString("room", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewStatsCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatStats(result.RoomID, result.Stats)), nil
	}
}

// --- list_rooms ---

func listRoomsTool() mcp.Tool {
	return mcp.NewTool("list_rooms",
		mcp.WithDescription("List rooms that have stored ideas or stars."),
	)
}

func listRoomsHandler(rooms *Rooms) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := commands.NewListRoomsCommand(rooms.Persistence()).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(ids) == 0 {
			return mcp.NewToolResultText("No rooms."), nil
		}
		return mcp.NewToolResultText(strings.Join(ids, "\n")), nil
	}
}

// --- export_room ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export_room",
		mcp.WithDescription("Export a room with its stats and starred flags."),
		withRoom(),
		mcp.WithString("format",
			mcp.Description("json, yaml or toml (default json)"),
			mcp.Enum(commands.FormatJSON, commands.FormatYAML, commands.FormatTOML),
		),
	)
}

func exportHandler(rooms *Rooms) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, err := rooms.Open(req.GetString("room", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewExportCommand(store, req.GetString("format", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(result.Data)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntry(e commands.Entry) string {
	star := " "
	if e.Starred {
		star = "*"
	}
	return fmt.Sprintf("%s %d  [%s]  %s  (%s)", star, e.ID, e.Category, e.Text, e.CreatedAt.UTC().Format("2006-01-02 15:04"))
}

func formatStats(roomID string, s domain.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "room: %s\n", roomID)
	fmt.Fprintf(&sb, "total: %d\n", s.Total)
	fmt.Fprintf(&sb, "starred: %d\n", s.Starred)
	for _, c := range domain.Categories {
		fmt.Fprintf(&sb, "%s: %d\n", c, s.ForCategory(c))
	}
	return sb.String()
}
