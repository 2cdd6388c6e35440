package mcp

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"braindump/internal/adapters/memory"
	"braindump/internal/adapters/persistence"
	"braindump/internal/domain"
)

func newTestRooms(t *testing.T) *Rooms {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRooms(log, persistence.NewAdapter(log, memory.NewKV()), "default")
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	result, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text, result.IsError
}

func TestTools_AddListStarDelete(t *testing.T) {
	rooms := newTestRooms(t)

	out, isErr := call(t, addHandler(rooms), map[string]any{"room": "standup", "text": "Ship v2", "category": "todo"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Ship v2")

	store, err := rooms.Open("standup")
	require.NoError(t, err)
	require.Len(t, store.Ideas(), 1)
	id := store.Ideas()[0].ID

	out, isErr = call(t, starHandler(rooms), map[string]any{"room": "standup", "id": float64(id)})
	require.False(t, isErr, out)
	assert.True(t, strings.HasPrefix(out, "Starred"), out)

	out, isErr = call(t, listIdeasHandler(rooms), map[string]any{"room": "standup", "filter": "starred"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "* "+strconv.FormatInt(id, 10))
	assert.Contains(t, out, "[todo]")

	out, isErr = call(t, statsHandler(rooms), map[string]any{"room": "standup"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "total: 1")
	assert.Contains(t, out, "starred: 1")
	assert.Contains(t, out, "todo: 1")

	out, isErr = call(t, deleteHandler(rooms), map[string]any{"room": "standup", "id": float64(id)})
	require.False(t, isErr, out)

	out, _ = call(t, listIdeasHandler(rooms), map[string]any{"room": "standup"})
	assert.Equal(t, "No ideas in room standup.", out)
}

func TestTools_DefaultRoom(t *testing.T) {
	rooms := newTestRooms(t)

	_, isErr := call(t, addHandler(rooms), map[string]any{"text": "no room given"})
	require.False(t, isErr)

	store, err := rooms.Open("default")
	require.NoError(t, err)
	assert.Len(t, store.Ideas(), 1)

	out, _ := call(t, listRoomsHandler(rooms), map[string]any{})
	assert.Equal(t, "default", out)
}

func TestTools_Errors(t *testing.T) {
	rooms := newTestRooms(t)

	tests := []struct {
		name    string
		handler server.ToolHandlerFunc
		args    map[string]any
		want    string
	}{
		{"blank text", addHandler(rooms), map[string]any{"text": "  "}, "required"},
		{"bad category", addHandler(rooms), map[string]any{"text": "x", "category": "chore"}, "invalid category"},
		{"bad filter", listIdeasHandler(rooms), map[string]any{"filter": "archived"}, "invalid filter"},
		{"star unknown", starHandler(rooms), map[string]any{"id": float64(99)}, "not found"},
		{"edit unknown", editHandler(rooms), map[string]any{"id": float64(99), "text": "x"}, "not found"},
		{"bad format", exportHandler(rooms), map[string]any{"format": "csv"}, "unsupported format"},
		{"blank room", listIdeasHandler(rooms), map[string]any{"room": "   "}, "room"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, isErr := call(t, tt.handler, tt.args)
			assert.True(t, isErr, "expected tool error, got %q", out)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestTools_Edit(t *testing.T) {
	rooms := newTestRooms(t)
	store, err := rooms.Open("retro")
	require.NoError(t, err)
	idea, ok := store.AddIdea("draft", domain.CategoryIdea)
	require.True(t, ok)

	out, isErr := call(t, editHandler(rooms), map[string]any{"room": "retro", "id": float64(idea.ID), "text": "final", "category": "insight"})
	require.False(t, isErr, out)

	got, _ := store.Idea(idea.ID)
	assert.Equal(t, "final", got.Text)
	assert.Equal(t, domain.CategoryInsight, got.Category)
	assert.Equal(t, idea.CreatedAt, got.CreatedAt)
}

func TestTools_Export(t *testing.T) {
	rooms := newTestRooms(t)
	_, isErr := call(t, addHandler(rooms), map[string]any{"room": "retro", "text": "Ship v2"})
	require.False(t, isErr)

	out, isErr := call(t, exportHandler(rooms), map[string]any{"room": "retro", "format": "yaml"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "room: retro")
	assert.Contains(t, out, "text: Ship v2")
}

func TestRooms_SeesExternalWrites(t *testing.T) {
	rooms := newTestRooms(t)
	store, err := rooms.Open("shared")
	require.NoError(t, err)
	require.Empty(t, store.Ideas())

	// Another process writes through the same persistence
	ideas := []domain.Idea{{ID: 5, Text: "from the TUI", Category: domain.CategoryIdea}}
	require.NoError(t, rooms.Persistence().SaveIdeas("shared", ideas))

	store, err = rooms.Open("shared")
	require.NoError(t, err)
	assert.Len(t, store.Ideas(), 1)
}
