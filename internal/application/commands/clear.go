package commands

import (
	"context"
	"fmt"

	"braindump/internal/application"
)

// ClearResult contains the outcome of clearing a room
type ClearResult struct {
	RoomID  string
	Deleted int
	Message string
}

// ClearCommand removes every idea and star of the active room
type ClearCommand struct {
	store *application.Store
}

// NewClearCommand creates a new ClearCommand
func NewClearCommand(store *application.Store) *ClearCommand {
	return &ClearCommand{store: store}
}

// Execute runs the clear command
func (c *ClearCommand) Execute(ctx context.Context) (*ClearResult, error) {
	room := c.store.Room()
	if room == "" {
		return nil, &application.ValidationError{Field: "roomID", Message: "no active room", Err: application.ErrInvalidRoom}
	}

	n := c.store.Clear()
	return &ClearResult{
		RoomID:  room,
		Deleted: n,
		Message: fmt.Sprintf("Cleared %d ideas from room %s", n, room),
	}, nil
}
