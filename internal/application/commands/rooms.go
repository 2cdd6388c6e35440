package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"braindump/internal/ports"
)

// NewRoomID returns a fresh random room identifier
func NewRoomID() string {
	return uuid.NewString()
}

// ListRoomsCommand lists rooms that hold persisted ideas or stars
type ListRoomsCommand struct {
	persistence ports.IdeaPersistence
}

// NewListRoomsCommand creates a new ListRoomsCommand
func NewListRoomsCommand(persistence ports.IdeaPersistence) *ListRoomsCommand {
	return &ListRoomsCommand{persistence: persistence}
}

// Execute runs the list rooms command
func (c *ListRoomsCommand) Execute(ctx context.Context) ([]string, error) {
	rooms, err := c.persistence.Rooms()
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}
