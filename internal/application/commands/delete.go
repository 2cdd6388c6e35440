package commands

import (
	"context"
	"fmt"

	"braindump/internal/application"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID int64
	Removed   bool
	Message   string
}

// DeleteCommand deletes an idea by ID. Deleting an unknown ID succeeds
// without changing anything.
type DeleteCommand struct {
	store *application.Store
	ID    int64
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(store *application.Store, id int64) *DeleteCommand {
	return &DeleteCommand{
		store: store,
		ID:    id,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	return application.ValidateIdeaID(c.ID)
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	removed := c.store.DeleteIdea(c.ID)

	msg := fmt.Sprintf("Deleted %d", c.ID)
	if !removed {
		msg = fmt.Sprintf("Nothing to delete: %d is not in room %s", c.ID, c.store.Room())
	}

	return &DeleteResult{
		DeletedID: c.ID,
		Removed:   removed,
		Message:   msg,
	}, nil
}
