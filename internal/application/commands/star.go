package commands

import (
	"context"
	"fmt"

	"braindump/internal/application"
)

// StarResult contains the star state after a toggle
type StarResult struct {
	ID      int64
	Starred bool
	Message string
}

// StarCommand toggles the star of an idea
type StarCommand struct {
	store *application.Store
	ID    int64
}

// NewStarCommand creates a new StarCommand
func NewStarCommand(store *application.Store, id int64) *StarCommand {
	return &StarCommand{
		store: store,
		ID:    id,
	}
}

// Validate checks if the star operation is valid
func (c *StarCommand) Validate() error {
	return application.ValidateIdeaID(c.ID)
}

// Execute runs the star command
func (c *StarCommand) Execute(ctx context.Context) (*StarResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	starred, found := c.store.ToggleStar(c.ID)
	if !found {
		return nil, &application.IdeaNotFoundError{RoomID: c.store.Room(), ID: c.ID}
	}

	verb := "Unstarred"
	if starred {
		verb = "Starred"
	}
	return &StarResult{
		ID:      c.ID,
		Starred: starred,
		Message: fmt.Sprintf("%s %d", verb, c.ID),
	}, nil
}
