package commands

import (
	"context"
	"fmt"

	"braindump/internal/application"
	"braindump/internal/domain"
)

// EditResult contains the idea after an edit
type EditResult struct {
	Idea    domain.Idea
	Message string
}

// EditCommand rewrites the text and optionally the category of an idea.
// An empty Category keeps the current one.
type EditCommand struct {
	store    *application.Store
	ID       int64
	Text     string
	Category string
}

// NewEditCommand creates a new EditCommand
func NewEditCommand(store *application.Store, id int64, text, category string) *EditCommand {
	return &EditCommand{
		store:    store,
		ID:       id,
		Text:     text,
		Category: category,
	}
}

// Validate checks if the edit operation is valid
func (c *EditCommand) Validate() error {
	if err := application.ValidateIdeaID(c.ID); err != nil {
		return err
	}
	if err := application.ValidateRequired("text", c.Text); err != nil {
		return err
	}
	if c.Category != "" {
		if _, err := application.ValidateCategory(c.Category); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context) (*EditResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var category domain.Category
	if c.Category != "" {
		category, _ = application.ValidateCategory(c.Category)
	}

	idea, ok := c.store.UpdateIdea(c.ID, c.Text, category)
	if !ok {
		return nil, &application.IdeaNotFoundError{RoomID: c.store.Room(), ID: c.ID}
	}

	return &EditResult{
		Idea:    idea,
		Message: fmt.Sprintf("Updated %s %d: %s", idea.Category, idea.ID, idea.Text),
	}, nil
}
