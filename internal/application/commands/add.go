package commands

import (
	"context"
	"fmt"

	"braindump/internal/application"
	"braindump/internal/domain"
)

// AddResult contains the result of capturing an idea
type AddResult struct {
	Idea    domain.Idea
	Message string
}

// AddCommand captures a new idea in the active room
type AddCommand struct {
	store    *application.Store
	Text     string
	Category string
}

// NewAddCommand creates a new AddCommand
func NewAddCommand(store *application.Store, text, category string) *AddCommand {
	return &AddCommand{
		store:    store,
		Text:     text,
		Category: category,
	}
}

// Validate checks if the add operation is valid
func (c *AddCommand) Validate() error {
	if err := application.ValidateRequired("text", c.Text); err != nil {
		return err
	}
	_, err := application.ValidateCategory(c.Category)
	return err
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context) (*AddResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	category, _ := application.ValidateCategory(c.Category)

	idea, ok := c.store.AddIdea(c.Text, category)
	if !ok {
		return nil, &application.ValidationError{Field: "roomID", Message: "no active room to add to", Err: application.ErrInvalidRoom}
	}

	return &AddResult{
		Idea:    idea,
		Message: fmt.Sprintf("Added %s %d: %s", idea.Category, idea.ID, idea.Text),
	}, nil
}
