package commands

import (
	"context"

	"braindump/internal/application"
	"braindump/internal/domain"
)

// Entry is a visible idea together with its star
type Entry struct {
	domain.Idea
	Starred bool
}

// ListResult contains the visible ideas and the room-wide stats
type ListResult struct {
	RoomID  string
	Filter  domain.Filter
	Search  string
	Entries []Entry
	Stats   domain.Stats
}

// ListCommand lists the ideas of the active room through a filter and search
type ListCommand struct {
	store  *application.Store
	Filter string
	Search string
}

// NewListCommand creates a new ListCommand
func NewListCommand(store *application.Store, filter, search string) *ListCommand {
	return &ListCommand{
		store:  store,
		Filter: filter,
		Search: search,
	}
}

// Validate checks if the filter selector is valid
func (c *ListCommand) Validate() error {
	_, err := application.ValidateFilter(c.Filter)
	return err
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (*ListResult, error) {
	filter, err := application.ValidateFilter(c.Filter)
	if err != nil {
		return nil, err
	}

	ideas := c.store.Query(filter, c.Search)
	starred := c.store.Starred()

	entries := make([]Entry, 0, len(ideas))
	for _, idea := range ideas {
		entries = append(entries, Entry{Idea: idea, Starred: starred.Has(idea.ID)})
	}

	return &ListResult{
		RoomID:  c.store.Room(),
		Filter:  filter,
		Search:  c.Search,
		Entries: entries,
		Stats:   c.store.Stats(),
	}, nil
}

// StatsResult contains the counts of a room
type StatsResult struct {
	RoomID string
	Stats  domain.Stats
}

// StatsCommand reports room-wide counts
type StatsCommand struct {
	store *application.Store
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(store *application.Store) *StatsCommand {
	return &StatsCommand{store: store}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context) (*StatsResult, error) {
	return &StatsResult{
		RoomID: c.store.Room(),
		Stats:  c.store.Stats(),
	}, nil
}
