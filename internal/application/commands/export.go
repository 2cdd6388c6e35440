package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"braindump/internal/application"
	"braindump/internal/domain"
)

// Supported export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Snapshot is the exported view of a room
type Snapshot struct {
	Room       string         `json:"room" yaml:"room" toml:"room"`
	ExportedAt time.Time      `json:"exportedAt" yaml:"exported_at" toml:"exported_at"`
	Stats      domain.Stats   `json:"stats" yaml:"stats" toml:"stats"`
	Ideas      []SnapshotIdea `json:"ideas" yaml:"ideas" toml:"ideas"`
}

// SnapshotIdea is an idea with its star flattened in
type SnapshotIdea struct {
	ID        int64           `json:"id" yaml:"id" toml:"id"`
	Text      string          `json:"text" yaml:"text" toml:"text"`
	Category  domain.Category `json:"category" yaml:"category" toml:"category"`
	Starred   bool            `json:"starred" yaml:"starred" toml:"starred"`
	CreatedAt time.Time       `json:"createdAt" yaml:"created_at" toml:"created_at"`
}

// ExportResult contains the encoded snapshot
type ExportResult struct {
	Format   string
	Snapshot Snapshot
	Data     []byte
}

// ExportCommand renders the active room as JSON, YAML or TOML
type ExportCommand struct {
	store  *application.Store
	Format string
	Now    func() time.Time
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(store *application.Store, format string) *ExportCommand {
	return &ExportCommand{
		store:  store,
		Format: format,
		Now:    time.Now,
	}
}

// Validate checks if the format is supported
func (c *ExportCommand) Validate() error {
	switch c.format() {
	case FormatJSON, FormatYAML, FormatTOML:
		return nil
	default:
		return &application.ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format %q (expected json, yaml or toml)", c.Format),
			Err:     application.ErrInvalidFormat,
		}
	}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	snap := c.snapshot()

	var (
		data []byte
		err  error
	)
	switch c.format() {
	case FormatJSON:
		data, err = json.MarshalIndent(snap, "", "  ")
		data = append(data, '\n')
	case FormatYAML:
		data, err = yaml.Marshal(snap)
	case FormatTOML:
		data, err = toml.Marshal(snap)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", c.format(), err)
	}

	return &ExportResult{
		Format:   c.format(),
		Snapshot: snap,
		Data:     data,
	}, nil
}

func (c *ExportCommand) format() string {
	f := strings.ToLower(strings.TrimSpace(c.Format))
	if f == "" {
		return FormatJSON
	}
	return f
}

func (c *ExportCommand) snapshot() Snapshot {
	room := c.store.Snapshot()

	snap := Snapshot{
		Room:       room.RoomID,
		ExportedAt: c.Now().UTC().Truncate(time.Second),
		Stats:      room.Stats,
		Ideas:      make([]SnapshotIdea, 0, len(room.Ideas)),
	}
	for _, idea := range room.Ideas {
		snap.Ideas = append(snap.Ideas, SnapshotIdea{
			ID:        idea.ID,
			Text:      idea.Text,
			Category:  idea.Category,
			Starred:   room.Starred.Has(idea.ID),
			CreatedAt: idea.CreatedAt,
		})
	}
	return snap
}
