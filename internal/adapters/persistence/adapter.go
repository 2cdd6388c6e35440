package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"braindump/internal/domain"
	"braindump/internal/ports"
)

// Key prefixes. The room ID follows the prefix verbatim.
const (
	IdeasPrefix   = "ideas:"
	StarredPrefix = "ideas-starred:"
)

// IdeasKey returns the storage key of a room's idea list
func IdeasKey(roomID string) string {
	return IdeasPrefix + roomID
}

// StarredKey returns the storage key of a room's starred set
func StarredKey(roomID string) string {
	return StarredPrefix + roomID
}

// RoomFromKey extracts the room ID from an ideas or starred key
func RoomFromKey(key string) (string, bool) {
	// StarredPrefix does not start with IdeasPrefix ("ideas-" vs "ideas:")
	if room, ok := strings.CutPrefix(key, StarredPrefix); ok {
		return room, room != ""
	}
	if room, ok := strings.CutPrefix(key, IdeasPrefix); ok {
		return room, room != ""
	}
	return "", false
}

// Adapter implements ports.IdeaPersistence as JSON values in a key-value store
type Adapter struct {
	kv  ports.KeyValueStore
	log *slog.Logger
}

// Ensure Adapter implements IdeaPersistence
var _ ports.IdeaPersistence = (*Adapter)(nil)

// NewAdapter creates an adapter over kv
func NewAdapter(log *slog.Logger, kv ports.KeyValueStore) *Adapter {
	return &Adapter{
		kv:  kv,
		log: log.With("component", "idea_persistence"),
	}
}

// LoadIdeas returns the stored list for a room. Absent, unreadable or
// malformed values read as an empty list; invalid records are dropped.
func (a *Adapter) LoadIdeas(roomID string) []domain.Idea {
	data, ok := a.read(IdeasKey(roomID))
	if !ok {
		return []domain.Idea{}
	}

	var stored []domain.Idea
	if err := json.Unmarshal(data, &stored); err != nil {
		a.log.Warn("ignoring malformed idea list",
			slog.String("room_id", roomID),
			slog.String("error", err.Error()),
		)
		return []domain.Idea{}
	}

	ideas := make([]domain.Idea, 0, len(stored))
	seen := make(map[int64]struct{}, len(stored))
	for _, idea := range stored {
		if _, dup := seen[idea.ID]; dup || !idea.Valid() {
			a.log.Warn("dropping invalid idea record",
				slog.String("room_id", roomID),
				slog.Int64("idea_id", idea.ID),
			)
			continue
		}
		seen[idea.ID] = struct{}{}
		ideas = append(ideas, idea)
	}
	return ideas
}

// SaveIdeas overwrites the stored list. An empty list removes the entry.
func (a *Adapter) SaveIdeas(roomID string, ideas []domain.Idea) error {
	key := IdeasKey(roomID)
	if len(ideas) == 0 {
		if err := a.kv.Delete(key); err != nil {
			return fmt.Errorf("failed to clear ideas for room %s: %w", roomID, err)
		}
		return nil
	}

	data, err := json.Marshal(ideas)
	if err != nil {
		return fmt.Errorf("failed to encode ideas: %w", err)
	}
	if err := a.kv.Set(key, data); err != nil {
		return fmt.Errorf("failed to save ideas for room %s: %w", roomID, err)
	}
	return nil
}

// LoadStarred returns the stored starred set for a room, or an empty set
func (a *Adapter) LoadStarred(roomID string) domain.StarredSet {
	data, ok := a.read(StarredKey(roomID))
	if !ok {
		return domain.StarredSet{}
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		a.log.Warn("ignoring malformed starred set",
			slog.String("room_id", roomID),
			slog.String("error", err.Error()),
		)
		return domain.StarredSet{}
	}
	return domain.NewStarredSet(ids...)
}

// SaveStarred overwrites the stored set as a sorted id array. An empty set
// removes the entry.
func (a *Adapter) SaveStarred(roomID string, starred domain.StarredSet) error {
	key := StarredKey(roomID)
	if starred.Len() == 0 {
		if err := a.kv.Delete(key); err != nil {
			return fmt.Errorf("failed to clear starred set for room %s: %w", roomID, err)
		}
		return nil
	}

	data, err := json.Marshal(starred.IDs())
	if err != nil {
		return fmt.Errorf("failed to encode starred set: %w", err)
	}
	if err := a.kv.Set(key, data); err != nil {
		return fmt.Errorf("failed to save starred set for room %s: %w", roomID, err)
	}
	return nil
}

// Rooms lists the rooms with a stored list or starred set, sorted
func (a *Adapter) Rooms() ([]string, error) {
	var rooms []string
	for _, prefix := range []string{IdeasPrefix, StarredPrefix} {
		keys, err := a.kv.Keys(prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to list keys: %w", err)
		}
		for _, key := range keys {
			if room, ok := RoomFromKey(key); ok {
				rooms = append(rooms, room)
			}
		}
	}
	slices.Sort(rooms)
	return slices.Compact(rooms), nil
}

func (a *Adapter) read(key string) ([]byte, bool) {
	data, ok, err := a.kv.Get(key)
	if err != nil {
		a.log.Warn("failed to read key, treating as absent",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	return data, ok
}
