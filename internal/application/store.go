package application

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"braindump/internal/domain"
	"braindump/internal/ports"
)

// Store owns the idea list and starred set of the active room. Every
// mutation goes through it and is written through to persistence before the
// call returns. Persistence failures are logged, never returned: the
// in-memory state stays authoritative for the session.
type Store struct {
	mu          sync.Mutex
	persistence ports.IdeaPersistence
	log         *slog.Logger
	now         func() time.Time

	roomID  string
	ideas   []domain.Idea // newest first
	starred domain.StarredSet
	lastID  int64

	stats      domain.Stats
	statsValid bool

	// set while the last write of that kind failed
	ideasUnsaved   bool
	starredUnsaved bool
}

// Snapshot is a consistent copy of a room taken under a single lock
type Snapshot struct {
	RoomID  string
	Ideas   []domain.Idea
	Starred domain.StarredSet
	Stats   domain.Stats
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithClock overrides the time source used for ids and timestamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store with no active room. Call Initialize before use.
func NewStore(log *slog.Logger, persistence ports.IdeaPersistence, opts ...StoreOption) *Store {
	s := &Store{
		persistence: persistence,
		log:         log.With("component", "idea_store"),
		now:         time.Now,
		starred:     domain.StarredSet{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize discards the state of the previous room and loads roomID
func (s *Store) Initialize(roomID string) error {
	roomID, err := domain.NormalizeRoomID(roomID)
	if err != nil {
		return &ValidationError{Field: "roomID", Message: "room ID is required", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.roomID = ""
	s.ideas = nil
	s.starred = domain.StarredSet{}
	s.lastID = 0
	s.statsValid = false
	s.ideasUnsaved = false
	s.starredUnsaved = false

	ideas := s.persistence.LoadIdeas(roomID)
	starred := s.persistence.LoadStarred(roomID)
	if starred == nil {
		starred = domain.StarredSet{}
	}
	starred.Prune(ideas)

	s.roomID = roomID
	s.ideas = ideas
	s.starred = starred
	for _, idea := range ideas {
		s.lastID = max(s.lastID, idea.ID)
	}

	s.log.Debug("room loaded",
		slog.String("room_id", roomID),
		slog.Int("ideas", len(ideas)),
		slog.Int("starred", starred.Len()),
	)
	return nil
}

// Reload re-reads the active room from persistence. Writes that failed
// earlier are retried first; if they still fail the in-memory state is kept
// and nothing is re-read.
func (s *Store) Reload() error {
	s.mu.Lock()
	room := s.roomID
	if s.ideasUnsaved {
		s.saveIdeas()
	}
	if s.starredUnsaved {
		s.saveStarred()
	}
	pending := s.ideasUnsaved || s.starredUnsaved
	s.mu.Unlock()

	if pending {
		s.log.Warn("reload skipped: room has unsaved changes", slog.String("room_id", room))
		return nil
	}
	return s.Initialize(room)
}

// Unsaved reports whether the last write of the ideas or the starred set failed
func (s *Store) Unsaved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ideasUnsaved || s.starredUnsaved
}

// Room returns the active room ID, or "" before Initialize
func (s *Store) Room() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

// AddIdea prepends a new idea. Blank text is rejected silently: ok is false
// and nothing changes. An empty category defaults to idea.
func (s *Store) AddIdea(text string, category domain.Category) (domain.Idea, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Idea{}, false
	}
	if category == "" {
		category = domain.CategoryIdea
	}
	if !category.Valid() {
		return domain.Idea{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roomID == "" {
		s.log.Warn("add ignored: no active room")
		return domain.Idea{}, false
	}

	now := s.now().UTC()
	idea := domain.Idea{
		ID:        domain.NextIdeaID(now, s.lastID),
		Text:      text,
		Category:  category,
		CreatedAt: now,
	}
	s.lastID = idea.ID

	s.ideas = slices.Insert(s.ideas, 0, idea)
	s.statsValid = false
	s.saveIdeas()

	s.log.Debug("idea added",
		slog.String("room_id", s.roomID),
		slog.Int64("idea_id", idea.ID),
		slog.String("category", idea.Category.String()),
	)
	return idea, true
}

// DeleteIdea removes the idea and its star. Deleting an unknown id is a
// no-op and reports false.
func (s *Store) DeleteIdea(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := domain.IndexOf(s.ideas, id)
	if idx < 0 {
		return false
	}

	s.ideas = slices.Delete(s.ideas, idx, idx+1)
	wasStarred := s.starred.Has(id)
	s.starred.Remove(id)
	s.statsValid = false

	s.saveIdeas()
	if wasStarred {
		s.saveStarred()
	}

	s.log.Debug("idea deleted",
		slog.String("room_id", s.roomID),
		slog.Int64("idea_id", id),
	)
	return true
}

// ToggleStar flips the star of an idea and returns the new state. found is
// false, and nothing changes, when the id is not in the room.
func (s *Store) ToggleStar(id int64) (starred bool, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.IndexOf(s.ideas, id) < 0 {
		return false, false
	}

	if s.starred.Has(id) {
		s.starred.Remove(id)
	} else {
		s.starred.Add(id)
		starred = true
	}
	s.statsValid = false
	s.saveStarred()

	s.log.Debug("star toggled",
		slog.String("room_id", s.roomID),
		slog.Int64("idea_id", id),
		slog.Bool("starred", starred),
	)
	return starred, true
}

// UpdateIdea rewrites the text and category of an idea in place. Its id,
// position and creation time are kept. An empty category keeps the current
// one. ok is false when the id is unknown or the new text is blank.
func (s *Store) UpdateIdea(id int64, text string, category domain.Category) (domain.Idea, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Idea{}, false
	}
	if category != "" && !category.Valid() {
		return domain.Idea{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := domain.IndexOf(s.ideas, id)
	if idx < 0 {
		return domain.Idea{}, false
	}

	idea := s.ideas[idx]
	idea.Text = text
	if category != "" {
		idea.Category = category
	}
	s.ideas[idx] = idea
	s.statsValid = false
	s.saveIdeas()

	s.log.Debug("idea updated",
		slog.String("room_id", s.roomID),
		slog.Int64("idea_id", id),
	)
	return idea, true
}

// Clear removes every idea and star of the active room and returns how many
// ideas were dropped
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roomID == "" {
		return 0
	}

	n := len(s.ideas)
	s.ideas = nil
	s.starred = domain.StarredSet{}
	s.statsValid = false
	s.saveIdeas()
	s.saveStarred()

	s.log.Debug("room cleared",
		slog.String("room_id", s.roomID),
		slog.Int("deleted_count", n),
	)
	return n
}

// Ideas returns a copy of the list, newest first
func (s *Store) Ideas() []domain.Idea {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ideas)
}

// Idea looks up a single idea by id
func (s *Store) Idea(id int64) (domain.Idea, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := domain.IndexOf(s.ideas, id)
	if idx < 0 {
		return domain.Idea{}, false
	}
	return s.ideas[idx], true
}

// Starred returns a copy of the starred set
func (s *Store) Starred() domain.StarredSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starred.Clone()
}

// IsStarred reports whether id is starred
func (s *Store) IsStarred(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starred.Has(id)
}

// Query returns the visible subset for a filter and search text
func (s *Store) Query(filter domain.Filter, search string) []domain.Idea {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Query(s.ideas, s.starred, filter, search)
}

// Stats returns room-wide counts, recomputed only after a mutation
func (s *Store) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentStats()
}

// Snapshot returns the room, its ideas, stars and stats as of one instant
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		RoomID:  s.roomID,
		Ideas:   slices.Clone(s.ideas),
		Starred: s.starred.Clone(),
		Stats:   s.currentStats(),
	}
}

// currentStats must be called with mu held
func (s *Store) currentStats() domain.Stats {
	if !s.statsValid {
		s.stats = domain.ComputeStats(s.ideas, s.starred)
		s.statsValid = true
	}
	return s.stats
}

// saveIdeas and saveStarred must be called with mu held

func (s *Store) saveIdeas() {
	err := s.persistence.SaveIdeas(s.roomID, s.ideas)
	s.ideasUnsaved = err != nil
	if err != nil {
		s.log.Error("failed to persist ideas",
			slog.String("room_id", s.roomID),
			slog.Int("ideas", len(s.ideas)),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Store) saveStarred() {
	err := s.persistence.SaveStarred(s.roomID, s.starred)
	s.starredUnsaved = err != nil
	if err != nil {
		s.log.Error("failed to persist starred set",
			slog.String("room_id", s.roomID),
			slog.Int("starred", s.starred.Len()),
			slog.String("error", err.Error()),
		)
	}
}
