package mcp

import (
	"log/slog"
	"sync"

	"braindump/internal/application"
	"braindump/internal/domain"
	"braindump/internal/ports"
)

// Rooms hands out one store per room over a shared persistence.
// Stores are reloaded on every call so writes from other processes are seen;
// a store holding changes it failed to persist keeps them instead.
type Rooms struct {
	mu          sync.Mutex
	log         *slog.Logger
	persistence ports.IdeaPersistence
	defaultRoom string
	stores      map[string]*application.Store
}

// NewRooms creates a store cache; calls without a room use defaultRoom
func NewRooms(log *slog.Logger, persistence ports.IdeaPersistence, defaultRoom string) *Rooms {
	return &Rooms{
		log:         log,
		persistence: persistence,
		defaultRoom: defaultRoom,
		stores:      make(map[string]*application.Store),
	}
}

// Persistence returns the shared persistence
func (r *Rooms) Persistence() ports.IdeaPersistence {
	return r.persistence
}

// Open returns the store for roomID, freshly loaded
func (r *Rooms) Open(roomID string) (*application.Store, error) {
	if roomID == "" {
		roomID = r.defaultRoom
	}
	roomID, err := domain.NormalizeRoomID(roomID)
	if err != nil {
		return nil, &application.ValidationError{Field: "room", Message: "room is required", Err: application.ErrInvalidRoom}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.stores[roomID]
	if !ok {
		store = application.NewStore(r.log, r.persistence)
		if err := store.Initialize(roomID); err != nil {
			return nil, err
		}
		r.stores[roomID] = store
		return store, nil
	}

	if err := store.Reload(); err != nil {
		return nil, err
	}
	return store, nil
}
