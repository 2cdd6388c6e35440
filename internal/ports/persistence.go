package ports

import "braindump/internal/domain"

// IdeaPersistence loads and saves a room's ideas and starred set.
//
// Loads never fail: missing or malformed data reads as empty. Saves of an
// empty list or set remove the stored entry instead of writing an empty one.
type IdeaPersistence interface {
	LoadIdeas(roomID string) []domain.Idea
	SaveIdeas(roomID string, ideas []domain.Idea) error

	LoadStarred(roomID string) domain.StarredSet
	SaveStarred(roomID string, starred domain.StarredSet) error

	// Rooms lists every room that has persisted ideas or stars
	Rooms() ([]string, error)
}
