package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidRoom = errors.New("invalid room ID")

// Idea is a short captured note scoped to a room
type Idea struct {
	ID        int64     `json:"id"`        // creation instant in Unix milliseconds, bumped on collision
	Text      string    `json:"text"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

// Valid reports whether the idea can be kept in a room's list
func (i Idea) Valid() bool {
	return i.ID != 0 && strings.TrimSpace(i.Text) != "" && i.Category.Valid()
}

// NextIdeaID returns the id for an idea created at now.
// Ids are strictly increasing: if now is not past last, last+1 is used.
func NextIdeaID(now time.Time, last int64) int64 {
	id := now.UnixMilli()
	if id <= last {
		return last + 1
	}
	return id
}

// NormalizeRoomID trims the room identifier and rejects empty ones
func NormalizeRoomID(roomID string) (string, error) {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return "", ErrInvalidRoom
	}
	return roomID, nil
}

// IndexOf returns the position of the idea with the given id, or -1
func IndexOf(ideas []Idea, id int64) int {
	for i, idea := range ideas {
		if idea.ID == id {
			return i
		}
	}
	return -1
}
