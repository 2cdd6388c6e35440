package application

import (
	"errors"
	"fmt"

	"braindump/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidRoom     = domain.ErrInvalidRoom
	ErrInvalidCategory = domain.ErrInvalidCategory
	ErrInvalidFilter   = domain.ErrInvalidFilter
	ErrInvalidFormat   = errors.New("invalid export format")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IdeaNotFoundError reports an id that is not part of the active room
type IdeaNotFoundError struct {
	RoomID string
	ID     int64
}

func (e *IdeaNotFoundError) Error() string {
	return fmt.Sprintf("idea %d not found in room %s", e.ID, e.RoomID)
}

func (e *IdeaNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
