package views

import "braindump/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type SwitchToBoardMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToCaptureMsg struct {
	Category domain.Category
}

type SwitchToDeleteMsg struct {
	Idea domain.Idea
}

// EditIdeaMsg asks the app to open an idea in $EDITOR
type EditIdeaMsg struct {
	Idea domain.Idea
}

// IdeaChangedMsg reports a successful mutation; the app returns to the board
type IdeaChangedMsg struct {
	Message string
}

// ErrMsg reports a failed action to the current view
type ErrMsg struct {
	Err error
}
