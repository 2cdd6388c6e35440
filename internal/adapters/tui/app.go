package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"braindump/internal/adapters/editor"
	"braindump/internal/adapters/filesystem"
	"braindump/internal/adapters/persistence"
	"braindump/internal/adapters/tui/views"
	"braindump/internal/application"
	"braindump/internal/application/commands"
	"braindump/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBoard ViewState = iota
	ViewCapture
	ViewDelete
	ViewHelp
)

// App is the main TUI application model
type App struct {
	store   *application.Store
	editor  ports.EditorOpener
	changes <-chan filesystem.Change
	log     *slog.Logger

	state   ViewState
	board   *views.BoardModel
	capture *views.CaptureModel
	delete  *views.DeleteModel
	help    *views.HelpModel

	width  int
	height int
}

// Option configures an App
type Option func(*App)

// WithEditor enables editing ideas in an external editor
func WithEditor(ed ports.EditorOpener) Option {
	return func(a *App) { a.editor = ed }
}

// WithChanges reloads the room whenever its keys change on disk
func WithChanges(changes <-chan filesystem.Change) Option {
	return func(a *App) { a.changes = changes }
}

// NewApp creates a new TUI application over an initialized store
func NewApp(log *slog.Logger, store *application.Store, opts ...Option) *App {
	a := &App{
		store:   store,
		log:     log.With("component", "tui"),
		state:   ViewBoard,
		board:   views.NewBoardModel(store),
		capture: views.NewCaptureModel(store),
		delete:  views.NewDeleteModel(store),
		help:    views.NewHelpModel(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Board returns the board view
func (a *App) Board() *views.BoardModel {
	return a.board
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.board.Init(), a.waitForChange())
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.board.SetSize(msg.Width, msg.Height)
		a.capture.Update(msg)
		a.delete.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	// View switching messages
	case views.SwitchToCaptureMsg:
		a.state = ViewCapture
		a.capture.Open(msg.Category)
		return a, a.capture.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Idea)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBoardMsg:
		a.state = ViewBoard
		a.board.Refresh()
		return a, nil

	case views.IdeaChangedMsg:
		a.state = ViewBoard
		a.board.Update(msg)
		return a, nil

	case views.ErrMsg:
		switch a.state {
		case ViewCapture:
			a.capture.SetMessage(msg.Err.Error(), true)
		case ViewDelete:
			a.delete.SetMessage(msg.Err.Error(), true)
		default:
			a.board.SetMessage(msg.Err.Error(), true)
		}
		return a, nil

	case views.EditIdeaMsg:
		return a, a.openEditor(msg.Idea.ID, msg.Idea.Text)

	case editorFinishedMsg:
		a.finishEdit(msg)
		return a, nil

	case storeChangedMsg:
		a.reload(msg.change)
		return a, a.waitForChange()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBoard:
		_, cmd = a.board.Update(msg)
	case ViewCapture:
		_, cmd = a.capture.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct {
	id   int64
	text string
	err  error
}

type storeChangedMsg struct {
	change filesystem.Change
}

func (a *App) openEditor(id int64, text string) tea.Cmd {
	if a.editor == nil {
		return func() tea.Msg {
			return views.ErrMsg{Err: errors.New("editing is disabled: no editor configured")}
		}
	}

	path, err := editor.WriteTemp(text)
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{id: id, err: err} }
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{id: id, err: err} }
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return editorFinishedMsg{id: id, err: err}
		}
		edited, err := editor.ReadTemp(path)
		return editorFinishedMsg{id: id, text: edited, err: err}
	})
}

func (a *App) finishEdit(msg editorFinishedMsg) {
	a.state = ViewBoard
	if msg.err != nil {
		a.log.Warn("editor failed", "id", msg.id, "error", msg.err)
		a.board.SetMessage(msg.err.Error(), true)
		return
	}
	if msg.text == "" {
		a.board.SetMessage("Edit discarded: text is empty", true)
		return
	}
	if current, ok := a.store.Idea(msg.id); ok && current.Text == msg.text {
		a.board.SetMessage("No changes", false)
		return
	}

	result, err := commands.NewEditCommand(a.store, msg.id, msg.text, "").Execute(context.Background())
	if err != nil {
		a.board.SetMessage(err.Error(), true)
		return
	}
	a.board.SetMessage(result.Message, false)
	a.board.Refresh()
}

func (a *App) waitForChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	changes := a.changes
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return nil
		}
		return storeChangedMsg{change: change}
	}
}

func (a *App) reload(change filesystem.Change) {
	room, ok := persistence.RoomFromKey(change.Key)
	if !ok || room != a.store.Room() {
		return
	}
	if err := a.store.Reload(); err != nil {
		a.log.Error("reload failed", "room", room, "error", err)
		return
	}
	a.log.Debug("room reloaded", "room", room, "key", change.Key, "removed", change.Removed)
	a.board.Refresh()
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCapture:
		return a.capture.View()
	case ViewDelete:
		return a.delete.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.board.View()
	}
}
