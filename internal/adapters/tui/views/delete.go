package views

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"braindump/internal/adapters/tui/styles"
	"braindump/internal/application"
	"braindump/internal/application/commands"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	store *application.Store
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(store *application.Store) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		store:             store,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.doDelete,
			func() tea.Msg { return SwitchToBoardMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.Target == nil {
		return ErrMsg{Err: errors.New("no idea selected")}
	}

	result, err := commands.NewDeleteCommand(m.store, m.Target.ID).Execute(context.Background())
	if err != nil {
		return ErrMsg{Err: err}
	}
	return IdeaChangedMsg{Message: result.Message}
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	v := NewViewBuilder().
		Title("Delete Idea").
		Line(styles.ErrorMsg.Render("This action cannot be undone!")).
		BlankLine().
		Line(RenderTarget(m.Target, "Delete")).
		BlankLine()

	if m.store.IsStarred(m.targetID()) {
		v.Muted("  It will also be removed from starred.").BlankLine()
	}

	return v.Message(m.Message, m.MessageErr).
		Line(RenderConfirmPrompt("Are you sure?")).
		String()
}

func (m *DeleteModel) targetID() int64 {
	if m.Target == nil {
		return 0
	}
	return m.Target.ID
}
