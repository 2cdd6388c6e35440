package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"braindump/internal/adapters/tui/styles"
	"braindump/internal/application"
	"braindump/internal/application/commands"
	"braindump/internal/domain"
)

// CaptureKeyMap defines key bindings for the capture view
type CaptureKeyMap struct {
	Submit   key.Binding
	Cancel   key.Binding
	Category key.Binding
}

var CaptureKeys = CaptureKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Category: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "category"),
	),
}

// CaptureModel is the quick-entry form for a new idea
type CaptureModel struct {
	ViewState
	store    *application.Store
	form     *InputForm
	category domain.Category
}

// NewCaptureModel creates a new capture view model
func NewCaptureModel(store *application.Store) *CaptureModel {
	return &CaptureModel{
		store:    store,
		form:     NewInputForm(NewInputField("What's on your mind?", "Ship v2 before Friday", 500)),
		category: domain.CategoryIdea,
	}
}

// Open clears the form and preselects category, defaulting to idea
func (m *CaptureModel) Open(category domain.Category) {
	m.form.Reset()
	m.ClearMessage()
	if !category.Valid() {
		category = domain.CategoryIdea
	}
	m.category = category
}

// Category returns the selected category
func (m *CaptureModel) Category() domain.Category {
	return m.category
}

// Init initializes the capture view
func (m *CaptureModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the capture view
func (m *CaptureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.form.SetWidth(max(msg.Width-12, 20))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, CaptureKeys.Cancel):
			return m, func() tea.Msg { return SwitchToBoardMsg{} }

		case key.Matches(msg, CaptureKeys.Category):
			m.category = m.category.Next()
			return m, nil

		case key.Matches(msg, CaptureKeys.Submit):
			return m, m.save()
		}
	}

	return m, m.form.Update(msg)
}

func (m *CaptureModel) save() tea.Cmd {
	text := m.form.Value(0)
	category := m.category
	return func() tea.Msg {
		result, err := commands.NewAddCommand(m.store, text, category.String()).Execute(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return IdeaChangedMsg{Message: result.Message}
	}
}

// View renders the capture view
func (m *CaptureModel) View() string {
	var tabs string
	for _, c := range domain.Categories {
		if c == m.category {
			tabs += styles.TabActive.Background(styles.CategoryColor(c)).Render(c.Label())
		} else {
			tabs += styles.Tab.Render(c.Label())
		}
	}

	return NewViewBuilder().
		Title("Capture").
		Subtitle("Room " + m.store.Room()).
		Line(m.form.RenderField(0)).
		BlankLine().
		Line(styles.InputLabel.Render("Category")).
		Line(tabs).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(CaptureKeys.Category, CaptureKeys.Submit, CaptureKeys.Cancel).
		String()
}
