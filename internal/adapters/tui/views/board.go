package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"braindump/internal/adapters/tui/styles"
	"braindump/internal/application"
	"braindump/internal/application/commands"
	"braindump/internal/domain"
)

// TimeLayout formats capture timestamps
const TimeLayout = "Jan 02 15:04"

// Rows taken by everything on the board except the idea list
const boardChrome = 14

// BoardKeyMap defines key bindings for the board view
type BoardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Search     key.Binding
	New        key.Binding
	Star       key.Binding
	Edit       key.Binding
	Category   key.Binding
	Copy       key.Binding
	Delete     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var BoardKeys = BoardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	NextFilter: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "filter"),
	),
	PrevFilter: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev filter"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Star: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "star"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Category: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "category"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// SearchKeyMap is active while the search input has focus
type SearchKeyMap struct {
	Accept key.Binding
	Clear  key.Binding
}

var SearchKeys = SearchKeyMap{
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "keep"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
}

// CopyFunc writes text to the system clipboard
type CopyFunc func(text string) error

// BoardModel lists the ideas of the active room
type BoardModel struct {
	ViewState
	store     *application.Store
	filter    domain.Filter
	search    textinput.Model
	searching bool
	entries   []domain.Idea
	paginator *Paginator
	copy      CopyFunc
}

// NewBoardModel creates a new board model
func NewBoardModel(store *application.Store) *BoardModel {
	search := textinput.New()
	search.Placeholder = "search ideas"
	search.Prompt = "/ "
	search.CharLimit = 100

	return &BoardModel{
		store:     store,
		filter:    domain.FilterAll,
		search:    search,
		paginator: NewPaginator(DefaultPageSize),
		copy:      clipboard.WriteAll,
	}
}

// SetCopyFunc replaces the clipboard writer
func (m *BoardModel) SetCopyFunc(fn CopyFunc) {
	m.copy = fn
}

// Init initializes the board
func (m *BoardModel) Init() tea.Cmd {
	m.Refresh()
	return nil
}

// Refresh re-runs the query against the store, keeping the cursor in range
func (m *BoardModel) Refresh() {
	m.entries = m.store.Query(m.filter, m.search.Value())
	m.paginator.SetTotal(len(m.entries))
}

// SetSize updates the view dimensions and the page size
func (m *BoardModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.search.Width = max(width-12, 20)
	m.paginator.SetPageSize(max(height-boardChrome, 3))
}

// Filter returns the active filter
func (m *BoardModel) Filter() domain.Filter {
	return m.filter
}

// SetFilter switches the filter and moves back to the first row
func (m *BoardModel) SetFilter(f domain.Filter) {
	m.filter = f
	m.paginator.Reset()
	m.Refresh()
}

// SearchQuery returns the current search text
func (m *BoardModel) SearchQuery() string {
	return m.search.Value()
}

// Searching reports whether the search input has focus
func (m *BoardModel) Searching() bool {
	return m.searching
}

// Entries returns the visible ideas in display order
func (m *BoardModel) Entries() []domain.Idea {
	return m.entries
}

// Selected returns the idea under the cursor
func (m *BoardModel) Selected() (domain.Idea, bool) {
	i := m.paginator.Cursor()
	if i >= 0 && i < len(m.entries) {
		return m.entries[i], true
	}
	return domain.Idea{}, false
}

// Update handles messages for the board
func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case IdeaChangedMsg:
		m.SetMessage(msg.Message, false)
		m.Refresh()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m, m.updateSearch(msg)
		}
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *BoardModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, SearchKeys.Accept):
		m.searching = false
		m.search.Blur()
		return nil

	case key.Matches(msg, SearchKeys.Clear):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.paginator.Reset()
		m.Refresh()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.paginator.Reset()
	m.Refresh()
	return cmd
}

func (m *BoardModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BoardKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BoardKeys.Up):
		m.paginator.CursorUp()

	case key.Matches(msg, BoardKeys.Down):
		m.paginator.CursorDown()

	case key.Matches(msg, BoardKeys.PrevPage):
		m.paginator.PrevPage()

	case key.Matches(msg, BoardKeys.NextPage):
		m.paginator.NextPage()

	case key.Matches(msg, BoardKeys.NextFilter):
		m.SetFilter(m.filter.Next())

	case key.Matches(msg, BoardKeys.PrevFilter):
		m.SetFilter(prevFilter(m.filter))

	case key.Matches(msg, BoardKeys.Search):
		m.searching = true
		return m.search.Focus()

	case key.Matches(msg, BoardKeys.New):
		category, _ := m.filter.Category()
		return func() tea.Msg { return SwitchToCaptureMsg{Category: category} }

	case key.Matches(msg, BoardKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, BoardKeys.Star):
		if idea, ok := m.Selected(); ok {
			m.toggleStar(idea)
		}

	case key.Matches(msg, BoardKeys.Category):
		if idea, ok := m.Selected(); ok {
			m.cycleCategory(idea)
		}

	case key.Matches(msg, BoardKeys.Copy):
		if idea, ok := m.Selected(); ok {
			if err := m.copy(idea.Text); err != nil {
				m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
			} else {
				m.SetMessage("Copied to clipboard", false)
			}
		}

	case key.Matches(msg, BoardKeys.Edit):
		if idea, ok := m.Selected(); ok {
			return func() tea.Msg { return EditIdeaMsg{Idea: idea} }
		}

	case key.Matches(msg, BoardKeys.Delete):
		if idea, ok := m.Selected(); ok {
			return func() tea.Msg { return SwitchToDeleteMsg{Idea: idea} }
		}
	}

	return nil
}

func (m *BoardModel) toggleStar(idea domain.Idea) {
	result, err := commands.NewStarCommand(m.store, idea.ID).Execute(context.Background())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.SetMessage(result.Message, false)
	m.Refresh()
}

func (m *BoardModel) cycleCategory(idea domain.Idea) {
	next := idea.Category.Next()
	result, err := commands.NewEditCommand(m.store, idea.ID, idea.Text, next.String()).Execute(context.Background())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.SetMessage(result.Message, false)
	m.Refresh()
}

func prevFilter(f domain.Filter) domain.Filter {
	for i, candidate := range domain.Filters {
		if candidate == f {
			return domain.Filters[(i+len(domain.Filters)-1)%len(domain.Filters)]
		}
	}
	return domain.FilterAll
}

// View renders the board
func (m *BoardModel) View() string {
	stats := m.store.Stats()

	var b strings.Builder

	b.WriteString(styles.Title.Render("Brain Dump"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Room " + m.store.Room()))
	b.WriteString("\n")
	b.WriteString(RenderStats(stats))
	b.WriteString("\n\n")

	b.WriteString(RenderTabs(m.filter, stats))
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(styles.MutedText.Render(m.emptyText(stats)))
		b.WriteString("\n")
	} else {
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderRow(m.entries[i], i == m.paginator.Cursor()))
			b.WriteString("\n")
		}
		if dots := m.paginator.View(); dots != "" {
			b.WriteString("\n")
			b.WriteString(dots)
			b.WriteString("\n")
		}
	}

	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.searching {
		b.WriteString(RenderHelpLine(SearchKeys.Accept, SearchKeys.Clear))
	} else {
		b.WriteString(RenderHelpLine(
			BoardKeys.New, BoardKeys.NextFilter, BoardKeys.Search, BoardKeys.Star,
			BoardKeys.Edit, BoardKeys.Delete, BoardKeys.Help, BoardKeys.Quit,
		))
	}

	return styles.App.Render(b.String())
}

func (m *BoardModel) emptyText(stats domain.Stats) string {
	switch {
	case stats.Total == 0:
		return "Nothing captured yet. Press n to dump an idea."
	case m.search.Value() != "":
		return fmt.Sprintf("No ideas match %q", m.search.Value())
	default:
		return fmt.Sprintf("No ideas in %s", strings.ToLower(FilterLabel(m.filter)))
	}
}

func (m *BoardModel) renderRow(idea domain.Idea, selected bool) string {
	stamp := idea.CreatedAt.Local().Format(TimeLayout)

	width := 60
	if m.Width > 0 {
		width = max(m.Width-len(stamp)-24, 10)
	}
	text := Truncate(idea.Text, width)

	if selected {
		text = styles.RowSelected.Render(text)
	} else {
		text = styles.Row.Render(Highlight(text, m.search.Value()))
	}

	return fmt.Sprintf("%s %s %s  %s",
		RenderStar(m.store.IsStarred(idea.ID)),
		RenderCategory(idea.Category),
		text,
		styles.Timestamp.Render(stamp),
	)
}
