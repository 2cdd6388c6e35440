package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"braindump/internal/adapters/filesystem"
	"braindump/internal/adapters/memory"
	"braindump/internal/adapters/persistence"
	"braindump/internal/adapters/tui/views"
	"braindump/internal/application"
	"braindump/internal/domain"
)

type testEnv struct {
	app     *App
	store   *application.Store
	adapter *persistence.Adapter
	changes chan filesystem.Change
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	adapter := persistence.NewAdapter(log, memory.NewKV())
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := application.NewStore(log, adapter, application.WithClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	}))
	if err := store.Initialize("standup"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	changes := make(chan filesystem.Change, 1)
	app := NewApp(log, store, WithChanges(changes))
	app.Init()
	return &testEnv{app: app, store: store, adapter: adapter, changes: changes}
}

// send feeds msg to the app and then every app message its commands
// produce. Cursor blinks and other component ticks are not followed.
func (e *testEnv) send(msg tea.Msg) {
	_, cmd := e.app.Update(msg)
	for cmd != nil {
		next := cmd()
		if !isAppMsg(next) {
			return
		}
		_, cmd = e.app.Update(next)
	}
}

func isAppMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case views.SwitchToBoardMsg, views.SwitchToHelpMsg, views.SwitchToCaptureMsg,
		views.SwitchToDeleteMsg, views.EditIdeaMsg, views.IdeaChangedMsg, views.ErrMsg,
		editorFinishedMsg:
		return true
	default:
		return false
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_CaptureFlow(t *testing.T) {
	env := newTestEnv(t)

	env.send(runes("n"))
	if env.app.State() != ViewCapture {
		t.Fatalf("expected capture view, got %v", env.app.State())
	}

	env.send(runes("Ship v2"))
	env.send(tea.KeyMsg{Type: tea.KeyTab}) // idea -> todo
	env.send(tea.KeyMsg{Type: tea.KeyEnter})

	if env.app.State() != ViewBoard {
		t.Fatalf("expected board after save, got %v", env.app.State())
	}
	ideas := env.store.Ideas()
	if len(ideas) != 1 || ideas[0].Text != "Ship v2" || ideas[0].Category != domain.CategoryTodo {
		t.Fatalf("unexpected ideas: %+v", ideas)
	}
	if !strings.Contains(env.app.View(), "Ship v2") {
		t.Error("expected new idea on the board")
	}
}

func TestApp_CaptureBlankStaysOpen(t *testing.T) {
	env := newTestEnv(t)

	env.send(runes("n"))
	env.send(tea.KeyMsg{Type: tea.KeyEnter})

	if env.app.State() != ViewCapture {
		t.Fatalf("blank capture should stay on the form, got %v", env.app.State())
	}
	if len(env.store.Ideas()) != 0 {
		t.Error("blank capture must not add an idea")
	}
	if !strings.Contains(env.app.View(), "required") {
		t.Error("expected a validation message")
	}

	env.send(tea.KeyMsg{Type: tea.KeyEsc})
	if env.app.State() != ViewBoard {
		t.Errorf("esc should return to board, got %v", env.app.State())
	}
}

func TestApp_DeleteFlow(t *testing.T) {
	env := newTestEnv(t)
	keep, _ := env.store.AddIdea("keep", domain.CategoryIdea)
	drop, _ := env.store.AddIdea("drop", domain.CategoryIdea)
	env.store.ToggleStar(drop.ID)
	env.app.Board().Refresh()

	env.send(runes("d"))
	if env.app.State() != ViewDelete {
		t.Fatalf("expected delete view, got %v", env.app.State())
	}

	env.send(runes("n"))
	if env.app.State() != ViewBoard || len(env.store.Ideas()) != 2 {
		t.Fatal("cancel must keep the idea")
	}

	env.send(runes("d"))
	env.send(runes("y"))
	if env.app.State() != ViewBoard {
		t.Fatalf("expected board after delete, got %v", env.app.State())
	}
	ideas := env.store.Ideas()
	if len(ideas) != 1 || ideas[0].ID != keep.ID {
		t.Fatalf("unexpected ideas after delete: %+v", ideas)
	}
	if env.store.IsStarred(drop.ID) {
		t.Error("deleted idea must leave the starred set")
	}
}

func TestApp_HelpToggles(t *testing.T) {
	env := newTestEnv(t)

	env.send(runes("?"))
	if env.app.State() != ViewHelp {
		t.Fatalf("expected help view, got %v", env.app.State())
	}
	env.send(runes("?"))
	if env.app.State() != ViewBoard {
		t.Errorf("expected board, got %v", env.app.State())
	}
}

func TestApp_EditWithoutEditor(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddIdea("draft", domain.CategoryIdea)
	env.app.Board().Refresh()

	env.send(runes("e"))
	if !strings.Contains(env.app.View(), "no editor configured") {
		t.Error("expected editor error on the board")
	}
}

func TestApp_FinishEdit(t *testing.T) {
	env := newTestEnv(t)
	idea, _ := env.store.AddIdea("draft", domain.CategoryIdea)

	env.send(editorFinishedMsg{id: idea.ID, text: "final"})
	got, _ := env.store.Idea(idea.ID)
	if got.Text != "final" {
		t.Errorf("expected final, got %q", got.Text)
	}

	env.send(editorFinishedMsg{id: idea.ID, text: ""})
	got, _ = env.store.Idea(idea.ID)
	if got.Text != "final" {
		t.Error("empty edit must be discarded")
	}
}

func TestApp_ReloadsOnExternalChange(t *testing.T) {
	env := newTestEnv(t)

	// Another process writes the same room
	ideas := []domain.Idea{{ID: 1, Text: "from elsewhere", Category: domain.CategoryInsight}}
	if err := env.adapter.SaveIdeas("standup", ideas); err != nil {
		t.Fatal(err)
	}
	env.app.Update(storeChangedMsg{change: filesystem.Change{Key: persistence.IdeasKey("standup")}})

	if len(env.store.Ideas()) != 1 {
		t.Fatalf("expected reload to pick up 1 idea, got %d", len(env.store.Ideas()))
	}
	if !strings.Contains(env.app.View(), "from elsewhere") {
		t.Error("expected board to show reloaded idea")
	}

	// Other rooms are ignored
	if err := env.adapter.SaveIdeas("standup", nil); err != nil {
		t.Fatal(err)
	}
	env.app.Update(storeChangedMsg{change: filesystem.Change{Key: persistence.IdeasKey("retro")}})
	if len(env.store.Ideas()) != 1 {
		t.Error("changes to another room must not reload")
	}
}
