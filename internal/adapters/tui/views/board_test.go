package views

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"braindump/internal/adapters/memory"
	"braindump/internal/adapters/persistence"
	"braindump/internal/application"
	"braindump/internal/domain"
)

func newTestStore(t *testing.T) *application.Store {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := application.NewStore(log, persistence.NewAdapter(log, memory.NewKV()),
		application.WithClock(func() time.Time {
			now = now.Add(time.Minute)
			return now
		}))
	if err := store.Initialize("standup"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return store
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoard_ListsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	first, _ := store.AddIdea("first", domain.CategoryIdea)
	second, _ := store.AddIdea("second", domain.CategoryTodo)

	m := NewBoardModel(store)
	m.Init()

	entries := m.Entries()
	if len(entries) != 2 || entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if sel, ok := m.Selected(); !ok || sel.ID != second.ID {
		t.Errorf("expected cursor on newest idea, got %+v", sel)
	}
}

func TestBoard_TabCyclesFilter(t *testing.T) {
	store := newTestStore(t)
	store.AddIdea("Ship v2", domain.CategoryTodo)
	store.AddIdea("Why slow?", domain.CategoryQuestion)

	m := NewBoardModel(store)
	m.Init()

	want := []struct {
		filter domain.Filter
		count  int
	}{
		{domain.FilterStarred, 0},
		{domain.Filter(domain.CategoryIdea), 0},
		{domain.Filter(domain.CategoryTodo), 1},
		{domain.Filter(domain.CategoryInsight), 0},
		{domain.Filter(domain.CategoryQuestion), 1},
		{domain.FilterAll, 2},
	}
	for _, w := range want {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.Filter() != w.filter {
			t.Fatalf("expected filter %s, got %s", w.filter, m.Filter())
		}
		if len(m.Entries()) != w.count {
			t.Errorf("filter %s: expected %d entries, got %d", w.filter, w.count, len(m.Entries()))
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Filter() != domain.Filter(domain.CategoryQuestion) {
		t.Errorf("expected shift+tab to go back to question, got %s", m.Filter())
	}
}

func TestBoard_StarToggles(t *testing.T) {
	store := newTestStore(t)
	idea, _ := store.AddIdea("star me", domain.CategoryInsight)

	m := NewBoardModel(store)
	m.Init()

	m.Update(keyRunes("s"))
	if !store.IsStarred(idea.ID) {
		t.Fatal("expected idea to be starred")
	}
	if !strings.HasPrefix(m.Message, "Starred") {
		t.Errorf("unexpected message %q", m.Message)
	}

	m.SetFilter(domain.FilterStarred)
	if len(m.Entries()) != 1 {
		t.Errorf("expected 1 starred entry, got %d", len(m.Entries()))
	}

	m.Update(keyRunes("s"))
	if store.IsStarred(idea.ID) {
		t.Error("expected idea to be unstarred")
	}
	if len(m.Entries()) != 0 {
		t.Errorf("starred view should be empty after unstarring, got %d", len(m.Entries()))
	}
}

func TestBoard_CategoryCycles(t *testing.T) {
	store := newTestStore(t)
	idea, _ := store.AddIdea("retag me", domain.CategoryIdea)

	m := NewBoardModel(store)
	m.Init()
	m.Update(keyRunes("c"))

	got, _ := store.Idea(idea.ID)
	if got.Category != domain.CategoryTodo {
		t.Errorf("expected todo, got %s", got.Category)
	}
	if got.Text != "retag me" {
		t.Errorf("text must be unchanged, got %q", got.Text)
	}
}

func TestBoard_Search(t *testing.T) {
	store := newTestStore(t)
	store.AddIdea("Ship v2", domain.CategoryTodo)
	store.AddIdea("Why slow?", domain.CategoryQuestion)

	m := NewBoardModel(store)
	m.Init()

	m.Update(keyRunes("/"))
	if !m.Searching() {
		t.Fatal("expected search mode")
	}
	m.Update(keyRunes("SHIP"))
	if len(m.Entries()) != 1 || m.Entries()[0].Text != "Ship v2" {
		t.Fatalf("expected only Ship v2, got %+v", m.Entries())
	}

	// Keys are typed into the search box, not treated as commands
	m.Update(keyRunes("q"))
	if m.SearchQuery() != "SHIPq" {
		t.Errorf("expected query SHIPq, got %q", m.SearchQuery())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Searching() || m.SearchQuery() == "" {
		t.Error("enter should keep the query and leave search mode")
	}

	m.Update(keyRunes("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.SearchQuery() != "" || len(m.Entries()) != 2 {
		t.Errorf("esc should clear the search, got %q with %d entries", m.SearchQuery(), len(m.Entries()))
	}
}

func TestBoard_Copy(t *testing.T) {
	store := newTestStore(t)
	store.AddIdea("copy me", domain.CategoryIdea)

	var copied string
	m := NewBoardModel(store)
	m.SetCopyFunc(func(text string) error {
		copied = text
		return nil
	})
	m.Init()

	m.Update(keyRunes("y"))
	if copied != "copy me" {
		t.Errorf("expected clipboard to hold %q, got %q", "copy me", copied)
	}

	m.SetCopyFunc(func(string) error { return errors.New("no clipboard") })
	m.Update(keyRunes("y"))
	if !m.MessageErr || !strings.Contains(m.Message, "no clipboard") {
		t.Errorf("expected copy error message, got %q", m.Message)
	}
}

func TestBoard_ActionsEmitMessages(t *testing.T) {
	store := newTestStore(t)
	idea, _ := store.AddIdea("target", domain.CategoryTodo)

	m := NewBoardModel(store)
	m.Init()

	tests := []struct {
		key   string
		check func(tea.Msg) bool
	}{
		{"d", func(msg tea.Msg) bool { d, ok := msg.(SwitchToDeleteMsg); return ok && d.Idea.ID == idea.ID }},
		{"e", func(msg tea.Msg) bool { e, ok := msg.(EditIdeaMsg); return ok && e.Idea.ID == idea.ID }},
		{"?", func(msg tea.Msg) bool { _, ok := msg.(SwitchToHelpMsg); return ok }},
		{"n", func(msg tea.Msg) bool { _, ok := msg.(SwitchToCaptureMsg); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, cmd := m.Update(keyRunes(tt.key))
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if msg := cmd(); !tt.check(msg) {
				t.Errorf("unexpected message %#v", msg)
			}
		})
	}
}

func TestBoard_NewPreselectsFilterCategory(t *testing.T) {
	m := NewBoardModel(newTestStore(t))
	m.Init()
	m.SetFilter(domain.Filter(domain.CategoryQuestion))

	_, cmd := m.Update(keyRunes("n"))
	msg, ok := cmd().(SwitchToCaptureMsg)
	if !ok || msg.Category != domain.CategoryQuestion {
		t.Errorf("expected capture with question, got %#v", msg)
	}
}

func TestBoard_EmptyState(t *testing.T) {
	m := NewBoardModel(newTestStore(t))
	m.Init()

	if !strings.Contains(m.View(), "Nothing captured yet") {
		t.Error("expected empty room hint")
	}
	if _, ok := m.Selected(); ok {
		t.Error("expected no selection in an empty room")
	}
	// Actions on an empty board are no-ops
	if _, cmd := m.Update(keyRunes("d")); cmd != nil {
		t.Error("delete on empty board should not emit a command")
	}
}

func TestBoard_Paginates(t *testing.T) {
	store := newTestStore(t)
	for i := 0; i < 7; i++ {
		store.AddIdea("idea", domain.CategoryIdea)
	}

	m := NewBoardModel(store)
	m.Init()
	m.SetSize(80, boardChrome+3)

	start, end := m.paginator.VisibleRange()
	if start != 0 || end != 3 {
		t.Fatalf("expected first page 0-3, got %d-%d", start, end)
	}

	m.Update(keyRunes("l"))
	m.Update(keyRunes("l"))
	start, end = m.paginator.VisibleRange()
	if start != 6 || end != 7 {
		t.Errorf("expected last page 6-7, got %d-%d", start, end)
	}

	m.Update(keyRunes("k"))
	if m.paginator.CurrentPage() != 2 {
		t.Errorf("moving up from the top of a page should change page, got %d", m.paginator.CurrentPage())
	}
}
