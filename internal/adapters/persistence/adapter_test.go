package persistence

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"braindump/internal/adapters/memory"
	"braindump/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAdapter(t *testing.T) (*Adapter, *memory.KV) {
	t.Helper()
	kv := memory.NewKV()
	return NewAdapter(discardLogger(), kv), kv
}

func sampleIdeas() []domain.Idea {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	return []domain.Idea{
		{ID: 1740821460000, Text: "Why slow?", Category: domain.CategoryQuestion, CreatedAt: created.Add(time.Minute)},
		{ID: 1740821400000, Text: "Ship v2", Category: domain.CategoryTodo, CreatedAt: created},
	}
}

func TestAdapter_IdeasRoundTrip(t *testing.T) {
	a, _ := newTestAdapter(t)
	ideas := sampleIdeas()

	require.NoError(t, a.SaveIdeas("room-a", ideas))

	got := a.LoadIdeas("room-a")
	require.Len(t, got, len(ideas))
	for i := range ideas {
		assert.Equal(t, ideas[i].ID, got[i].ID)
		assert.Equal(t, ideas[i].Text, got[i].Text)
		assert.Equal(t, ideas[i].Category, got[i].Category)
		assert.True(t, ideas[i].CreatedAt.Equal(got[i].CreatedAt), "createdAt %v != %v", ideas[i].CreatedAt, got[i].CreatedAt)
	}
}

func TestAdapter_RoomsAreIsolated(t *testing.T) {
	a, _ := newTestAdapter(t)

	require.NoError(t, a.SaveIdeas("room-a", sampleIdeas()))
	require.NoError(t, a.SaveStarred("room-a", domain.NewStarredSet(1740821400000)))

	assert.Empty(t, a.LoadIdeas("room-b"))
	assert.Equal(t, 0, a.LoadStarred("room-b").Len())
}

func TestAdapter_WireFormat(t *testing.T) {
	a, kv := newTestAdapter(t)

	require.NoError(t, a.SaveIdeas("r1", sampleIdeas()[1:]))
	require.NoError(t, a.SaveStarred("r1", domain.NewStarredSet(30, 10, 20)))

	raw, ok, err := kv.Get("ideas:r1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t,
		`[{"id":1740821400000,"text":"Ship v2","category":"todo","createdAt":"2025-03-01T09:30:00Z"}]`,
		string(raw))

	raw, ok, err = kv.Get("ideas-starred:r1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[10,20,30]", string(raw))
}

func TestAdapter_EmptyValuesRemoveEntries(t *testing.T) {
	a, kv := newTestAdapter(t)

	require.NoError(t, a.SaveIdeas("r1", sampleIdeas()))
	require.NoError(t, a.SaveStarred("r1", domain.NewStarredSet(1)))

	require.NoError(t, a.SaveIdeas("r1", nil))
	require.NoError(t, a.SaveStarred("r1", domain.StarredSet{}))

	_, ok, err := kv.Get(IdeasKey("r1"))
	require.NoError(t, err)
	assert.False(t, ok, "ideas entry should be removed, not stored as []")

	_, ok, err = kv.Get(StarredKey("r1"))
	require.NoError(t, err)
	assert.False(t, ok, "starred entry should be removed, not stored as []")
}

func TestAdapter_MalformedDataReadsAsEmpty(t *testing.T) {
	tests := []struct {
		name string
		key  string
		raw  string
	}{
		{"ideas not json", IdeasKey("r1"), "{not json"},
		{"ideas wrong shape", IdeasKey("r1"), `{"id":1}`},
		{"starred not json", StarredKey("r1"), "[1,2"},
		{"starred wrong type", StarredKey("r1"), `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, kv := newTestAdapter(t)
			require.NoError(t, kv.Set(tt.key, []byte(tt.raw)))

			assert.Empty(t, a.LoadIdeas("r1"))
			assert.Equal(t, 0, a.LoadStarred("r1").Len())
		})
	}
}

func TestAdapter_DropsInvalidRecords(t *testing.T) {
	a, kv := newTestAdapter(t)
	raw := `[
		{"id":3,"text":"keep me","category":"insight","createdAt":"2025-03-01T09:30:00Z"},
		{"id":2,"text":"   ","category":"idea","createdAt":"2025-03-01T09:30:00Z"},
		{"id":1,"text":"bad category","category":"task","createdAt":"2025-03-01T09:30:00Z"},
		{"id":3,"text":"duplicate","category":"idea","createdAt":"2025-03-01T09:30:00Z"}
	]`
	require.NoError(t, kv.Set(IdeasKey("r1"), []byte(raw)))

	got := a.LoadIdeas("r1")
	require.Len(t, got, 1)
	assert.Equal(t, "keep me", got[0].Text)
}

type failingKV struct {
	*memory.KV
}

var errDiskFull = errors.New("disk full")

func (f failingKV) Get(string) ([]byte, bool, error) { return nil, false, errDiskFull }
func (f failingKV) Set(string, []byte) error         { return errDiskFull }

func TestAdapter_ErrorPolicy(t *testing.T) {
	a := NewAdapter(discardLogger(), failingKV{memory.NewKV()})

	assert.Empty(t, a.LoadIdeas("r1"), "read failures read as empty")
	assert.Equal(t, 0, a.LoadStarred("r1").Len())

	err := a.SaveIdeas("r1", sampleIdeas())
	require.ErrorIs(t, err, errDiskFull)
}

func TestAdapter_Rooms(t *testing.T) {
	a, _ := newTestAdapter(t)

	require.NoError(t, a.SaveIdeas("beta", sampleIdeas()))
	require.NoError(t, a.SaveStarred("beta", domain.NewStarredSet(1)))
	require.NoError(t, a.SaveIdeas("alpha", sampleIdeas()))
	require.NoError(t, a.SaveStarred("gamma", domain.NewStarredSet(1)))

	rooms, err := a.Rooms()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, rooms)
}

func TestRoomFromKey(t *testing.T) {
	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"ideas:standup", "standup", true},
		{"ideas-starred:standup", "standup", true},
		{"ideas:with:colon", "with:colon", true},
		{"ideas:", "", false},
		{"other:standup", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := RoomFromKey(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
