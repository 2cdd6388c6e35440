package filesystem

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestKV_SetGetDelete(t *testing.T) {
	kv, err := NewKV(filepath.Join(t.TempDir(), SubDir))
	if err != nil {
		t.Fatalf("NewKV failed: %v", err)
	}

	if _, ok, err := kv.Get("ideas:room"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := kv.Set("ideas:room", []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Set("ideas:room", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := kv.Get("ideas:room")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if string(got) != `[{"id":1}]` {
		t.Errorf("unexpected value %q", got)
	}

	if err := kv.Delete("ideas:room"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := kv.Delete("ideas:room"); err != nil {
		t.Errorf("deleting a missing key should succeed: %v", err)
	}
	if _, ok, _ := kv.Get("ideas:room"); ok {
		t.Error("expected key to be gone")
	}
}

func TestKV_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewKV(dir)
	if err != nil {
		t.Fatalf("NewKV failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := kv.Set("ideas:a", []byte(`[]`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != FileName("ideas:a") {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only %s, got %v", FileName("ideas:a"), names)
	}
}

func TestKV_Keys(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewKV(dir)
	if err != nil {
		t.Fatalf("NewKV failed: %v", err)
	}

	for _, key := range []string{"ideas:b", "ideas:a/b", "ideas-starred:a", "ideas:with space"} {
		if err := kv.Set(key, []byte(`[]`)); err != nil {
			t.Fatalf("Set(%q) failed: %v", key, err)
		}
	}
	// Foreign files and directories are ignored
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, ".tmp-123"), []byte("x"), 0644)
	os.Mkdir(filepath.Join(dir, FileName("ideas:dir")), 0755)

	keys, err := kv.Keys("ideas:")
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	want := []string{"ideas:a/b", "ideas:b", "ideas:with space"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("expected %v, got %v", want, keys)
	}
}

func TestFileName_RoundTrip(t *testing.T) {
	tests := []string{
		"ideas:default",
		"ideas-starred:8f14e45f-ceea-467e-9a1b-2b7c1e5f0a11",
		"ideas:../escape",
		"ideas:100%",
		"ideas:C:\\temp",
		"ideas:日本",
	}

	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			name := FileName(key)
			if filepath.Base(name) != name {
				t.Fatalf("file name %q contains a separator", name)
			}
			if strings.ContainsAny(name, `:\/<>"|?*`) {
				t.Fatalf("file name %q is not portable", name)
			}
			if name != strings.ToLower(name) {
				t.Fatalf("file name %q is not lower case", name)
			}
			got, ok := KeyFromFile(name)
			if !ok || got != key {
				t.Errorf("expected %q, got %q (ok=%v)", key, got, ok)
			}
		})
	}
}

func TestFileName_RoomsDifferingInCaseDoNotCollide(t *testing.T) {
	pairs := [][2]string{
		{"ideas:Retro", "ideas:retro"},
		{"ideas-starred:Retro", "ideas-starred:retro"},
		{"ideas:ABC", "ideas:abc"},
	}
	for _, p := range pairs {
		a, b := FileName(p[0]), FileName(p[1])
		if strings.EqualFold(a, b) {
			t.Errorf("%q and %q map to %q and %q, equal ignoring case", p[0], p[1], a, b)
		}
	}
}

func TestKV_RoomsDifferingInCaseKeepSeparateValues(t *testing.T) {
	kv, err := NewKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewKV failed: %v", err)
	}

	if err := kv.Set("ideas:Retro", []byte(`["upper"]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Set("ideas:retro", []byte(`["lower"]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := kv.Get("ideas:Retro")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if string(got) != `["upper"]` {
		t.Errorf("room Retro was overwritten: %s", got)
	}

	keys, err := kv.Keys("ideas:")
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if want := []string{"ideas:Retro", "ideas:retro"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("expected %v, got %v", want, keys)
	}
}

func TestKeyFromFile_Rejects(t *testing.T) {
	upper := strings.ToUpper(strings.TrimSuffix(FileName("ideas:a"), ".json")) + ".json"
	for _, name := range []string{".tmp-42", "readme.md", ".json", "bad%zz.json", "ideas:a.json", upper} {
		if key, ok := KeyFromFile(name); ok {
			t.Errorf("expected %q to be rejected, got key %q", name, key)
		}
	}
}

func TestWatcher_ReportsExternalChanges(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewKV(dir)
	if err != nil {
		t.Fatalf("NewKV failed: %v", err)
	}

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := kv.Set("ideas:room", []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	change := waitForChange(t, w)
	if change.Key != "ideas:room" || change.Removed {
		t.Errorf("unexpected change %+v", change)
	}

	if err := kv.Delete("ideas:room"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	change = waitForChange(t, w)
	if change.Key != "ideas:room" || !change.Removed {
		t.Errorf("expected removal, got %+v", change)
	}
}

func waitForChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes:
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}
