package filesystem

import (
	"encoding/base32"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SubDir is the directory under the data dir holding one file per key
const SubDir = "kv"

const fileExt = ".json"

// KV implements ports.KeyValueStore with one JSON file per key
type KV struct {
	dir string
}

// NewKV creates the store directory if needed and returns a KV rooted at it
func NewKV(dir string) (*KV, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~") {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, dir[1:])
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &KV{dir: dir}, nil
}

// Dir returns the directory the files live in
func (k *KV) Dir() string {
	return k.dir
}

// Get reads the value stored under key
func (k *KV) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(k.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes value under key, replacing the file atomically
func (k *KV) Set(key string, value []byte) error {
	tmp, err := os.CreateTemp(k.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, k.path(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

// Delete removes key. A missing key is not an error.
func (k *KV) Delete(key string) error {
	err := os.Remove(k.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys returns the sorted keys starting with prefix
func (k *KV) Keys(prefix string) ([]string, error) {
	entries, err := os.ReadDir(k.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, ok := KeyFromFile(entry.Name())
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; files are closed after every operation
func (k *KV) Close() error {
	return nil
}

func (k *KV) path(key string) string {
	return filepath.Join(k.dir, FileName(key))
}

// fileEncoding is lower-case base32hex: no separators, no ':' and no two
// keys differing only in case, so names hold on case-insensitive filesystems
var fileEncoding = base32.HexEncoding.WithPadding(base32.NoPadding)

// FileName maps a key to its file name
func FileName(key string) string {
	return strings.ToLower(fileEncoding.EncodeToString([]byte(key))) + fileExt
}

// KeyFromFile maps a file name back to its key. Temp files and foreign
// files are rejected.
func KeyFromFile(name string) (string, bool) {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || !strings.HasSuffix(base, fileExt) {
		return "", false
	}
	stem := strings.TrimSuffix(base, fileExt)
	if stem != strings.ToLower(stem) {
		return "", false
	}
	key, err := fileEncoding.DecodeString(strings.ToUpper(stem))
	if err != nil || len(key) == 0 {
		return "", false
	}
	return string(key), true
}
