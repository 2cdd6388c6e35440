package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"braindump/internal/adapters/filesystem"
	"braindump/internal/adapters/memory"
	"braindump/internal/adapters/persistence"
	"braindump/internal/adapters/sqlite"
	"braindump/internal/config"
	"braindump/internal/ports"
)

// Backend is an opened key-value store with the idea persistence on top
type Backend struct {
	Name        string
	KV          ports.KeyValueStore
	Persistence *persistence.Adapter

	// WatchDir is set when other processes can change the store behind our back
	WatchDir string
}

// Open selects and opens the backend named by cfg.Backend
func Open(cfg config.Config, log *slog.Logger) (*Backend, error) {
	var (
		kv       ports.KeyValueStore
		watchDir string
	)

	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		kv = db
	case config.BackendFilesystem:
		fs, err := filesystem.NewKV(filepath.Join(cfg.DataDir, filesystem.SubDir))
		if err != nil {
			return nil, err
		}
		kv = fs
		watchDir = fs.Dir()
	case config.BackendMemory:
		kv = memory.NewKV()
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, cfg.Backend)
	}

	log.Debug("storage opened", "backend", cfg.Backend, "data_dir", cfg.DataDir)

	return &Backend{
		Name:        cfg.Backend,
		KV:          kv,
		Persistence: persistence.NewAdapter(log, kv),
		WatchDir:    watchDir,
	}, nil
}

// Watch starts a watcher on WatchDir. It returns nil when the backend cannot
// change externally.
func (b *Backend) Watch() (*filesystem.Watcher, error) {
	if b.WatchDir == "" {
		return nil, nil
	}
	w, err := filesystem.NewWatcher(b.WatchDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", b.WatchDir, err)
	}
	return w, nil
}

// Close releases the underlying store
func (b *Backend) Close() error {
	return b.KV.Close()
}
