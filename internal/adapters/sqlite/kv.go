package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"braindump/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// DatabaseFile is the file name of the store inside the data directory
const DatabaseFile = "braindump.db"

// KV implements ports.KeyValueStore using SQLite
type KV struct {
	db     *sql.DB
	dbPath string
}

// Ensure KV implements KeyValueStore
var _ ports.KeyValueStore = (*KV)(nil)

// Open opens (creating if needed) the store in dataDir
func Open(dataDir string) (*KV, error) {
	// Expand ~ in path
	if len(dataDir) > 0 && dataDir[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[1:])
	}

	kv := &KV{dbPath: filepath.Join(dataDir, DatabaseFile)}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection. WAL lets the TUI
	// and CLI share the database.
	db, err := sql.Open("sqlite", kv.dbPath+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	kv.db = db

	// Remaining pragma + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if err := kv.checkSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return kv, nil
}

// Path returns the database file path
func (kv *KV) Path() string {
	return kv.dbPath
}

// Close closes the database connection
func (kv *KV) Close() error {
	if kv.db != nil {
		return kv.db.Close()
	}
	return nil
}

// checkSchema records the schema version on first use and rejects
// databases written by a newer, incompatible layout
func (kv *KV) checkSchema() error {
	var version string
	err := kv.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = kv.db.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
		if err != nil {
			return fmt.Errorf("failed to update metadata: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("unsupported schema version %s in %s (expected %s)", version, kv.dbPath, schemaVersion)
	}
	return nil
}

// Get retrieves a value by key
func (kv *KV) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := kv.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set inserts or replaces a value
func (kv *KV) Set(key string, value []byte) error {
	_, err := kv.db.Exec(`
		INSERT OR REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, time.Now().UnixMilli())
	return err
}

// Delete removes a key; missing keys are not an error
func (kv *KV) Delete(key string) error {
	_, err := kv.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Keys returns all keys with the given prefix in ascending order
func (kv *KV) Keys(prefix string) ([]string, error) {
	rows, err := kv.db.Query(`
		SELECT key FROM kv
		WHERE key LIKE ? ESCAPE '\'
		ORDER BY key
	`, likePrefix(prefix))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		// LIKE ignores ASCII case
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}

	return keys, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePrefix builds a LIKE pattern matching keys that start with prefix
func likePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
