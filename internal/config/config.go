package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendSQLite     = "sqlite"
	BackendFilesystem = "filesystem"
	BackendMemory     = "memory"
)

// Backends lists the valid values of the backend key
var Backends = []string{BackendSQLite, BackendFilesystem, BackendMemory}

const (
	// EnvPrefix is prepended to every environment variable, e.g. BRAINDUMP_ROOM
	EnvPrefix = "BRAINDUMP"
	// FileName is the config file name searched in the working and home directories
	FileName = ".braindump"
	// DefaultRoom is the room used when none is configured
	DefaultRoom = "default"
)

// ErrInvalidBackend is returned when backend names no known storage
var ErrInvalidBackend = errors.New("invalid backend")

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config holds all runtime configuration.
// Values are populated from .braindump.{toml,yaml}, BRAINDUMP_* env vars, and CLI flags.
type Config struct {
	Backend string    `mapstructure:"backend"`
	DataDir string    `mapstructure:"data_dir"`
	Room    string    `mapstructure:"room"`
	Verbose bool      `mapstructure:"verbose"`
	Log     LogConfig `mapstructure:"log"`
}

// New returns a viper instance with defaults and environment binding applied
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("room", DefaultRoom)
	v.SetDefault("verbose", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile loads cfgFile, or searches for .braindump in the working and home
// directories when cfgFile is empty. A missing searched file is not an error.
func ReadFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
		return nil
	}

	v.SetConfigName(FileName)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load decodes and validates the configuration held by v
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.Room = strings.TrimSpace(cfg.Room)
	cfg.DataDir = ExpandHome(strings.TrimSpace(cfg.DataDir))
	if cfg.Verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the backend and data directory
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFilesystem, BackendMemory:
	default:
		return fmt.Errorf("%w: %q (expected one of %s)", ErrInvalidBackend, c.Backend, strings.Join(Backends, ", "))
	}
	if c.Backend != BackendMemory && c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	return nil
}

// DefaultDataDir follows the XDG base directory convention
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "braindump")
	}
	return filepath.Join("~", ".local", "share", "braindump")
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
