package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"braindump/internal/adapters/storage"
	"braindump/internal/application"
	"braindump/internal/config"
	"braindump/internal/logging"
)

var (
	cfgFile string
	v       = config.New()

	log     *slog.Logger
	backend *storage.Backend
	store   *application.Store
)

var rootCmd = &cobra.Command{
	Use:   "braindump-cli",
	Short: "Capture and sort ideas from the command line",
	Long: `braindump-cli captures ideas, to-dos, insights and questions into
rooms and lets you star, filter, search, edit and export them.

Configuration is read from .braindump.toml or .braindump.yaml in the
working or home directory, BRAINDUMP_* environment variables, and flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Annotations["store"] == "none" {
			return nil
		}
		return openStore()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if backend == nil {
			return nil
		}
		return backend.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default .braindump.toml or .braindump.yaml)")
	flags.StringP("room", "r", config.DefaultRoom, "room to work in")
	flags.String("backend", config.BackendSQLite, "storage backend: sqlite, filesystem or memory")
	flags.String("data-dir", config.DefaultDataDir(), "directory holding the stored ideas")
	flags.BoolP("verbose", "v", false, "verbose output")

	_ = v.BindPFlag("room", flags.Lookup("room"))
	_ = v.BindPFlag("backend", flags.Lookup("backend"))
	_ = v.BindPFlag("data_dir", flags.Lookup("data-dir"))
	_ = v.BindPFlag("verbose", flags.Lookup("verbose"))
}

func openStore() error {
	if err := config.ReadFile(v, cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	log = logging.NewLogger(os.Stderr, cfg.Log)

	backend, err = storage.Open(cfg, log)
	if err != nil {
		return err
	}

	store = application.NewStore(log, backend.Persistence)
	return store.Initialize(cfg.Room)
}

// GetStore returns the store initialized for the selected room
func GetStore() *application.Store {
	return store
}

// GetBackend returns the opened storage backend
func GetBackend() *storage.Backend {
	return backend
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &application.ValidationError{
			Field:   "id",
			Message: fmt.Sprintf("invalid idea ID %q", s),
			Err:     err,
		}
	}
	return id, nil
}
