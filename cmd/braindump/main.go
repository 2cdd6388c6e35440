package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"braindump/internal/adapters/editor"
	"braindump/internal/adapters/storage"
	"braindump/internal/adapters/tui"
	"braindump/internal/application"
	"braindump/internal/config"
	"braindump/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	v := config.New()

	flags := pflag.NewFlagSet("braindump", pflag.ExitOnError)
	cfgFile := flags.String("config", "", "config file (default .braindump.toml or .braindump.yaml)")
	flags.StringP("room", "r", config.DefaultRoom, "room to open")
	flags.String("backend", config.BackendSQLite, "storage backend: sqlite, filesystem or memory")
	flags.String("data-dir", config.DefaultDataDir(), "directory holding the stored ideas")
	flags.BoolP("verbose", "v", false, "debug logging")
	_ = flags.Parse(os.Args[1:])

	_ = v.BindPFlag("room", flags.Lookup("room"))
	_ = v.BindPFlag("backend", flags.Lookup("backend"))
	_ = v.BindPFlag("data_dir", flags.Lookup("data-dir"))
	_ = v.BindPFlag("verbose", flags.Lookup("verbose"))

	if err := config.ReadFile(v, *cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	// The screen belongs to the TUI; logs go to a file
	log := logging.Discard()
	if cfg.DataDir != "" {
		logFile, err := logging.OpenFile(cfg.DataDir)
		if err != nil {
			return err
		}
		defer logFile.Close()
		log = logging.NewLogger(logFile, cfg.Log)
	}

	backend, err := storage.Open(cfg, log)
	if err != nil {
		return err
	}
	defer backend.Close()

	store := application.NewStore(log, backend.Persistence)
	if err := store.Initialize(cfg.Room); err != nil {
		return err
	}

	opts := []tui.Option{tui.WithEditor(editor.NewOpener())}

	watcher, err := backend.Watch()
	if err != nil {
		log.Warn("live reload disabled", "error", err)
	} else if watcher != nil {
		defer watcher.Stop()
		opts = append(opts, tui.WithChanges(watcher.Changes))
	}

	app := tui.NewApp(log, store, opts...)
	log.Info("tui started", "room", store.Room(), "backend", backend.Name)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
