package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	mcpadapter "braindump/internal/adapters/mcp"
	"braindump/internal/adapters/storage"
	"braindump/internal/config"
	"braindump/internal/logging"
)

func main() {
	v := config.New()

	flags := pflag.NewFlagSet("braindump-mcp", pflag.ExitOnError)
	cfgFile := flags.String("config", "", "config file (default .braindump.toml or .braindump.yaml)")
	flags.StringP("room", "r", config.DefaultRoom, "room used when a tool call names none")
	flags.String("backend", config.BackendSQLite, "storage backend: sqlite, filesystem or memory")
	flags.String("data-dir", config.DefaultDataDir(), "directory holding the stored ideas")
	_ = flags.Parse(os.Args[1:])

	_ = v.BindPFlag("room", flags.Lookup("room"))
	_ = v.BindPFlag("backend", flags.Lookup("backend"))
	_ = v.BindPFlag("data_dir", flags.Lookup("data-dir"))

	if err := config.ReadFile(v, *cfgFile); err != nil {
		fatal(err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		fatal(err)
	}

	// stdout carries the protocol
	log := logging.NewLogger(os.Stderr, cfg.Log)

	backend, err := storage.Open(cfg, log)
	if err != nil {
		fatal(err)
	}
	defer backend.Close()

	rooms := mcpadapter.NewRooms(log, backend.Persistence, cfg.Room)

	mcpServer := server.NewMCPServer(
		"braindump-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, rooms)
	mcpadapter.RegisterWriteTools(mcpServer, rooms)

	log.Info("mcp server starting", "backend", backend.Name, "room", cfg.Room)
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Error("mcp server stopped", "error", err)
		backend.Close()
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "braindump-mcp: %v\n", err)
	os.Exit(1)
}
