package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maren/spritepad/internal/config"
	"github.com/maren/spritepad/internal/library"
	"github.com/maren/spritepad/internal/logging"
	"github.com/maren/spritepad/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Library.Path), 0o755); err != nil {
		log.Fatalf("mkdir library dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
		log.Fatalf("mkdir log dir: %v", err)
	}

	logger, ring, closeLog, err := logging.New(cfg.Log.Path, logging.ParseLevel(cfg.Log.Level), 256)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = closeLog() }()

	db, err := library.Open(cfg.Library.Path)
	if err != nil {
		log.Fatalf("open library: %v", err)
	}
	if err := library.RunMigrations(db); err != nil {
		log.Fatalf("migrate library: %v", err)
	}
	lib := library.New(db)
	defer lib.Close()

	app, err := tui.New(ctx, cfg, lib, logger, ring)
	if err != nil {
		log.Fatalf("tui: %v", err)
	}

	// Sheets named on the command line win over the stored session.
	if args := os.Args[1:]; len(args) > 0 {
		app.OpenPaths(args)
	} else if session, err := lib.LoadSession(ctx); err == nil {
		app.RestoreSession(session)
	} else {
		logger.Warn("load session", "error", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
