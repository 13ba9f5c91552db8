package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/taskerhq/taskdash/internal/storage"
	"github.com/taskerhq/taskdash/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskdash failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	// Logs go to a file: stdout belongs to the TUI.
	logFile, err := os.OpenFile(cfg.LogPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(0o666))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})
	log.Info().Str("db", cfg.DBPath).Str("login", cfg.UserLogin).Msg("starting taskdash")

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := storage.MigrateUp(db); err != nil {
		_ = db.Close()
		return fmt.Errorf("apply migrations: %w", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("init repository: %w", err)
	}
	defer repo.Close()
	if cfg.SeedDemo {
		if err := repo.SeedDemoData(ctx); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	acting, err := repo.FindUserByLogin(ctx, cfg.UserLogin)
	if err != nil {
		return fmt.Errorf("resolve acting user %q: %w", cfg.UserLogin, err)
	}

	program := tea.NewProgram(update.NewModel(repo, acting.ToModel()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	log.Info().Msg("taskdash stopped")
	return nil
}
