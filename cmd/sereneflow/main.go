package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/sereneflow/internal/scheduler"
	"github.com/sandeepkv93/sereneflow/internal/storage"
	"github.com/sandeepkv93/sereneflow/internal/store"
	"github.com/sandeepkv93/sereneflow/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sereneflow failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	ctx := context.Background()

	repo, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	st := store.New(store.Config{
		Engine:       engine,
		DismissAfter: time.Duration(cfg.RewardDismissSeconds) * time.Second,
		Seeds:        cfg.StartingSeeds,
		ProfileName:  cfg.ProfileName,
	})

	tasks, goals, stats, err := storage.LoadState(ctx, repo)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if len(tasks) > 0 || len(goals) > 0 || stats.ProfileName != "" {
		st.Load(tasks, goals, stats)
	}

	persister := storage.NewPersister(repo)
	st.Subscribe(func(snap store.Snapshot) {
		if err := persister.Apply(ctx, snap.Tasks, snap.Goals, snap.Stats); err != nil {
			fmt.Fprintf(os.Stderr, "persist state: %v\n", err)
		}
	})

	program := tea.NewProgram(update.NewModelWithConfig(st, engine, cfg))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
