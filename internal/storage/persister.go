package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/sereneflow/internal/model"
)

// LoadState reads the persisted application state into model types. A fresh
// database yields empty slices and zero stats without error.
func LoadState(ctx context.Context, repo Repository) ([]model.Task, []model.Goal, model.UserStats, error) {
	records, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		return nil, nil, model.UserStats{}, fmt.Errorf("load tasks: %w", err)
	}
	tasks := make([]model.Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, taskModel(rec))
	}

	goalRecords, err := repo.ListGoals(ctx, GoalListFilter{})
	if err != nil {
		return nil, nil, model.UserStats{}, fmt.Errorf("load goals: %w", err)
	}
	goals := make([]model.Goal, 0, len(goalRecords))
	for _, rec := range goalRecords {
		goals = append(goals, goalModel(rec))
	}

	var stats model.UserStats
	rec, err := repo.GetStats(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, nil, model.UserStats{}, fmt.Errorf("load stats: %w", err)
	}
	stats.Seeds = rec.Seeds
	stats.FocusMins = rec.FocusMins
	stats.ProfileName = rec.ProfileName

	medalRecords, err := repo.ListMedals(ctx)
	if err != nil {
		return nil, nil, model.UserStats{}, fmt.Errorf("load medals: %w", err)
	}
	for _, m := range medalRecords {
		stats.Medals = append(stats.Medals, medalModel(m))
	}
	return tasks, goals, stats, nil
}

// Persister writes store snapshots through to the repository. It is the
// storage-side subscriber the store publishes to.
type Persister struct {
	repo Repository
}

func NewPersister(repo Repository) *Persister {
	return &Persister{repo: repo}
}

func (p *Persister) Apply(ctx context.Context, tasks []model.Task, goals []model.Goal, stats model.UserStats) error {
	taskRecords := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		taskRecords = append(taskRecords, taskRecord(t))
	}
	goalRecords := make([]Goal, 0, len(goals))
	for _, g := range goals {
		goalRecords = append(goalRecords, goalRecord(g))
	}
	medalRecords := make([]Medal, 0, len(stats.Medals))
	for _, m := range stats.Medals {
		medalRecords = append(medalRecords, medalRecord(m))
	}
	statsRecord := Stats{Seeds: stats.Seeds, FocusMins: stats.FocusMins, ProfileName: stats.ProfileName}
	return p.repo.ReplaceAll(ctx, taskRecords, goalRecords, statsRecord, medalRecords)
}
