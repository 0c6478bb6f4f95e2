package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	CreateGoal(ctx context.Context, in Goal) error
	GetGoal(ctx context.Context, id string) (Goal, error)
	UpdateGoal(ctx context.Context, in Goal) error
	DeleteGoal(ctx context.Context, id string) error
	ListGoals(ctx context.Context, filter GoalListFilter) ([]Goal, error)

	GetStats(ctx context.Context) (Stats, error)
	PutStats(ctx context.Context, in Stats) error
	ListMedals(ctx context.Context) ([]Medal, error)
	PutMedal(ctx context.Context, in Medal) error

	// ReplaceAll swaps the entire persisted state in one transaction. The
	// snapshot persister uses it for write-through on store mutations.
	ReplaceAll(ctx context.Context, tasks []Task, goals []Goal, stats Stats, medals []Medal) error
}
