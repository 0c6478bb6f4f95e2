package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "sereneflow-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

	task := Task{
		ID:         "task-1",
		Title:      "Draft the product brief",
		Date:       "2026-02-09",
		StartTime:  "09:00",
		EndTime:    "11:00",
		Quadrant:   "A",
		RepeatKind: "weekly",
		CreatedAt:  created,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != task.Title || got.Quadrant != "A" || got.RepeatKind != "weekly" {
		t.Fatalf("unexpected task get result: %#v", got)
	}

	task.Title = "Draft the product brief v2"
	task.Completed = true
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}

	done := true
	completed, err := repo.ListTasks(ctx, TaskListFilter{Completed: &done})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != task.ID || !completed[0].Completed {
		t.Fatalf("unexpected completed list: %#v", completed)
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := repo.GetTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestTaskListByParent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

	if err := repo.CreateTask(ctx, Task{ID: "tmpl", Title: "Habit", Date: "2026-02-01", Quadrant: "B", RepeatKind: "daily", CreatedAt: created}); err != nil {
		t.Fatalf("create template: %v", err)
	}
	if err := repo.CreateTask(ctx, Task{ID: "rec-1", Title: "Habit", Date: "2026-02-03", Quadrant: "B", RepeatKind: "none", ParentID: "tmpl", Completed: true, CreatedAt: created}); err != nil {
		t.Fatalf("create record: %v", err)
	}

	children, err := repo.ListTasks(ctx, TaskListFilter{ParentID: "tmpl"})
	if err != nil {
		t.Fatalf("list by parent: %v", err)
	}
	if len(children) != 1 || children[0].ID != "rec-1" {
		t.Fatalf("unexpected children: %#v", children)
	}
}

func TestGoalCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

	goal := Goal{ID: "g1", Title: "Read 5 books", TotalTasks: 5, Status: "active", Unit: "books", CreatedAt: created}
	if err := repo.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("create goal: %v", err)
	}

	goal.CompletedTasks = 5
	goal.Status = "completed"
	if err := repo.UpdateGoal(ctx, goal); err != nil {
		t.Fatalf("update goal: %v", err)
	}

	completed, err := repo.ListGoals(ctx, GoalListFilter{Status: "completed"})
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(completed) != 1 || completed[0].CompletedTasks != 5 {
		t.Fatalf("unexpected completed goals: %#v", completed)
	}

	if err := repo.DeleteGoal(ctx, "g1"); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	if _, err := repo.GetGoal(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestStatsAndMedalsRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.GetStats(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on fresh stats, got: %v", err)
	}
	if err := repo.PutStats(ctx, Stats{Seeds: 120, FocusMins: 340, ProfileName: "Explorer"}); err != nil {
		t.Fatalf("put stats: %v", err)
	}
	if err := repo.PutStats(ctx, Stats{Seeds: 130, FocusMins: 365, ProfileName: "Explorer"}); err != nil {
		t.Fatalf("upsert stats: %v", err)
	}
	stats, err := repo.GetStats(ctx)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.Seeds != 130 || stats.FocusMins != 365 {
		t.Fatalf("unexpected stats: %#v", stats)
	}

	if err := repo.PutMedal(ctx, Medal{ID: "m4", Name: "Quiet Years", Cost: 500}); err != nil {
		t.Fatalf("put medal: %v", err)
	}
	if err := repo.PutMedal(ctx, Medal{ID: "m4", Name: "Quiet Years", Cost: 500, Unlocked: true}); err != nil {
		t.Fatalf("upsert medal: %v", err)
	}
	medals, err := repo.ListMedals(ctx)
	if err != nil {
		t.Fatalf("list medals: %v", err)
	}
	if len(medals) != 1 || !medals[0].Unlocked {
		t.Fatalf("unexpected medals: %#v", medals)
	}
}
