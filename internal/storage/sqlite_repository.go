package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

const taskColumns = `id, title, date, start_time, end_time, quadrant, completed, duration_mins, repeat_kind, repeat_days, goal_id, parent_id, dependencies, order_key, created_at`

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		taskArgs(in)...,
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, date = ?, start_time = ?, end_time = ?, quadrant = ?, completed = ?,
			duration_mins = ?, repeat_kind = ?, repeat_days = ?, goal_id = ?, parent_id = ?,
			dependencies = ?, order_key = ?
		WHERE id = ?`,
		in.Title, in.Date, in.StartTime, in.EndTime, in.Quadrant, boolInt(in.Completed),
		in.DurationMins, in.RepeatKind, in.RepeatDays, in.GoalID, in.ParentID,
		in.Dependencies, in.OrderKey, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.ParentID != "" {
		clauses = append(clauses, "parent_id = ?")
		args = append(args, filter.ParentID)
	}
	if filter.Completed != nil {
		clauses = append(clauses, "completed = ?")
		args = append(args, boolInt(*filter.Completed))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY order_key ASC, created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

const goalColumns = `id, title, total_tasks, completed_tasks, status, color, unit, created_at`

func (r *SQLiteRepository) CreateGoal(ctx context.Context, in Goal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.TotalTasks, in.CompletedTasks, in.Status, in.Color, in.Unit, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, id string) (Goal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	item, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Goal{}, ErrNotFound
		}
		return Goal{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, in Goal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals
		SET title = ?, total_tasks = ?, completed_tasks = ?, status = ?, color = ?, unit = ?
		WHERE id = ?`,
		in.Title, in.TotalTasks, in.CompletedTasks, in.Status, in.Color, in.Unit, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, filter GoalListFilter) ([]Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals`
	args := make([]any, 0, 3)
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Goal, 0)
	for rows.Next() {
		item, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetStats(ctx context.Context) (Stats, error) {
	row := r.db.QueryRowContext(ctx, `SELECT seeds, focus_mins, profile_name FROM stats WHERE id = 1`)
	var out Stats
	if err := row.Scan(&out.Seeds, &out.FocusMins, &out.ProfileName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Stats{}, ErrNotFound
		}
		return Stats{}, err
	}
	return out, nil
}

func (r *SQLiteRepository) PutStats(ctx context.Context, in Stats) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stats (id, seeds, focus_mins, profile_name) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET seeds = excluded.seeds, focus_mins = excluded.focus_mins, profile_name = excluded.profile_name`,
		in.Seeds, in.FocusMins, in.ProfileName,
	)
	return err
}

func (r *SQLiteRepository) ListMedals(ctx context.Context) ([]Medal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, icon, unlocked, cost FROM medals ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Medal, 0)
	for rows.Next() {
		var m Medal
		var unlocked int
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Icon, &unlocked, &m.Cost); err != nil {
			return nil, err
		}
		m.Unlocked = unlocked == 1
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) PutMedal(ctx context.Context, in Medal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medals (id, name, description, icon, unlocked, cost) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, description = excluded.description,
			icon = excluded.icon, unlocked = excluded.unlocked, cost = excluded.cost`,
		in.ID, in.Name, in.Description, in.Icon, boolInt(in.Unlocked), in.Cost,
	)
	return err
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, tasks []Task, goals []Goal, stats Stats, medals []Medal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"tasks", "goals", "medals"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for _, t := range tasks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (`+taskColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, taskArgs(t)...); err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}
	for _, g := range goals {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO goals (`+goalColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.Title, g.TotalTasks, g.CompletedTasks, g.Status, g.Color, g.Unit, mustTime(g.CreatedAt)); err != nil {
			return fmt.Errorf("insert goal %s: %w", g.ID, err)
		}
	}
	for _, m := range medals {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO medals (id, name, description, icon, unlocked, cost) VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID, m.Name, m.Description, m.Icon, boolInt(m.Unlocked), m.Cost); err != nil {
			return fmt.Errorf("insert medal %s: %w", m.ID, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO stats (id, seeds, focus_mins, profile_name) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET seeds = excluded.seeds, focus_mins = excluded.focus_mins, profile_name = excluded.profile_name`,
		stats.Seeds, stats.FocusMins, stats.ProfileName); err != nil {
		return fmt.Errorf("upsert stats: %w", err)
	}
	return tx.Commit()
}

func taskArgs(in Task) []any {
	return []any{
		in.ID, in.Title, in.Date, in.StartTime, in.EndTime, in.Quadrant, boolInt(in.Completed),
		in.DurationMins, in.RepeatKind, in.RepeatDays, in.GoalID, in.ParentID,
		in.Dependencies, in.OrderKey, mustTime(in.CreatedAt),
	}
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var completed int
	var created string
	if err := s.Scan(
		&out.ID, &out.Title, &out.Date, &out.StartTime, &out.EndTime, &out.Quadrant, &completed,
		&out.DurationMins, &out.RepeatKind, &out.RepeatDays, &out.GoalID, &out.ParentID,
		&out.Dependencies, &out.OrderKey, &created,
	); err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	return out, nil
}

func scanGoal(s scanner) (Goal, error) {
	var out Goal
	var created string
	if err := s.Scan(&out.ID, &out.Title, &out.TotalTasks, &out.CompletedTasks, &out.Status, &out.Color, &out.Unit, &created); err != nil {
		return Goal{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Goal{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
