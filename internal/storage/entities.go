package storage

import "time"

type Task struct {
	ID           string
	Title        string
	Date         string
	StartTime    string
	EndTime      string
	Quadrant     string
	Completed    bool
	DurationMins int
	RepeatKind   string
	RepeatDays   string // comma-separated weekday indices, custom repeat only
	GoalID       string
	ParentID     string
	Dependencies string // comma-separated task ids
	OrderKey     int
	CreatedAt    time.Time
}

type Goal struct {
	ID             string
	Title          string
	TotalTasks     int
	CompletedTasks int
	Status         string
	Color          string
	Unit           string
	CreatedAt      time.Time
}

type Stats struct {
	Seeds       int
	FocusMins   int
	ProfileName string
}

type Medal struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Unlocked    bool
	Cost        int
}

type TaskListFilter struct {
	ParentID  string
	Completed *bool
	Limit     int
	Offset    int
}

type GoalListFilter struct {
	Status string
	Limit  int
	Offset int
}
