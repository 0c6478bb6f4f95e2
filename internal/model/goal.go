package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidGoalTarget = errors.New("model: goal target must be positive")

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
)

const DefaultGoalUnit = "times"

// Goal is a long-running target counted in completed tasks. CompletedTasks is
// never clamped to TotalTasks; a goal can overshoot and stay completed.
type Goal struct {
	ID             string
	Title          string
	TotalTasks     int
	CompletedTasks int
	Status         GoalStatus
	Color          string
	Unit           string
	CreatedAt      time.Time
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return errors.New("model: goal id is required")
	}
	if strings.TrimSpace(g.Title) == "" {
		return errors.New("model: goal title is required")
	}
	if g.TotalTasks <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidGoalTarget, g.TotalTasks)
	}
	if g.CompletedTasks < 0 {
		return fmt.Errorf("model: goal completed count must not be negative: %d", g.CompletedTasks)
	}
	return nil
}

// RecomputeStatus derives the status from the counters. Status is never set
// independently of a counter change.
func (g *Goal) RecomputeStatus() {
	if g.CompletedTasks >= g.TotalTasks {
		g.Status = GoalStatusCompleted
		return
	}
	g.Status = GoalStatusActive
}

// ProgressPercent is the display progress, uncapped above 100 on overshoot.
func (g Goal) ProgressPercent() int {
	if g.TotalTasks <= 0 {
		return 0
	}
	return int(float64(g.CompletedTasks) / float64(g.TotalTasks) * 100)
}

// CompletionIncrement is the fixed per-event progress share credited when a
// linked task completes: round(100/TotalTasks). It is intentionally not a
// recomputation of completed/total, so repeated completions can drift past
// or short of 100 by rounding.
func (g Goal) CompletionIncrement() int {
	if g.TotalTasks <= 0 {
		return 0
	}
	return int(100.0/float64(g.TotalTasks) + 0.5)
}

func (g Goal) DisplayUnit() string {
	if strings.TrimSpace(g.Unit) == "" {
		return DefaultGoalUnit
	}
	return g.Unit
}
