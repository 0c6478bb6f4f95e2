package model

import (
	"errors"
	"testing"
)

func TestGoalValidate(t *testing.T) {
	goal := Goal{ID: "g1", Title: "Read 5 books", TotalTasks: 5}
	if err := goal.Validate(); err != nil {
		t.Fatalf("expected valid goal, got error: %v", err)
	}

	goal.TotalTasks = 0
	if err := goal.Validate(); !errors.Is(err, ErrInvalidGoalTarget) {
		t.Fatalf("expected ErrInvalidGoalTarget, got: %v", err)
	}
}

func TestGoalRecomputeStatus(t *testing.T) {
	goal := Goal{ID: "g1", Title: "Read 5 books", TotalTasks: 5, CompletedTasks: 4}
	goal.RecomputeStatus()
	if goal.Status != GoalStatusActive {
		t.Fatalf("expected active at 4/5, got %q", goal.Status)
	}

	goal.CompletedTasks = 5
	goal.RecomputeStatus()
	if goal.Status != GoalStatusCompleted {
		t.Fatalf("expected completed at 5/5, got %q", goal.Status)
	}

	// Overshoot is allowed and keeps the goal completed.
	goal.CompletedTasks = 6
	goal.RecomputeStatus()
	if goal.Status != GoalStatusCompleted {
		t.Fatalf("expected completed at 6/5, got %q", goal.Status)
	}
}

func TestGoalCompletionIncrement(t *testing.T) {
	cases := []struct {
		total int
		want  int
	}{
		{5, 20},
		{3, 33},
		{7, 14},
		{1, 100},
	}
	for _, tc := range cases {
		goal := Goal{TotalTasks: tc.total}
		if got := goal.CompletionIncrement(); got != tc.want {
			t.Fatalf("increment for total %d: got %d want %d", tc.total, got, tc.want)
		}
	}
}

func TestGoalDisplayUnitDefault(t *testing.T) {
	goal := Goal{}
	if got := goal.DisplayUnit(); got != DefaultGoalUnit {
		t.Fatalf("expected default unit %q, got %q", DefaultGoalUnit, got)
	}
	goal.Unit = "books"
	if got := goal.DisplayUnit(); got != "books" {
		t.Fatalf("expected unit books, got %q", got)
	}
}
