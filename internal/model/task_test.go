package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{
		ID:        "task-1",
		Title:     "Draft the product brief",
		Date:      "2026-02-09",
		StartTime: "09:00",
		EndTime:   "11:00",
		Quadrant:  QuadrantA,
		Repeat:    Repeat{Kind: RepeatNone},
		CreatedAt: time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC),
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsBadFields(t *testing.T) {
	base := Task{
		ID:       "task-1",
		Title:    "Valid title",
		Date:     "2026-02-09",
		Quadrant: QuadrantB,
		Repeat:   Repeat{Kind: RepeatNone},
	}

	task := base
	task.Title = "   "
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for empty title, got nil")
	}

	task = base
	task.Date = "02/09/2026"
	if err := task.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got: %v", err)
	}

	task = base
	task.Quadrant = Quadrant("E")
	if err := task.Validate(); !errors.Is(err, ErrInvalidQuadrant) {
		t.Fatalf("expected ErrInvalidQuadrant, got: %v", err)
	}

	task = base
	task.StartTime = "9am"
	if err := task.Validate(); !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got: %v", err)
	}
}

func TestTaskDurationExplicitWins(t *testing.T) {
	task := Task{DurationMins: 45, StartTime: "09:00", EndTime: "11:00"}
	if got := task.Duration(); got != 45 {
		t.Fatalf("expected explicit duration 45, got %d", got)
	}
}

func TestTaskDurationDerivedFromClock(t *testing.T) {
	task := Task{StartTime: "09:30", EndTime: "11:00"}
	if got := task.Duration(); got != 90 {
		t.Fatalf("expected derived duration 90, got %d", got)
	}
}

func TestTaskDurationWrapsPastMidnight(t *testing.T) {
	task := Task{StartTime: "23:00", EndTime: "01:00"}
	if got := task.Duration(); got != 120 {
		t.Fatalf("expected wrapped duration 120, got %d", got)
	}
}

func TestTaskVirtualIdentity(t *testing.T) {
	virtual := Task{ID: VirtualID("42", "2026-02-09"), ParentID: "42", Date: "2026-02-09"}
	if !virtual.IsVirtual() {
		t.Fatal("expected virtual occurrence to report IsVirtual")
	}

	resolved := Task{ID: "77", ParentID: "42", Date: "2026-02-09"}
	if resolved.IsVirtual() {
		t.Fatal("resolved occurrence must not report IsVirtual")
	}

	template := Task{ID: "42", Date: "2026-02-09"}
	if template.IsVirtual() {
		t.Fatal("template must not report IsVirtual")
	}
}
