package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/sereneflow/internal/agenda"
	"github.com/sandeepkv93/sereneflow/internal/model"
)

func testStore() *Store {
	var n int
	return New(Config{
		Now:    func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) },
		NextID: func() string { n++; return fmt.Sprintf("t%d", n) },
	})
}

func mustCreateTask(t *testing.T, s *Store, in model.Task) model.Task {
	t.Helper()
	created, err := s.CreateTask(in)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return created
}

func mustCreateGoal(t *testing.T, s *Store, in model.Goal) model.Goal {
	t.Helper()
	created, err := s.CreateGoal(in)
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	return created
}

func TestCreateTaskValidation(t *testing.T) {
	s := testStore()
	_, err := s.CreateTask(model.Task{Title: "   ", Quadrant: model.QuadrantA})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty title, got: %v", err)
	}

	created := mustCreateTask(t, s, model.Task{Title: "Plan week", Quadrant: model.QuadrantB})
	if created.ID == "" {
		t.Fatal("expected assigned id")
	}
	if created.Date != "2024-01-01" {
		t.Fatalf("expected default date from clock, got %q", created.Date)
	}
	if created.Repeat.Kind != model.RepeatNone {
		t.Fatalf("expected repeat defaulted to none, got %q", created.Repeat.Kind)
	}
}

func TestUpdateTaskUnknownID(t *testing.T) {
	s := testStore()
	done := true
	if _, err := s.UpdateTask("missing", TaskPatch{Completed: &done}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestCompletionTransitionFiresReward(t *testing.T) {
	s := testStore()
	goal := mustCreateGoal(t, s, model.Goal{Title: "Read 5 books", TotalTasks: 5})
	task := mustCreateTask(t, s, model.Task{Title: "Finish chapter", Quadrant: model.QuadrantB, GoalID: goal.ID})

	done := true
	if _, err := s.UpdateTask(task.ID, TaskPatch{Completed: &done}); err != nil {
		t.Fatalf("complete task: %v", err)
	}

	updated := s.Goals()[0]
	if updated.CompletedTasks != 1 || updated.Status != model.GoalStatusActive {
		t.Fatalf("unexpected goal after completion: %#v", updated)
	}
	if got := s.Stats().Seeds; got != SeedsPerCompletion {
		t.Fatalf("expected %d seeds, got %d", SeedsPerCompletion, got)
	}

	n := s.Notification()
	if n == nil {
		t.Fatal("expected a reward notification")
	}
	if n.Increment != 20 || n.SeedsEarned != 10 {
		t.Fatalf("expected increment=20 seeds=10, got %+v", n)
	}
	if n.GoalSnapshot.CompletedTasks != 1 {
		t.Fatalf("snapshot must reflect post-increment goal, got %+v", n.GoalSnapshot)
	}
}

func TestNoRewardWithoutGoal(t *testing.T) {
	s := testStore()
	task := mustCreateTask(t, s, model.Task{Title: "Water plants", Quadrant: model.QuadrantD})

	done := true
	if _, err := s.UpdateTask(task.ID, TaskPatch{Completed: &done}); err != nil {
		t.Fatalf("complete task: %v", err)
	}
	if s.Notification() != nil {
		t.Fatal("completion without a goal must not notify")
	}
	if s.Stats().Seeds != 0 {
		t.Fatalf("completion without a goal must not grant seeds, got %d", s.Stats().Seeds)
	}
}

func TestUncompletingNeverRevokes(t *testing.T) {
	s := testStore()
	goal := mustCreateGoal(t, s, model.Goal{Title: "Read 5 books", TotalTasks: 5})
	task := mustCreateTask(t, s, model.Task{Title: "Finish chapter", Quadrant: model.QuadrantB, GoalID: goal.ID})

	done := true
	undone := false
	if _, err := s.UpdateTask(task.ID, TaskPatch{Completed: &done}); err != nil {
		t.Fatalf("complete task: %v", err)
	}
	if _, err := s.UpdateTask(task.ID, TaskPatch{Completed: &undone}); err != nil {
		t.Fatalf("uncomplete task: %v", err)
	}

	if got := s.Goals()[0].CompletedTasks; got != 1 {
		t.Fatalf("uncompleting must not decrement goal progress, got %d", got)
	}
	if got := s.Stats().Seeds; got != SeedsPerCompletion {
		t.Fatalf("uncompleting must not revoke seeds, got %d", got)
	}

	// Completing again is a fresh transition and earns again.
	if _, err := s.UpdateTask(task.ID, TaskPatch{Completed: &done}); err != nil {
		t.Fatalf("re-complete task: %v", err)
	}
	if got := s.Goals()[0].CompletedTasks; got != 2 {
		t.Fatalf("expected second completion to count, got %d", got)
	}
}

func TestGoalStatusTransitionAndOvershoot(t *testing.T) {
	s := testStore()
	goal := mustCreateGoal(t, s, model.Goal{Title: "Read 5 books", TotalTasks: 5})
	for i := 0; i < 4; i++ {
		if _, err := s.RecordTaskCompletion(goal.ID); err != nil {
			t.Fatalf("record completion %d: %v", i, err)
		}
	}

	got, err := s.RecordTaskCompletion(goal.ID)
	if err != nil {
		t.Fatalf("record fifth completion: %v", err)
	}
	if got.CompletedTasks != 5 || got.Status != model.GoalStatusCompleted {
		t.Fatalf("expected 5/5 completed, got %#v", got)
	}

	got, err = s.RecordTaskCompletion(goal.ID)
	if err != nil {
		t.Fatalf("record sixth completion: %v", err)
	}
	if got.CompletedTasks != 6 || got.Status != model.GoalStatusCompleted {
		t.Fatalf("expected uncapped 6/5 completed, got %#v", got)
	}
}

func TestDeleteGoalClearsTaskReferences(t *testing.T) {
	s := testStore()
	goal := mustCreateGoal(t, s, model.Goal{Title: "Read 5 books", TotalTasks: 5})
	task := mustCreateTask(t, s, model.Task{Title: "Finish chapter", Quadrant: model.QuadrantB, GoalID: goal.ID})

	if err := s.DeleteGoal(goal.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	if len(s.Goals()) != 0 {
		t.Fatal("goal not removed")
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("task must survive goal deletion: %#v", tasks)
	}
	if tasks[0].GoalID != "" {
		t.Fatalf("goal reference must be cleared, got %q", tasks[0].GoalID)
	}
}

func TestResolveOccurrenceIdempotent(t *testing.T) {
	s := testStore()
	template := mustCreateTask(t, s, model.Task{
		Title:    "Daily habit",
		Date:     "2024-01-01",
		Quadrant: model.QuadrantA,
		Repeat:   model.Repeat{Kind: model.RepeatDaily},
	})
	start, _ := time.Parse(model.DateLayout, "2024-01-02")
	occ := agenda.Materialize(s.Tasks(), start, start)[0]

	first, err := s.ResolveOccurrence(occ, true)
	if err != nil {
		t.Fatalf("resolve occurrence: %v", err)
	}
	if first.ParentID != template.ID || first.Repeat.Kind != model.RepeatNone || !first.Completed {
		t.Fatalf("unexpected resolved record: %#v", first)
	}

	second, err := s.ResolveOccurrence(occ, false)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second resolve must return the existing record, got %s want %s", second.ID, first.ID)
	}

	// Re-materializing the day yields the resolved record, not a new virtual.
	again := agenda.Materialize(s.Tasks(), start, start)
	if len(again) != 1 || again[0].ID != first.ID || !again[0].Completed {
		t.Fatalf("expected resolved record on re-materialization, got %#v", again)
	}
}

func TestResolveOnAnchorDayMutatesTemplate(t *testing.T) {
	s := testStore()
	template := mustCreateTask(t, s, model.Task{
		Title:    "Daily habit",
		Date:     "2024-01-01",
		Quadrant: model.QuadrantA,
		Repeat:   model.Repeat{Kind: model.RepeatDaily},
	})

	occ := template
	occ.ID = model.VirtualID(template.ID, template.Date)
	occ.ParentID = template.ID
	got, err := s.ResolveOccurrence(occ, true)
	if err != nil {
		t.Fatalf("resolve on anchor day: %v", err)
	}
	if got.ID != template.ID {
		t.Fatalf("anchor-day resolve must update the template, got %#v", got)
	}
	if len(s.Tasks()) != 1 {
		t.Fatalf("anchor-day resolve must not create a record, have %d tasks", len(s.Tasks()))
	}
	if !s.Tasks()[0].Completed {
		t.Fatal("template must be marked completed")
	}
}

func TestDeleteTemplateCascades(t *testing.T) {
	s := testStore()
	template := mustCreateTask(t, s, model.Task{
		Title:    "Daily habit",
		Date:     "2024-01-01",
		Quadrant: model.QuadrantA,
		Repeat:   model.Repeat{Kind: model.RepeatDaily},
	})
	start, _ := time.Parse(model.DateLayout, "2024-01-02")
	occ := agenda.Materialize(s.Tasks(), start, start)[0]
	if _, err := s.ResolveOccurrence(occ, true); err != nil {
		t.Fatalf("resolve occurrence: %v", err)
	}

	if err := s.DeleteTask(template.ID); err != nil {
		t.Fatalf("delete template: %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Fatalf("resolved records must not outlive their template: %#v", s.Tasks())
	}
	end, _ := time.Parse(model.DateLayout, "2024-01-07")
	if left := agenda.Materialize(s.Tasks(), start, end); len(left) != 0 {
		t.Fatalf("expected no orphaned occurrences, got %#v", left)
	}
}

func TestSubscribersSeeSnapshots(t *testing.T) {
	s := testStore()
	var seen []Snapshot
	s.Subscribe(func(snap Snapshot) { seen = append(seen, snap) })

	mustCreateTask(t, s, model.Task{Title: "Plan week", Quadrant: model.QuadrantB})
	if len(seen) != 1 || len(seen[0].Tasks) != 1 {
		t.Fatalf("expected one snapshot with one task, got %#v", seen)
	}

	// Mutating the snapshot must not leak into the store.
	seen[0].Tasks[0].Title = "mutated"
	if s.Tasks()[0].Title != "Plan week" {
		t.Fatal("snapshot mutation leaked into store state")
	}
}
