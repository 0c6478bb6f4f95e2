package store

import (
	"fmt"

	"github.com/sandeepkv93/sereneflow/internal/model"
)

// CreateGoal assigns a fresh id and starts the goal active with a zero
// counter.
func (s *Store) CreateGoal(in model.Goal) (model.Goal, error) {
	in.ID = s.nextID()
	in.CompletedTasks = 0
	in.Status = model.GoalStatusActive
	in.CreatedAt = s.now().UTC()
	if err := in.Validate(); err != nil {
		return model.Goal{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	s.goals = append(s.goals, in)
	s.publish()
	return in, nil
}

// GoalPatch carries the fields an update may change; nil fields are left
// untouched. The completion counter is not patchable: it only moves through
// RecordTaskCompletion.
type GoalPatch struct {
	Title      *string
	TotalTasks *int
	Color      *string
	Unit       *string
}

func (s *Store) UpdateGoal(id string, patch GoalPatch) (model.Goal, error) {
	idx := s.goalIndex(id)
	if idx < 0 {
		return model.Goal{}, fmt.Errorf("%w: goal %s", ErrNotFound, id)
	}
	next := s.goals[idx]
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.TotalTasks != nil {
		next.TotalTasks = *patch.TotalTasks
	}
	if patch.Color != nil {
		next.Color = *patch.Color
	}
	if patch.Unit != nil {
		next.Unit = *patch.Unit
	}
	if err := next.Validate(); err != nil {
		return model.Goal{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	next.RecomputeStatus()
	s.goals[idx] = next
	s.publish()
	return next, nil
}

// DeleteGoal removes the goal and clears the back-reference from every task
// that pointed at it. The tasks themselves survive.
func (s *Store) DeleteGoal(id string) error {
	idx := s.goalIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: goal %s", ErrNotFound, id)
	}
	s.goals = append(s.goals[:idx], s.goals[idx+1:]...)
	for i := range s.tasks {
		if s.tasks[i].GoalID == id {
			s.tasks[i].GoalID = ""
		}
	}
	s.publish()
	return nil
}

// RecordTaskCompletion advances the goal counter by exactly one and
// recomputes the status. The counter is never decremented and never clamped,
// so a goal can overshoot its target while staying completed.
func (s *Store) RecordTaskCompletion(goalID string) (model.Goal, error) {
	idx := s.goalIndex(goalID)
	if idx < 0 {
		return model.Goal{}, fmt.Errorf("%w: goal %s", ErrNotFound, goalID)
	}
	s.goals[idx].CompletedTasks++
	s.goals[idx].RecomputeStatus()
	goal := s.goals[idx]
	s.publish()
	return goal, nil
}

func (s *Store) goalIndex(id string) int {
	for i, g := range s.goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}
