package store

import (
	"fmt"

	"github.com/sandeepkv93/sereneflow/internal/model"
	"github.com/sandeepkv93/sereneflow/internal/scheduler"
)

// fireCompletionReward runs the fixed completion side-effect sequence: goal
// counter update, seed grant, notification swap. A task whose goal reference
// no longer resolves earns nothing. The caller publishes.
func (s *Store) fireCompletionReward(goalID string) {
	idx := s.goalIndex(goalID)
	if idx < 0 {
		return
	}
	increment := s.goals[idx].CompletionIncrement()
	s.goals[idx].CompletedTasks++
	s.goals[idx].RecomputeStatus()
	goal := s.goals[idx]
	s.stats.Seeds += SeedsPerCompletion
	s.setNotification(model.RewardNotification{
		Increment:    increment,
		SeedsEarned:  SeedsPerCompletion,
		GoalSnapshot: goal,
		CreatedAt:    s.now().UTC(),
	})
}

// setNotification replaces any live notification and re-arms the auto-dismiss
// timer. Superseding cancels the previous pending dismissal so a stale expiry
// cannot clear the newer popup.
func (s *Store) setNotification(n model.RewardNotification) {
	s.cancelPendingDismiss()
	s.notification = &n
	if s.engine == nil {
		return
	}
	seq, err := s.engine.Schedule(scheduler.EventKindDismissReward, s.now().UTC().Add(s.dismissAfter))
	if err == nil {
		s.dismissSeq = seq
	}
}

// Notification returns the live reward popup record, or nil.
func (s *Store) Notification() *model.RewardNotification {
	if s.notification == nil {
		return nil
	}
	n := *s.notification
	return &n
}

// DismissNotification clears the popup early and cancels its expiry timer.
func (s *Store) DismissNotification() {
	if s.notification == nil {
		return
	}
	s.cancelPendingDismiss()
	s.notification = nil
	s.publish()
}

// ExpireNotification handles a fired dismiss event. Events whose sequence no
// longer matches the pending dismissal are stale and ignored.
func (s *Store) ExpireNotification(seq uint64) {
	if seq == 0 || seq != s.dismissSeq {
		return
	}
	s.dismissSeq = 0
	s.notification = nil
	s.publish()
}

func (s *Store) cancelPendingDismiss() {
	if s.dismissSeq == 0 {
		return
	}
	if s.engine != nil {
		s.engine.Cancel(s.dismissSeq)
	}
	s.dismissSeq = 0
}

// AddFocusTime credits completed focus minutes to the user's lifetime total.
func (s *Store) AddFocusTime(minutes int) {
	if minutes <= 0 {
		return
	}
	s.stats.FocusMins += minutes
	s.publish()
}

// AddSeeds adjusts the seed balance. Negative amounts spend.
func (s *Store) AddSeeds(amount int) {
	s.stats.Seeds += amount
	s.publish()
}

// UnlockMedal buys a locked medal with seeds. Medals without a cost unlock
// through play, not through this path.
func (s *Store) UnlockMedal(medalID string) error {
	for i, m := range s.stats.Medals {
		if m.ID != medalID {
			continue
		}
		if m.Unlocked || m.Cost <= 0 {
			return fmt.Errorf("%w: %s", model.ErrMedalLocked, medalID)
		}
		if s.stats.Seeds < m.Cost {
			return fmt.Errorf("%w: need %d", model.ErrInsufficientSeeds, m.Cost)
		}
		s.stats.Seeds -= m.Cost
		s.stats.Medals[i].Unlocked = true
		s.publish()
		return nil
	}
	return fmt.Errorf("%w: medal %s", ErrNotFound, medalID)
}
