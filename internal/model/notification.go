package model

import "time"

// RewardNotification is the ephemeral popup record produced when a task
// completion advances a goal. GoalSnapshot captures the goal after the
// increment so the popup can animate a before/after progress bar. At most one
// notification is live at a time.
type RewardNotification struct {
	Increment    int // percentage points of goal progress gained
	SeedsEarned  int
	GoalSnapshot Goal
	CreatedAt    time.Time
}
