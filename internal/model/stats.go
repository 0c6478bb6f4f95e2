package model

import (
	"errors"
	"strings"
)

var (
	ErrMedalLocked       = errors.New("model: medal cannot be unlocked")
	ErrInsufficientSeeds = errors.New("model: not enough seeds")
)

// Medal is a gamified achievement. Medals with a Cost are bought with seeds;
// the rest unlock through play.
type Medal struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Unlocked    bool
	Cost        int
}

func (m Medal) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("model: medal id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("model: medal name is required")
	}
	if m.Cost < 0 {
		return errors.New("model: medal cost must not be negative")
	}
	return nil
}

// UserStats is the single-user gamification state: the seed currency balance,
// accumulated focus minutes, and the medal shelf.
type UserStats struct {
	Seeds       int
	FocusMins   int
	Medals      []Medal
	ProfileName string
}

// DefaultMedals seeds a fresh profile's medal shelf.
func DefaultMedals() []Medal {
	return []Medal{
		{ID: "m1", Name: "Dawn Herald", Description: "Finish the first task before 08:00 seven days running", Icon: "Sunrise"},
		{ID: "m2", Name: "Deep Diver", Description: "Accumulate 100 hours of focus time", Icon: "Waves"},
		{ID: "m3", Name: "Four Quadrant Balance", Description: "Reach 80% completion across all four quadrants", Icon: "Grid"},
		{ID: "m4", Name: "Quiet Years", Description: "One year on the journey (500 seeds)", Icon: "Clock", Cost: 500},
		{ID: "m5", Name: "Morandi Craft", Description: "Collect five appearance themes (1000 seeds)", Icon: "Palette", Cost: 1000},
	}
}
