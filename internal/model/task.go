package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	ErrInvalidQuadrant = errors.New("model: invalid task quadrant")
	ErrInvalidDate     = errors.New("model: invalid task date")
	ErrInvalidClock    = errors.New("model: invalid task time")
)

type Quadrant string

const (
	QuadrantA Quadrant = "A"
	QuadrantB Quadrant = "B"
	QuadrantC Quadrant = "C"
	QuadrantD Quadrant = "D"
)

func (q Quadrant) IsValid() bool {
	switch q {
	case QuadrantA, QuadrantB, QuadrantC, QuadrantD:
		return true
	default:
		return false
	}
}

// Task is a user-authored template. A template with a non-none repeat rule
// stands in for every occurrence it generates; concrete per-day records carry
// ParentID back to the template they were resolved from.
type Task struct {
	ID           string
	Title        string
	Date         string // YYYY-MM-DD anchor date
	StartTime    string // HH:mm, optional
	EndTime      string // HH:mm, optional
	Quadrant     Quadrant
	Completed    bool
	DurationMins int
	Repeat       Repeat
	GoalID       string
	ParentID     string
	Dependencies []string
	OrderKey     int
	CreatedAt    time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, t.Date)
	}
	if !t.Quadrant.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidQuadrant, t.Quadrant)
	}
	if t.StartTime != "" {
		if _, err := time.Parse(ClockLayout, t.StartTime); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidClock, t.StartTime)
		}
	}
	if t.EndTime != "" {
		if _, err := time.Parse(ClockLayout, t.EndTime); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidClock, t.EndTime)
		}
	}
	if t.DurationMins < 0 {
		return fmt.Errorf("model: task duration must not be negative: %d", t.DurationMins)
	}
	return t.Repeat.Validate()
}

// Anchor returns the template's anchor date at midnight UTC.
func (t Task) Anchor() (time.Time, error) {
	day, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, t.Date)
	}
	return day, nil
}

// Duration reports the task length in minutes. An explicit duration wins;
// otherwise it is derived from the start/end clock times, where an end time
// earlier than the start is taken to wrap past midnight.
func (t Task) Duration() int {
	if t.DurationMins > 0 {
		return t.DurationMins
	}
	if t.StartTime == "" || t.EndTime == "" {
		return 0
	}
	start, err := time.Parse(ClockLayout, t.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse(ClockLayout, t.EndTime)
	if err != nil {
		return 0
	}
	mins := int(end.Sub(start).Minutes())
	if mins < 0 {
		mins += 24 * 60
	}
	return mins
}

// IsVirtual reports whether the task is a derived occurrence that has not
// been persisted yet. Virtual ids take the form "{templateID}-{date}".
func (t Task) IsVirtual() bool {
	return t.ParentID != "" && t.ID == VirtualID(t.ParentID, t.Date)
}

// VirtualID builds the occurrence id for a template on a given day.
func VirtualID(templateID, date string) string {
	return templateID + "-" + date
}
