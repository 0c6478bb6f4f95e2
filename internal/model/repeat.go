package model

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

type RepeatKind string

const (
	RepeatNone    RepeatKind = "none"
	RepeatDaily   RepeatKind = "daily"
	RepeatWeekly  RepeatKind = "weekly"
	RepeatMonthly RepeatKind = "monthly"
	RepeatCustom  RepeatKind = "custom"
)

var (
	ErrInvalidRepeatKind = errors.New("model: invalid repeat kind")
	ErrEmptyCustomDays   = errors.New("model: custom repeat requires at least one weekday")
)

// Repeat is the recurrence rule attached to a task template. Weekdays is
// meaningful only for RepeatCustom.
type Repeat struct {
	Kind     RepeatKind
	Weekdays []time.Weekday
}

func (r Repeat) Validate() error {
	switch r.Kind {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
	case RepeatCustom:
		if len(r.Weekdays) == 0 {
			return ErrEmptyCustomDays
		}
		s := make([]int, 0, len(r.Weekdays))
		for _, d := range r.Weekdays {
			if d < time.Sunday || d > time.Saturday {
				return fmt.Errorf("model: weekday out of range: %d", d)
			}
			s = append(s, int(d))
		}
		sort.Ints(s)
		for i := 1; i < len(s); i++ {
			if s[i] == s[i-1] {
				return errors.New("model: duplicate weekday in repeat rule")
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRepeatKind, r.Kind)
	}
	return nil
}

func (r Repeat) IsRecurring() bool {
	return r.Kind != RepeatNone && r.Kind != ""
}

// Matches reports whether the rule generates an occurrence on day for a
// template anchored at anchor. The anchor day itself is always a match and
// days before the anchor never are. Monthly rules match on the anchor's
// day-of-month with no end-of-month clamping, so a rule anchored on the 31st
// produces nothing in shorter months.
func (r Repeat) Matches(anchor, day time.Time) bool {
	if day.Before(anchor) {
		return false
	}
	if sameDate(anchor, day) {
		return true
	}
	switch r.Kind {
	case RepeatDaily:
		return true
	case RepeatWeekly:
		return day.Weekday() == anchor.Weekday()
	case RepeatMonthly:
		return day.Day() == anchor.Day()
	case RepeatCustom:
		for _, w := range r.Weekdays {
			if day.Weekday() == w {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
