package model

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRepeatNeverMatchesBeforeAnchor(t *testing.T) {
	rule := Repeat{Kind: RepeatDaily}
	anchor := day(2026, 2, 9)
	if rule.Matches(anchor, day(2026, 2, 8)) {
		t.Fatal("rule matched a day before its anchor")
	}
}

func TestRepeatAnchorDayAlwaysMatches(t *testing.T) {
	anchor := day(2026, 2, 9)
	for _, rule := range []Repeat{
		{Kind: RepeatNone},
		{Kind: RepeatWeekly},
		{Kind: RepeatCustom, Weekdays: []time.Weekday{time.Friday}},
	} {
		if !rule.Matches(anchor, anchor) {
			t.Fatalf("rule %q did not match its own anchor day", rule.Kind)
		}
	}
}

func TestRepeatWeeklyMatchesAnchorWeekday(t *testing.T) {
	rule := Repeat{Kind: RepeatWeekly}
	anchor := day(2024, 1, 1) // Monday
	if !rule.Matches(anchor, day(2024, 1, 8)) || !rule.Matches(anchor, day(2024, 1, 15)) {
		t.Fatal("weekly rule missed a Monday")
	}
	if rule.Matches(anchor, day(2024, 1, 2)) {
		t.Fatal("weekly rule matched a Tuesday")
	}
}

func TestRepeatMonthlySkipsShortMonths(t *testing.T) {
	rule := Repeat{Kind: RepeatMonthly}
	anchor := day(2026, 1, 31)
	if !rule.Matches(anchor, day(2026, 3, 31)) {
		t.Fatal("monthly rule missed March 31")
	}
	// February has no 31st and there is no clamping, so the whole month is
	// silent for a 31st-anchored rule.
	probe := day(2026, 2, 1)
	for probe.Month() == time.February {
		if rule.Matches(anchor, probe) {
			t.Fatalf("monthly rule matched %s in a short month", probe.Format(DateLayout))
		}
		probe = probe.AddDate(0, 0, 1)
	}
}

func TestRepeatCustomMatchesWeekdaySet(t *testing.T) {
	rule := Repeat{Kind: RepeatCustom, Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday}}
	anchor := day(2024, 1, 1) // Monday
	matched := 0
	for i := 0; i < 7; i++ {
		if rule.Matches(anchor, anchor.AddDate(0, 0, i)) {
			matched++
		}
	}
	if matched != 3 {
		t.Fatalf("expected 3 matches in a 7-day window, got %d", matched)
	}
}

func TestRepeatValidate(t *testing.T) {
	if err := (Repeat{Kind: RepeatKind("hourly")}).Validate(); !errors.Is(err, ErrInvalidRepeatKind) {
		t.Fatalf("expected ErrInvalidRepeatKind, got: %v", err)
	}
	if err := (Repeat{Kind: RepeatCustom}).Validate(); !errors.Is(err, ErrEmptyCustomDays) {
		t.Fatalf("expected ErrEmptyCustomDays, got: %v", err)
	}
	if err := (Repeat{Kind: RepeatCustom, Weekdays: []time.Weekday{time.Monday, time.Monday}}).Validate(); err == nil {
		t.Fatal("expected error for duplicate weekday, got nil")
	}
	if err := (Repeat{Kind: RepeatWeekly}).Validate(); err != nil {
		t.Fatalf("expected weekly rule to validate, got: %v", err)
	}
}
