// Package agenda expands task templates into the concrete occurrences a
// display window shows. Materialization is pure: it never touches the store
// and the same inputs always produce the same output.
package agenda

import (
	"sort"
	"time"

	"github.com/sandeepkv93/sereneflow/internal/model"
)

// Materialize walks every calendar day in [start, end] and emits, per
// template, at most one occurrence per day:
//
//   - the template itself on its anchor day,
//   - a persisted resolved record when one exists for (template, day),
//   - otherwise a derived virtual occurrence that is never pre-completed.
//
// Resolved records are emitted on their own anchor-day pass; the originating
// template's pass skips the day so the pair never shows twice. Templates with
// malformed anchor dates are skipped. Output order follows the day walk and
// the input template order; display ordering is applied separately.
func Materialize(tasks []model.Task, start, end time.Time) []model.Task {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return []model.Task{}
	}

	resolved := make(map[string]model.Task)
	for _, t := range tasks {
		if t.ParentID != "" {
			resolved[model.VirtualID(t.ParentID, t.Date)] = t
		}
	}

	out := make([]model.Task, 0)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dayStr := day.Format(model.DateLayout)
		for _, t := range tasks {
			if t.Date > dayStr {
				continue
			}
			anchor, err := t.Anchor()
			if err != nil {
				continue
			}
			if !t.Repeat.Matches(anchor, day) {
				continue
			}
			if t.Date == dayStr {
				// Anchor day is authoritative: the template (or a resolved
				// record, which anchors on its own date) emits itself.
				out = append(out, t)
				continue
			}
			if _, exists := resolved[model.VirtualID(t.ID, dayStr)]; exists {
				continue
			}
			out = append(out, virtualOccurrence(t, dayStr))
		}
	}
	return out
}

func virtualOccurrence(template model.Task, date string) model.Task {
	v := template
	v.ID = model.VirtualID(template.ID, date)
	v.ParentID = template.ID
	v.Date = date
	v.Completed = false
	return v
}

// SortByOrder orders a materialized slice by each occurrence's template order
// key, falling back to template id for a stable tie-break. Virtual and
// resolved occurrences sort by their originating template.
func SortByOrder(occurrences []model.Task) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		a, b := occurrences[i], occurrences[j]
		if a.OrderKey != b.OrderKey {
			return a.OrderKey < b.OrderKey
		}
		return templateID(a) < templateID(b)
	})
}

func templateID(t model.Task) string {
	if t.ParentID != "" {
		return t.ParentID
	}
	return t.ID
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
