package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/sandeepkv93/sereneflow/internal/model"
)

// Reorder moves the template behind activeID to the position of the template
// behind overID in the manual sibling order. Both ids are resolved to their
// template identity first, so dragging two virtual occurrences reorders the
// templates themselves and the new order survives re-materialization.
// Reordering within the same template is a no-op.
func (s *Store) Reorder(activeID, overID string) error {
	active := s.resolveTemplateID(activeID)
	if active == "" {
		return fmt.Errorf("%w: occurrence %s", ErrNotFound, activeID)
	}
	over := s.resolveTemplateID(overID)
	if over == "" {
		return fmt.Errorf("%w: occurrence %s", ErrNotFound, overID)
	}
	if active == over {
		return nil
	}

	ids := s.templateOrder()
	from, to := indexOf(ids, active), indexOf(ids, over)
	if from < 0 || to < 0 {
		return fmt.Errorf("%w: not a template", ErrNotFound)
	}
	moved := ids[from]
	ids = append(ids[:from], ids[from+1:]...)
	ids = append(ids[:to], append([]string{moved}, ids[to:]...)...)

	keys := make(map[string]int, len(ids))
	for pos, id := range ids {
		keys[id] = pos
	}
	for i := range s.tasks {
		owner := s.tasks[i].ID
		if s.tasks[i].ParentID != "" {
			owner = s.tasks[i].ParentID
		}
		if key, ok := keys[owner]; ok {
			s.tasks[i].OrderKey = key
		}
	}
	s.publish()
	return nil
}

// resolveTemplateID maps any occurrence id to the owning template id: a
// template maps to itself, a resolved record to its parent, and a virtual id
// of the form "{templateID}-{date}" to its prefix.
func (s *Store) resolveTemplateID(id string) string {
	if idx := s.taskIndex(id); idx >= 0 {
		if parent := s.tasks[idx].ParentID; parent != "" {
			return parent
		}
		return id
	}
	const datePartLen = len(model.DateLayout) + 1
	if len(id) <= datePartLen {
		return ""
	}
	prefix, datePart := id[:len(id)-datePartLen], id[len(id)-datePartLen:]
	if datePart[0] != '-' {
		return ""
	}
	if _, err := time.Parse(model.DateLayout, datePart[1:]); err != nil {
		return ""
	}
	if s.taskIndex(prefix) < 0 {
		return ""
	}
	return prefix
}

// templateOrder lists top-level template ids by their current manual order.
func (s *Store) templateOrder() []string {
	type entry struct {
		id  string
		key int
		pos int
	}
	entries := make([]entry, 0, len(s.tasks))
	for i, t := range s.tasks {
		if t.ParentID != "" {
			continue
		}
		entries = append(entries, entry{id: t.ID, key: t.OrderKey, pos: i})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].key != entries[j].key {
			return entries[i].key < entries[j].key
		}
		return entries[i].pos < entries[j].pos
	})
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}
	return ids
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
