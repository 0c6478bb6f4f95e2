package store

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/sereneflow/internal/agenda"
	"github.com/sandeepkv93/sereneflow/internal/model"
)

func TestReorderAcrossVirtualOccurrences(t *testing.T) {
	s := testStore()
	first := mustCreateTask(t, s, model.Task{
		Title: "Morning run", Date: "2024-01-01", Quadrant: model.QuadrantC,
		Repeat: model.Repeat{Kind: model.RepeatDaily},
	})
	second := mustCreateTask(t, s, model.Task{
		Title: "Journal", Date: "2024-01-01", Quadrant: model.QuadrantB,
		Repeat: model.Repeat{Kind: model.RepeatDaily},
	})

	day, _ := time.Parse(model.DateLayout, "2024-01-05")
	occs := agenda.Materialize(s.Tasks(), day, day)
	agenda.SortByOrder(occs)
	if occs[0].ParentID != first.ID {
		t.Fatalf("unexpected initial order: %#v", occs)
	}

	// Drag second's virtual occurrence onto first's: the templates reorder.
	if err := s.Reorder(occs[1].ID, occs[0].ID); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	// The new order holds for any future day.
	future, _ := time.Parse(model.DateLayout, "2024-02-10")
	occs = agenda.Materialize(s.Tasks(), future, future)
	agenda.SortByOrder(occs)
	if occs[0].ParentID != second.ID || occs[1].ParentID != first.ID {
		t.Fatalf("reorder did not persist at template level: %#v", occs)
	}
}

func TestReorderSameTemplateIsNoop(t *testing.T) {
	s := testStore()
	template := mustCreateTask(t, s, model.Task{
		Title: "Morning run", Date: "2024-01-01", Quadrant: model.QuadrantC,
		Repeat: model.Repeat{Kind: model.RepeatDaily},
	})

	before := s.Tasks()
	if err := s.Reorder(model.VirtualID(template.ID, "2024-01-03"), model.VirtualID(template.ID, "2024-01-04")); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	after := s.Tasks()
	for i := range before {
		if before[i].OrderKey != after[i].OrderKey {
			t.Fatal("same-template reorder must not change order keys")
		}
	}
}

func TestReorderUnknownOccurrence(t *testing.T) {
	s := testStore()
	mustCreateTask(t, s, model.Task{Title: "Morning run", Quadrant: model.QuadrantC})
	if err := s.Reorder("nope", "also-nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestReorderPropagatesToResolvedRecords(t *testing.T) {
	s := testStore()
	first := mustCreateTask(t, s, model.Task{
		Title: "Morning run", Date: "2024-01-01", Quadrant: model.QuadrantC,
		Repeat: model.Repeat{Kind: model.RepeatDaily},
	})
	second := mustCreateTask(t, s, model.Task{
		Title: "Journal", Date: "2024-01-01", Quadrant: model.QuadrantB,
		Repeat: model.Repeat{Kind: model.RepeatDaily},
	})
	day, _ := time.Parse(model.DateLayout, "2024-01-05")
	occ := agenda.Materialize([]model.Task{first}, day, day)[0]
	record, err := s.ResolveOccurrence(occ, true)
	if err != nil {
		t.Fatalf("resolve occurrence: %v", err)
	}

	if err := s.Reorder(second.ID, first.ID); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	for _, task := range s.Tasks() {
		if task.ID != record.ID {
			continue
		}
		parentKey := -1
		for _, other := range s.Tasks() {
			if other.ID == first.ID {
				parentKey = other.OrderKey
			}
		}
		if task.OrderKey != parentKey {
			t.Fatalf("resolved record key %d must follow template key %d", task.OrderKey, parentKey)
		}
	}
}
