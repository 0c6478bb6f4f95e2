package update

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/sereneflow/internal/agenda"
	"github.com/sandeepkv93/sereneflow/internal/model"
)

var quadrantRank = map[model.Quadrant]int{
	model.QuadrantA: 0,
	model.QuadrantB: 1,
	model.QuadrantC: 2,
	model.QuadrantD: 3,
}

// refreshMatrix rebuilds the single-day occurrence list grouped by quadrant.
func (m *Model) refreshMatrix() {
	items := agenda.Materialize(m.Store.Tasks(), m.Matrix.Date, m.Matrix.Date)
	sort.SliceStable(items, func(i, j int) bool {
		if quadrantRank[items[i].Quadrant] != quadrantRank[items[j].Quadrant] {
			return quadrantRank[items[i].Quadrant] < quadrantRank[items[j].Quadrant]
		}
		return items[i].OrderKey < items[j].OrderKey
	})
	m.Matrix.Items = items
	if m.Matrix.Cursor >= len(items) && len(items) > 0 {
		m.Matrix.Cursor = len(items) - 1
	}
	if m.Matrix.Cursor < 0 {
		m.Matrix.Cursor = 0
	}
}

func (m Model) handleMatrixKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Matrix.Cursor > 0 {
			m.Matrix.Cursor--
		}
		m.syncSelectedTaskToMatrixCursor()
	case "down", "j":
		if m.Matrix.Cursor < len(m.Matrix.Items)-1 {
			m.Matrix.Cursor++
		}
		m.syncSelectedTaskToMatrixCursor()
	case "h", "left":
		m.shiftMatrixDay(-1)
	case "l", "right":
		m.shiftMatrixDay(1)
	case " ", "enter":
		m = m.toggleOccurrence(m.currentMatrixItem())
	}
	return m
}

func (m *Model) shiftMatrixDay(delta int) {
	m.Matrix.Date = m.Matrix.Date.AddDate(0, 0, delta)
	m.refreshMatrix()
	m.Status = StatusBar{
		Text:    fmt.Sprintf("matrix date: %s", m.Matrix.Date.Format(model.DateLayout)),
		IsError: false,
	}
}

func (m *Model) syncSelectedTaskToMatrixCursor() {
	if selected, ok := m.currentMatrixItem(); ok {
		m.SelectedTaskID = selected.ID
	}
}

func (m Model) currentMatrixItem() (model.Task, bool) {
	if len(m.Matrix.Items) == 0 {
		return model.Task{}, false
	}
	if m.Matrix.Cursor < 0 || m.Matrix.Cursor >= len(m.Matrix.Items) {
		return model.Task{}, false
	}
	return m.Matrix.Items[m.Matrix.Cursor], true
}
