package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/sereneflow/internal/model"
)

func (m *Model) refreshGoals() {
	m.Goals.Items = m.Store.Goals()
	if m.Goals.Cursor >= len(m.Goals.Items) && len(m.Goals.Items) > 0 {
		m.Goals.Cursor = len(m.Goals.Items) - 1
	}
	if m.Goals.Cursor < 0 {
		m.Goals.Cursor = 0
	}
}

func (m Model) handleGoalsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Goals.Cursor > 0 {
			m.Goals.Cursor--
		}
	case "down", "j":
		if m.Goals.Cursor < len(m.Goals.Items)-1 {
			m.Goals.Cursor++
		}
	case "x":
		goal, ok := m.currentGoal()
		if !ok {
			return m
		}
		if err := m.Store.DeleteGoal(goal.ID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.refreshGoals()
		m.refreshAgenda()
		m.refreshMatrix()
		m.Status = StatusBar{Text: fmt.Sprintf("deleted goal: %s", goal.Title), IsError: false}
	}
	return m
}

func (m Model) currentGoal() (model.Goal, bool) {
	if len(m.Goals.Items) == 0 {
		return model.Goal{}, false
	}
	if m.Goals.Cursor < 0 || m.Goals.Cursor >= len(m.Goals.Items) {
		return model.Goal{}, false
	}
	return m.Goals.Items[m.Goals.Cursor], true
}
