package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/sereneflow/internal/model"
)

func (m Model) handleMedalsKey(msg tea.KeyMsg) Model {
	medals := m.Store.Stats().Medals
	switch msg.String() {
	case "up", "k":
		if m.Medals.Cursor > 0 {
			m.Medals.Cursor--
		}
	case "down", "j":
		if m.Medals.Cursor < len(medals)-1 {
			m.Medals.Cursor++
		}
	case "enter":
		medal, ok := m.currentMedal(medals)
		if !ok {
			return m
		}
		if err := m.Store.UnlockMedal(medal.ID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("medal unlocked: %s", medal.Name), IsError: false}
	}
	return m
}

func (m Model) currentMedal(medals []model.Medal) (model.Medal, bool) {
	if len(medals) == 0 {
		return model.Medal{}, false
	}
	if m.Medals.Cursor < 0 || m.Medals.Cursor >= len(medals) {
		return model.Medal{}, false
	}
	return medals[m.Medals.Cursor], true
}
