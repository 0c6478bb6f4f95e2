package update

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/sereneflow/internal/agenda"
	"github.com/sandeepkv93/sereneflow/internal/model"
	"github.com/sandeepkv93/sereneflow/internal/store"
)

func (m *Model) refreshAgenda() {
	start := m.Agenda.FocusDate
	end := start.AddDate(0, 0, m.Agenda.WindowDays-1)
	items := agenda.Materialize(m.Store.Tasks(), start, end)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return items[i].OrderKey < items[j].OrderKey
	})
	m.Agenda.Items = items
	if m.Agenda.Cursor >= len(items) && len(items) > 0 {
		m.Agenda.Cursor = len(items) - 1
	}
	if m.Agenda.Cursor < 0 {
		m.Agenda.Cursor = 0
	}
	m.syncSelectedTaskToAgendaCursor()
}

func (m Model) handleAgendaKey(msg tea.KeyMsg) Model {
	if m.Agenda.Capture {
		return m.handleQuickAddKey(msg)
	}
	switch msg.String() {
	case "up", "k":
		if m.Agenda.Cursor > 0 {
			m.Agenda.Cursor--
		}
		m.syncSelectedTaskToAgendaCursor()
	case "down", "j":
		if m.Agenda.Cursor < len(m.Agenda.Items)-1 {
			m.Agenda.Cursor++
		}
		m.syncSelectedTaskToAgendaCursor()
	case "h", "left":
		m.shiftAgendaWindow(-1)
	case "l", "right":
		m.shiftAgendaWindow(1)
	case " ", "enter":
		m = m.toggleOccurrence(m.currentAgendaItem())
	case "K":
		m = m.reorderAgenda(-1)
	case "J":
		m = m.reorderAgenda(1)
	case "a":
		m.Agenda.Capture = true
		m.quickAddInput.Focus()
		m.quickAddInput.SetValue("")
		m.Status = StatusBar{Text: "quick add active", IsError: false}
	case "x":
		m = m.deleteSelectedTemplate()
	}
	return m
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Agenda.Capture = false
		m.quickAddInput.Blur()
		m.quickAddInput.SetValue("")
		m.Status = StatusBar{Text: "quick add closed", IsError: false}
	case "enter":
		title := strings.TrimSpace(m.quickAddInput.Value())
		if title == "" {
			m.Status = StatusBar{Text: "task title is empty", IsError: true}
			return m
		}
		created, err := m.Store.CreateTask(model.Task{
			Title:    title,
			Quadrant: model.QuadrantB,
		})
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.quickAddInput.SetValue("")
		m.Agenda.Capture = false
		m.quickAddInput.Blur()
		m.refreshAgenda()
		m.refreshMatrix()
		m.Status = StatusBar{Text: fmt.Sprintf("added task: %s", created.Title), IsError: false}
	default:
		if msg.Type == tea.KeyRunes {
			m.quickAddInput.SetValue(m.quickAddInput.Value() + string(msg.Runes))
			return m
		}
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		_ = cmd
	}
	return m
}

// toggleOccurrence flips completion. Virtual occurrences get promoted into
// persisted records first; everything else is a plain template update.
func (m Model) toggleOccurrence(item model.Task, ok bool) Model {
	if !ok {
		return m
	}
	var err error
	if item.IsVirtual() {
		_, err = m.Store.ResolveOccurrence(item, !item.Completed)
	} else {
		next := !item.Completed
		_, err = m.Store.UpdateTask(item.ID, store.TaskPatch{Completed: &next})
	}
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.refreshAgenda()
	m.refreshMatrix()
	m.refreshGoals()
	state := "completed"
	if item.Completed {
		state = "reopened"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("task %s: %s", state, item.Title), IsError: false}
	return m
}

func (m Model) reorderAgenda(delta int) Model {
	active, ok := m.currentAgendaItem()
	if !ok {
		return m
	}
	over := m.Agenda.Cursor + delta
	if over < 0 || over >= len(m.Agenda.Items) {
		return m
	}
	if err := m.Store.Reorder(active.ID, m.Agenda.Items[over].ID); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Agenda.Cursor = over
	m.refreshAgenda()
	m.Status = StatusBar{Text: fmt.Sprintf("reordered: %s", active.Title), IsError: false}
	return m
}

func (m Model) deleteSelectedTemplate() Model {
	item, ok := m.currentAgendaItem()
	if !ok {
		return m
	}
	target := item.ID
	if item.ParentID != "" {
		target = item.ParentID
	}
	if err := m.Store.DeleteTask(target); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.refreshAgenda()
	m.refreshMatrix()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted task: %s", item.Title), IsError: false}
	return m
}

func (m *Model) shiftAgendaWindow(delta int) {
	m.Agenda.FocusDate = m.Agenda.FocusDate.AddDate(0, 0, delta*m.Agenda.WindowDays)
	m.refreshAgenda()
	m.Status = StatusBar{
		Text:    fmt.Sprintf("agenda window: %s", m.Agenda.FocusDate.Format(model.DateLayout)),
		IsError: false,
	}
}

func (m *Model) syncSelectedTaskToAgendaCursor() {
	if selected, ok := m.currentAgendaItem(); ok {
		m.SelectedTaskID = selected.ID
	}
}

func (m Model) currentAgendaItem() (model.Task, bool) {
	if len(m.Agenda.Items) == 0 {
		return model.Task{}, false
	}
	if m.Agenda.Cursor < 0 || m.Agenda.Cursor >= len(m.Agenda.Items) {
		return model.Task{}, false
	}
	return m.Agenda.Items[m.Agenda.Cursor], true
}
