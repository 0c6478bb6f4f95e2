package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/sereneflow/internal/model"
	"github.com/sandeepkv93/sereneflow/internal/scheduler"
	"github.com/sandeepkv93/sereneflow/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForSchedulerCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.syncBubbleData()

	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			next := m.handlePaletteKey(typed)
			return next, nil
		}

		keyStr := typed.String()
		if m.CurrentView == ViewAgenda && m.Agenda.Capture && keyStr != "ctrl+c" {
			return m.handleQuickAddKey(typed), nil
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Agenda:
			m.CurrentView = ViewAgenda
			m.refreshAgenda()
			return m, nil
		case m.Keys.Matrix:
			m.CurrentView = ViewMatrix
			m.refreshMatrix()
			return m, nil
		case m.Keys.Goals:
			m.CurrentView = ViewGoals
			m.refreshGoals()
			return m, nil
		case m.Keys.Focus:
			m.CurrentView = ViewFocus
			m.bootstrapFocusTask()
			return m, nil
		case m.Keys.Medals:
			m.CurrentView = ViewMedals
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "esc":
			if m.Store.Notification() != nil {
				m.Store.DismissNotification()
				m.Status = StatusBar{Text: "reward dismissed", IsError: false}
				return m, nil
			}
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewAgenda:
			return m.handleAgendaKey(typed), nil
		case ViewMatrix:
			return m.handleMatrixKey(typed), nil
		case ViewGoals:
			return m.handleGoalsKey(typed), nil
		case ViewMedals:
			return m.handleMedalsKey(typed), nil
		case ViewFocus:
			next, cmd := m.handleFocusKey(typed)
			return next, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewFocus {
				m.bootstrapFocusTask()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick()
	case SchedulerEventMsg:
		if typed.Event.Kind == scheduler.EventKindDismissReward {
			m.Store.ExpireNotification(typed.Event.Seq)
		}
		if m.Scheduler != nil {
			return m, waitForSchedulerCmd(m.Scheduler.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	switch m.CurrentView {
	case ViewAgenda:
		leftPane = m.renderAgendaView()
	case ViewMatrix:
		leftPane = m.renderMatrixView()
	case ViewGoals:
		leftPane = m.renderGoalsView()
	case ViewFocus:
		leftPane = m.renderFocusView()
	case ViewMedals:
		leftPane = m.renderMedalsView()
	}
	rightPane := m.renderDetailPane() + m.renderCommandPalette() + m.renderHelpIfVisible()

	stats := m.Store.Stats()
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("sereneflow | view: %s | %s | seeds: %d", m.CurrentView, stats.ProfileName, stats.Seeds),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Reward:     m.renderRewardPopup(),
		Footer:     fmt.Sprintf("keys: %s agenda | %s matrix | %s goals | %s focus | %s medals | / cmd | %s help | %s quit", m.Keys.Agenda, m.Keys.Matrix, m.Keys.Goals, m.Keys.Focus, m.Keys.Medals, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewAgenda, ViewMatrix, ViewGoals, ViewFocus, ViewMedals:
		return true
	default:
		return false
	}
}

func waitForSchedulerCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SchedulerEventMsg{Event: ev}
	}
}

func occurrenceData(items []model.Task) []views.OccurrenceData {
	out := make([]views.OccurrenceData, 0, len(items))
	for _, item := range items {
		out = append(out, views.OccurrenceData{
			ID:        item.ID,
			Title:     item.Title,
			Date:      item.Date,
			Time:      item.StartTime,
			Quadrant:  string(item.Quadrant),
			Completed: item.Completed,
			Recurring: item.Repeat.IsRecurring(),
			GoalID:    item.GoalID,
		})
	}
	return out
}
