package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/sereneflow/internal/model"
	"github.com/sandeepkv93/sereneflow/internal/views"
)

func (m *Model) initBubbleComponents() {
	m.goalList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.goalList.Title = "Goals (list)"
	m.goalList.SetShowHelp(false)
	m.goalList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Time", Width: 7},
		{Title: "Q", Width: 3},
		{Title: "Done", Width: 5},
		{Title: "Title", Width: 22},
	}
	m.agendaTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.focusProgress = progress.New(progress.WithDefaultGradient())
	m.goalProgress = progress.New(progress.WithDefaultGradient())

	m.helpModel = help.New()
	m.detailViewport = viewport.New(54, 12)
}

func (m *Model) syncBubbleData() {
	goalItems := make([]list.Item, 0, len(m.Goals.Items))
	for _, g := range m.Goals.Items {
		desc := fmt.Sprintf("%d/%d %s | %s", g.CompletedTasks, g.TotalTasks, g.DisplayUnit(), g.Status)
		goalItems = append(goalItems, listItem{title: g.Title, description: desc})
	}
	m.goalList.SetItems(goalItems)
	if len(goalItems) > 0 {
		m.goalList.Select(m.Goals.Cursor)
	}

	rows := make([]table.Row, 0, len(m.Agenda.Items))
	for _, item := range m.Agenda.Items {
		done := " "
		if item.Completed {
			done = "x"
		}
		rows = append(rows, table.Row{item.Date, item.StartTime, string(item.Quadrant), done, item.Title})
	}
	m.agendaTable.SetRows(rows)
	if len(rows) > 0 && m.Agenda.Cursor < len(rows) {
		m.agendaTable.SetCursor(m.Agenda.Cursor)
	}

	if m.Palette.Active {
		m.commandInput.Focus()
	}
	if m.Agenda.Capture {
		m.quickAddInput.Focus()
	}

	m.detailViewport.SetContent(views.RenderMarkdown(m.selectedDetailMarkdown()))

	total := m.currentFocusTotal()
	pct := 0.0
	if total > 0 {
		pct = float64(total-m.Focus.RemainingSec) / float64(total)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	_ = m.focusProgress.SetPercent(pct)
}

func (m Model) selectedDetailMarkdown() string {
	item, ok := m.selectedOccurrence()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString("## " + item.Title + "\n\n")
	b.WriteString(fmt.Sprintf("- quadrant: **%s**\n", item.Quadrant))
	if item.Repeat.IsRecurring() {
		b.WriteString(fmt.Sprintf("- repeats: %s\n", item.Repeat.Kind))
	}
	if d := item.Duration(); d > 0 {
		b.WriteString(fmt.Sprintf("- duration: %dm\n", d))
	}
	if item.GoalID != "" {
		for _, g := range m.Goals.Items {
			if g.ID == item.GoalID {
				b.WriteString(fmt.Sprintf("- goal: %s (%d%%)\n", g.Title, g.ProgressPercent()))
			}
		}
	}
	return b.String()
}

func (m Model) selectedOccurrence() (model.Task, bool) {
	switch m.CurrentView {
	case ViewMatrix:
		return m.currentMatrixItem()
	default:
		return m.currentAgendaItem()
	}
}

func (m Model) renderAgendaView() string {
	end := m.Agenda.FocusDate.AddDate(0, 0, m.Agenda.WindowDays-1)
	return views.RenderAgendaPanel(views.AgendaPanelData{
		WindowStart:  m.Agenda.FocusDate.Format(model.DateLayout),
		WindowEnd:    end.Format(model.DateLayout),
		Capturing:    m.Agenda.Capture,
		QuickAddView: m.quickAddInput.View(),
		TableView:    m.agendaTable.View(),
		Items:        occurrenceData(m.Agenda.Items),
		SelectedID:   m.SelectedTaskID,
	})
}

func (m Model) renderMatrixView() string {
	return views.RenderMatrixPanel(views.MatrixPanelData{
		Date:       m.Matrix.Date.Format(model.DateLayout),
		Items:      occurrenceData(m.Matrix.Items),
		SelectedID: m.SelectedTaskID,
	})
}

func (m Model) renderGoalsView() string {
	goals := make([]views.GoalProgressData, 0, len(m.Goals.Items))
	for _, g := range m.Goals.Items {
		pct := g.ProgressPercent()
		goals = append(goals, views.GoalProgressData{
			ID:           g.ID,
			Title:        g.Title,
			Completed:    g.CompletedTasks,
			Total:        g.TotalTasks,
			Unit:         g.DisplayUnit(),
			Status:       string(g.Status),
			ProgressView: m.goalProgress.ViewAs(float64(pct) / 100),
			Pct:          pct,
		})
	}
	selectedID := ""
	if g, ok := m.currentGoal(); ok {
		selectedID = g.ID
	}
	return views.RenderGoalsPanel(views.GoalsPanelData{
		ListView:   m.goalList.View(),
		Goals:      goals,
		SelectedID: selectedID,
	})
}

func (m Model) renderFocusView() string {
	total := m.currentFocusTotal()
	progress := 0.0
	if total > 0 {
		progress = float64(total-m.Focus.RemainingSec) / float64(total)
	}

	return views.RenderFocusPanel(views.FocusPanelData{
		TaskTitle:          m.Focus.TaskTitle,
		Phase:              string(m.Focus.Phase),
		Timer:              formatDuration(m.Focus.RemainingSec),
		ProgressView:       m.focusProgress.ViewAs(progress),
		ProgressPct:        int(progress * 100),
		CompletedPomodoros: m.Focus.CompletedPomodoros,
		TotalFocusMins:     m.Store.Stats().FocusMins,
		ShowEndPrompt:      m.Focus.RemainingSec == 0,
	})
}

func (m Model) renderMedalsView() string {
	stats := m.Store.Stats()
	medals := make([]views.MedalData, 0, len(stats.Medals))
	for _, medal := range stats.Medals {
		medals = append(medals, views.MedalData{
			ID:       medal.ID,
			Name:     medal.Name,
			Icon:     medal.Icon,
			Cost:     medal.Cost,
			Unlocked: medal.Unlocked,
		})
	}
	selectedID := ""
	if medal, ok := m.currentMedal(stats.Medals); ok {
		selectedID = medal.ID
	}
	return views.RenderMedalsPanel(views.MedalsPanelData{
		Seeds:      stats.Seeds,
		Medals:     medals,
		SelectedID: selectedID,
	})
}

func (m Model) renderRewardPopup() string {
	n := m.Store.Notification()
	if n == nil {
		return ""
	}
	return views.RenderRewardPopup(views.RewardPopupData{
		GoalTitle:   n.GoalSnapshot.Title,
		Increment:   n.Increment,
		SeedsEarned: n.SeedsEarned,
		Pct:         n.GoalSnapshot.ProgressPercent(),
		Completed:   n.GoalSnapshot.Status == model.GoalStatusCompleted,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderDetailPane() string {
	item, ok := m.selectedOccurrence()
	if !ok {
		return views.RenderDetailPane(views.DetailPaneData{})
	}
	goalLine := "goal: (none)"
	if item.GoalID != "" {
		goalLine = "goal: " + item.GoalID
	}
	return views.RenderDetailPane(views.DetailPaneData{
		SelectedID:   item.ID,
		Quadrant:     string(item.Quadrant),
		Date:         item.Date,
		Time:         item.StartTime,
		GoalLine:     goalLine,
		MarkdownView: m.detailViewport.View(),
	})
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n" + m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Agenda, Action: "switch to Agenda"},
		{Key: m.Keys.Matrix, Action: "switch to Matrix"},
		{Key: m.Keys.Goals, Action: "switch to Goals"},
		{Key: m.Keys.Focus, Action: "switch to Focus"},
		{Key: m.Keys.Medals, Action: "switch to Medals"},
		{Key: "/", Action: "open command palette"},
		{Key: "esc", Action: "dismiss reward popup"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewAgenda:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "toggle completion"},
			{Key: "J/K", Action: "reorder task"},
			{Key: "a", Action: "quick add task"},
			{Key: "x", Action: "delete task"},
			{Key: "h/l", Action: "previous/next window"},
		}
	case ViewMatrix:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "toggle completion"},
			{Key: "h/l", Action: "previous/next day"},
		}
	case ViewGoals:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "x", Action: "delete goal"},
		}
	case ViewFocus:
		return []KeyBinding{
			{Key: "space", Action: "start/pause timer"},
			{Key: "r", Action: "reset timer"},
			{Key: "n", Action: "next focus phase"},
		}
	case ViewMedals:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "enter", Action: "unlock medal"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
