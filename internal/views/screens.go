package views

import (
	"fmt"
	"sort"
	"strings"
)

type OccurrenceData struct {
	ID        string
	Title     string
	Date      string
	Time      string
	Quadrant  string
	Completed bool
	Recurring bool
	GoalID    string
}

type AgendaPanelData struct {
	WindowStart  string
	WindowEnd    string
	Capturing    bool
	QuickAddView string
	TableView    string
	Items        []OccurrenceData
	SelectedID   string
}

type MatrixPanelData struct {
	Date       string
	Items      []OccurrenceData
	SelectedID string
}

type GoalProgressData struct {
	ID           string
	Title        string
	Completed    int
	Total        int
	Unit         string
	Status       string
	ProgressView string
	Pct          int
}

type GoalsPanelData struct {
	ListView   string
	Goals      []GoalProgressData
	SelectedID string
}

type FocusPanelData struct {
	TaskTitle          string
	Phase              string
	Timer              string
	ProgressView       string
	ProgressPct        int
	CompletedPomodoros int
	TotalFocusMins     int
	ShowEndPrompt      bool
}

type MedalData struct {
	ID       string
	Name     string
	Icon     string
	Cost     int
	Unlocked bool
}

type MedalsPanelData struct {
	Seeds      int
	Medals     []MedalData
	SelectedID string
}

type RewardPopupData struct {
	GoalTitle   string
	Increment   int
	SeedsEarned int
	Pct         int
	Completed   bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

type DetailPaneData struct {
	SelectedID   string
	Quadrant     string
	Date         string
	Time         string
	GoalLine     string
	MarkdownView string
}

func RenderAgendaPanel(data AgendaPanelData) string {
	var b strings.Builder
	b.WriteString("agenda:\n")
	b.WriteString(fmt.Sprintf("window: %s .. %s\n", data.WindowStart, data.WindowEnd))
	b.WriteString("actions: [j/k]move [space]toggle [J/K]reorder [a]add [x]delete [h/l]shift window\n")
	if data.Capturing {
		b.WriteString(data.QuickAddView + "\n")
	}
	b.WriteString(data.TableView + "\n")

	grouped := make(map[string][]OccurrenceData)
	days := make([]string, 0)
	for _, item := range data.Items {
		if _, ok := grouped[item.Date]; !ok {
			days = append(days, item.Date)
		}
		grouped[item.Date] = append(grouped[item.Date], item)
	}
	sort.Strings(days)
	if len(days) == 0 {
		b.WriteString("(agenda empty)")
		return b.String()
	}

	for _, day := range days {
		b.WriteString(fmt.Sprintf("\n%s:\n", day))
		for _, item := range grouped[day] {
			b.WriteString(renderOccurrenceLine(item, data.SelectedID) + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderMatrixPanel(data MatrixPanelData) string {
	var b strings.Builder
	b.WriteString("matrix:\n")
	b.WriteString(fmt.Sprintf("date: %s\n", data.Date))
	b.WriteString("actions: [j/k]move [space]toggle [h/l]day\n")
	for _, q := range []string{"A", "B", "C", "D"} {
		b.WriteString(fmt.Sprintf("\n%s %s:\n", q, quadrantLabel(q)))
		any := false
		for _, item := range data.Items {
			if item.Quadrant != q {
				continue
			}
			any = true
			b.WriteString(renderOccurrenceLine(item, data.SelectedID) + "\n")
		}
		if !any {
			b.WriteString("  (none)\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderGoalsPanel(data GoalsPanelData) string {
	var b strings.Builder
	b.WriteString("goals:\n")
	b.WriteString("actions: [j/k]move [x]delete\n")
	b.WriteString(data.ListView + "\n")
	if len(data.Goals) == 0 {
		b.WriteString("(no goals yet)")
		return b.String()
	}
	for _, g := range data.Goals {
		cursor := " "
		if data.SelectedID == g.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s (%d/%d %s) [%s]\n", cursor, g.Title, g.Completed, g.Total, g.Unit, g.Status))
		b.WriteString(fmt.Sprintf("  %s %d%%\n", g.ProgressView, g.Pct))
	}
	return strings.TrimSpace(b.String())
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	b.WriteString(fmt.Sprintf("phase: %s\n", strings.ToUpper(data.Phase)))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("pomodoros completed: %d\n", data.CompletedPomodoros))
	b.WriteString(fmt.Sprintf("total focus: %dm\n", data.TotalFocusMins))
	b.WriteString("actions: [space]start/pause [r]reset [n]next-phase\n")
	if data.ShowEndPrompt {
		b.WriteString("prompt: session ended, press [n] to continue")
	}
	return strings.TrimSpace(b.String())
}

func RenderMedalsPanel(data MedalsPanelData) string {
	var b strings.Builder
	b.WriteString("medals:\n")
	b.WriteString(fmt.Sprintf("seeds: %d\n", data.Seeds))
	b.WriteString("actions: [j/k]move [enter]unlock\n")
	for _, m := range data.Medals {
		cursor := " "
		if data.SelectedID == m.ID {
			cursor = ">"
		}
		state := fmt.Sprintf("locked, %d seeds", m.Cost)
		if m.Unlocked {
			state = "unlocked"
		}
		b.WriteString(fmt.Sprintf("%s %s %s (%s)\n", cursor, m.Icon, m.Name, state))
	}
	return strings.TrimSpace(b.String())
}

func RenderRewardPopup(data RewardPopupData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("goal progress! %s\n", data.GoalTitle))
	b.WriteString(fmt.Sprintf("+%d%% (now %d%%) | +%d seeds", data.Increment, data.Pct, data.SeedsEarned))
	if data.Completed {
		b.WriteString("\ngoal completed!")
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func RenderDetailPane(data DetailPaneData) string {
	if strings.TrimSpace(data.SelectedID) == "" {
		return "details:\n(no selection)"
	}
	return fmt.Sprintf("details:\nid: %s\nquadrant: %s\nwhen: %s %s\n%s\n\n%s",
		data.SelectedID,
		data.Quadrant,
		data.Date,
		data.Time,
		data.GoalLine,
		data.MarkdownView,
	)
}

func renderOccurrenceLine(item OccurrenceData, selectedID string) string {
	cursor := " "
	if selectedID == item.ID {
		cursor = ">"
	}
	check := "[ ]"
	if item.Completed {
		check = "[x]"
	}
	line := fmt.Sprintf("%s %s [%s] %s", cursor, check, item.Quadrant, item.Title)
	if item.Time != "" {
		line += " @" + item.Time
	}
	if item.Recurring {
		line += " ~"
	}
	if item.GoalID != "" {
		line += " goal:" + item.GoalID
	}
	return line
}

func quadrantLabel(q string) string {
	switch q {
	case "A":
		return "urgent & important"
	case "B":
		return "important"
	case "C":
		return "urgent"
	default:
		return "neither"
	}
}
