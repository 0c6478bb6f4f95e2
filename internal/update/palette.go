package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/sereneflow/internal/commands"
	"github.com/sandeepkv93/sereneflow/internal/model"
	"github.com/sandeepkv93/sereneflow/internal/store"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task := model.Task{
				Title:    a.Title,
				Quadrant: model.QuadrantB,
				Date:     a.Date,
				GoalID:   a.GoalID,
			}
			if a.Quadrant != "" {
				task.Quadrant = model.Quadrant(a.Quadrant)
			}
			if a.Repeat != "" {
				repeat, perr := parseRepeatRule(a.Repeat)
				if perr != nil {
					return commands.Result{}, perr
				}
				task.Repeat = repeat
			}
			created, cerr := m.Store.CreateTask(task)
			if cerr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: cerr.Error()}
			}
			m.refreshAgenda()
			m.refreshMatrix()
			return commands.Result{Message: fmt.Sprintf("added task: %s (%s)", created.Title, created.ID)}, nil
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			completed := true
			for _, item := range m.Agenda.Items {
				if item.ID != d.Target {
					continue
				}
				var terr error
				if item.IsVirtual() {
					_, terr = m.Store.ResolveOccurrence(item, true)
				} else {
					_, terr = m.Store.UpdateTask(item.ID, store.TaskPatch{Completed: &completed})
				}
				if terr != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: terr.Error()}
				}
				m.refreshAgenda()
				m.refreshMatrix()
				m.refreshGoals()
				return commands.Result{Message: fmt.Sprintf("completed task: %s", item.Title)}, nil
			}
			task, terr := m.Store.UpdateTask(d.Target, store.TaskPatch{Completed: &completed})
			if terr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: terr.Error()}
			}
			m.refreshAgenda()
			m.refreshMatrix()
			m.refreshGoals()
			return commands.Result{Message: fmt.Sprintf("completed task: %s", task.Title)}, nil
		},
		Goal: func(g commands.GoalArgs) (commands.Result, error) {
			created, gerr := m.Store.CreateGoal(model.Goal{
				Title:      g.Title,
				TotalTasks: g.Total,
				Unit:       g.Unit,
			})
			if gerr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: gerr.Error()}
			}
			m.refreshGoals()
			return commands.Result{Message: fmt.Sprintf("added goal: %s (%s)", created.Title, created.ID)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			view, ok := viewForSubject(s.Subject)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown view: %s", s.Subject)}
			}
			m.CurrentView = view
			return commands.Result{Message: fmt.Sprintf("showing %s", strings.ToLower(string(view)))}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

func parseRepeatRule(raw string) (model.Repeat, error) {
	switch raw {
	case "none":
		return model.Repeat{Kind: model.RepeatNone}, nil
	case "daily":
		return model.Repeat{Kind: model.RepeatDaily}, nil
	case "weekly":
		return model.Repeat{Kind: model.RepeatWeekly}, nil
	case "monthly":
		return model.Repeat{Kind: model.RepeatMonthly}, nil
	default:
		return model.Repeat{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown repeat rule: %s", raw)}
	}
}

func viewForSubject(subject string) (View, bool) {
	switch subject {
	case "agenda", "tasks":
		return ViewAgenda, true
	case "matrix":
		return ViewMatrix, true
	case "goals":
		return ViewGoals, true
	case "focus":
		return ViewFocus, true
	case "medals":
		return ViewMedals, true
	default:
		return "", false
	}
}
