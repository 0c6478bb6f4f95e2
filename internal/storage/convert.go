package storage

import (
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/sereneflow/internal/model"
)

func taskRecord(t model.Task) Task {
	return Task{
		ID:           t.ID,
		Title:        t.Title,
		Date:         t.Date,
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		Quadrant:     string(t.Quadrant),
		Completed:    t.Completed,
		DurationMins: t.DurationMins,
		RepeatKind:   string(t.Repeat.Kind),
		RepeatDays:   joinWeekdays(t.Repeat.Weekdays),
		GoalID:       t.GoalID,
		ParentID:     t.ParentID,
		Dependencies: strings.Join(t.Dependencies, ","),
		OrderKey:     t.OrderKey,
		CreatedAt:    t.CreatedAt,
	}
}

func taskModel(in Task) model.Task {
	out := model.Task{
		ID:           in.ID,
		Title:        in.Title,
		Date:         in.Date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Quadrant:     model.Quadrant(in.Quadrant),
		Completed:    in.Completed,
		DurationMins: in.DurationMins,
		Repeat: model.Repeat{
			Kind:     model.RepeatKind(in.RepeatKind),
			Weekdays: splitWeekdays(in.RepeatDays),
		},
		GoalID:    in.GoalID,
		ParentID:  in.ParentID,
		OrderKey:  in.OrderKey,
		CreatedAt: in.CreatedAt,
	}
	if in.RepeatKind == "" {
		out.Repeat.Kind = model.RepeatNone
	}
	if in.Dependencies != "" {
		out.Dependencies = strings.Split(in.Dependencies, ",")
	}
	return out
}

func goalRecord(g model.Goal) Goal {
	return Goal{
		ID:             g.ID,
		Title:          g.Title,
		TotalTasks:     g.TotalTasks,
		CompletedTasks: g.CompletedTasks,
		Status:         string(g.Status),
		Color:          g.Color,
		Unit:           g.Unit,
		CreatedAt:      g.CreatedAt,
	}
}

func goalModel(in Goal) model.Goal {
	return model.Goal{
		ID:             in.ID,
		Title:          in.Title,
		TotalTasks:     in.TotalTasks,
		CompletedTasks: in.CompletedTasks,
		Status:         model.GoalStatus(in.Status),
		Color:          in.Color,
		Unit:           in.Unit,
		CreatedAt:      in.CreatedAt,
	}
}

func medalRecord(m model.Medal) Medal {
	return Medal{ID: m.ID, Name: m.Name, Description: m.Description, Icon: m.Icon, Unlocked: m.Unlocked, Cost: m.Cost}
}

func medalModel(in Medal) model.Medal {
	return model.Medal{ID: in.ID, Name: in.Name, Description: in.Description, Icon: in.Icon, Unlocked: in.Unlocked, Cost: in.Cost}
}

func joinWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func splitWeekdays(raw string) []time.Weekday {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		out = append(out, time.Weekday(n))
	}
	return out
}
