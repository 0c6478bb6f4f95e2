package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/sereneflow/internal/model"
	"github.com/sandeepkv93/sereneflow/internal/scheduler"
	"github.com/sandeepkv93/sereneflow/internal/store"
)

type View string

const (
	ViewAgenda View = "Agenda"
	ViewMatrix View = "Matrix"
	ViewGoals  View = "Goals"
	ViewFocus  View = "Focus"
	ViewMedals View = "Medals"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Agenda string
	Matrix string
	Goals  string
	Focus  string
	Medals string
	Help   string
	Quit   string
}

type AgendaState struct {
	FocusDate  time.Time
	WindowDays int
	Items      []model.Task
	Cursor     int
	Capture    bool
}

type MatrixState struct {
	Date   time.Time
	Items  []model.Task
	Cursor int
}

type GoalsState struct {
	Items  []model.Goal
	Cursor int
}

type FocusPhase string

const (
	FocusPhaseWork  FocusPhase = "work"
	FocusPhaseBreak FocusPhase = "break"
)

type FocusState struct {
	TaskID             string
	TaskTitle          string
	WorkDurationSec    int
	BreakDurationSec   int
	RemainingSec       int
	Running            bool
	Phase              FocusPhase
	CompletedPomodoros int
}

type MedalsState struct {
	Cursor int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView    View
	SelectedTaskID string
	Store          *store.Store
	Scheduler      *scheduler.Engine
	Agenda         AgendaState
	Matrix         MatrixState
	Goals          GoalsState
	Focus          FocusState
	Medals         MedalsState
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	// Bubble components used for rich TUI controls
	goalList       list.Model
	agendaTable    table.Model
	quickAddInput  textinput.Model
	commandInput   textinput.Model
	focusProgress  progress.Model
	goalProgress   progress.Model
	helpModel      help.Model
	detailViewport viewport.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type FocusTickMsg struct{}

type SchedulerEventMsg struct {
	Event scheduler.Event
}

func NewModel(st *store.Store) Model {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	m := Model{
		CurrentView: ViewAgenda,
		Store:       st,
		Agenda: AgendaState{
			FocusDate:  today,
			WindowDays: 7,
		},
		Matrix: MatrixState{
			Date: today,
		},
		Focus: FocusState{
			WorkDurationSec:  25 * 60,
			BreakDurationSec: 5 * 60,
			RemainingSec:     25 * 60,
			Phase:            FocusPhaseWork,
		},
		Keys: GlobalKeyMap{
			Agenda: "1",
			Matrix: "2",
			Goals:  "3",
			Focus:  "4",
			Medals: "5",
			Help:   "?",
			Quit:   "q",
		},
	}
	m.initBubbleComponents()
	m.refreshAgenda()
	m.refreshMatrix()
	m.refreshGoals()
	m.syncBubbleData()
	return m
}

func NewModelWithScheduler(st *store.Store, engine *scheduler.Engine) Model {
	m := NewModel(st)
	m.Scheduler = engine
	return m
}

func NewModelWithConfig(st *store.Store, engine *scheduler.Engine, cfg RuntimeConfig) Model {
	m := NewModel(st)
	m.Scheduler = engine
	if cfg.FocusWorkMinutes > 0 {
		m.Focus.WorkDurationSec = cfg.FocusWorkMinutes * 60
	}
	if cfg.FocusBreakMinutes > 0 {
		m.Focus.BreakDurationSec = cfg.FocusBreakMinutes * 60
	}
	m.Focus.RemainingSec = m.Focus.WorkDurationSec
	if cfg.AgendaWindowDays > 0 {
		m.Agenda.WindowDays = cfg.AgendaWindowDays
		m.refreshAgenda()
	}
	return m
}
