// Package store owns the canonical application state: task templates and
// their resolved occurrence records, goals, and the user's gamification
// stats. All mutations run synchronously on the single UI-driven writer;
// every mutation publishes an immutable snapshot to subscribers.
package store

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sandeepkv93/sereneflow/internal/model"
	"github.com/sandeepkv93/sereneflow/internal/scheduler"
)

var (
	ErrNotFound   = errors.New("store: not found")
	ErrValidation = errors.New("store: validation failed")
)

const (
	SeedsPerCompletion  = 10
	DefaultDismissAfter = 3 * time.Second
)

// Snapshot is an immutable copy of the store state handed to subscribers.
type Snapshot struct {
	Tasks        []model.Task
	Goals        []model.Goal
	Stats        model.UserStats
	Notification *model.RewardNotification
}

type Config struct {
	Engine       *scheduler.Engine // optional; enables reward auto-dismiss
	Now          func() time.Time
	NextID       func() string
	DismissAfter time.Duration
	Seeds        int
	ProfileName  string
}

type Store struct {
	tasks        []model.Task
	goals        []model.Goal
	stats        model.UserStats
	notification *model.RewardNotification
	dismissSeq   uint64

	engine       *scheduler.Engine
	now          func() time.Time
	nextID       func() string
	dismissAfter time.Duration
	subscribers  []func(Snapshot)
}

func New(cfg Config) *Store {
	s := &Store{
		engine:       cfg.Engine,
		now:          cfg.Now,
		nextID:       cfg.NextID,
		dismissAfter: cfg.DismissAfter,
		stats: model.UserStats{
			Seeds:       cfg.Seeds,
			Medals:      model.DefaultMedals(),
			ProfileName: cfg.ProfileName,
		},
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.nextID == nil {
		s.nextID = defaultNextID()
	}
	if s.dismissAfter <= 0 {
		s.dismissAfter = DefaultDismissAfter
	}
	if s.stats.ProfileName == "" {
		s.stats.ProfileName = "Explorer"
	}
	return s
}

// Load replaces the store contents with previously persisted state. Meant for
// startup only, before any subscriber is attached.
func (s *Store) Load(tasks []model.Task, goals []model.Goal, stats model.UserStats) {
	s.tasks = append([]model.Task(nil), tasks...)
	s.goals = append([]model.Goal(nil), goals...)
	if stats.Medals == nil {
		stats.Medals = model.DefaultMedals()
	}
	s.stats = stats
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// mutation.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Tasks: append([]model.Task(nil), s.tasks...),
		Goals: append([]model.Goal(nil), s.goals...),
		Stats: s.stats,
	}
	snap.Stats.Medals = append([]model.Medal(nil), s.stats.Medals...)
	if s.notification != nil {
		n := *s.notification
		snap.Notification = &n
	}
	return snap
}

func (s *Store) Tasks() []model.Task {
	return append([]model.Task(nil), s.tasks...)
}

func (s *Store) Goals() []model.Goal {
	return append([]model.Goal(nil), s.goals...)
}

func (s *Store) Stats() model.UserStats {
	stats := s.stats
	stats.Medals = append([]model.Medal(nil), s.stats.Medals...)
	return stats
}

func (s *Store) publish() {
	if len(s.subscribers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.subscribers {
		fn(snap)
	}
}

// CreateTask assigns a fresh id, fills defaults, validates and appends the
// template at the end of the manual order.
func (s *Store) CreateTask(in model.Task) (model.Task, error) {
	in.ID = s.nextID()
	if in.Date == "" {
		in.Date = s.now().UTC().Format(model.DateLayout)
	}
	if in.Repeat.Kind == "" {
		in.Repeat.Kind = model.RepeatNone
	}
	in.CreatedAt = s.now().UTC()
	in.OrderKey = s.nextOrderKey()
	if err := in.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	s.tasks = append(s.tasks, in)
	s.publish()
	return in, nil
}

// TaskPatch carries the fields an update may change; nil fields are left
// untouched.
type TaskPatch struct {
	Title        *string
	Date         *string
	StartTime    *string
	EndTime      *string
	Quadrant     *model.Quadrant
	Completed    *bool
	DurationMins *int
	Repeat       *model.Repeat
	GoalID       *string
	Dependencies *[]string
}

// UpdateTask merges the patch into a template. A completed flip from false to
// true on a task carrying a goal reference is the completion transition that
// drives the reward engine.
func (s *Store) UpdateTask(id string, patch TaskPatch) (model.Task, error) {
	idx := s.taskIndex(id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, id)
	}
	prev := s.tasks[idx]
	next := applyTaskPatch(prev, patch)
	if err := next.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	s.tasks[idx] = next

	if !prev.Completed && next.Completed && next.GoalID != "" {
		s.fireCompletionReward(next.GoalID)
	}
	s.publish()
	return next, nil
}

// DeleteTask removes a template and cascades to every resolved occurrence
// record that points back at it.
func (s *Store) DeleteTask(id string) error {
	if s.taskIndex(id) < 0 {
		return fmt.Errorf("%w: task %s", ErrNotFound, id)
	}
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID == id || t.ParentID == id {
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	s.publish()
	return nil
}

// ResolveOccurrence promotes a virtual occurrence into a persisted record:
// repeat forced to none, parent link kept. Resolving the same (template, day)
// twice is idempotent and returns the existing record. An occurrence on the
// template's own anchor day mutates the template instead of creating a
// shadowing record.
func (s *Store) ResolveOccurrence(occ model.Task, completed bool) (model.Task, error) {
	if occ.ParentID == "" {
		return model.Task{}, fmt.Errorf("%w: occurrence has no parent", ErrValidation)
	}
	parentIdx := s.taskIndex(occ.ParentID)
	if parentIdx < 0 {
		return model.Task{}, fmt.Errorf("%w: template %s", ErrNotFound, occ.ParentID)
	}
	parent := s.tasks[parentIdx]
	if parent.Date == occ.Date {
		return s.UpdateTask(parent.ID, TaskPatch{Completed: &completed})
	}
	for _, t := range s.tasks {
		if t.ParentID == occ.ParentID && t.Date == occ.Date {
			return t, nil
		}
	}

	record := occ
	record.ID = s.nextID()
	record.Repeat = model.Repeat{Kind: model.RepeatNone}
	record.Completed = completed
	record.CreatedAt = s.now().UTC()
	record.OrderKey = parent.OrderKey
	if err := record.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	s.tasks = append(s.tasks, record)
	s.publish()
	return record, nil
}

func (s *Store) taskIndex(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nextOrderKey() int {
	next := 0
	for _, t := range s.tasks {
		if t.ParentID == "" && t.OrderKey >= next {
			next = t.OrderKey + 1
		}
	}
	return next
}

func applyTaskPatch(t model.Task, patch TaskPatch) model.Task {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Date != nil {
		t.Date = *patch.Date
	}
	if patch.StartTime != nil {
		t.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		t.EndTime = *patch.EndTime
	}
	if patch.Quadrant != nil {
		t.Quadrant = *patch.Quadrant
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.DurationMins != nil {
		t.DurationMins = *patch.DurationMins
	}
	if patch.Repeat != nil {
		t.Repeat = *patch.Repeat
	}
	if patch.GoalID != nil {
		t.GoalID = *patch.GoalID
	}
	if patch.Dependencies != nil {
		t.Dependencies = *patch.Dependencies
	}
	return t
}

func defaultNextID() func() string {
	base := time.Now().UTC().UnixMilli()
	var n int64
	return func() string {
		n++
		return strconv.FormatInt(base+n, 10)
	}
}
