// Package plan owns the authoritative task and segment state. Every
// mutation validates its input, recomputes the allocation, atomically swaps
// the segment set, persists, and notifies subscribers.
package plan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"tableflip.dev/tempo/pkg/allocator"
	"tableflip.dev/tempo/pkg/capacity"
	"tableflip.dev/tempo/pkg/segment"
	"tableflip.dev/tempo/pkg/stats"
	"tableflip.dev/tempo/pkg/store"
	"tableflip.dev/tempo/pkg/strategy"
	"tableflip.dev/tempo/pkg/task"
	"tableflip.dev/tempo/pkg/timeutil"
)

// Store keys, namespaced by the persistence layer.
const (
	keyTasks    = "tasks"
	keySegments = "segments"
	keyConfig   = "config"
	keyCapacity = "capacity"
)

// View modes. They affect only the visible horizon, never allocation.
const (
	ViewDay  = "day"
	ViewWeek = "week"
)

var (
	ErrNoPersistence    = errors.New("plan: no persistence configured")
	ErrTaskNotFound     = errors.New("plan: task not found")
	ErrSegmentNotFound  = errors.New("plan: segment not found")
	ErrInvalidPlacement = errors.New("plan: placement violates plan invariants")
	ErrUnknownViewMode  = errors.New("plan: unknown view mode")
)

// Config is the persisted planner configuration.
type Config struct {
	Strategy      string `json:"strategy"`
	ViewMode      string `json:"viewMode"`
	LookaheadDays int    `json:"lookaheadDays"`
}

func defaultConfig() Config {
	return Config{
		Strategy:      string(strategy.Even),
		ViewMode:      ViewDay,
		LookaheadDays: timeutil.DefaultWindowDays,
	}
}

// Snapshot is an immutable copy of the plan state handed to observers.
type Snapshot struct {
	Tasks    []*task.Task
	Segments segment.Set
	Config   Config
	Calendar capacity.Calendar
	Report   allocator.Report
}

// DayPlan is the query view for one day.
type DayPlan struct {
	Date        timeutil.Day
	Segments    segment.Set
	FreeMinutes int
}

// Service is the plan store. It is the single mutable owner of task and
// segment state; everything else sees snapshots or pure function inputs.
type Service struct {
	mu          sync.Mutex
	persistence store.Persistence
	now         func() time.Time
	ids         *IDGenerator

	tasks    []*task.Task
	segments segment.Set
	calendar capacity.Calendar
	config   Config
	report   allocator.Report

	subs    map[int]chan Snapshot
	nextSub int
}

// Option configures a Service at construction.
type Option func(*Service)

// WithNow injects the clock, for deterministic horizons in tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService loads persisted state and returns a ready store. Absent or
// malformed blobs fall back to empty defaults; loading never fails fatally
// once persistence is reachable.
func NewService(p store.Persistence, opts ...Option) (*Service, error) {
	if p == nil {
		return nil, ErrNoPersistence
	}
	s := &Service{
		persistence: p,
		now:         time.Now,
		calendar:    capacity.NewCalendar(),
		config:      defaultConfig(),
		subs:        make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	s.ids = seededGenerator(s.tasks)
	return s, nil
}

// load restores state from the store, substituting defaults for anything
// absent or malformed.
func (s *Service) load() {
	var tasks []*task.Task
	if _, err := s.persistence.Get(keyTasks, &tasks); err != nil {
		fmt.Fprintf(os.Stderr, "plan: load tasks: %v\n", err)
		tasks = nil
	}
	s.tasks = tasks

	var segments segment.Set
	if _, err := s.persistence.Get(keySegments, &segments); err != nil {
		fmt.Fprintf(os.Stderr, "plan: load segments: %v\n", err)
		segments = nil
	}
	s.segments = segments

	var cfg Config
	if ok, err := s.persistence.Get(keyConfig, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "plan: load config: %v\n", err)
	} else if ok {
		if _, err := strategy.ForName(cfg.Strategy); err != nil {
			cfg.Strategy = string(strategy.Even)
		}
		if cfg.ViewMode != ViewDay && cfg.ViewMode != ViewWeek {
			cfg.ViewMode = ViewDay
		}
		if cfg.LookaheadDays <= 0 {
			cfg.LookaheadDays = timeutil.DefaultWindowDays
		}
		s.config = cfg
	}

	var cal capacity.Calendar
	if ok, err := s.persistence.Get(keyCapacity, &cal); err != nil {
		fmt.Fprintf(os.Stderr, "plan: load capacity: %v\n", err)
	} else if ok {
		if cal.DefaultMinutes <= 0 {
			cal.DefaultMinutes = capacity.DefaultDayMinutes
		}
		s.calendar = cal
	}
}

// AddTask validates and stores a new task, then reallocates.
func (s *Service) AddTask(ctx context.Context, title string, estimatedMinutes int, deadline *timeutil.Day) (*task.Task, error) {
	t := task.New(title, estimatedMinutes, deadline)
	if err := t.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.ids.Next()
	t.CreatedAt = task.Timestamp{Time: s.now()}
	s.tasks = append(s.tasks, t)

	if err := s.recomputeLocked(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return nil, err
	}
	s.persistLocked()
	s.notifyLocked()
	return cloneTask(t), nil
}

// CompleteTask marks a task done. Its history stays for stats; it receives
// no further segments.
func (s *Service) CompleteTask(ctx context.Context, id string) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTaskLocked(id)
	if t == nil {
		return nil, ErrTaskNotFound
	}
	t.Complete()

	if err := s.recomputeLocked(); err != nil {
		t.Completed = false
		return nil, err
	}
	s.persistLocked()
	s.notifyLocked()
	return cloneTask(t), nil
}

// DeleteTask removes a task and all its segments.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.tasks {
		if t != nil && t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrTaskNotFound
	}
	removed := s.tasks[idx]
	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)
	s.segments = s.segments.WithoutTask(id)

	if err := s.recomputeLocked(); err != nil {
		s.tasks = append(s.tasks[:idx:idx], append([]*task.Task{removed}, s.tasks[idx:]...)...)
		return err
	}
	s.persistLocked()
	s.notifyLocked()
	return nil
}

// SetStrategy switches the distribution strategy and reallocates.
func (s *Service) SetStrategy(ctx context.Context, name string) error {
	if _, err := strategy.ForName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.config.Strategy
	s.config.Strategy = name
	if err := s.recomputeLocked(); err != nil {
		s.config.Strategy = prev
		return err
	}
	s.persistLocked()
	s.notifyLocked()
	return nil
}

// SetViewMode records the preferred visible horizon.
func (s *Service) SetViewMode(ctx context.Context, mode string) error {
	if mode != ViewDay && mode != ViewWeek {
		return ErrUnknownViewMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.config.ViewMode = mode
	s.persistLocked()
	s.notifyLocked()
	return nil
}

// SetDayMinutes overrides a day's total schedulable minutes.
func (s *Service) SetDayMinutes(ctx context.Context, date timeutil.Day, minutes int) error {
	if minutes < 0 {
		return capacity.ErrInvalidRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.calendar.Clone()
	s.calendar.SetTotal(date, minutes)
	if err := s.recomputeLocked(); err != nil {
		s.calendar = prev
		return err
	}
	s.persistLocked()
	s.notifyLocked()
	return nil
}

// BlockTime reserves a fixed occupied range on a day.
func (s *Service) BlockTime(ctx context.Context, date timeutil.Day, start, end int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.calendar.Clone()
	if err := s.calendar.Block(date, capacity.Range{Start: start, End: end}); err != nil {
		return err
	}
	if err := s.recomputeLocked(); err != nil {
		s.calendar = prev
		return err
	}
	s.persistLocked()
	s.notifyLocked()
	return nil
}

// Reschedule moves one segment to an explicit day and offset, re-validating
// the plan invariants before accepting the edit.
func (s *Service) Reschedule(ctx context.Context, segmentID string, date timeutil.Day, startMinute int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.segments.Find(segmentID)
	if !ok {
		return ErrSegmentNotFound
	}
	t := s.findTaskLocked(old.TaskID)
	if t == nil {
		return ErrTaskNotFound
	}
	if t.Deadline != nil && date.After(*t.Deadline) {
		return ErrInvalidPlacement
	}

	moved := segment.New(old.TaskID, date, startMinute, old.DurationMinutes)
	rest := make(segment.Set, 0, len(s.segments))
	for _, seg := range s.segments {
		if seg.ID != segmentID {
			rest = append(rest, seg)
		}
	}
	if !placementFits(moved, rest, s.calendar.ForDate(date)) {
		return ErrInvalidPlacement
	}

	s.segments = append(rest, moved)
	s.segments.Sort()
	s.persistLocked()
	s.notifyLocked()
	return nil
}

// Recompute reallocates without any mutation. It is idempotent.
func (s *Service) Recompute(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.recomputeLocked(); err != nil {
		return err
	}
	s.persistLocked()
	s.notifyLocked()
	return nil
}

// PlanForDate returns the day's segments and remaining free minutes.
func (s *Service) PlanForDate(date timeutil.Day) DayPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dayPlanLocked(date)
}

// PlanForWeek returns seven day plans starting at the Monday of date's week.
func (s *Service) PlanForWeek(date timeutil.Day) []DayPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := timeutil.StartOfWeek(date)
	plans := make([]DayPlan, 0, 7)
	for _, day := range timeutil.Span(start, 7) {
		plans = append(plans, s.dayPlanLocked(day))
	}
	return plans
}

func (s *Service) dayPlanLocked(date timeutil.Day) DayPlan {
	onDate := s.segments.OnDate(date)
	segs := make(segment.Set, len(onDate))
	copy(segs, onDate)
	return DayPlan{
		Date:        date,
		Segments:    segs,
		FreeMinutes: capacity.FreeMinutes(s.calendar.ForDate(date), s.segments.MinutesOn(date)),
	}
}

// StatsForDate summarizes one day's segments.
func (s *Service) StatsForDate(date timeutil.Day) stats.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.For(s.segments, task.Index(s.tasks), date)
}

// StatsForRange summarizes the segments between from and to inclusive.
func (s *Service) StatsForRange(from, to timeutil.Day) stats.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.ForRange(s.segments, task.Index(s.tasks), from, to)
}

// Snapshot returns an immutable copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Report returns the residuals from the most recent recompute.
func (s *Service) Report() allocator.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// Config returns the current planner configuration.
func (s *Service) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Subscribe registers an observer. Each mutation delivers a snapshot; slow
// observers miss intermediate snapshots rather than blocking the store.
// The returned cancel func releases the subscription.
func (s *Service) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (s *Service) findTaskLocked(id string) *task.Task {
	for _, t := range s.tasks {
		if t != nil && t.ID == id {
			return t
		}
	}
	return nil
}

// recomputeLocked rebuilds the segment set. Completed tasks keep their
// existing segments as history; eligible tasks are reallocated from scratch.
func (s *Service) recomputeLocked() error {
	byID := task.Index(s.tasks)
	retained := make(segment.Set, 0, len(s.segments))
	for _, seg := range s.segments {
		if t, ok := byID[seg.TaskID]; ok && t.Completed {
			retained = append(retained, seg)
		}
	}

	res, err := allocator.Recompute(s.tasks, retained, s.calendar, allocator.Config{
		Strategy:      s.config.Strategy,
		LookaheadDays: s.config.LookaheadDays,
	}, timeutil.DayOf(s.now()))
	if err != nil {
		return err
	}

	s.segments = res.Segments
	s.report = res.Report
	return nil
}

// persistLocked writes the current state. Failures are logged; in-memory
// state stays authoritative and the next successful write reconciles.
func (s *Service) persistLocked() {
	if err := s.persistence.Set(keyTasks, s.tasks); err != nil {
		fmt.Fprintf(os.Stderr, "plan: persist tasks: %v\n", err)
	}
	if err := s.persistence.Set(keySegments, s.segments); err != nil {
		fmt.Fprintf(os.Stderr, "plan: persist segments: %v\n", err)
	}
	if err := s.persistence.Set(keyConfig, s.config); err != nil {
		fmt.Fprintf(os.Stderr, "plan: persist config: %v\n", err)
	}
	if err := s.persistence.Set(keyCapacity, s.calendar); err != nil {
		fmt.Fprintf(os.Stderr, "plan: persist capacity: %v\n", err)
	}
}

func (s *Service) notifyLocked() {
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Service) snapshotLocked() Snapshot {
	tasks := make([]*task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, cloneTask(t))
	}
	segs := make(segment.Set, len(s.segments))
	copy(segs, s.segments)

	cal := s.calendar.Clone()

	report := allocator.Report{
		Residuals: append([]allocator.Residual(nil), s.report.Residuals...),
	}

	return Snapshot{
		Tasks:    tasks,
		Segments: segs,
		Config:   s.config,
		Calendar: cal,
		Report:   report,
	}
}

func cloneTask(t *task.Task) *task.Task {
	if t == nil {
		return nil
	}
	cp := *t
	if t.Deadline != nil {
		d := *t.Deadline
		cp.Deadline = &d
	}
	return &cp
}

// placementFits checks a moved segment against the day window, occupied
// ranges, and the other segments on its day.
func placementFits(moved segment.Segment, others segment.Set, dc capacity.DayCapacity) bool {
	if moved.StartMinute < 0 || moved.DurationMinutes <= 0 {
		return false
	}
	contained := false
	for _, r := range dc.FreeRanges() {
		if moved.StartMinute >= r.Start && moved.EndMinute() <= r.End {
			contained = true
			break
		}
	}
	if !contained {
		return false
	}
	for _, seg := range others {
		if moved.Overlaps(seg) {
			return false
		}
	}
	return true
}
