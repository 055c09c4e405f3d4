// Package state holds the planner mutations. Each one takes a PlannerConfig
// snapshot and returns the next snapshot without modifying its input; the
// schedule is never touched here and is recomputed from the result.
package state

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/example/revisionbot/internal/calendar"
	"github.com/example/revisionbot/internal/notify"
	"github.com/example/revisionbot/pkg/models"
)

// Mutator applies user edits to planner snapshots and reports them through
// the injected notifier.
type Mutator struct {
	notifier notify.Notifier
	now      func() time.Time
	newID    func() string
}

// Option configures a Mutator.
type Option func(*Mutator)

// WithClock overrides the wall clock used to date reviews and sessions.
func WithClock(now func() time.Time) Option {
	return func(m *Mutator) { m.now = now }
}

// WithIDGenerator overrides how identifiers are minted.
func WithIDGenerator(newID func() string) Option {
	return func(m *Mutator) { m.newID = newID }
}

// New creates a Mutator. A nil notifier discards notifications.
func New(notifier notify.Notifier, opts ...Option) *Mutator {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	m := &Mutator{
		notifier: notifier,
		now:      time.Now,
		newID:    NewID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewID returns a short random identifier. Sixteen hex characters keep ids
// small enough to fit two of them in a Telegram callback payload.
func NewID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:8])
}

// Quiet returns a copy of m that sends no notifications. Bulk operations use
// it and report once at the end through Notify.
func (m *Mutator) Quiet() *Mutator {
	q := *m
	q.notifier = notify.Nop{}
	return &q
}

// Notify sends a message through the mutator's notifier.
func (m *Mutator) Notify(message string, severity notify.Severity) {
	m.notifier.Notify(message, severity)
}

// Today returns the mutator's notion of the current calendar date.
func (m *Mutator) Today() string {
	return calendar.TodayAt(m.now())
}

// Reset discards everything and returns a fresh default planner.
func (m *Mutator) Reset(models.PlannerConfig) models.PlannerConfig {
	m.notifier.Notify("Planner reset", notify.Info)
	return models.DefaultConfig(m.Today())
}

// SetExamDate moves the exam. The value is not validated.
func (m *Mutator) SetExamDate(cfg models.PlannerConfig, date string) models.PlannerConfig {
	cfg.ExamDate = date
	return cfg
}

// SetDailyHours changes the per-day study budget. Zero or negative values
// are accepted and simply leave every day empty.
func (m *Mutator) SetDailyHours(cfg models.PlannerConfig, hours float64) models.PlannerConfig {
	cfg.DailyStudyHours = hours
	return cfg
}

// SkipDay adds date to the skipped days. Skipping an already skipped day
// returns cfg unchanged. Redistribution happens when the plan is next
// generated: the day contributes no capacity and the queue carries forward.
func (m *Mutator) SkipDay(cfg models.PlannerConfig, date string) models.PlannerConfig {
	if cfg.IsSkipped(date) {
		return cfg
	}
	cfg.SkippedDays = appended(cfg.SkippedDays, date)
	m.notifier.Notify("Skipped "+calendar.FormatDate(date)+", plan rebalanced", notify.Info)
	return cfg
}

// appended returns a new slice holding s followed by v. The backing array of
// s is never written, so snapshots sharing it stay intact.
func appended[T any](s []T, v T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}

// filtered returns a new slice with the elements for which keep is true.
func filtered[T any](s []T, keep func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// replaced returns a copy of s with index i set to v.
func replaced[T any](s []T, i int, v T) []T {
	out := make([]T, len(s))
	copy(out, s)
	out[i] = v
	return out
}
