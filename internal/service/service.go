// Package service owns the planner lifecycle: it holds the current snapshot,
// applies mutations to it, persists every change and derives the schedule
// views on demand.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/example/revisionbot/internal/calendar"
	"github.com/example/revisionbot/internal/database"
	"github.com/example/revisionbot/internal/planner"
	"github.com/example/revisionbot/internal/spaced_repetition"
	"github.com/example/revisionbot/internal/state"
	"github.com/example/revisionbot/internal/statistics"
	"github.com/example/revisionbot/pkg/models"
)

// Store persists the planner record.
type Store interface {
	Load(ctx context.Context) (models.PlannerConfig, error)
	Save(ctx context.Context, cfg models.PlannerConfig) error
}

// PlannerService is the single owner of the current PlannerConfig. All
// mutations are serialised, so each one observes the snapshot produced by the
// previous one.
type PlannerService struct {
	store   Store
	mutator *state.Mutator
	now     func() time.Time
	log     *slog.Logger

	mu  sync.RWMutex
	cfg models.PlannerConfig
}

// Option configures a PlannerService.
type Option func(*PlannerService)

// WithClock overrides the wall clock used to pick "today".
func WithClock(now func() time.Time) Option {
	return func(s *PlannerService) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *PlannerService) { s.log = log }
}

// New loads the stored planner and returns a service around it. A missing
// or unreadable record is replaced by the default planner; this never fails.
func New(ctx context.Context, store Store, mutator *state.Mutator, opts ...Option) *PlannerService {
	s := &PlannerService{
		store:   store,
		mutator: mutator,
		now:     time.Now,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	cfg, err := store.Load(ctx)
	switch {
	case errors.Is(err, database.ErrNotFound):
		s.log.Info("no saved planner, starting fresh")
		cfg = models.DefaultConfig(s.today())
	case err != nil:
		s.log.Warn("saved planner unreadable, starting fresh", "error", err)
		cfg = models.DefaultConfig(s.today())
	}
	s.cfg = cfg.Normalized()
	return s
}

func (s *PlannerService) today() string {
	return calendar.TodayAt(s.now())
}

// Today returns the service's current calendar date.
func (s *PlannerService) Today() string {
	return s.today()
}

// Config returns the current snapshot.
func (s *PlannerService) Config() models.PlannerConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update applies fn to the current snapshot, stores the result and persists
// it. Persistence failures are logged and otherwise ignored: the in-memory
// snapshot stays authoritative.
func (s *PlannerService) Update(ctx context.Context, fn func(models.PlannerConfig) models.PlannerConfig) models.PlannerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.cfg)
	s.cfg = next

	if err := s.store.Save(ctx, next); err != nil {
		s.log.Warn("failed to save planner", "error", err)
	}
	return next
}

// Plan regenerates the full schedule from the current snapshot.
func (s *PlannerService) Plan() []models.DayPlan {
	return planner.Generate(s.Config(), s.today())
}

// TodayPlan returns today's entry of the schedule.
func (s *PlannerService) TodayPlan() (models.DayPlan, bool) {
	today := s.today()
	return planner.CurrentDay(planner.Generate(s.Config(), today), today)
}

// Upcoming returns the next n days of the schedule starting today.
func (s *PlannerService) Upcoming(n int) []models.DayPlan {
	today := s.today()
	return planner.Upcoming(planner.Generate(s.Config(), today), today, n)
}

// Unallocated returns incomplete topics that no day before the exam can take.
func (s *PlannerService) Unallocated() []models.DayTask {
	cfg := s.Config()
	return planner.Unallocated(cfg, planner.Generate(cfg, s.today()))
}

// DueReviews returns pending reviews due today or earlier.
func (s *PlannerService) DueReviews() []models.ReviewItem {
	return spaced_repetition.DueReviews(s.Config().Reviews, s.today())
}

// Stats summarises logged time and progress.
func (s *PlannerService) Stats() models.Statistics {
	return statistics.Summarize(s.Config(), s.today())
}
