// Package scheduler sends the daily revision digest.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/revisionbot/internal/config"
	"github.com/example/revisionbot/pkg/models"
)

const (
	// MaxQuestionReviews caps how many due reviews get generated questions.
	MaxQuestionReviews = 3

	questionTimeout = 30 * time.Second
)

// Planner is the read side of the planner service the digest is built from.
type Planner interface {
	Today() string
	TodayPlan() (models.DayPlan, bool)
	DueReviews() []models.ReviewItem
	Unallocated() []models.DayTask
}

// Sender delivers a rendered digest.
type Sender interface {
	SendDigest(ctx context.Context, text string) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, text string) error

// SendDigest calls f.
func (f SenderFunc) SendDigest(ctx context.Context, text string) error { return f(ctx, text) }

// QuestionGenerator produces self-test questions for a review.
type QuestionGenerator interface {
	RevisionQuestions(ctx context.Context, review models.ReviewItem) ([]string, error)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	cfg       config.SchedulerConfig
	planner   Planner
	sender    Sender
	questions QuestionGenerator
	log       *slog.Logger
	now       func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithQuestions enables revision questions in the digest.
func WithQuestions(q QuestionGenerator) Option {
	return func(s *Scheduler) { s.questions = q }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Scheduler) { s.log = log }
}

// WithClock overrides the wall clock used for the quiet-hours check.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates a new scheduler instance
func New(cfg config.SchedulerConfig, planner Planner, sender Sender, opts ...Option) *Scheduler {
	s := &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		cfg:       cfg,
		planner:   planner,
		sender:    sender,
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start schedules the daily digest and runs the scheduler in the background.
func (s *Scheduler) Start() error {
	at := fmt.Sprintf("%02d:00", s.cfg.ReminderHour)
	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.sendScheduledDigest); err != nil {
		return fmt.Errorf("scheduler: schedule digest at %s: %w", at, err)
	}
	s.scheduler.StartAsync()
	s.log.Info("scheduler started", "digest_at", at,
		"quiet_before", s.cfg.NotificationStartHour, "quiet_after", s.cfg.NotificationEndHour)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sendScheduledDigest() {
	hour := s.now().Hour()
	if !InNotificationWindow(hour, s.cfg.NotificationStartHour, s.cfg.NotificationEndHour) {
		s.log.Info("outside notification hours, skipping digest",
			"hour", hour, "start", s.cfg.NotificationStartHour, "end", s.cfg.NotificationEndHour)
		return
	}
	if err := s.RunNow(context.Background()); err != nil {
		s.log.Error("failed to send digest", "error", err)
	}
}

// RunNow builds and sends the digest immediately, ignoring quiet hours.
func (s *Scheduler) RunNow(ctx context.Context) error {
	text := BuildDigest(s.collect(ctx))
	if err := s.sender.SendDigest(ctx, text); err != nil {
		return fmt.Errorf("scheduler: send digest: %w", err)
	}
	return nil
}

func (s *Scheduler) collect(ctx context.Context) Digest {
	day, ok := s.planner.TodayPlan()
	d := Digest{
		Date:        s.planner.Today(),
		Day:         day,
		HasDay:      ok,
		DueReviews:  s.planner.DueReviews(),
		Unallocated: len(s.planner.Unallocated()),
	}
	if s.questions == nil || len(d.DueReviews) == 0 {
		return d
	}

	d.Questions = make(map[string][]string)
	for i, r := range d.DueReviews {
		if i == MaxQuestionReviews {
			break
		}
		qctx, cancel := context.WithTimeout(ctx, questionTimeout)
		questions, err := s.questions.RevisionQuestions(qctx, r)
		cancel()
		if err != nil {
			s.log.Warn("revision questions unavailable", "review", r.ID, "error", err)
			continue
		}
		d.Questions[r.ID] = questions
	}
	return d
}

// InNotificationWindow reports whether hour falls within [start, end]. A
// window with start after end wraps past midnight.
func InNotificationWindow(hour, start, end int) bool {
	if start <= end {
		return hour >= start && hour <= end
	}
	return hour >= start || hour <= end
}
