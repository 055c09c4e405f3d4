package models

import "github.com/example/revisionbot/internal/calendar"

const (
	// DefaultDailyStudyHours is the study budget of a fresh planner.
	DefaultDailyStudyHours = 3
	// DefaultExamOffsetDays places a fresh planner's exam this many days out.
	DefaultExamOffsetDays = 30
)

// PlannerConfig is the root aggregate and the only persisted state. Values
// are treated as immutable snapshots: mutations build a new PlannerConfig
// and never write through to the slices of an existing one.
type PlannerConfig struct {
	ExamDate        string         `json:"examDate"`
	DailyStudyHours float64        `json:"dailyStudyHours"`
	Subjects        []Subject      `json:"subjects"`
	SkippedDays     []string       `json:"skippedDays"`
	Reviews         []ReviewItem   `json:"reviews"`
	StudySessions   []StudySession `json:"studySessions"`
}

// DefaultConfig returns an empty planner with the exam 30 days after today.
func DefaultConfig(today string) PlannerConfig {
	return PlannerConfig{
		ExamDate:        calendar.AddDays(today, DefaultExamOffsetDays),
		DailyStudyHours: DefaultDailyStudyHours,
		Subjects:        []Subject{},
		SkippedDays:     []string{},
		Reviews:         []ReviewItem{},
		StudySessions:   []StudySession{},
	}
}

// Normalized replaces nil collections with empty ones so that records
// decoded from older or partial payloads encode back as [] rather than null.
func (c PlannerConfig) Normalized() PlannerConfig {
	if c.Subjects == nil {
		c.Subjects = []Subject{}
	}
	if c.SkippedDays == nil {
		c.SkippedDays = []string{}
	}
	if c.Reviews == nil {
		c.Reviews = []ReviewItem{}
	}
	if c.StudySessions == nil {
		c.StudySessions = []StudySession{}
	}
	for i := range c.Subjects {
		if c.Subjects[i].Topics == nil {
			// Copy before touching an element so the caller's slice is untouched.
			subjects := make([]Subject, len(c.Subjects))
			copy(subjects, c.Subjects)
			for j := range subjects {
				if subjects[j].Topics == nil {
					subjects[j].Topics = []Topic{}
				}
			}
			c.Subjects = subjects
			break
		}
	}
	return c
}

// FindSubject returns the index of the subject with the given id, or -1.
func (c PlannerConfig) FindSubject(subjectID string) int {
	for i, s := range c.Subjects {
		if s.ID == subjectID {
			return i
		}
	}
	return -1
}

// IsSkipped reports whether date is in the skipped-days set.
func (c PlannerConfig) IsSkipped(date string) bool {
	for _, d := range c.SkippedDays {
		if d == date {
			return true
		}
	}
	return false
}
