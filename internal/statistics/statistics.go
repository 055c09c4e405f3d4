// Package statistics derives the analytics view from a planner snapshot.
package statistics

import (
	"math"

	"github.com/example/revisionbot/internal/calendar"
	"github.com/example/revisionbot/internal/spaced_repetition"
	"github.com/example/revisionbot/pkg/models"
)

// Summarize totals logged focus time and topic progress. Per-subject time is
// listed in subject order and omits subjects with nothing logged; sessions of
// removed subjects still count towards the total.
func Summarize(cfg models.PlannerConfig, today string) models.Statistics {
	var stats models.Statistics

	perSubject := make(map[string]int)
	for _, s := range cfg.StudySessions {
		stats.TotalMinutes += s.Duration
		perSubject[s.SubjectID] += s.Duration
	}
	stats.TotalHours = roundTo(float64(stats.TotalMinutes)/60, 1)

	stats.BySubject = []models.SubjectTime{}
	for _, subject := range cfg.Subjects {
		minutes := perSubject[subject.ID]
		if minutes <= 0 {
			continue
		}
		st := models.SubjectTime{
			SubjectID:   subject.ID,
			SubjectName: subject.Name,
			Minutes:     minutes,
		}
		if stats.TotalMinutes > 0 {
			st.Share = float64(minutes) / float64(stats.TotalMinutes)
		}
		stats.BySubject = append(stats.BySubject, st)
	}

	for _, subject := range cfg.Subjects {
		for _, topic := range subject.Topics {
			stats.TopicsTotal++
			if topic.Completed {
				stats.TopicsCompleted++
			} else {
				stats.HoursRemaining += topic.EstimatedHours
			}
		}
	}

	stats.PendingReviews = len(spaced_repetition.Pending(cfg.Reviews))
	stats.DueReviews = len(spaced_repetition.DueReviews(cfg.Reviews, today))

	stats.DaysUntilExam = calendar.DaysBetween(today, cfg.ExamDate)
	if stats.DaysUntilExam < 0 {
		stats.DaysUntilExam = 0
	}
	return stats
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
