package service

import (
	"context"

	"github.com/example/revisionbot/pkg/models"
)

// SetExamDate moves the exam.
func (s *PlannerService) SetExamDate(ctx context.Context, date string) models.PlannerConfig {
	return s.Update(ctx, func(c models.PlannerConfig) models.PlannerConfig {
		return s.mutator.SetExamDate(c, date)
	})
}

// SetDailyHours changes the daily study budget.
func (s *PlannerService) SetDailyHours(ctx context.Context, hours float64) models.PlannerConfig {
	return s.Update(ctx, func(c models.PlannerConfig) models.PlannerConfig {
		return s.mutator.SetDailyHours(c, hours)
	})
}

// AddSubject creates a subject and returns its id.
func (s *PlannerService) AddSubject(ctx context.Context, name string) string {
	var id string
	s.Update(ctx, func(c models.PlannerConfig) models.PlannerConfig {
		var next models.PlannerConfig
		next, id = s.mutator.AddSubjectWithID(c, name)
		return next
	})
	return id
}

// UpdateSubject renames a subject.
func (s *PlannerService) UpdateSubject(ctx context.Context, subjectID, name string) models.PlannerConfig {
	return s.Update(ctx, func(c models.PlannerConfig) models.PlannerConfig {
		return s.mutator.UpdateSubject(c, subjectID, name)
	})
}

// RemoveSubject deletes a subject and its topics.
func (s *PlannerService) RemoveSubject(ctx context.Context, subjectID string) models.PlannerConfig {
	return s.Update(ctx, func(c models.PlannerConfig) models.PlannerConfig {
		return s.mutator.RemoveSubject(c, subjectID)
	})
}

// AddTopic creates a topic and returns its id, or "" for an unknown subject.
func (s *PlannerService) AddTopic(ctx context.Context, subjectID, name string, difficulty models.Difficulty) string {
	var id string
	s.Update(ctx, func(c models.PlannerConfig) models.PlannerConfig {
		var next models.PlannerConfig
		next, id = s.mutator.AddTopicWithID(c, subjectID, name, difficulty)
		return next
	})
	return id
}

// UpdateTopic merges a partial edit into a topic.
func (s *PlannerService) UpdateTopic(ctx context.Context, subjectID, topicID string, u models.TopicUpdate) models.PlannerConfig {
	return s.Update(ctx, func(c models.PlannerConfig) models.PlannerConfig {
		return s.mutator.UpdateTopic(c, subjectID, topicID, u)
	})
}

// RemoveTopic deletes a topic.
func (s *PlannerService) RemoveTopic(ctx context.Context, subjectID, topicID string) models.PlannerConfig {
	return s.Update(ctx, func(c models.PlannerConfig) models.PlannerConfig {
		return s.mutator.RemoveTopic(c, subjectID, topicID)
	})
}

// ToggleTopicComplete flips a topic's completion and maintains its reviews.
func (s *PlannerService) ToggleTopicComplete(ctx context.Context, subjectID, topicID string) models.PlannerConfig {
	return s.Update(ctx, func(c models.PlannerConfig) models.PlannerConfig {
		return s.mutator.ToggleTopicComplete(c, subjectID, topicID)
	})
}

// ToggleReviewComplete flips a review's completion.
func (s *PlannerService) ToggleReviewComplete(ctx context.Context, reviewID string) models.PlannerConfig {
	return s.Update(ctx, func(c models.PlannerConfig) models.PlannerConfig {
		return s.mutator.ToggleReviewComplete(c, reviewID)
	})
}

// SkipDay skips date; the next plan redistributes its work.
func (s *PlannerService) SkipDay(ctx context.Context, date string) models.PlannerConfig {
	return s.Update(ctx, func(c models.PlannerConfig) models.PlannerConfig {
		return s.mutator.SkipDay(c, date)
	})
}

// AddStudySession logs focused minutes against a subject.
func (s *PlannerService) AddStudySession(ctx context.Context, subjectID string, minutes int) models.PlannerConfig {
	return s.Update(ctx, func(c models.PlannerConfig) models.PlannerConfig {
		return s.mutator.AddStudySession(c, subjectID, minutes)
	})
}

// Reset replaces the planner with the default one.
func (s *PlannerService) Reset(ctx context.Context) models.PlannerConfig {
	return s.Update(ctx, s.mutator.Reset)
}
