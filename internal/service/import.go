package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/revisionbot/internal/notify"
	"github.com/example/revisionbot/pkg/models"
)

// TopicRow is one topic to import. Hours of zero mean "derive from
// difficulty".
type TopicRow struct {
	Subject    string
	Topic      string
	Difficulty models.Difficulty
	Hours      float64
}

// ImportSummary counts what an import changed.
type ImportSummary struct {
	SubjectsCreated int
	TopicsCreated   int
}

// ImportTopics adds rows as topics in one update, matching subjects by name
// (case-insensitive) and creating the ones that don't exist.
func (s *PlannerService) ImportTopics(ctx context.Context, rows []TopicRow) ImportSummary {
	var summary ImportSummary
	quiet := s.mutator.Quiet()

	s.Update(ctx, func(c models.PlannerConfig) models.PlannerConfig {
		byName := make(map[string]string, len(c.Subjects))
		for _, subject := range c.Subjects {
			byName[strings.ToLower(subject.Name)] = subject.ID
		}

		for _, row := range rows {
			key := strings.ToLower(row.Subject)
			subjectID, ok := byName[key]
			if !ok {
				c, subjectID = quiet.AddSubjectWithID(c, row.Subject)
				byName[key] = subjectID
				summary.SubjectsCreated++
			}

			var topicID string
			c, topicID = quiet.AddTopicWithID(c, subjectID, row.Topic, row.Difficulty)
			if topicID == "" {
				continue
			}
			summary.TopicsCreated++

			if row.Hours > 0 && row.Hours != row.Difficulty.Hours() {
				hours := row.Hours
				c = quiet.UpdateTopic(c, subjectID, topicID, models.TopicUpdate{EstimatedHours: &hours})
			}
		}
		return c
	})

	s.mutator.Notify(fmt.Sprintf("Imported %d topics (%d new subjects)", summary.TopicsCreated, summary.SubjectsCreated), notify.Success)
	return summary
}
