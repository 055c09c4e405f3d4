// Package planner turns a PlannerConfig snapshot into a day-by-day revision
// schedule. Everything here is a pure function of its inputs.
package planner

import (
	"sort"

	"github.com/example/revisionbot/pkg/models"
)

// BuildQueue flattens the subject/topic tree into the allocation queue.
// Completed topics are dropped. Longer topics come first; the sort is stable
// so topics with equal hours keep subject-then-topic insertion order.
func BuildQueue(subjects []models.Subject) []models.DayTask {
	var queue []models.DayTask
	for _, subject := range subjects {
		for _, topic := range subject.Topics {
			if topic.Completed {
				continue
			}
			queue = append(queue, models.DayTask{
				TopicID:        topic.ID,
				SubjectID:      subject.ID,
				SubjectName:    subject.Name,
				TopicName:      topic.Name,
				EstimatedHours: topic.EstimatedHours,
			})
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].EstimatedHours > queue[j].EstimatedHours
	})
	return queue
}
