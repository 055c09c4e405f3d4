package planner

import (
	"github.com/example/revisionbot/internal/calendar"
	"github.com/example/revisionbot/pkg/models"
)

const (
	// BufferDays is the number of final days before the exam kept free for
	// revision.
	BufferDays = 2
	// HourTolerance absorbs floating-point error when checking whether a task
	// fits the remaining budget of a day.
	HourTolerance = 0.01
)

// Generate builds the schedule from today up to, but excluding, the exam
// date. Each study day is filled greedily from the front of a single shared
// queue: the first task that does not fit ends the day, and the queue never
// rewinds. Buffer and skipped days receive nothing.
//
// The result is a pure function of cfg and today.
func Generate(cfg models.PlannerConfig, today string) []models.DayPlan {
	totalDays := calendar.DaysBetween(today, cfg.ExamDate)
	if totalDays <= 0 {
		return []models.DayPlan{}
	}

	skipped := make(map[string]struct{}, len(cfg.SkippedDays))
	for _, d := range cfg.SkippedDays {
		skipped[d] = struct{}{}
	}

	queue := BuildQueue(cfg.Subjects)
	next := 0

	plans := make([]models.DayPlan, 0, totalDays)
	for i := 0; i < totalDays; i++ {
		date := calendar.AddDays(today, i)
		_, isSkipped := skipped[date]

		day := models.DayPlan{
			Date:      date,
			Tasks:     []models.DayTask{},
			IsBuffer:  i >= totalDays-BufferDays,
			IsSkipped: isSkipped,
		}

		if day.IsStudyDay() {
			remaining := cfg.DailyStudyHours
			for next < len(queue) && remaining > 0 {
				task := queue[next]
				if task.EstimatedHours > remaining+HourTolerance {
					break
				}
				day.Tasks = append(day.Tasks, task)
				day.TotalHours += task.EstimatedHours
				remaining -= task.EstimatedHours
				next++
			}
		}

		plans = append(plans, day)
	}
	return plans
}

// Unallocated returns the queued tasks that no day in plans received, in
// queue order. Together with the allocated tasks they cover every incomplete
// topic of cfg exactly once.
func Unallocated(cfg models.PlannerConfig, plans []models.DayPlan) []models.DayTask {
	allocated := make(map[string]struct{})
	for _, p := range plans {
		for _, t := range p.Tasks {
			allocated[t.SubjectID+"/"+t.TopicID] = struct{}{}
		}
	}

	var rest []models.DayTask
	for _, t := range BuildQueue(cfg.Subjects) {
		if _, ok := allocated[t.SubjectID+"/"+t.TopicID]; !ok {
			rest = append(rest, t)
		}
	}
	return rest
}
