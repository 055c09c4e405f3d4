package planner

import "github.com/example/revisionbot/pkg/models"

// DefaultUpcomingDays is the window shown by the upcoming view.
const DefaultUpcomingDays = 7

// CurrentDay returns today's entry of the schedule.
func CurrentDay(plans []models.DayPlan, today string) (models.DayPlan, bool) {
	for _, p := range plans {
		if p.Date == today {
			return p, true
		}
	}
	return models.DayPlan{}, false
}

// Upcoming returns up to n consecutive entries starting at today, or at the
// start of the schedule when today is not part of it.
func Upcoming(plans []models.DayPlan, today string, n int) []models.DayPlan {
	if n <= 0 {
		return []models.DayPlan{}
	}

	start := 0
	for i, p := range plans {
		if p.Date == today {
			start = i
			break
		}
	}

	end := start + n
	if end > len(plans) {
		end = len(plans)
	}
	return plans[start:end]
}
