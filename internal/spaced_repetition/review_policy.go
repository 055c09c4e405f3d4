package spaced_repetition

import (
	"sort"

	"github.com/example/revisionbot/internal/calendar"
	"github.com/example/revisionbot/pkg/models"
)

// reviewOffsets is the number of days after completion at which a topic of
// the given difficulty comes up for review. Easy topics get no review.
var reviewOffsets = map[models.Difficulty]int{
	models.DifficultyHard:   2,
	models.DifficultyMedium: 4,
}

// ReviewOffset returns how many days after completion a topic of difficulty d
// should be reviewed, and false when no review is scheduled.
func ReviewOffset(d models.Difficulty) (int, bool) {
	days, ok := reviewOffsets[d]
	return days, ok
}

// DueDate returns the review date for a topic completed on completedOn.
func DueDate(d models.Difficulty, completedOn string) (string, bool) {
	days, ok := ReviewOffset(d)
	if !ok {
		return "", false
	}
	return calendar.AddDays(completedOn, days), true
}

// PendingFor returns the index of the first pending review of topicID, or -1.
func PendingFor(reviews []models.ReviewItem, topicID string) int {
	for i, r := range reviews {
		if r.TopicID == topicID && !r.Completed {
			return i
		}
	}
	return -1
}

// IsDue reports whether a pending review should be done on or before today.
func IsDue(r models.ReviewItem, today string) bool {
	return !r.Completed && calendar.DaysBetween(r.DueDate, today) >= 0
}

// DueReviews returns the pending reviews due on or before today, most overdue
// first. Reviews due on the same day keep their creation order.
func DueReviews(reviews []models.ReviewItem, today string) []models.ReviewItem {
	var due []models.ReviewItem
	for _, r := range reviews {
		if IsDue(r, today) {
			due = append(due, r)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return calendar.DaysBetween(due[i].DueDate, due[j].DueDate) > 0
	})
	return due
}

// Pending returns every review not yet marked completed, in creation order.
func Pending(reviews []models.ReviewItem) []models.ReviewItem {
	var pending []models.ReviewItem
	for _, r := range reviews {
		if !r.Completed {
			pending = append(pending, r)
		}
	}
	return pending
}
