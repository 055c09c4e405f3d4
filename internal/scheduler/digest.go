package scheduler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/example/revisionbot/internal/calendar"
	"github.com/example/revisionbot/pkg/models"
)

// Digest is everything the morning message reports.
type Digest struct {
	Date        string
	Day         models.DayPlan
	HasDay      bool
	DueReviews  []models.ReviewItem
	Questions   map[string][]string // keyed by review id
	Unallocated int
}

// BuildDigest renders d as plain text.
func BuildDigest(d Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Good morning! Plan for %s\n\n", calendar.FormatDate(d.Date))

	if d.HasDay {
		b.WriteString(FormatDay(d.Day))
	} else {
		b.WriteString("No study day planned: the exam date has passed or is today.\n")
	}

	if len(d.DueReviews) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatReviews(d.DueReviews, d.Questions))
	}

	if d.Unallocated > 0 {
		fmt.Fprintf(&b, "\n⚠️ %d topic(s) do not fit before the exam. Add daily hours or move the exam.\n", d.Unallocated)
	}
	return b.String()
}

// FormatDay renders one day of the schedule.
func FormatDay(day models.DayPlan) string {
	var b strings.Builder
	switch {
	case day.IsSkipped:
		fmt.Fprintf(&b, "⏭ %s is skipped. Its work moved to later days.\n", calendar.FormatDate(day.Date))
		return b.String()
	case day.IsBuffer:
		fmt.Fprintf(&b, "🛟 %s is a buffer day: catch up and revise.\n", calendar.FormatDate(day.Date))
		return b.String()
	case len(day.Tasks) == 0:
		fmt.Fprintf(&b, "✅ Nothing scheduled for %s.\n", calendar.FormatDate(day.Date))
		return b.String()
	}

	fmt.Fprintf(&b, "📚 %s (%sh)\n", calendar.FormatDate(day.Date), FormatHours(day.TotalHours))
	for _, task := range day.Tasks {
		fmt.Fprintf(&b, "• %s: %s (%sh)\n", task.SubjectName, task.TopicName, FormatHours(task.EstimatedHours))
	}
	return b.String()
}

// FormatReviews renders due reviews, each followed by its questions if any.
func FormatReviews(reviews []models.ReviewItem, questions map[string][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔁 Reviews due (%d)\n", len(reviews))
	for _, r := range reviews {
		fmt.Fprintf(&b, "• %s: %s (due %s)\n", r.SubjectName, r.TopicName, calendar.FormatDate(r.DueDate))
		for i, q := range questions[r.ID] {
			fmt.Fprintf(&b, "   %d. %s\n", i+1, q)
		}
	}
	return b.String()
}

// FormatHours prints hours rounded to two decimals without trailing zeros:
// 3, 1.5, 0.25.
func FormatHours(h float64) string {
	return strconv.FormatFloat(math.Round(h*100)/100, 'f', -1, 64)
}
