package bot

import (
	"fmt"
	"strings"

	"github.com/example/revisionbot/internal/calendar"
	"github.com/example/revisionbot/internal/scheduler"
	"github.com/example/revisionbot/internal/spaced_repetition"
	"github.com/example/revisionbot/pkg/models"
)

const helpText = `📖 Exam revision planner

Plan
/today - today's topics
/upcoming [days] - the next days of the plan
/skip [YYYY-MM-DD] - skip a day (today by default)
/exam [YYYY-MM-DD] - show or set the exam date
/hours <hours> - set daily study hours

Subjects and topics
/subjects - list subjects and topics
/subject <name> - add a subject
/rmsubject <name> - remove a subject and its topics
/topic <subject> | <topic> [| easy|medium|hard [| hours]] - add a topic
/rmtopic <subject> | <topic> - remove a topic
/done <subject> | <topic> - mark a topic done (or undone)

Reviews and focus
/reviews - pending reviews
/quiz - self-test questions for the next due review
/focus <subject> - start a focus session
/stop - cancel the focus session
/log <subject> | <minutes> - log study time

Other
/stats - progress and study time
/export - download the plan as a spreadsheet
/remind - send today's digest now
/reset - start over

Send an .xlsx or .csv file with columns Subject, Topic, Difficulty, Hours to import topics.`

// MainMenuButtons returns the buttons for the main menu
func MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{
			{Text: "📚 Today", CallbackData: cbMenu + menuToday},
			{Text: "🗓 Upcoming", CallbackData: cbMenu + menuUpcoming},
		},
		{
			{Text: "🔁 Reviews", CallbackData: cbMenu + menuReviews},
			{Text: "📂 Subjects", CallbackData: cbMenu + menuSubjects},
		},
		{
			{Text: "📊 Stats", CallbackData: cbMenu + menuStats},
		},
	}
}

func formatUpcoming(days []models.DayPlan, unallocated int) string {
	if len(days) == 0 {
		return "No study days left before the exam."
	}
	var b strings.Builder
	for i, day := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(scheduler.FormatDay(day))
	}
	if unallocated > 0 {
		fmt.Fprintf(&b, "\n⚠️ %d topic(s) do not fit before the exam.\n", unallocated)
	}
	return b.String()
}

func formatSubjects(cfg models.PlannerConfig) string {
	if len(cfg.Subjects) == 0 {
		return "No subjects yet. Add one with /subject <name>."
	}
	var b strings.Builder
	for i, s := range cfg.Subjects {
		if i > 0 {
			b.WriteString("\n")
		}
		done := 0
		for _, t := range s.Topics {
			if t.Completed {
				done++
			}
		}
		fmt.Fprintf(&b, "📂 %s (%d/%d done)\n", s.Name, done, len(s.Topics))
		for _, t := range s.Topics {
			b.WriteString(formatTopic(t))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatTopic(t models.Topic) string {
	mark := "⬜"
	if t.Completed {
		mark = "✅"
	}
	return fmt.Sprintf("%s %s [%s, %sh]", mark, t.Name, t.Difficulty, scheduler.FormatHours(t.EstimatedHours))
}

func formatReviewList(reviews []models.ReviewItem, today string) string {
	pending := spaced_repetition.Pending(reviews)
	if len(pending) == 0 {
		return "No pending reviews. Complete a medium or hard topic to schedule one."
	}

	due := spaced_repetition.DueReviews(reviews, today)
	var b strings.Builder
	if len(due) > 0 {
		b.WriteString(scheduler.FormatReviews(due, nil))
	}

	var later []models.ReviewItem
	for _, r := range pending {
		if !spaced_repetition.IsDue(r, today) {
			later = append(later, r)
		}
	}
	if len(later) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "🗓 Later (%d)\n", len(later))
		for _, r := range later {
			fmt.Fprintf(&b, "• %s: %s (%s)\n", r.SubjectName, r.TopicName, calendar.FormatDate(r.DueDate))
		}
	}
	return b.String()
}

func formatStats(s models.Statistics, cfg models.PlannerConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Progress\n")
	fmt.Fprintf(&b, "Exam: %s (%d days left)\n", calendar.FormatDate(cfg.ExamDate), s.DaysUntilExam)
	fmt.Fprintf(&b, "Daily study: %sh\n", scheduler.FormatHours(cfg.DailyStudyHours))
	fmt.Fprintf(&b, "Topics: %d/%d done, %sh remaining\n", s.TopicsCompleted, s.TopicsTotal, scheduler.FormatHours(s.HoursRemaining))
	fmt.Fprintf(&b, "Reviews: %d pending, %d due\n", s.PendingReviews, s.DueReviews)
	fmt.Fprintf(&b, "\n⏱ Study time: %d min (%sh)\n", s.TotalMinutes, scheduler.FormatHours(s.TotalHours))
	for _, st := range s.BySubject {
		fmt.Fprintf(&b, "• %s: %d min (%.0f%%)\n", st.SubjectName, st.Minutes, st.Share*100)
	}
	return b.String()
}

// dayKeyboard offers a toggle per task of day and a skip button.
func dayKeyboard(day models.DayPlan) [][]MenuButton {
	var rows [][]MenuButton
	for _, task := range day.Tasks {
		rows = append(rows, []MenuButton{{
			Text:         "✅ " + task.TopicName,
			CallbackData: topicCallback(task.SubjectID, task.TopicID),
		}})
	}
	if !day.IsSkipped {
		rows = append(rows, []MenuButton{{Text: "⏭ Skip this day", CallbackData: cbSkipDay + day.Date}})
	}
	return rows
}

// subjectsKeyboard offers one button per subject leading to its topics.
func subjectsKeyboard(cfg models.PlannerConfig) [][]MenuButton {
	var rows [][]MenuButton
	for _, s := range cfg.Subjects {
		rows = append(rows, []MenuButton{
			{Text: "📂 " + s.Name, CallbackData: cbSubject + s.ID},
			{Text: "⏱ Focus", CallbackData: cbFocus + s.ID},
		})
	}
	return rows
}

// topicsKeyboard offers a completion toggle per topic of s.
func topicsKeyboard(s models.Subject) [][]MenuButton {
	var rows [][]MenuButton
	for _, t := range s.Topics {
		rows = append(rows, []MenuButton{{Text: formatTopic(t), CallbackData: topicCallback(s.ID, t.ID)}})
	}
	return rows
}

// reviewsKeyboard offers a completion toggle and a quiz button per review.
func reviewsKeyboard(reviews []models.ReviewItem, withQuiz bool) [][]MenuButton {
	var rows [][]MenuButton
	for _, r := range spaced_repetition.Pending(reviews) {
		row := []MenuButton{{Text: "✅ " + r.TopicName, CallbackData: cbToggleReview + r.ID}}
		if withQuiz {
			row = append(row, MenuButton{Text: "❓ Quiz", CallbackData: cbQuiz + r.ID})
		}
		rows = append(rows, row)
	}
	return rows
}
