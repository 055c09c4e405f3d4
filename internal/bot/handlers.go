package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/revisionbot/internal/calendar"
	"github.com/example/revisionbot/internal/scheduler"
	"github.com/example/revisionbot/pkg/models"
)

// HandleCommand handles bot commands
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	args := message.CommandArguments()

	switch message.Command() {
	case "start", "help", "menu":
		return b.handleHelp(chatID)
	case "today":
		return b.handleToday(chatID)
	case "upcoming":
		return b.handleUpcoming(chatID, args)
	case "skip":
		return b.handleSkip(ctx, chatID, args)
	case "exam":
		return b.handleExam(ctx, chatID, args)
	case "hours":
		return b.handleHours(ctx, chatID, args)
	case "subjects":
		return b.handleSubjects(chatID)
	case "subject":
		return b.handleAddSubject(ctx, chatID, args)
	case "rmsubject":
		return b.handleRemoveSubject(ctx, chatID, args)
	case "topic":
		return b.handleAddTopic(ctx, chatID, args)
	case "rmtopic":
		return b.handleRemoveTopic(ctx, chatID, args)
	case "done":
		return b.handleDone(ctx, chatID, args)
	case "reviews":
		return b.handleReviews(chatID)
	case "quiz":
		return b.handleQuiz(ctx, chatID, "")
	case "focus":
		return b.handleFocus(chatID, args)
	case "stop":
		return b.handleStopFocus(chatID)
	case "log":
		return b.handleLog(ctx, chatID, args)
	case "stats":
		return b.handleStats(chatID)
	case "export":
		return b.handleExport(chatID)
	case "remind":
		return b.handleRemind(ctx, chatID)
	case "reset":
		return b.handleReset(chatID)
	default:
		return b.handleUnknownCommand(chatID)
	}
}

func (b *Bot) handleHelp(chatID int64) error {
	markup := createKeyboard(MainMenuButtons())
	return b.sendText(chatID, helpText, &markup)
}

func (b *Bot) handleUnknownCommand(chatID int64) error {
	return b.sendText(chatID, "Unknown command. Use /help to see what I can do.", nil)
}

func (b *Bot) handleToday(chatID int64) error {
	day, ok := b.planner.TodayPlan()
	if !ok {
		return b.sendText(chatID, "No study day planned for today: the exam date has passed or is today. Move it with /exam.", nil)
	}
	markup := createKeyboard(dayKeyboard(day))
	if len(markup.InlineKeyboard) == 0 {
		return b.sendText(chatID, scheduler.FormatDay(day), nil)
	}
	return b.sendText(chatID, scheduler.FormatDay(day), &markup)
}

func (b *Bot) handleUpcoming(chatID int64, args string) error {
	n := b.cfg.UpcomingDays
	if s := strings.TrimSpace(args); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			return b.sendText(chatID, "Usage: /upcoming [days], for example /upcoming 14", nil)
		}
		n = v
	}
	return b.sendText(chatID, formatUpcoming(b.planner.Upcoming(n), len(b.planner.Unallocated())), nil)
}

func (b *Bot) handleSkip(ctx context.Context, chatID int64, args string) error {
	date := strings.TrimSpace(args)
	if date == "" {
		date = b.planner.Today()
	}
	if !calendar.IsValid(date) {
		return b.sendText(chatID, "Usage: /skip [YYYY-MM-DD]", nil)
	}
	if b.planner.Config().IsSkipped(date) {
		return b.sendText(chatID, fmt.Sprintf("%s is already skipped.", calendar.FormatDate(date)), nil)
	}
	b.planner.SkipDay(ctx, date)
	return nil
}

func (b *Bot) handleExam(ctx context.Context, chatID int64, args string) error {
	date := strings.TrimSpace(args)
	if date == "" {
		cfg := b.planner.Config()
		days := calendar.DaysBetween(b.planner.Today(), cfg.ExamDate)
		return b.sendText(chatID, fmt.Sprintf("🎯 Exam on %s (%s), %d days from today.",
			calendar.FormatDate(cfg.ExamDate), cfg.ExamDate, days), nil)
	}
	if !calendar.IsValid(date) {
		return b.sendText(chatID, "Usage: /exam YYYY-MM-DD", nil)
	}
	b.planner.SetExamDate(ctx, date)
	return b.sendText(chatID, fmt.Sprintf("🎯 Exam moved to %s.", calendar.FormatDate(date)), nil)
}

func (b *Bot) handleHours(ctx context.Context, chatID int64, args string) error {
	hours, err := parsePositive(args)
	if err != nil {
		return b.sendText(chatID, "Usage: /hours <hours per day>, for example /hours 2.5", nil)
	}
	b.planner.SetDailyHours(ctx, hours)
	return b.sendText(chatID, fmt.Sprintf("⏱ Daily study set to %sh.", scheduler.FormatHours(hours)), nil)
}

func (b *Bot) handleSubjects(chatID int64) error {
	cfg := b.planner.Config()
	markup := createKeyboard(subjectsKeyboard(cfg))
	if len(markup.InlineKeyboard) == 0 {
		return b.sendText(chatID, formatSubjects(cfg), nil)
	}
	return b.sendText(chatID, formatSubjects(cfg), &markup)
}

func (b *Bot) handleAddSubject(ctx context.Context, chatID int64, args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		return b.sendText(chatID, "Usage: /subject <name>", nil)
	}
	if _, exists := findSubject(b.planner.Config(), name); exists {
		return b.sendText(chatID, fmt.Sprintf("Subject %q already exists.", name), nil)
	}
	b.planner.AddSubject(ctx, name)
	return nil
}

func (b *Bot) handleRemoveSubject(ctx context.Context, chatID int64, args string) error {
	subject, ok := findSubject(b.planner.Config(), args)
	if !ok {
		return b.sendText(chatID, fmt.Sprintf("No subject named %q.", strings.TrimSpace(args)), nil)
	}
	b.planner.RemoveSubject(ctx, subject.ID)
	return nil
}

func (b *Bot) handleAddTopic(ctx context.Context, chatID int64, args string) error {
	parsed, err := parseTopicArgs(args)
	if err != nil {
		return b.sendText(chatID, err.Error(), nil)
	}
	subject, ok := findSubject(b.planner.Config(), parsed.Subject)
	if !ok {
		return b.sendText(chatID, fmt.Sprintf("No subject named %q. Add it with /subject first.", parsed.Subject), nil)
	}

	topicID := b.planner.AddTopic(ctx, subject.ID, parsed.Topic, parsed.Difficulty)
	if topicID != "" && parsed.Hours > 0 && parsed.Hours != parsed.Difficulty.Hours() {
		hours := parsed.Hours
		b.planner.UpdateTopic(ctx, subject.ID, topicID, models.TopicUpdate{EstimatedHours: &hours})
	}
	return nil
}

func (b *Bot) handleRemoveTopic(ctx context.Context, chatID int64, args string) error {
	subjectName, topicName, err := parsePair(args, "/rmtopic <subject> | <topic>")
	if err != nil {
		return b.sendText(chatID, err.Error(), nil)
	}
	subject, topic, err := findTopic(b.planner.Config(), subjectName, topicName)
	if err != nil {
		return b.sendText(chatID, err.Error(), nil)
	}
	b.planner.RemoveTopic(ctx, subject.ID, topic.ID)
	return nil
}

func (b *Bot) handleDone(ctx context.Context, chatID int64, args string) error {
	subjectName, topicName, err := parsePair(args, "/done <subject> | <topic>")
	if err != nil {
		return b.sendText(chatID, err.Error(), nil)
	}
	subject, topic, err := findTopic(b.planner.Config(), subjectName, topicName)
	if err != nil {
		return b.sendText(chatID, err.Error(), nil)
	}
	b.planner.ToggleTopicComplete(ctx, subject.ID, topic.ID)
	return nil
}

func (b *Bot) handleReviews(chatID int64) error {
	cfg := b.planner.Config()
	text := formatReviewList(cfg.Reviews, b.planner.Today())
	markup := createKeyboard(reviewsKeyboard(cfg.Reviews, b.questions != nil))
	if len(markup.InlineKeyboard) == 0 {
		return b.sendText(chatID, text, nil)
	}
	return b.sendText(chatID, text, &markup)
}

// handleQuiz sends questions for reviewID, or for the most overdue review
// when reviewID is empty.
func (b *Bot) handleQuiz(ctx context.Context, chatID int64, reviewID string) error {
	if b.questions == nil {
		return b.sendText(chatID, "Quizzes need an OpenAI API key.", nil)
	}

	var review models.ReviewItem
	found := false
	if reviewID == "" {
		if due := b.planner.DueReviews(); len(due) > 0 {
			review, found = due[0], true
		}
	} else {
		for _, r := range b.planner.Config().Reviews {
			if r.ID == reviewID {
				review, found = r, true
				break
			}
		}
	}
	if !found {
		return b.sendText(chatID, "Nothing to quiz on: no reviews are due.", nil)
	}

	questions, err := b.questions.RevisionQuestions(ctx, review)
	if err != nil {
		b.log.Warn("quiz generation failed", "review", review.ID, "error", err)
		return b.sendText(chatID, "Couldn't generate questions right now. Try again later.", nil)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "❓ %s: %s\n", review.SubjectName, review.TopicName)
	for i, q := range questions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, q)
	}
	markup := createKeyboard([][]MenuButton{{{Text: "✅ Mark reviewed", CallbackData: cbToggleReview + review.ID}}})
	return b.sendText(chatID, sb.String(), &markup)
}

func (b *Bot) handleLog(ctx context.Context, chatID int64, args string) error {
	subjectName, minutesArg, err := parsePair(args, "/log <subject> | <minutes>")
	if err != nil {
		return b.sendText(chatID, err.Error(), nil)
	}
	minutes, err := strconv.Atoi(minutesArg)
	if err != nil || minutes <= 0 {
		return b.sendText(chatID, fmt.Sprintf("%q is not a whole number of minutes.", minutesArg), nil)
	}
	subject, ok := findSubject(b.planner.Config(), subjectName)
	if !ok {
		return b.sendText(chatID, fmt.Sprintf("No subject named %q.", subjectName), nil)
	}
	b.planner.AddStudySession(ctx, subject.ID, minutes)
	return nil
}

func (b *Bot) handleStats(chatID int64) error {
	return b.sendText(chatID, formatStats(b.planner.Stats(), b.planner.Config()), nil)
}

func (b *Bot) handleRemind(ctx context.Context, chatID int64) error {
	if b.reminder == nil {
		return b.sendText(chatID, "The daily digest is disabled.", nil)
	}
	if err := b.reminder.RunNow(ctx); err != nil {
		b.log.Error("manual digest failed", "error", err)
		return b.sendText(chatID, "❌ Couldn't send the digest.", nil)
	}
	return nil
}

func (b *Bot) handleReset(chatID int64) error {
	markup := createKeyboard([][]MenuButton{{
		{Text: "🗑 Yes, erase everything", CallbackData: cbResetConfirm},
		{Text: "Cancel", CallbackData: cbResetCancel},
	}})
	return b.sendText(chatID, "This deletes all subjects, topics, reviews and logged time. Are you sure?", &markup)
}
