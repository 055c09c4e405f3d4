package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandleCallback handles inline keyboard presses
func (b *Bot) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	chatID := callback.Message.Chat.ID
	data := callback.Data
	b.answerCallback(callback.ID, "")

	switch {
	case data == cbResetConfirm:
		b.planner.Reset(ctx)
		return nil
	case data == cbResetCancel:
		return b.sendText(chatID, "Reset cancelled.", nil)

	case strings.HasPrefix(data, cbToggleTopic):
		subjectID, topicID, ok := parseTopicCallback(data)
		if !ok {
			return b.handleStaleButton(chatID)
		}
		b.planner.ToggleTopicComplete(ctx, subjectID, topicID)
		return nil

	case strings.HasPrefix(data, cbToggleReview):
		return b.toggleReview(ctx, chatID, strings.TrimPrefix(data, cbToggleReview))

	case strings.HasPrefix(data, cbSkipDay):
		date := strings.TrimPrefix(data, cbSkipDay)
		if b.planner.Config().IsSkipped(date) {
			return nil
		}
		b.planner.SkipDay(ctx, date)
		return nil

	case strings.HasPrefix(data, cbSubject):
		return b.handleSubjectTopics(chatID, strings.TrimPrefix(data, cbSubject))

	case strings.HasPrefix(data, cbFocus):
		return b.startFocus(chatID, strings.TrimPrefix(data, cbFocus))

	case strings.HasPrefix(data, cbQuiz):
		return b.handleQuiz(ctx, chatID, strings.TrimPrefix(data, cbQuiz))

	case strings.HasPrefix(data, cbMenu):
		return b.handleMenu(chatID, strings.TrimPrefix(data, cbMenu))
	}

	return b.handleStaleButton(chatID)
}

func (b *Bot) toggleReview(ctx context.Context, chatID int64, reviewID string) error {
	cfg := b.planner.ToggleReviewComplete(ctx, reviewID)
	for _, r := range cfg.Reviews {
		if r.ID != reviewID {
			continue
		}
		if r.Completed {
			return b.sendText(chatID, "🔁 Reviewed "+r.TopicName+".", nil)
		}
		return b.sendText(chatID, "🔁 "+r.TopicName+" is pending again.", nil)
	}
	return b.handleStaleButton(chatID)
}

func (b *Bot) handleMenu(chatID int64, target string) error {
	switch target {
	case menuToday:
		return b.handleToday(chatID)
	case menuUpcoming:
		return b.handleUpcoming(chatID, "")
	case menuReviews:
		return b.handleReviews(chatID)
	case menuSubjects:
		return b.handleSubjects(chatID)
	case menuStats:
		return b.handleStats(chatID)
	}
	return b.handleStaleButton(chatID)
}

func (b *Bot) handleSubjectTopics(chatID int64, subjectID string) error {
	cfg := b.planner.Config()
	i := cfg.FindSubject(subjectID)
	if i < 0 {
		return b.handleStaleButton(chatID)
	}
	subject := cfg.Subjects[i]
	if len(subject.Topics) == 0 {
		return b.sendText(chatID, "📂 "+subject.Name+" has no topics yet. Add one with /topic "+subject.Name+" | <topic>.", nil)
	}
	markup := createKeyboard(topicsKeyboard(subject))
	return b.sendText(chatID, "📂 "+subject.Name+": tap a topic to mark it done or undone.", &markup)
}

func (b *Bot) handleStaleButton(chatID int64) error {
	return b.sendText(chatID, "⚠️ That button is out of date. Use /help to start again.", nil)
}
