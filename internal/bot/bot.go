// Package bot is the Telegram front end of the planner. It serves a single
// owner chat: commands and buttons drive the planner service, and mutation
// notifications, focus-timer alerts and the daily digest are sent back there.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/revisionbot/internal/notify"
	"github.com/example/revisionbot/internal/service"
	"github.com/example/revisionbot/pkg/models"
)

// telegramAPI is the part of *tgbotapi.BotAPI the bot uses.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	GetFileDirectURL(fileID string) (string, error)
}

// Planner is the planner service as seen by the bot.
type Planner interface {
	Today() string
	Config() models.PlannerConfig
	Plan() []models.DayPlan
	TodayPlan() (models.DayPlan, bool)
	Upcoming(n int) []models.DayPlan
	Unallocated() []models.DayTask
	DueReviews() []models.ReviewItem
	Stats() models.Statistics

	SetExamDate(ctx context.Context, date string) models.PlannerConfig
	SetDailyHours(ctx context.Context, hours float64) models.PlannerConfig
	AddSubject(ctx context.Context, name string) string
	RemoveSubject(ctx context.Context, subjectID string) models.PlannerConfig
	AddTopic(ctx context.Context, subjectID, name string, difficulty models.Difficulty) string
	UpdateTopic(ctx context.Context, subjectID, topicID string, u models.TopicUpdate) models.PlannerConfig
	RemoveTopic(ctx context.Context, subjectID, topicID string) models.PlannerConfig
	ToggleTopicComplete(ctx context.Context, subjectID, topicID string) models.PlannerConfig
	ToggleReviewComplete(ctx context.Context, reviewID string) models.PlannerConfig
	SkipDay(ctx context.Context, date string) models.PlannerConfig
	AddStudySession(ctx context.Context, subjectID string, minutes int) models.PlannerConfig
	ImportTopics(ctx context.Context, rows []service.TopicRow) service.ImportSummary
	Reset(ctx context.Context) models.PlannerConfig
}

// Reminder sends the daily digest on demand.
type Reminder interface {
	RunNow(ctx context.Context) error
}

// QuestionGenerator produces self-test questions for a review.
type QuestionGenerator interface {
	RevisionQuestions(ctx context.Context, review models.ReviewItem) ([]string, error)
}

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// Bot represents the Telegram bot application
type Bot struct {
	api        telegramAPI
	cfg        BotConfig
	planner    Planner
	outbox     *Outbox
	reminder   Reminder
	questions  QuestionGenerator
	httpClient *http.Client
	log        *slog.Logger

	focusMu   sync.Mutex
	focus     map[int64]*focusSession
	afterFunc func(time.Duration, func()) stopper

	handlers sync.WaitGroup
}

// Option configures a Bot.
type Option func(*Bot)

// WithReminder enables /remind.
func WithReminder(r Reminder) Option {
	return func(b *Bot) { b.reminder = r }
}

// WithQuestions enables /quiz.
func WithQuestions(q QuestionGenerator) Option {
	return func(b *Bot) { b.questions = q }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(b *Bot) { b.log = log }
}

// WithHTTPClient sets the client used to download uploaded files.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Bot) { b.httpClient = c }
}

// Connect authorises against the Telegram Bot API.
func Connect(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("bot: unable to create bot: %w", err)
	}
	return api, nil
}

// New creates a new bot instance. outbox may be nil when mutation
// notifications are not delivered to the chat.
func New(api telegramAPI, cfg BotConfig, planner Planner, outbox *Outbox, opts ...Option) *Bot {
	b := &Bot{
		api:        api,
		cfg:        cfg,
		planner:    planner,
		outbox:     outbox,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        slog.Default(),
		focus:      make(map[int64]*focusSession),
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start receives updates until ctx is cancelled. Every update is handled in
// its own goroutine; queued notifications are delivered in order.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.cfg.UpdateTimeout
	updates := b.api.GetUpdatesChan(updateConfig)

	var notifications <-chan notify.Message
	if b.outbox != nil {
		notifications = b.outbox.ch
	}

	b.log.Info("bot started", "owner_chat_id", b.cfg.OwnerChatID)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-notifications:
			if err := b.sendText(b.cfg.OwnerChatID, severityIcon(n.Severity)+n.Text, nil); err != nil {
				b.log.Warn("failed to deliver notification", "error", err)
			}
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handlers.Add(1)
			go func() {
				defer b.handlers.Done()
				b.handleUpdate(ctx, update)
			}()
		}
	}
}

// Stop stops polling, cancels running focus sessions and waits for in-flight
// handlers until ctx expires.
func (b *Bot) Stop(ctx context.Context) error {
	b.api.StopReceivingUpdates()

	b.focusMu.Lock()
	for chatID, s := range b.focus {
		s.timer.Stop()
		delete(b.focus, chatID)
	}
	b.focusMu.Unlock()

	done := make(chan struct{})
	go func() {
		b.handlers.Wait()
		close(done)
	}()
	select {
	case <-done:
		b.log.Info("bot stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("bot: stop: %w", ctx.Err())
	}
}

// SendDigest implements scheduler.Sender.
func (b *Bot) SendDigest(_ context.Context, text string) error {
	return b.sendText(b.cfg.OwnerChatID, text, nil)
}

func (b *Bot) isOwner(chatID int64) bool {
	return chatID == b.cfg.OwnerChatID
}

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	var err error
	switch {
	case update.CallbackQuery != nil:
		callback := update.CallbackQuery
		if callback.Message == nil || callback.Message.Chat == nil || !b.isOwner(callback.Message.Chat.ID) {
			b.answerCallback(callback.ID, "Not allowed")
			return
		}
		err = b.HandleCallback(ctx, callback)

	case update.Message != nil:
		message := update.Message
		if message.Chat == nil {
			return
		}
		if !b.isOwner(message.Chat.ID) {
			b.log.Warn("ignoring message from foreign chat", "chat_id", message.Chat.ID)
			return
		}
		switch {
		case message.Document != nil:
			err = b.handleDocument(ctx, message)
		case message.IsCommand():
			err = b.HandleCommand(ctx, message)
		default:
			err = b.sendText(message.Chat.ID, "I only understand commands. Use /help to see them.", nil)
		}
	}

	if err != nil {
		b.log.Error("failed to handle update", "update_id", update.UpdateID, "error", err)
	}
}

func (b *Bot) sendText(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	return b.sendMessage(msg)
}

func (b *Bot) sendMessage(msg tgbotapi.Chattable) error {
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("bot: send: %w", err)
	}
	return nil
}

func (b *Bot) answerCallback(id, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		b.log.Debug("callback answer failed", "error", err)
	}
}
