package bot

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/revisionbot/internal/database"
	"github.com/example/revisionbot/internal/notify"
	"github.com/example/revisionbot/internal/service"
	"github.com/example/revisionbot/internal/state"
	"github.com/example/revisionbot/pkg/models"
)

const ownerChat int64 = 42

var fixedNow = time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)

type fakeAPI struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	fileURL  string
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeAPI) StopReceivingUpdates() {}

func (f *fakeAPI) GetFileDirectURL(string) (string, error) {
	return f.fileURL, nil
}

// texts returns the text of every plain message sent so far.
func (f *fakeAPI) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *fakeAPI) last() tgbotapi.Chattable {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return nil
	}
	return f.sent[len(f.sent)-1]
}

type memoryStore struct{}

func (memoryStore) Load(context.Context) (models.PlannerConfig, error) {
	return models.PlannerConfig{}, database.ErrNotFound
}

func (memoryStore) Save(context.Context, models.PlannerConfig) error { return nil }

type fakeTimer struct{ stopped bool }

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

type harness struct {
	bot    *Bot
	api    *fakeAPI
	svc    *service.PlannerService
	outbox *Outbox

	fire  func()
	timer *fakeTimer
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	outbox := NewOutbox(64, nil)
	n := 0
	var mu sync.Mutex
	mutator := state.New(outbox,
		state.WithClock(func() time.Time { return fixedNow }),
		state.WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id%d", n)
		}),
	)
	svc := service.New(context.Background(), memoryStore{}, mutator, service.WithClock(func() time.Time { return fixedNow }))

	cfg := DefaultConfig()
	cfg.OwnerChatID = ownerChat

	h := &harness{api: &fakeAPI{}, svc: svc, outbox: outbox}
	h.bot = New(h.api, cfg, svc, outbox, opts...)
	h.bot.afterFunc = func(_ time.Duration, f func()) stopper {
		h.fire = f
		h.timer = &fakeTimer{}
		return h.timer
	}
	return h
}

func command(chatID int64, text string) tgbotapi.Update {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}}
}

func press(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
	}}
}

func (h *harness) run(updates ...tgbotapi.Update) {
	for _, u := range updates {
		h.bot.handleUpdate(context.Background(), u)
	}
}

func (h *harness) notifications() []notify.Message {
	var out []notify.Message
	for {
		select {
		case m := <-h.outbox.ch:
			out = append(out, m)
		default:
			return out
		}
	}
}

func TestForeignChatIsIgnored(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(command(7, "/subject Math"), press(7, cbResetConfirm))

	assert.Empty(t, h.api.texts())
	assert.Empty(t, h.svc.Config().Subjects)
	assert.Len(t, h.api.requests, 1, "callback is still answered")
}

func TestSubjectAndTopicCommands(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(
		command(ownerChat, "/subject Math"),
		command(ownerChat, "/subject math"),
		command(ownerChat, "/topic Math | Calculus | hard"),
		command(ownerChat, "/topic MATH | Algebra | e | 1.5"),
		command(ownerChat, "/topic Physics | Optics"),
	)

	cfg := h.svc.Config()
	require.Len(t, cfg.Subjects, 1)
	require.Len(t, cfg.Subjects[0].Topics, 2)
	assert.Equal(t, models.DifficultyHard, cfg.Subjects[0].Topics[0].Difficulty)
	assert.InDelta(t, 3.0, cfg.Subjects[0].Topics[0].EstimatedHours, 1e-9)
	assert.InDelta(t, 1.5, cfg.Subjects[0].Topics[1].EstimatedHours, 1e-9)

	texts := h.api.texts()
	assert.Contains(t, texts, `Subject "math" already exists.`)
	assert.Contains(t, texts, `No subject named "Physics". Add it with /subject first.`)

	notes := h.notifications()
	require.Len(t, notes, 3)
	assert.Equal(t, notify.Message{Text: `Added subject "Math"`, Severity: notify.Success}, notes[0])
}

func TestDoneSchedulesReviewAndTodayShowsButtons(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(
		command(ownerChat, "/subject Math"),
		command(ownerChat, "/topic Math | Calculus | hard"),
		command(ownerChat, "/topic Math | Limits | medium"),
		command(ownerChat, "/today"),
	)

	today, ok := h.api.last().(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, today.Text, "• Math: Calculus (3h)")
	markup, ok := today.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, topicCallback("id1", "id2"), *markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, cbSkipDay+"2024-01-10", *markup.InlineKeyboard[1][0].CallbackData)

	h.run(command(ownerChat, "/done math | calculus"))
	cfg := h.svc.Config()
	assert.True(t, cfg.Subjects[0].Topics[0].Completed)
	require.Len(t, cfg.Reviews, 1)
	assert.Equal(t, "2024-01-12", cfg.Reviews[0].DueDate)

	h.run(press(ownerChat, topicCallback("id1", "id2")))
	assert.False(t, h.svc.Config().Subjects[0].Topics[0].Completed)
	assert.Empty(t, h.svc.Config().Reviews)
}

func TestExamHoursAndSkip(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(
		command(ownerChat, "/exam 2024-02-01"),
		command(ownerChat, "/exam tomorrow"),
		command(ownerChat, "/hours 2,5"),
		command(ownerChat, "/hours -1"),
		command(ownerChat, "/skip"),
		command(ownerChat, "/skip"),
		press(ownerChat, cbSkipDay+"2024-01-11"),
	)

	cfg := h.svc.Config()
	assert.Equal(t, "2024-02-01", cfg.ExamDate)
	assert.InDelta(t, 2.5, cfg.DailyStudyHours, 1e-9)
	assert.Equal(t, []string{"2024-01-10", "2024-01-11"}, cfg.SkippedDays)

	texts := h.api.texts()
	assert.Contains(t, texts, "🎯 Exam moved to Thu, Feb 1.")
	assert.Contains(t, texts, "Usage: /exam YYYY-MM-DD")
	assert.Contains(t, texts, "⏱ Daily study set to 2.5h.")
	assert.Contains(t, texts, "Wed, Jan 10 is already skipped.")
}

func TestFocusSession(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(command(ownerChat, "/subject Math"), command(ownerChat, "/focus math"))
	require.NotNil(t, h.fire)

	h.run(command(ownerChat, "/focus Math"))
	assert.Contains(t, h.api.last().(tgbotapi.MessageConfig).Text, "already running")

	h.fire()
	sessions := h.svc.Config().StudySessions
	require.Len(t, sessions, 1)
	assert.Equal(t, 25, sessions[0].Duration)
	assert.Equal(t, "id1", sessions[0].SubjectID)

	h.fire()
	assert.Len(t, h.svc.Config().StudySessions, 1, "a finished session fires once")

	h.run(command(ownerChat, "/stop"))
	assert.Equal(t, "No focus session is running.", h.api.last().(tgbotapi.MessageConfig).Text)
}

func TestFocusSession_StopDoesNotLog(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(command(ownerChat, "/subject Math"), press(ownerChat, cbFocus+"id1"), command(ownerChat, "/stop"))

	require.NotNil(t, h.timer)
	assert.True(t, h.timer.stopped)
	h.fire()
	assert.Empty(t, h.svc.Config().StudySessions)
}

func TestLogAndStats(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(
		command(ownerChat, "/subject Math"),
		command(ownerChat, "/log Math | 45"),
		command(ownerChat, "/log Math | soon"),
		command(ownerChat, "/stats"),
	)

	stats := h.api.last().(tgbotapi.MessageConfig).Text
	assert.Contains(t, stats, "Study time: 45 min (0.8h)")
	assert.Contains(t, stats, "• Math: 45 min (100%)")
	assert.Contains(t, h.api.texts(), `"soon" is not a whole number of minutes.`)
}

func TestReviewCallbacks(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(
		command(ownerChat, "/subject Math"),
		command(ownerChat, "/topic Math | Calculus | hard"),
		command(ownerChat, "/done Math | Calculus"),
		command(ownerChat, "/reviews"),
	)

	reviews := h.api.last().(tgbotapi.MessageConfig)
	assert.Contains(t, reviews.Text, "Later (1)")
	reviewID := h.svc.Config().Reviews[0].ID

	h.run(press(ownerChat, cbToggleReview+reviewID))
	assert.True(t, h.svc.Config().Reviews[0].Completed)
	assert.Equal(t, "🔁 Reviewed Calculus.", h.api.last().(tgbotapi.MessageConfig).Text)

	h.run(press(ownerChat, cbToggleReview+"missing"))
	assert.Contains(t, h.api.last().(tgbotapi.MessageConfig).Text, "out of date")
}

type fakeQuestions struct{}

func (fakeQuestions) RevisionQuestions(_ context.Context, r models.ReviewItem) ([]string, error) {
	return []string{"Explain " + r.TopicName + "."}, nil
}

func TestQuiz(t *testing.T) {
	t.Parallel()

	h := newHarness(t, WithQuestions(fakeQuestions{}))
	h.run(
		command(ownerChat, "/subject Math"),
		command(ownerChat, "/topic Math | Calculus | hard"),
		command(ownerChat, "/done Math | Calculus"),
		command(ownerChat, "/quiz"),
	)
	assert.Equal(t, "Nothing to quiz on: no reviews are due.", h.api.last().(tgbotapi.MessageConfig).Text)

	reviewID := h.svc.Config().Reviews[0].ID
	h.run(press(ownerChat, cbQuiz+reviewID))
	assert.Equal(t, "❓ Math: Calculus\n1. Explain Calculus.\n", h.api.last().(tgbotapi.MessageConfig).Text)
}

func TestQuizDisabled(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(command(ownerChat, "/quiz"))
	assert.Equal(t, "Quizzes need an OpenAI API key.", h.api.last().(tgbotapi.MessageConfig).Text)
}

func TestResetNeedsConfirmation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(command(ownerChat, "/subject Math"), command(ownerChat, "/reset"))
	assert.Len(t, h.svc.Config().Subjects, 1)

	h.run(press(ownerChat, cbResetCancel))
	assert.Len(t, h.svc.Config().Subjects, 1)

	h.run(press(ownerChat, cbResetConfirm))
	assert.Empty(t, h.svc.Config().Subjects)
}

func TestExportSendsWorkbook(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(command(ownerChat, "/export"))

	doc, ok := h.api.last().(tgbotapi.DocumentConfig)
	require.True(t, ok)
	file, ok := doc.File.(tgbotapi.FileBytes)
	require.True(t, ok)
	assert.Equal(t, "revision-plan-2024-01-10.xlsx", file.Name)
	assert.NotEmpty(t, file.Bytes)
}

func TestDocumentImport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Subject,Topic,Difficulty\nMath,Calculus,hard\nMath,,easy\nBio,Cells,m\n"))
	}))
	t.Cleanup(srv.Close)

	h := newHarness(t)
	h.api.fileURL = srv.URL + "/topics.csv"
	h.run(tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: ownerChat},
		Document: &tgbotapi.Document{FileID: "f1", FileName: "topics.csv"},
	}})

	cfg := h.svc.Config()
	require.Len(t, cfg.Subjects, 2)
	assert.Equal(t, "Calculus", cfg.Subjects[0].Topics[0].Name)
	assert.Equal(t, "Cells", cfg.Subjects[1].Topics[0].Name)
	assert.Equal(t, "⚠️ 1 of 3 row(s) were not imported:\nRow 3: topic cannot be empty\n", h.api.last().(tgbotapi.MessageConfig).Text)

	notes := h.notifications()
	require.NotEmpty(t, notes)
	assert.Equal(t, "Imported 2 topics (2 new subjects)", notes[len(notes)-1].Text)
}

func TestDocumentImport_RejectsOtherFiles(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: ownerChat},
		Document: &tgbotapi.Document{FileID: "f1", FileName: "notes.pdf"},
	}})
	assert.Contains(t, h.api.last().(tgbotapi.MessageConfig).Text, "Send an .xlsx or .csv file")
}

func TestMenuAndUnknown(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(
		command(ownerChat, "/nope"),
		press(ownerChat, cbMenu+menuSubjects),
		press(ownerChat, "garbage"),
	)

	assert.Equal(t, []string{
		"Unknown command. Use /help to see what I can do.",
		"No subjects yet. Add one with /subject <name>.",
		"⚠️ That button is out of date. Use /help to start again.",
	}, h.api.texts())
}

func TestOutboxDropsWhenFull(t *testing.T) {
	t.Parallel()

	o := NewOutbox(1, nil)
	o.Notify("first", notify.Info)
	o.Notify("second", notify.Info)

	assert.Equal(t, notify.Message{Text: "first", Severity: notify.Info}, <-o.ch)
	select {
	case m := <-o.ch:
		t.Fatalf("unexpected message %v", m)
	default:
	}
}

func TestStopCancelsFocusAndWaits(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.run(command(ownerChat, "/subject Math"), command(ownerChat, "/focus Math"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, h.bot.Stop(ctx))
	assert.True(t, h.timer.stopped)
}

func TestParseTopicArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    topicArgs
		wantErr bool
	}{
		{in: "Math | Calculus", want: topicArgs{Subject: "Math", Topic: "Calculus", Difficulty: models.DifficultyMedium}},
		{in: " Math|Calculus|H ", want: topicArgs{Subject: "Math", Topic: "Calculus", Difficulty: models.DifficultyHard}},
		{in: "Math | Calculus | easy | 0,5", want: topicArgs{Subject: "Math", Topic: "Calculus", Difficulty: models.DifficultyEasy, Hours: 0.5}},
		{in: "Math | Calculus || 2", want: topicArgs{Subject: "Math", Topic: "Calculus", Difficulty: models.DifficultyMedium, Hours: 2}},
		{in: "Math", wantErr: true},
		{in: " | Calculus", wantErr: true},
		{in: "Math | Calculus | brutal", wantErr: true},
		{in: "Math | Calculus | hard | 0", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseTopicArgs(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTopicCallbackRoundTrip(t *testing.T) {
	t.Parallel()

	data := topicCallback("0123456789abcdef", "fedcba9876543210")
	assert.LessOrEqual(t, len(data), 64)

	subjectID, topicID, ok := parseTopicCallback(data)
	require.True(t, ok)
	assert.Equal(t, "0123456789abcdef", subjectID)
	assert.Equal(t, "fedcba9876543210", topicID)

	for _, bad := range []string{"t:", "t:abc", "t::x", "r:abc:def"} {
		_, _, ok := parseTopicCallback(bad)
		assert.False(t, ok, bad)
	}
}
