package bot

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// stopper is the part of *time.Timer a focus session needs.
type stopper interface {
	Stop() bool
}

// focusSession is a running countdown for one chat.
type focusSession struct {
	subjectID   string
	subjectName string
	started     time.Time
	timer       stopper
}

func (b *Bot) handleFocus(chatID int64, args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		return b.sendText(chatID, "Usage: /focus <subject>", nil)
	}
	subject, ok := findSubject(b.planner.Config(), name)
	if !ok {
		return b.sendText(chatID, fmt.Sprintf("No subject named %q.", name), nil)
	}
	return b.startFocus(chatID, subject.ID)
}

// startFocus starts a countdown that logs a study session for subjectID
// when it runs out. Only one session per chat runs at a time.
func (b *Bot) startFocus(chatID int64, subjectID string) error {
	cfg := b.planner.Config()
	i := cfg.FindSubject(subjectID)
	if i < 0 {
		return b.handleStaleButton(chatID)
	}

	b.focusMu.Lock()
	if running, ok := b.focus[chatID]; ok {
		b.focusMu.Unlock()
		return b.sendText(chatID, fmt.Sprintf("A focus session for %s is already running. Use /stop to cancel it.", running.subjectName), nil)
	}
	session := &focusSession{
		subjectID:   subjectID,
		subjectName: cfg.Subjects[i].Name,
		started:     time.Now(),
	}
	session.timer = b.afterFunc(b.cfg.FocusDuration, func() { b.finishFocus(chatID, session) })
	b.focus[chatID] = session
	b.focusMu.Unlock()

	return b.sendText(chatID, fmt.Sprintf("⏱ Focus on %s for %d minutes. /stop cancels without logging.",
		session.subjectName, int(b.cfg.FocusDuration/time.Minute)), nil)
}

func (b *Bot) finishFocus(chatID int64, session *focusSession) {
	b.focusMu.Lock()
	if b.focus[chatID] != session {
		b.focusMu.Unlock()
		return
	}
	delete(b.focus, chatID)
	b.focusMu.Unlock()

	minutes := int(b.cfg.FocusDuration / time.Minute)
	b.planner.AddStudySession(context.Background(), session.subjectID, minutes)
	if err := b.sendText(chatID, fmt.Sprintf("⏰ Focus session on %s finished. Take a short break!", session.subjectName), nil); err != nil {
		b.log.Warn("failed to announce focus end", "error", err)
	}
}

func (b *Bot) handleStopFocus(chatID int64) error {
	b.focusMu.Lock()
	session, ok := b.focus[chatID]
	if ok {
		session.timer.Stop()
		delete(b.focus, chatID)
	}
	b.focusMu.Unlock()

	if !ok {
		return b.sendText(chatID, "No focus session is running.", nil)
	}
	elapsed := int(time.Since(session.started) / time.Minute)
	return b.sendText(chatID, fmt.Sprintf("⏹ Focus on %s stopped after %d min. Nothing was logged.",
		session.subjectName, elapsed), nil)
}
