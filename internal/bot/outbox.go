package bot

import (
	"log/slog"

	"github.com/example/revisionbot/internal/notify"
)

// Outbox queues mutation notifications for delivery to the owner chat. It
// never blocks: when the queue is full the notification is dropped.
type Outbox struct {
	ch  chan notify.Message
	log *slog.Logger
}

// NewOutbox creates an outbox holding up to size undelivered messages.
func NewOutbox(size int, log *slog.Logger) *Outbox {
	if log == nil {
		log = slog.Default()
	}
	return &Outbox{ch: make(chan notify.Message, size), log: log}
}

// Notify implements notify.Notifier.
func (o *Outbox) Notify(message string, severity notify.Severity) {
	select {
	case o.ch <- notify.Message{Text: message, Severity: severity}:
	default:
		o.log.Warn("notification dropped, outbox full", "message", message)
	}
}

// severityIcon prefixes a notification according to its severity.
func severityIcon(s notify.Severity) string {
	switch s {
	case notify.Success:
		return "✅ "
	case notify.Error:
		return "❌ "
	}
	return "ℹ️ "
}
