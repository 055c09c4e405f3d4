// Package notify defines the fire-and-forget message sink used to tell the
// user what a mutation did.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Severity classifies a notification.
type Severity string

const (
	Success Severity = "success"
	Info    Severity = "info"
	Error   Severity = "error"
)

// Notifier shows a short message to the user. Implementations must not
// block the caller for long and must not report failures back.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Func adapts a plain function to Notifier.
type Func func(message string, severity Severity)

// Notify calls f.
func (f Func) Notify(message string, severity Severity) { f(message, severity) }

// Nop discards every notification.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(string, Severity) {}

// Log writes notifications to a structured logger.
type Log struct {
	Logger *slog.Logger
}

// Notify logs the message at a level matching its severity.
func (l Log) Notify(message string, severity Severity) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if severity == Error {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, "notification", "message", message, "severity", string(severity))
}

// Recorder keeps every notification in memory. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Message is a recorded notification.
type Message struct {
	Text     string
	Severity Severity
}

// Notify records the message.
func (r *Recorder) Notify(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Text: message, Severity: severity})
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Multi fans a notification out to several sinks.
type Multi []Notifier

// Notify forwards to every non-nil sink.
func (m Multi) Notify(message string, severity Severity) {
	for _, n := range m {
		if n != nil {
			n.Notify(message, severity)
		}
	}
}
