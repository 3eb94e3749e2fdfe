// Package notify reports the outcome of role and permission operations to the user interface.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Level is the severity shown to the user.
type Level string

const (
	// LevelSuccess marks a completed operation.
	LevelSuccess Level = "success"
	// LevelError marks a failed operation.
	LevelError Level = "error"
)

// Message is one user-facing notification.
type Message struct {
	ID        uuid.UUID `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Operation string    `json:"operation"`
	Level     Level     `json:"level"`
	Text      string    `json:"text"`
	Time      time.Time `json:"time"`
}

// NewMessage stamps a message with a fresh id and the current time.
func NewMessage(tenantID, operation string, level Level, text string) Message {
	return Message{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Operation: operation,
		Level:     level,
		Text:      text,
		Time:      time.Now().UTC(),
	}
}

// Notifier delivers messages.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// LogNotifier writes messages to the global zerolog logger.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(_ context.Context, msg Message) error {
	event := log.Info()
	if msg.Level == LevelError {
		event = log.Warn()
	}

	event.Str("id", msg.ID.String()).
		Str("tenant", msg.TenantID).
		Str("operation", msg.Operation).
		Str("level", string(msg.Level)).
		Msg(msg.Text)

	return nil
}

// Multi fans a message out to every notifier and joins their errors.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error

	for _, n := range m {
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Recorder keeps every message in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Notify implements Notifier.
func (r *Recorder) Notify(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, msg)

	return nil
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Message, len(r.messages))
	copy(out, r.messages)

	return out
}

// Reset drops the recorded messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = nil
}
