package notify

import (
	"context"
	"log"
	"sync"
)

// LogSender writes messages to the process log instead of delivering them.
// Used when no SendGrid key is configured.
type LogSender struct {
	mu   sync.Mutex
	sent []Message
}

var _ EmailSender = (*LogSender)(nil)

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	log.Printf("email to=%q subject=%q\n%s", msg.ToEmail, msg.Subject, msg.Text)

	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	return nil
}

// Sent returns a copy of every message written so far.
func (s *LogSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}
