package testing

import (
	"context"
	"sync"

	"github.com/hamjambo/hare-report-mailer/pkg/mailer"
)

// RecordingSender is a mailer.Sender that keeps every message it was asked to send.
// Sends of a kind listed in Fail return the configured error and are still recorded.
type RecordingSender struct {
	Fail map[mailer.Kind]error

	mu       sync.Mutex
	messages []mailer.Message
}

var _ mailer.Sender = &RecordingSender{}

func NewRecordingSender() *RecordingSender {
	return &RecordingSender{Fail: map[mailer.Kind]error{}}
}

// FailOn makes every send of the given kind return err.
func (s *RecordingSender) FailOn(kind mailer.Kind, err error) *RecordingSender {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Fail[kind] = err

	return s
}

func (s *RecordingSender) Send(_ context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)

	return s.Fail[msg.Kind]
}

// Messages returns a copy of the recorded messages in send order.
func (s *RecordingSender) Messages() []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]mailer.Message, len(s.messages))
	copy(out, s.messages)

	return out
}
