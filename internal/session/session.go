// Package session provides conversation session management with
// snapshot persistence.
package session

import (
	"time"

	"github.com/quadra/translator/internal/message"
)

// Session is one persisted conversation: ordered messages plus metadata.
type Session struct {
	ID          string            `json:"id"`
	CreatedAt   time.Time         `json:"created_at"`
	Messages    []message.Message `json:"messages"`
	LastMessage string            `json:"last_message"`
}

// SearchMode selects which message field a search query matches against.
type SearchMode string

// Search modes.
const (
	SearchContent  SearchMode = "content"
	SearchLanguage SearchMode = "language"
)

// clone returns a deep copy so callers can't mutate service state.
func (s *Session) clone() *Session {
	out := *s
	out.Messages = make([]message.Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return &out
}
