package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quadra/translator/internal/events"
	"github.com/quadra/translator/internal/message"
	"github.com/quadra/translator/internal/pubsub"
)

// Service owns the session set and the active session pointer.
//
// The mutex is the single logical append point: concurrent completions
// from independent in-flight operations serialize here, so two
// near-simultaneous appends never drop one result. Every committed
// mutation persists the full set through the Store before returning.
type Service struct {
	store  Store
	broker *pubsub.Broker[events.SessionEvent]

	mu       sync.Mutex
	sessions []*Session // persisted set, insertion order
	active   *Session   // may not be in sessions until its first message
}

// NewService loads the persisted history and creates a fresh active
// session. The fresh session is not persisted until it has a message.
func NewService(ctx context.Context, store Store, broker *pubsub.Broker[events.SessionEvent]) (*Service, error) {
	sessions, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}

	s := &Service{
		store:    store,
		broker:   broker,
		sessions: sessions,
	}
	s.NewSession()
	return s, nil
}

// NewSession assigns a fresh session and makes it active. The session
// exists only in memory until a first message is appended.
func (s *Service) NewSession() string {
	s.mu.Lock()
	sess := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
	s.active = sess
	s.mu.Unlock()

	s.publish(pubsub.EventCreated, events.NewSessionCreatedEvent(sess.ID))
	return sess.ID
}

// ActiveID returns the id of the active session.
func (s *Service) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.ID
}

// Load switches the active pointer to the named session. An unknown id
// is a silent no-op.
func (s *Service) Load(id string) {
	s.mu.Lock()
	sess := s.find(id)
	if sess == nil {
		s.mu.Unlock()
		return
	}
	s.active = sess
	s.mu.Unlock()

	s.publish(pubsub.EventUpdated, events.NewSessionSwitchedEvent(id))
}

// Delete removes a session and persists the shrunken set. Deleting the
// active session yields a fresh, empty active session.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := -1
	for i, sess := range s.sessions {
		if sess.ID == id {
			idx = i
			break
		}
	}
	if idx >= 0 {
		s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)
	}
	wasActive := s.active.ID == id

	if err := s.store.Save(ctx, s.sessions); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persisting after delete: %w", err)
	}
	s.mu.Unlock()

	s.publish(pubsub.EventDeleted, events.NewSessionDeletedEvent(id))

	if wasActive {
		s.NewSession()
	}
	return nil
}

// Append inserts a message at the end of the named session's list and
// persists the full set. The first message moves a session into the
// persisted set; a message for a session that no longer exists recreates
// it, so late translation results are kept for audit.
func (s *Service) Append(ctx context.Context, sessionID string, msg message.Message) error {
	s.mu.Lock()
	sess := s.find(sessionID)
	if sess == nil {
		if s.active != nil && s.active.ID == sessionID {
			sess = s.active
		} else {
			sess = &Session{ID: sessionID, CreatedAt: time.Now()}
		}
		s.sessions = append(s.sessions, sess)
	}

	sess.Messages = append(sess.Messages, msg)
	sess.LastMessage = msg.Text

	if err := s.store.Save(ctx, s.sessions); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persisting after append: %w", err)
	}
	s.mu.Unlock()

	s.publish(pubsub.EventUpdated,
		events.NewSessionMessageAddedEvent(sessionID, msg.ID, msg.Text))
	return nil
}

// SetMessageStatus updates the status of a message in place. This is the
// only mutation messages allow; it is meant for resolving a provisional
// upload before its result message lands.
func (s *Service) SetMessageStatus(ctx context.Context, sessionID, messageID string, status message.Status) error {
	s.mu.Lock()
	sess := s.find(sessionID)
	if sess == nil {
		s.mu.Unlock()
		return nil
	}
	changed := false
	for i := range sess.Messages {
		if sess.Messages[i].ID == messageID {
			sess.Messages[i].Status = status
			changed = true
			break
		}
	}
	if !changed {
		s.mu.Unlock()
		return nil
	}

	if err := s.store.Save(ctx, s.sessions); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persisting status change: %w", err)
	}
	s.mu.Unlock()
	return nil
}

// Sessions returns a copy of the persisted session set in its stored
// order.
func (s *Service) Sessions() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = sess.clone()
	}
	return out
}

// Messages returns a copy of the named session's message list. The
// active session is visible here even before it is persisted.
func (s *Service) Messages(id string) []message.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.find(id)
	if sess == nil && s.active != nil && s.active.ID == id {
		sess = s.active
	}
	if sess == nil {
		return nil
	}
	out := make([]message.Message, len(sess.Messages))
	copy(out, sess.Messages)
	return out
}

// Search filters sessions by message content or language label. An empty
// query returns the unfiltered set in its original order.
func (s *Service) Search(query string, mode SearchMode) []*Session {
	if query == "" {
		return s.Sessions()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.ToLower(query)
	var out []*Session
	for _, sess := range s.sessions {
		if len(sess.Messages) == 0 {
			continue
		}
		if sessionMatches(sess, query, mode) {
			out = append(out, sess.clone())
		}
	}
	return out
}

func sessionMatches(sess *Session, query string, mode SearchMode) bool {
	for _, msg := range sess.Messages {
		var field string
		switch mode {
		case SearchLanguage:
			field = msg.Language
		default:
			field = msg.Text
		}
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (s *Service) find(id string) *Session {
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}

func (s *Service) publish(t pubsub.EventType, e events.SessionEvent) {
	if s.broker != nil {
		s.broker.Publish(t, e)
	}
}
