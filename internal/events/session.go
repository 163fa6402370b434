// Package events defines typed event payloads published on the hub.
package events

import "time"

// SessionEventType represents session-specific event types.
type SessionEventType string

// Session event type constants.
const (
	SessionEventCreated      SessionEventType = "created"
	SessionEventSwitched     SessionEventType = "switched"
	SessionEventDeleted      SessionEventType = "deleted"
	SessionEventMessageAdded SessionEventType = "message_added"
)

// SessionEvent represents a session lifecycle event.
type SessionEvent struct {
	SessionID string
	Type      SessionEventType
	Timestamp time.Time

	// Set for MessageAdded.
	MessageID   string
	MessageText string
}

// NewSessionCreatedEvent creates a session created event.
func NewSessionCreatedEvent(id string) SessionEvent {
	return SessionEvent{
		SessionID: id,
		Type:      SessionEventCreated,
		Timestamp: time.Now(),
	}
}

// NewSessionSwitchedEvent creates a session switched event.
func NewSessionSwitchedEvent(id string) SessionEvent {
	return SessionEvent{
		SessionID: id,
		Type:      SessionEventSwitched,
		Timestamp: time.Now(),
	}
}

// NewSessionDeletedEvent creates a session deleted event.
func NewSessionDeletedEvent(id string) SessionEvent {
	return SessionEvent{
		SessionID: id,
		Type:      SessionEventDeleted,
		Timestamp: time.Now(),
	}
}

// NewSessionMessageAddedEvent creates a message added event.
func NewSessionMessageAddedEvent(sessionID, messageID, text string) SessionEvent {
	return SessionEvent{
		SessionID:   sessionID,
		Type:        SessionEventMessageAdded,
		MessageID:   messageID,
		MessageText: text,
		Timestamp:   time.Now(),
	}
}
