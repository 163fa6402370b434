package events

import "time"

// SpeechEventType represents speech output event types.
type SpeechEventType string

// Speech event type constants.
const (
	SpeechEventStarted         SpeechEventType = "started"
	SpeechEventCancelled       SpeechEventType = "cancelled"
	SpeechEventVoicesRefreshed SpeechEventType = "voices_refreshed"
)

// SpeechEvent reports speech playback activity and catalog refreshes.
type SpeechEvent struct {
	Type       SpeechEventType
	Locale     string
	VoiceCount int
	Timestamp  time.Time
}

// NewSpeechStartedEvent creates a playback started event.
func NewSpeechStartedEvent(locale string) SpeechEvent {
	return SpeechEvent{
		Type:      SpeechEventStarted,
		Locale:    locale,
		Timestamp: time.Now(),
	}
}

// NewSpeechCancelledEvent creates a playback cancelled event.
func NewSpeechCancelledEvent() SpeechEvent {
	return SpeechEvent{
		Type:      SpeechEventCancelled,
		Timestamp: time.Now(),
	}
}

// NewSpeechVoicesRefreshedEvent creates a catalog refresh event.
func NewSpeechVoicesRefreshedEvent(count int) SpeechEvent {
	return SpeechEvent{
		Type:       SpeechEventVoicesRefreshed,
		VoiceCount: count,
		Timestamp:  time.Now(),
	}
}
