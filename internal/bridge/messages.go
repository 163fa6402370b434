// Package bridge provides the connection between the pub/sub system and Bubble Tea.
package bridge

import (
	"github.com/quadra/translator/internal/events"
	"github.com/quadra/translator/internal/pubsub"
)

// SessionEventMsg wraps a session event for the TUI.
type SessionEventMsg struct {
	Event pubsub.Event[events.SessionEvent]
}

// PipelineEventMsg wraps a translation pipeline event for the TUI.
type PipelineEventMsg struct {
	Event pubsub.Event[events.PipelineEvent]
}

// SpeechEventMsg wraps a speech output event for the TUI.
type SpeechEventMsg struct {
	Event pubsub.Event[events.SpeechEvent]
}

// ErrorMsg indicates an error in the bridge.
type ErrorMsg struct {
	Source string
	Error  error
}
