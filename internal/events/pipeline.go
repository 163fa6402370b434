package events

import "time"

// PipelineKind identifies which content type an operation carries.
type PipelineKind string

// Pipeline operation kinds.
const (
	PipelineText  PipelineKind = "text"
	PipelineFile  PipelineKind = "file"
	PipelineImage PipelineKind = "image"
	PipelineVoice PipelineKind = "voice"
)

// PipelineEvent reports the dispatch or completion of a translation
// operation. SessionID is the session captured at dispatch time.
type PipelineEvent struct {
	SessionID string
	Kind      PipelineKind
	Err       string
	Timestamp time.Time
}

// NewPipelineStartedEvent creates a dispatch event.
func NewPipelineStartedEvent(sessionID string, kind PipelineKind) PipelineEvent {
	return PipelineEvent{
		SessionID: sessionID,
		Kind:      kind,
		Timestamp: time.Now(),
	}
}

// NewPipelineCompletedEvent creates a successful completion event.
func NewPipelineCompletedEvent(sessionID string, kind PipelineKind) PipelineEvent {
	return PipelineEvent{
		SessionID: sessionID,
		Kind:      kind,
		Timestamp: time.Now(),
	}
}

// NewPipelineFailedEvent creates a failed completion event.
func NewPipelineFailedEvent(sessionID string, kind PipelineKind, err error) PipelineEvent {
	e := PipelineEvent{
		SessionID: sessionID,
		Kind:      kind,
		Timestamp: time.Now(),
	}
	if err != nil {
		e.Err = err.Error()
	}
	return e
}
