// Package audio captures microphone input for voice translation.
package audio

import (
	"context"
	"errors"
)

// Capture errors.
var (
	ErrPermissionDenied = errors.New("microphone access denied")
	ErrAlreadyRecording = errors.New("a recording is already in progress")
	ErrNotRecording     = errors.New("no recording in progress")
)

// Device is the platform capture backend. Acquire asks for microphone
// access and returns a handle that streams raw audio chunks until
// closed.
type Device interface {
	Acquire(ctx context.Context) (Handle, error)
}

// Handle is an open capture stream.
type Handle interface {
	// Read returns the next chunk of captured audio. It returns io.EOF
	// after Close.
	Read() ([]byte, error)
	Close() error
}

// Recorder accumulates microphone input between Start and Stop.
type Recorder interface {
	// Acquire requests device access. It must succeed before Start.
	Acquire(ctx context.Context) error
	// Start begins capturing. At most one recording may be active.
	Start() error
	// Stop ends the recording and returns the captured blob.
	Stop() ([]byte, error)
	// Recording reports whether a capture is in progress.
	Recording() bool
}
