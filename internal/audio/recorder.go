package audio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/quadra/translator/internal/debug"
)

// BufferRecorder buffers captured chunks in memory until Stop. It
// enforces the single-active-recording rule itself, so the device
// backend does not have to.
type BufferRecorder struct {
	device Device

	mu        sync.Mutex
	handle    Handle
	recording bool
	buf       bytes.Buffer
	readErr   error
	done      chan struct{}
}

// NewBufferRecorder creates a recorder over the given capture device.
func NewBufferRecorder(device Device) *BufferRecorder {
	return &BufferRecorder{device: device}
}

// Acquire requests microphone access and holds the open handle for the
// next Start. Acquiring while a recording is active is an error.
func (r *BufferRecorder) Acquire(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return ErrAlreadyRecording
	}

	handle, err := r.device.Acquire(ctx)
	if err != nil {
		debug.Error("audio", err, "acquiring capture device")
		return err
	}
	if r.handle != nil {
		r.handle.Close()
	}
	r.handle = handle
	return nil
}

// Start begins draining the handle into the buffer.
func (r *BufferRecorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return ErrAlreadyRecording
	}
	if r.handle == nil {
		return ErrPermissionDenied
	}

	r.recording = true
	r.buf.Reset()
	r.readErr = nil
	r.done = make(chan struct{})
	go r.drain(r.handle, r.done)
	return nil
}

func (r *BufferRecorder) drain(handle Handle, done chan struct{}) {
	defer close(done)
	for {
		chunk, err := handle.Read()
		if len(chunk) > 0 {
			r.mu.Lock()
			r.buf.Write(chunk)
			r.mu.Unlock()
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.mu.Lock()
				r.readErr = err
				r.mu.Unlock()
			}
			return
		}
	}
}

// Stop closes the stream, waits for the final chunks to flush and
// returns the captured blob. The handle is released; the next recording
// needs a fresh Acquire.
func (r *BufferRecorder) Stop() ([]byte, error) {
	r.mu.Lock()
	if !r.recording || r.handle == nil {
		// A nil handle while recording means another Stop is already
		// draining the stream.
		r.mu.Unlock()
		return nil, ErrNotRecording
	}
	handle := r.handle
	done := r.done
	r.handle = nil
	r.mu.Unlock()

	handle.Close()
	<-done

	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
	if r.readErr != nil {
		return nil, r.readErr
	}
	blob := make([]byte, r.buf.Len())
	copy(blob, r.buf.Bytes())
	r.buf.Reset()
	return blob, nil
}

// Recording reports whether a capture is in progress.
func (r *BufferRecorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}
