package audio

import (
	"context"
	"io"
	"sync"
)

// StubDevice is a capture backend with scripted behavior. It stands in
// where no platform microphone is available and drives recorder tests.
type StubDevice struct {
	// DenyPermission makes every Acquire fail with ErrPermissionDenied.
	DenyPermission bool
	// Chunks is the audio the device produces, in read order.
	Chunks [][]byte
}

// Acquire returns a handle that replays the scripted chunks.
func (d *StubDevice) Acquire(_ context.Context) (Handle, error) {
	if d.DenyPermission {
		return nil, ErrPermissionDenied
	}
	return &stubHandle{chunks: d.Chunks}, nil
}

type stubHandle struct {
	mu     sync.Mutex
	chunks [][]byte
	closed bool
}

func (h *stubHandle) Read() ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.chunks) == 0 {
		return nil, io.EOF
	}
	chunk := h.chunks[0]
	h.chunks = h.chunks[1:]
	if h.closed && len(h.chunks) == 0 {
		return chunk, io.EOF
	}
	return chunk, nil
}

func (h *stubHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}
