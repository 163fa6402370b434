package audio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
)

// slowCloseDevice parks Close until release is closed, holding the
// first Stop mid-drain so a second Stop can race it.
type slowCloseDevice struct {
	closing chan struct{}
	release chan struct{}
}

func (d *slowCloseDevice) Acquire(_ context.Context) (Handle, error) {
	return &slowCloseHandle{d: d}, nil
}

type slowCloseHandle struct {
	d *slowCloseDevice
}

func (h *slowCloseHandle) Read() ([]byte, error) {
	<-h.d.release
	return nil, io.EOF
}

func (h *slowCloseHandle) Close() error {
	close(h.d.closing)
	<-h.d.release
	return nil
}

func TestBufferRecorder(t *testing.T) {
	t.Run("captures chunks between start and stop", func(t *testing.T) {
		device := &StubDevice{Chunks: [][]byte{[]byte("RIFF"), []byte("data"), []byte("tail")}}
		rec := NewBufferRecorder(device)

		if err := rec.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire: %v", err)
		}
		if err := rec.Start(); err != nil {
			t.Fatalf("Start: %v", err)
		}
		if !rec.Recording() {
			t.Error("expected recording in progress")
		}

		blob, err := rec.Stop()
		if err != nil {
			t.Fatalf("Stop: %v", err)
		}
		if !bytes.Equal(blob, []byte("RIFFdatatail")) {
			t.Errorf("blob = %q", blob)
		}
		if rec.Recording() {
			t.Error("still recording after stop")
		}
	})

	t.Run("permission denial surfaces from acquire", func(t *testing.T) {
		rec := NewBufferRecorder(&StubDevice{DenyPermission: true})
		if err := rec.Acquire(context.Background()); !errors.Is(err, ErrPermissionDenied) {
			t.Errorf("err = %v, want ErrPermissionDenied", err)
		}
		if err := rec.Start(); !errors.Is(err, ErrPermissionDenied) {
			t.Errorf("Start after denied acquire = %v, want ErrPermissionDenied", err)
		}
	})

	t.Run("second start is rejected", func(t *testing.T) {
		rec := NewBufferRecorder(&StubDevice{Chunks: [][]byte{[]byte("x")}})
		if err := rec.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire: %v", err)
		}
		if err := rec.Start(); err != nil {
			t.Fatalf("Start: %v", err)
		}
		if err := rec.Start(); !errors.Is(err, ErrAlreadyRecording) {
			t.Errorf("err = %v, want ErrAlreadyRecording", err)
		}
		if _, err := rec.Stop(); err != nil {
			t.Fatalf("Stop: %v", err)
		}
	})

	t.Run("stop without start is rejected", func(t *testing.T) {
		rec := NewBufferRecorder(&StubDevice{})
		if _, err := rec.Stop(); !errors.Is(err, ErrNotRecording) {
			t.Errorf("err = %v, want ErrNotRecording", err)
		}
	})

	t.Run("concurrent stop is rejected while the first drains", func(t *testing.T) {
		device := &slowCloseDevice{
			closing: make(chan struct{}),
			release: make(chan struct{}),
		}
		rec := NewBufferRecorder(device)

		if err := rec.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire: %v", err)
		}
		if err := rec.Start(); err != nil {
			t.Fatalf("Start: %v", err)
		}

		firstDone := make(chan error, 1)
		go func() {
			_, err := rec.Stop()
			firstDone <- err
		}()

		// Wait until the first Stop is parked inside Close, then stop
		// again from this goroutine.
		<-device.closing
		if _, err := rec.Stop(); !errors.Is(err, ErrNotRecording) {
			t.Errorf("second Stop = %v, want ErrNotRecording", err)
		}

		close(device.release)
		if err := <-firstDone; err != nil {
			t.Fatalf("first Stop: %v", err)
		}
	})

	t.Run("next recording needs a fresh acquire", func(t *testing.T) {
		rec := NewBufferRecorder(&StubDevice{Chunks: [][]byte{[]byte("a")}})
		if err := rec.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire: %v", err)
		}
		if err := rec.Start(); err != nil {
			t.Fatalf("Start: %v", err)
		}
		if _, err := rec.Stop(); err != nil {
			t.Fatalf("Stop: %v", err)
		}

		if err := rec.Start(); !errors.Is(err, ErrPermissionDenied) {
			t.Errorf("Start without reacquire = %v, want ErrPermissionDenied", err)
		}
	})
}
