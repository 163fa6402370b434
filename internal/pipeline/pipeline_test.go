package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/quadra/translator/internal/language"
	"github.com/quadra/translator/internal/message"
	"github.com/quadra/translator/internal/session"
	"github.com/quadra/translator/internal/translate"
)

// stubTranslator is a deterministic translator for tests. Setting block
// makes Text wait until the channel is closed, simulating a slow remote
// call.
type stubTranslator struct {
	mu         sync.Mutex
	textCalls  int
	fileCalls  int
	imageCalls int
	voiceCalls int

	textResult  string
	textErr     error
	fileResult  []byte
	fileErr     error
	imageResult string
	imageErr    error
	voiceResult translate.VoiceResult
	voiceErr    error

	block chan struct{}
}

func (s *stubTranslator) Text(_ context.Context, _ string, _ language.Code) (string, error) {
	s.mu.Lock()
	s.textCalls++
	block := s.block
	s.mu.Unlock()
	if block != nil {
		<-block
	}
	return s.textResult, s.textErr
}

func (s *stubTranslator) File(_ context.Context, _ string, _ []byte, _ language.Code) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fileCalls++
	return s.fileResult, s.fileErr
}

func (s *stubTranslator) Image(_ context.Context, _ string, _ []byte, _ language.Code) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imageCalls++
	return s.imageResult, s.imageErr
}

func (s *stubTranslator) Voice(_ context.Context, _ []byte, _ language.Code) (translate.VoiceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voiceCalls++
	return s.voiceResult, s.voiceErr
}

func (s *stubTranslator) calls() (text, file, image, voice int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.textCalls, s.fileCalls, s.imageCalls, s.voiceCalls
}

// failingStatusSessions fails status updates while delegating everything
// else to the real service.
type failingStatusSessions struct {
	*session.Service
}

func (s *failingStatusSessions) SetMessageStatus(context.Context, string, string, message.Status) error {
	return errors.New("status update failed")
}

func newTestPipeline(t *testing.T, stub *stubTranslator) (*Pipeline, *session.Service) {
	t.Helper()
	dir := t.TempDir()
	store := session.NewFileStore(filepath.Join(dir, "history.json"))
	svc, err := session.NewService(context.Background(), store, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	p := New(Config{
		Translator: stub,
		Sessions:   svc,
		DataDir:    dir,
	})
	return p, svc
}

func TestSendText(t *testing.T) {
	t.Run("success appends user then translation", func(t *testing.T) {
		stub := &stubTranslator{textResult: "Hola"}
		p, svc := newTestPipeline(t, stub)
		id := svc.ActiveID()

		if err := p.SendText(context.Background(), "Hello", language.Spanish); err != nil {
			t.Fatalf("SendText: %v", err)
		}

		msgs := svc.Messages(id)
		if len(msgs) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(msgs))
		}
		if msgs[0].Text != "Hello" || !msgs[0].IsUser {
			t.Errorf("first message: %+v", msgs[0])
		}
		if msgs[1].Text == "" || msgs[1].IsUser {
			t.Errorf("second message: %+v", msgs[1])
		}
		if msgs[1].Language != "Spanish" {
			t.Errorf("language = %q, want Spanish", msgs[1].Language)
		}
		if msgs[1].OriginalText != "Hello" {
			t.Errorf("originalText = %q", msgs[1].OriginalText)
		}
	})

	t.Run("blank text is rejected without side effects", func(t *testing.T) {
		stub := &stubTranslator{}
		p, svc := newTestPipeline(t, stub)
		id := svc.ActiveID()

		if err := p.SendText(context.Background(), "   ", language.Spanish); !errors.Is(err, ErrEmptyText) {
			t.Errorf("err = %v, want ErrEmptyText", err)
		}
		if len(svc.Messages(id)) != 0 {
			t.Error("expected no messages")
		}
		if text, _, _, _ := stub.calls(); text != 0 {
			t.Error("expected no remote call")
		}
	})

	t.Run("remote failure becomes an error message", func(t *testing.T) {
		stub := &stubTranslator{textErr: errors.New("Translation failed")}
		p, svc := newTestPipeline(t, stub)
		id := svc.ActiveID()

		if err := p.SendText(context.Background(), "Hello", language.Spanish); err != nil {
			t.Fatalf("SendText: %v", err)
		}

		msgs := svc.Messages(id)
		if len(msgs) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(msgs))
		}
		// The user's original message stays intact.
		if msgs[0].Text != "Hello" || !msgs[0].IsUser {
			t.Errorf("user message altered: %+v", msgs[0])
		}
		if msgs[1].Text != "Translation failed" || msgs[1].Language != language.LabelError {
			t.Errorf("error message: %+v", msgs[1])
		}
	})

	t.Run("second send while in flight is rejected", func(t *testing.T) {
		stub := &stubTranslator{textResult: "Hola", block: make(chan struct{})}
		p, svc := newTestPipeline(t, stub)
		_ = svc

		done := make(chan error, 1)
		go func() {
			done <- p.SendText(context.Background(), "first", language.Spanish)
		}()

		// Wait for the first send to reach the remote call.
		deadline := time.After(time.Second)
		for !p.TextBusy() {
			select {
			case <-deadline:
				t.Fatal("first send never became busy")
			default:
				time.Sleep(time.Millisecond)
			}
		}

		if err := p.SendText(context.Background(), "second", language.Spanish); !errors.Is(err, ErrTranslationBusy) {
			t.Errorf("err = %v, want ErrTranslationBusy", err)
		}

		close(stub.block)
		if err := <-done; err != nil {
			t.Fatalf("first send: %v", err)
		}
		if p.TextBusy() {
			t.Error("pipeline still busy after completion")
		}
	})
}

func TestLateResultLandsOnDispatchSession(t *testing.T) {
	stub := &stubTranslator{textResult: "Hola", block: make(chan struct{})}
	p, svc := newTestPipeline(t, stub)
	captured := svc.ActiveID()

	done := make(chan error, 1)
	go func() {
		done <- p.SendText(context.Background(), "Hello", language.Spanish)
	}()

	deadline := time.After(time.Second)
	for !p.TextBusy() {
		select {
		case <-deadline:
			t.Fatal("send never became busy")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	// User switches to a new chat while the response is pending.
	other := svc.NewSession()

	close(stub.block)
	if err := <-done; err != nil {
		t.Fatalf("SendText: %v", err)
	}

	if got := len(svc.Messages(captured)); got != 2 {
		t.Errorf("captured session has %d messages, want 2", got)
	}
	if got := len(svc.Messages(other)); got != 0 {
		t.Errorf("new session has %d messages, want 0", got)
	}
}

func TestSendFile(t *testing.T) {
	writeFile := func(t *testing.T, name string, content []byte) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatalf("writing test file: %v", err)
		}
		return path
	}

	t.Run("disallowed extension never reaches the network", func(t *testing.T) {
		stub := &stubTranslator{}
		p, svc := newTestPipeline(t, stub)
		id := svc.ActiveID()

		path := writeFile(t, "payload.exe", []byte("MZ"))
		if err := p.SendFile(context.Background(), path, language.Spanish); !errors.Is(err, ErrInvalidFileType) {
			t.Errorf("err = %v, want ErrInvalidFileType", err)
		}

		if _, file, _, _ := stub.calls(); file != 0 {
			t.Error("expected no remote call")
		}
		if len(svc.Messages(id)) != 0 {
			t.Error("expected message count unchanged")
		}
	})

	t.Run("success produces upload and download messages", func(t *testing.T) {
		stub := &stubTranslator{fileResult: []byte("translated body")}
		p, svc := newTestPipeline(t, stub)
		id := svc.ActiveID()

		path := writeFile(t, "doc.txt", []byte("body"))
		if err := p.SendFile(context.Background(), path, language.Spanish); err != nil {
			t.Fatalf("SendFile: %v", err)
		}

		msgs := svc.Messages(id)
		if len(msgs) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(msgs))
		}
		if msgs[0].Text != "Uploading: doc.txt" || msgs[0].Status != message.StatusCompleted {
			t.Errorf("provisional message: %+v", msgs[0])
		}
		if msgs[1].Download == nil {
			t.Fatal("expected download reference")
		}
		if msgs[1].Download.FileName != "translated_doc.txt" {
			t.Errorf("download name = %q", msgs[1].Download.FileName)
		}

		saved, err := os.ReadFile(msgs[1].Download.URL)
		if err != nil {
			t.Fatalf("reading translated file: %v", err)
		}
		if !bytes.Equal(saved, []byte("translated body")) {
			t.Errorf("translated content = %q", saved)
		}
	})

	t.Run("status bookkeeping failure does not mask the result", func(t *testing.T) {
		stub := &stubTranslator{fileResult: []byte("translated body")}
		dir := t.TempDir()
		store := session.NewFileStore(filepath.Join(dir, "history.json"))
		svc, err := session.NewService(context.Background(), store, nil)
		if err != nil {
			t.Fatalf("NewService: %v", err)
		}
		p := New(Config{
			Translator: stub,
			Sessions:   &failingStatusSessions{Service: svc},
			DataDir:    dir,
		})
		id := svc.ActiveID()

		path := writeFile(t, "doc.txt", []byte("body"))
		if err := p.SendFile(context.Background(), path, language.Spanish); err != nil {
			t.Fatalf("SendFile: %v", err)
		}

		msgs := svc.Messages(id)
		if len(msgs) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(msgs))
		}
		// The upload marker keeps its provisional status but the
		// download message still lands.
		if msgs[0].Status != message.StatusUploading {
			t.Errorf("provisional status = %q", msgs[0].Status)
		}
		if msgs[1].Download == nil {
			t.Fatal("expected download reference")
		}
	})

	t.Run("remote failure marks the upload and appends an error", func(t *testing.T) {
		stub := &stubTranslator{fileErr: errors.New("conversion failed")}
		p, svc := newTestPipeline(t, stub)
		id := svc.ActiveID()

		path := writeFile(t, "doc.pdf", []byte("%PDF"))
		if err := p.SendFile(context.Background(), path, language.Spanish); err != nil {
			t.Fatalf("SendFile: %v", err)
		}

		msgs := svc.Messages(id)
		if len(msgs) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(msgs))
		}
		if msgs[0].Status != message.StatusError {
			t.Errorf("provisional status = %q", msgs[0].Status)
		}
		if msgs[1].Status != message.StatusError {
			t.Errorf("error message status = %q", msgs[1].Status)
		}
		if want := "Error uploading doc.pdf: conversion failed"; msgs[1].Text != want {
			t.Errorf("error text = %q, want %q", msgs[1].Text, want)
		}
	})
}

// minimal real image headers for content sniffing.
var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n")
	gifHeader = []byte("GIF89a")
)

func TestSendImage(t *testing.T) {
	writeFile := func(t *testing.T, name string, content []byte) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatalf("writing test file: %v", err)
		}
		return path
	}

	t.Run("non-image content is rejected locally", func(t *testing.T) {
		stub := &stubTranslator{}
		p, svc := newTestPipeline(t, stub)
		id := svc.ActiveID()

		path := writeFile(t, "notes.png", []byte("just text"))
		if err := p.SendImage(context.Background(), path, language.Spanish); !errors.Is(err, ErrInvalidImage) {
			t.Errorf("err = %v, want ErrInvalidImage", err)
		}
		if _, _, image, _ := stub.calls(); image != 0 {
			t.Error("expected no remote call")
		}
		if len(svc.Messages(id)) != 0 {
			t.Error("validation failure must not produce chat messages")
		}
	})

	t.Run("oversized image is rejected locally", func(t *testing.T) {
		stub := &stubTranslator{}
		p, _ := newTestPipeline(t, stub)

		big := make([]byte, maxImageSize+1)
		copy(big, pngHeader)
		path := writeFile(t, "big.png", big)
		if err := p.SendImage(context.Background(), path, language.Spanish); !errors.Is(err, ErrImageTooLarge) {
			t.Errorf("err = %v, want ErrImageTooLarge", err)
		}
	})

	t.Run("success appends a single assistant message", func(t *testing.T) {
		stub := &stubTranslator{imageResult: "Texto extraido"}
		p, svc := newTestPipeline(t, stub)
		id := svc.ActiveID()

		path := writeFile(t, "sign.gif", gifHeader)
		if err := p.SendImage(context.Background(), path, language.Spanish); err != nil {
			t.Fatalf("SendImage: %v", err)
		}

		msgs := svc.Messages(id)
		if len(msgs) != 1 {
			t.Fatalf("expected 1 message, got %d", len(msgs))
		}
		if msgs[0].IsUser || msgs[0].Text != "Texto extraido" || msgs[0].Language != "Spanish" {
			t.Errorf("message: %+v", msgs[0])
		}
	})

	t.Run("remote failure stays modal-local", func(t *testing.T) {
		stub := &stubTranslator{imageErr: errors.New("could not extract text")}
		p, svc := newTestPipeline(t, stub)
		id := svc.ActiveID()

		path := writeFile(t, "sign.png", pngHeader)
		err := p.SendImage(context.Background(), path, language.Spanish)
		if err == nil || err.Error() != "could not extract text" {
			t.Errorf("err = %v", err)
		}
		if len(svc.Messages(id)) != 0 {
			t.Error("remote image failure must not produce chat messages")
		}
	})
}

func TestSendVoice(t *testing.T) {
	t.Run("empty blob is rejected", func(t *testing.T) {
		stub := &stubTranslator{}
		p, _ := newTestPipeline(t, stub)
		if err := p.SendVoice(context.Background(), nil, language.Spanish); !errors.Is(err, ErrNoAudio) {
			t.Errorf("err = %v, want ErrNoAudio", err)
		}
	})

	t.Run("success appends voice message then result", func(t *testing.T) {
		stub := &stubTranslator{voiceResult: translate.VoiceResult{
			TranslatedText: "Hola",
			DetectedText:   "Hello",
		}}
		p, svc := newTestPipeline(t, stub)
		id := svc.ActiveID()

		if err := p.SendVoice(context.Background(), []byte("RIFFdata"), language.Spanish); err != nil {
			t.Fatalf("SendVoice: %v", err)
		}

		msgs := svc.Messages(id)
		if len(msgs) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(msgs))
		}
		if !msgs[0].IsVoice || !msgs[0].IsUser {
			t.Errorf("voice user message: %+v", msgs[0])
		}
		if msgs[0].AudioRef == "" {
			t.Error("expected a playable clip reference")
		}
		if clip, err := os.ReadFile(msgs[0].AudioRef); err != nil || !bytes.Equal(clip, []byte("RIFFdata")) {
			t.Errorf("clip content mismatch: %v", err)
		}
		if msgs[1].Text != "Hola" || msgs[1].OriginalText != "Hello" || !msgs[1].IsVoice {
			t.Errorf("voice result: %+v", msgs[1])
		}
	})

	t.Run("remote failure appends an error message", func(t *testing.T) {
		stub := &stubTranslator{voiceErr: errors.New("no speech detected")}
		p, svc := newTestPipeline(t, stub)
		id := svc.ActiveID()

		if err := p.SendVoice(context.Background(), []byte("RIFF"), language.Spanish); err != nil {
			t.Fatalf("SendVoice: %v", err)
		}

		msgs := svc.Messages(id)
		if len(msgs) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(msgs))
		}
		if want := "Voice translation failed: no speech detected"; msgs[1].Text != want {
			t.Errorf("error text = %q", msgs[1].Text)
		}
	})
}

func TestRetranslate(t *testing.T) {
	stub := &stubTranslator{textResult: "Bonjour"}
	p, svc := newTestPipeline(t, stub)
	id := svc.ActiveID()

	original := message.NewTranslation("Hola", "Hello", "Spanish")
	if err := svc.Append(context.Background(), id, original); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := p.Retranslate(context.Background(), original, language.French); err != nil {
		t.Fatalf("Retranslate: %v", err)
	}

	msgs := svc.Messages(id)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	// The source of the retranslation is the displayed text, and the
	// original message is untouched.
	if msgs[0].Text != "Hola" || msgs[0].Language != "Spanish" {
		t.Errorf("original mutated: %+v", msgs[0])
	}
	if msgs[1].Text != "Bonjour" || msgs[1].Language != "French" || msgs[1].OriginalText != "Hola" {
		t.Errorf("retranslation: %+v", msgs[1])
	}
}

func TestValidateImage(t *testing.T) {
	cases := []struct {
		name    string
		content []byte
		wantErr error
	}{
		{"png", pngHeader, nil},
		{"gif", gifHeader, nil},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}, nil},
		{"plain text", []byte("hello"), ErrInvalidImage},
		{"webp-like riff", []byte("RIFF0000WEBPVP8 "), ErrInvalidImage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateImage(tc.content)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateImage(%s) = %v, want %v", tc.name, err, tc.wantErr)
			}
		})
	}
}
