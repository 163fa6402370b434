// Package pipeline orchestrates message creation and the remote
// translation workflows.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/quadra/translator/internal/debug"
	"github.com/quadra/translator/internal/events"
	"github.com/quadra/translator/internal/language"
	"github.com/quadra/translator/internal/message"
	"github.com/quadra/translator/internal/pubsub"
	"github.com/quadra/translator/internal/translate"
)

// maxImageSize is the upload cap for images.
const maxImageSize = 5 * 1024 * 1024

// Validation errors. These stay local to the initiating control; they
// never become chat messages and never reach the network.
var (
	ErrEmptyText       = errors.New("message text cannot be empty")
	ErrTranslationBusy = errors.New("a translation is already in progress")
	ErrInvalidFileType = errors.New("Invalid file type. Please upload a TXT, PDF, or DOCX file.")
	ErrInvalidImage    = errors.New("Invalid file type. Please upload a JPEG, PNG, or GIF image.")
	ErrImageTooLarge   = errors.New("Image size must be less than 5MB")
	ErrNoAudio         = errors.New("no audio recorded")
)

var allowedDocExtensions = map[string]bool{
	".txt":  true,
	".pdf":  true,
	".docx": true,
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Translator is the remote translation capability the pipeline
// dispatches to.
type Translator interface {
	Text(ctx context.Context, text string, target language.Code) (string, error)
	File(ctx context.Context, fileName string, content []byte, target language.Code) ([]byte, error)
	Image(ctx context.Context, fileName string, content []byte, target language.Code) (string, error)
	Voice(ctx context.Context, audio []byte, target language.Code) (translate.VoiceResult, error)
}

// Sessions is the session surface the pipeline appends through.
type Sessions interface {
	ActiveID() string
	Append(ctx context.Context, sessionID string, msg message.Message) error
	SetMessageStatus(ctx context.Context, sessionID, messageID string, status message.Status) error
}

// Config configures a Pipeline.
type Config struct {
	Translator Translator
	Sessions   Sessions
	Hub        *pubsub.Hub // optional
	DataDir    string      // voice clips and translated files land here
}

// Pipeline builds messages, dispatches remote operations and reconciles
// results into the session captured at dispatch time.
//
// Each operation is synchronous: it blocks until the result or error
// message has been appended. Callers that need concurrency run the
// operation in its own goroutine; appends are serialized by the session
// service, so in-flight operations never interfere.
type Pipeline struct {
	translator Translator
	sessions   Sessions
	hub        *pubsub.Hub
	dataDir    string

	mu           sync.Mutex
	textInFlight int
}

// New creates a pipeline.
func New(cfg Config) *Pipeline {
	return &Pipeline{
		translator: cfg.Translator,
		sessions:   cfg.Sessions,
		hub:        cfg.Hub,
		dataDir:    cfg.DataDir,
	}
}

// TextBusy reports whether a text translation is in flight. The send
// control disables itself while this is true.
func (p *Pipeline) TextBusy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.textInFlight > 0
}

// tryBeginText atomically rejects a second concurrent text send.
func (p *Pipeline) tryBeginText() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.textInFlight > 0 {
		return false
	}
	p.textInFlight++
	return true
}

func (p *Pipeline) beginText() {
	p.mu.Lock()
	p.textInFlight++
	p.mu.Unlock()
}

func (p *Pipeline) endText() {
	p.mu.Lock()
	p.textInFlight--
	p.mu.Unlock()
}

// SendText translates typed text. The user's message is appended
// immediately; the translation or its failure is appended as a second
// message to the session that was active at dispatch time. Only
// validation problems are returned as errors; remote failures are
// recorded in the chat.
func (p *Pipeline) SendText(ctx context.Context, text string, target language.Code) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	if !p.tryBeginText() {
		return ErrTranslationBusy
	}
	defer p.endText()

	sessionID := p.sessions.ActiveID()
	if err := p.sessions.Append(ctx, sessionID, message.NewUserText(text)); err != nil {
		return err
	}
	p.publish(pubsub.EventStarted, events.NewPipelineStartedEvent(sessionID, events.PipelineText))

	translated, err := p.translator.Text(ctx, text, target)
	if err != nil {
		debug.Error("pipeline", err, "text translation")
		p.publish(pubsub.EventFailed, events.NewPipelineFailedEvent(sessionID, events.PipelineText, err))
		return p.sessions.Append(ctx, sessionID, message.NewError(err.Error()))
	}

	p.publish(pubsub.EventCompleted, events.NewPipelineCompletedEvent(sessionID, events.PipelineText))
	return p.sessions.Append(ctx, sessionID,
		message.NewTranslation(translated, text, language.DisplayName(target)))
}

// Retranslate requests a fresh translation of an existing message's
// displayed text. The result is appended as a new message; the original
// stays untouched, preserving the chain of prior translations.
func (p *Pipeline) Retranslate(ctx context.Context, msg message.Message, target language.Code) error {
	if msg.Text == "" {
		return ErrEmptyText
	}

	p.beginText()
	defer p.endText()

	sessionID := p.sessions.ActiveID()
	p.publish(pubsub.EventStarted, events.NewPipelineStartedEvent(sessionID, events.PipelineText))

	translated, err := p.translator.Text(ctx, msg.Text, target)
	if err != nil {
		debug.Error("pipeline", err, "retranslation")
		p.publish(pubsub.EventFailed, events.NewPipelineFailedEvent(sessionID, events.PipelineText, err))
		return p.sessions.Append(ctx, sessionID, message.NewError(err.Error()))
	}

	p.publish(pubsub.EventCompleted, events.NewPipelineCompletedEvent(sessionID, events.PipelineText))
	return p.sessions.Append(ctx, sessionID,
		message.NewTranslation(translated, msg.Text, language.DisplayName(target)))
}

// SendFile uploads a document for translation. The extension is
// validated before anything is appended or sent; a validation failure
// is returned to the caller with no other side effect.
func (p *Pipeline) SendFile(ctx context.Context, path string, target language.Code) error {
	fileName := filepath.Base(path)
	if !allowedDocExtensions[strings.ToLower(filepath.Ext(fileName))] {
		return ErrInvalidFileType
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	sessionID := p.sessions.ActiveID()
	provisional := message.NewUpload(fileName)
	if err := p.sessions.Append(ctx, sessionID, provisional); err != nil {
		return err
	}
	p.publish(pubsub.EventStarted, events.NewPipelineStartedEvent(sessionID, events.PipelineFile))

	translated, err := p.translator.File(ctx, fileName, content, target)
	if err != nil {
		debug.Error("pipeline", err, "file translation")
		p.publish(pubsub.EventFailed, events.NewPipelineFailedEvent(sessionID, events.PipelineFile, err))
		p.setStatus(ctx, sessionID, provisional.ID, message.StatusError)
		return p.sessions.Append(ctx, sessionID,
			message.NewError(fmt.Sprintf("Error uploading %s: %s", fileName, err)))
	}

	downloadPath, err := p.saveDownload(fileName, translated)
	if err != nil {
		p.publish(pubsub.EventFailed, events.NewPipelineFailedEvent(sessionID, events.PipelineFile, err))
		p.setStatus(ctx, sessionID, provisional.ID, message.StatusError)
		return p.sessions.Append(ctx, sessionID,
			message.NewError(fmt.Sprintf("Error uploading %s: %s", fileName, err)))
	}

	p.publish(pubsub.EventCompleted, events.NewPipelineCompletedEvent(sessionID, events.PipelineFile))
	p.setStatus(ctx, sessionID, provisional.ID, message.StatusCompleted)
	return p.sessions.Append(ctx, sessionID, message.NewUploadResult(fileName, downloadPath))
}

// SendImage uploads an image for text extraction and translation.
// Validation and remote failures are both returned to the caller: image
// submission is modal-scoped, so its errors never become chat messages.
// Success appends a single assistant message.
func (p *Pipeline) SendImage(ctx context.Context, path string, target language.Code) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}
	if err := ValidateImage(content); err != nil {
		return err
	}

	sessionID := p.sessions.ActiveID()
	p.publish(pubsub.EventStarted, events.NewPipelineStartedEvent(sessionID, events.PipelineImage))

	translated, err := p.translator.Image(ctx, filepath.Base(path), content, target)
	if err != nil {
		debug.Error("pipeline", err, "image translation")
		p.publish(pubsub.EventFailed, events.NewPipelineFailedEvent(sessionID, events.PipelineImage, err))
		return err
	}

	p.publish(pubsub.EventCompleted, events.NewPipelineCompletedEvent(sessionID, events.PipelineImage))
	return p.sessions.Append(ctx, sessionID,
		message.NewTranslation(translated, "", language.DisplayName(target)))
}

// SendVoice translates a recorded clip. The user message with its
// playable reference is appended before dispatch; the translation or
// its failure follows as a second message on the captured session.
func (p *Pipeline) SendVoice(ctx context.Context, audio []byte, target language.Code) error {
	if len(audio) == 0 {
		return ErrNoAudio
	}

	sessionID := p.sessions.ActiveID()

	clipPath, err := p.saveClip(audio)
	if err != nil {
		// The clip is still translatable; it just won't be replayable.
		debug.Error("pipeline", err, "saving voice clip")
		clipPath = ""
	}

	if err := p.sessions.Append(ctx, sessionID, message.NewVoiceUser(clipPath)); err != nil {
		return err
	}
	p.publish(pubsub.EventStarted, events.NewPipelineStartedEvent(sessionID, events.PipelineVoice))

	result, err := p.translator.Voice(ctx, audio, target)
	if err != nil {
		debug.Error("pipeline", err, "voice translation")
		p.publish(pubsub.EventFailed, events.NewPipelineFailedEvent(sessionID, events.PipelineVoice, err))
		return p.sessions.Append(ctx, sessionID,
			message.NewError("Voice translation failed: "+err.Error()))
	}

	p.publish(pubsub.EventCompleted, events.NewPipelineCompletedEvent(sessionID, events.PipelineVoice))
	return p.sessions.Append(ctx, sessionID,
		message.NewVoiceResult(result.TranslatedText, result.DetectedText, language.DisplayName(target)))
}

// ValidateImage checks MIME type and size before any network call.
func ValidateImage(content []byte) error {
	if len(content) > maxImageSize {
		return ErrImageTooLarge
	}
	if !allowedImageTypes[http.DetectContentType(content)] {
		return ErrInvalidImage
	}
	return nil
}

func (p *Pipeline) saveClip(audio []byte) (string, error) {
	dir := filepath.Join(p.dataDir, "clips")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating clips directory: %w", err)
	}
	path := filepath.Join(dir, uuid.New().String()+".wav")
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", fmt.Errorf("writing clip: %w", err)
	}
	return path, nil
}

func (p *Pipeline) saveDownload(fileName string, content []byte) (string, error) {
	dir := filepath.Join(p.dataDir, "downloads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating downloads directory: %w", err)
	}
	path := filepath.Join(dir, "translated_"+fileName)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing translated file: %w", err)
	}
	return path, nil
}

// setStatus records the terminal status of an upload marker. A failure
// here leaves the marker pending but must not mask the result message.
func (p *Pipeline) setStatus(ctx context.Context, sessionID, messageID string, status message.Status) {
	if err := p.sessions.SetMessageStatus(ctx, sessionID, messageID, status); err != nil {
		debug.Error("pipeline", err, "updating upload status")
	}
}

func (p *Pipeline) publish(t pubsub.EventType, e events.PipelineEvent) {
	if p.hub != nil {
		p.hub.Pipeline.Publish(t, e)
	}
}
