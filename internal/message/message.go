// Package message defines the chat message model.
package message

import (
	"time"

	"github.com/google/uuid"

	"github.com/quadra/translator/internal/language"
)

// Status represents the lifecycle state of a message that tracks a
// dispatched operation.
type Status string

// Status constants.
const (
	StatusUploading Status = "uploading"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Download references a translated file the user can save.
type Download struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

// Message is one chat entry: user-submitted content or a translation
// result or error. Messages are append-only; a result is always a new
// Message, never a mutation of the message that triggered it.
type Message struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Timestamp    string    `json:"timestamp"`
	IsUser       bool      `json:"is_user"`
	Language     string    `json:"language,omitempty"`
	OriginalText string    `json:"original_text,omitempty"`
	Translated   bool      `json:"translated,omitempty"`
	IsVoice      bool      `json:"is_voice,omitempty"`
	AudioRef     string    `json:"audio_ref,omitempty"`
	Download     *Download `json:"download,omitempty"`
	Status       Status    `json:"status,omitempty"`
}

// IsError reports whether the message records a failed operation.
func (m Message) IsError() bool {
	return m.Status == StatusError || m.Language == language.LabelError
}

func newMessage(text string) Message {
	return Message{
		ID:        uuid.New().String(),
		Text:      text,
		Timestamp: time.Now().Format("15:04:05"),
	}
}

// NewUserText builds the user's own message for a text send.
func NewUserText(text string) Message {
	m := newMessage(text)
	m.IsUser = true
	m.Language = language.LabelOriginal
	return m
}

// NewTranslation builds an assistant message carrying a translation
// result. originalText preserves the text that was translated.
func NewTranslation(translated, originalText, languageName string) Message {
	m := newMessage(translated)
	m.OriginalText = originalText
	m.Language = languageName
	m.Translated = true
	return m
}

// NewError builds an assistant message recording a remote failure.
// The text should be the failure's human-readable description.
func NewError(text string) Message {
	m := newMessage(text)
	m.Language = language.LabelError
	m.Status = StatusError
	return m
}

// NewUpload builds the provisional user message for a file upload.
func NewUpload(fileName string) Message {
	m := newMessage("Uploading: " + fileName)
	m.IsUser = true
	m.Status = StatusUploading
	return m
}

// NewUploadResult builds the assistant message for a completed file
// translation with its download reference.
func NewUploadResult(fileName, url string) Message {
	m := newMessage("Translation completed: " + fileName)
	m.Download = &Download{URL: url, FileName: "translated_" + fileName}
	m.Status = StatusCompleted
	return m
}

// NewVoiceUser builds the user message for a recorded clip. audioRef
// points at the playable raw recording.
func NewVoiceUser(audioRef string) Message {
	m := newMessage("Voice message sent")
	m.IsUser = true
	m.IsVoice = true
	m.AudioRef = audioRef
	return m
}

// NewVoiceResult builds the assistant message for a voice translation:
// the translated text plus the detected source text.
func NewVoiceResult(translated, detected, languageName string) Message {
	m := NewTranslation(translated, detected, languageName)
	m.IsVoice = true
	return m
}
