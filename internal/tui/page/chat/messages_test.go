package chat

import (
	"testing"

	"github.com/quadra/translator/internal/message"
)

func TestLastTranslation(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		list := NewMessageList()
		if _, ok := list.LastTranslation(); ok {
			t.Error("expected no translation in an empty list")
		}
	})

	t.Run("picks most recent translation", func(t *testing.T) {
		list := NewMessageList()
		list.SetMessages([]message.Message{
			message.NewUserText("hello"),
			message.NewTranslation("hola", "hello", "Spanish"),
			message.NewUserText("bye"),
			message.NewTranslation("adiós", "bye", "Spanish"),
		})

		last, ok := list.LastTranslation()
		if !ok {
			t.Fatal("expected a translation")
		}
		if last.Text != "adiós" {
			t.Errorf("expected latest translation, got %q", last.Text)
		}
	})

	t.Run("skips user and error messages", func(t *testing.T) {
		list := NewMessageList()
		list.SetMessages([]message.Message{
			message.NewTranslation("hola", "hello", "Spanish"),
			message.NewError("service unavailable"),
			message.NewUserText("still there?"),
		})

		last, ok := list.LastTranslation()
		if !ok {
			t.Fatal("expected a translation")
		}
		if last.Text != "hola" {
			t.Errorf("expected translation before the error, got %q", last.Text)
		}
	})

	t.Run("upload results are not translations", func(t *testing.T) {
		list := NewMessageList()
		list.SetMessages([]message.Message{
			message.NewUpload("doc.txt"),
			message.NewUploadResult("doc.txt", "/tmp/translated_doc.txt"),
		})

		if _, ok := list.LastTranslation(); ok {
			t.Error("expected no translation among upload messages")
		}
	})
}

func TestMessageListScroll(t *testing.T) {
	list := NewMessageList()

	list.ScrollDown()
	if list.offset != 0 {
		t.Errorf("expected offset to stay at 0, got %d", list.offset)
	}

	list.ScrollUp()
	list.ScrollUp()
	if list.offset != 2 {
		t.Errorf("expected offset 2, got %d", list.offset)
	}

	// New content snaps back to the bottom.
	list.SetMessages([]message.Message{message.NewUserText("hi")})
	if list.offset != 0 {
		t.Errorf("expected offset reset on new messages, got %d", list.offset)
	}
}
