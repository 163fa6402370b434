package sessions

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/quadra/translator/internal/message"
	"github.com/quadra/translator/internal/session"
)

func newTestService(t *testing.T) *session.Service {
	t.Helper()

	store := session.NewFileStore(filepath.Join(t.TempDir(), "history.json"))
	svc, err := session.NewService(context.Background(), store, nil)
	if err != nil {
		t.Fatalf("creating service: %v", err)
	}
	return svc
}

func seedSessions(t *testing.T, svc *session.Service) {
	t.Helper()
	ctx := context.Background()

	first := svc.NewSession()
	if err := svc.Append(ctx, first, message.NewUserText("hello world")); err != nil {
		t.Fatalf("appending: %v", err)
	}
	if err := svc.Append(ctx, first, message.NewTranslation("hola mundo", "hello world", "Spanish")); err != nil {
		t.Fatalf("appending: %v", err)
	}

	second := svc.NewSession()
	if err := svc.Append(ctx, second, message.NewUserText("good morning")); err != nil {
		t.Fatalf("appending: %v", err)
	}
	if err := svc.Append(ctx, second, message.NewTranslation("bonjour", "good morning", "French")); err != nil {
		t.Fatalf("appending: %v", err)
	}
}

func TestSessionListRefresh(t *testing.T) {
	svc := newTestService(t)
	seedSessions(t, svc)

	// A fresh empty session stays out of the persisted set.
	svc.NewSession()

	list := NewSessionList(svc)
	list.Refresh()

	if list.Count() != 2 {
		t.Errorf("expected 2 sessions, got %d", list.Count())
	}
	if list.Total() != 2 {
		t.Errorf("expected total 2, got %d", list.Total())
	}
	if list.Selected() == nil {
		t.Error("expected a selected session after refresh")
	}
}

func TestSessionListSearch(t *testing.T) {
	svc := newTestService(t)
	seedSessions(t, svc)

	list := NewSessionList(svc)
	list.Refresh()

	t.Run("content match", func(t *testing.T) {
		list.Search("hello", session.SearchContent)
		if list.Count() != 1 {
			t.Fatalf("expected 1 match, got %d", list.Count())
		}
		if list.Selected().LastMessage != "hola mundo" {
			t.Errorf("unexpected match: %q", list.Selected().LastMessage)
		}
	})

	t.Run("language match", func(t *testing.T) {
		list.Search("french", session.SearchLanguage)
		if list.Count() != 1 {
			t.Fatalf("expected 1 match, got %d", list.Count())
		}
		if list.Selected().LastMessage != "bonjour" {
			t.Errorf("unexpected match: %q", list.Selected().LastMessage)
		}
	})

	t.Run("no match", func(t *testing.T) {
		list.Search("zzz", session.SearchContent)
		if list.Count() != 0 {
			t.Errorf("expected no matches, got %d", list.Count())
		}
		if list.Selected() != nil {
			t.Error("expected no selection with an empty list")
		}
	})

	t.Run("empty query restores all", func(t *testing.T) {
		list.Search("", session.SearchContent)
		if list.Count() != 2 {
			t.Errorf("expected full list, got %d", list.Count())
		}
	})
}
