package speech

import (
	"context"
	"testing"
	"time"

	"github.com/quadra/translator/internal/events"
	"github.com/quadra/translator/internal/pubsub"
)

func testCatalog() []Voice {
	return []Voice{
		{ID: "v-en", Name: "English Voice", Locale: "en-GB"},
		{ID: "v-es", Name: "Spanish Voice", Locale: "es-ES"},
		{ID: "v-fr", Name: "French Voice", Locale: "fr-FR"},
	}
}

func TestSpeak(t *testing.T) {
	t.Run("empty text or language is a no-op", func(t *testing.T) {
		engine := NewStubEngine(testCatalog())
		out := NewOutput(engine, nil)
		defer out.Close()

		if err := out.Speak("", "Spanish"); err != nil {
			t.Fatalf("Speak: %v", err)
		}
		if err := out.Speak("Hola", ""); err != nil {
			t.Fatalf("Speak: %v", err)
		}
		if len(engine.Spoken()) != 0 {
			t.Error("expected no utterances")
		}
		if engine.Cancels() != 0 {
			t.Error("a no-op must not cancel playback")
		}
	})

	t.Run("cancels before every utterance", func(t *testing.T) {
		engine := NewStubEngine(testCatalog())
		out := NewOutput(engine, nil)
		defer out.Close()

		if err := out.Speak("Hola", "Spanish"); err != nil {
			t.Fatalf("Speak: %v", err)
		}
		if err := out.Speak("Bonjour", "French"); err != nil {
			t.Fatalf("Speak: %v", err)
		}
		if got := engine.Cancels(); got != 2 {
			t.Errorf("cancels = %d, want 2", got)
		}
	})

	t.Run("selects the first voice matching the locale prefix", func(t *testing.T) {
		engine := NewStubEngine(testCatalog())
		out := NewOutput(engine, nil)
		defer out.Close()

		if err := out.Speak("Hello", "English"); err != nil {
			t.Fatalf("Speak: %v", err)
		}

		spoken := engine.Spoken()
		if len(spoken) != 1 {
			t.Fatalf("expected 1 utterance, got %d", len(spoken))
		}
		// English resolves to en-IN; the en-GB voice shares the prefix.
		if spoken[0].Locale != "en-IN" {
			t.Errorf("locale = %q, want en-IN", spoken[0].Locale)
		}
		if spoken[0].Voice.ID != "v-en" {
			t.Errorf("voice = %q, want v-en", spoken[0].Voice.ID)
		}
	})

	t.Run("unmapped language falls back to en-US", func(t *testing.T) {
		engine := NewStubEngine(testCatalog())
		out := NewOutput(engine, nil)
		defer out.Close()

		if err := out.Speak("hello", "Klingon"); err != nil {
			t.Fatalf("Speak: %v", err)
		}
		spoken := engine.Spoken()
		if spoken[0].Locale != "en-US" {
			t.Errorf("locale = %q, want en-US", spoken[0].Locale)
		}
	})

	t.Run("no matching voice uses the platform default silently", func(t *testing.T) {
		engine := NewStubEngine([]Voice{{ID: "v-de", Locale: "de-DE"}})
		out := NewOutput(engine, nil)
		defer out.Close()

		if err := out.Speak("Hola", "Spanish"); err != nil {
			t.Fatalf("Speak: %v", err)
		}
		spoken := engine.Spoken()
		if len(spoken) != 1 {
			t.Fatalf("expected 1 utterance, got %d", len(spoken))
		}
		if spoken[0].Voice.ID != "" {
			t.Errorf("voice = %q, want platform default", spoken[0].Voice.ID)
		}
	})
}

func TestCatalogRefresh(t *testing.T) {
	engine := NewStubEngine(nil)
	out := NewOutput(engine, nil)
	defer out.Close()

	if err := out.Speak("Hola", "Spanish"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if spoken := engine.Spoken(); spoken[0].Voice.ID != "" {
		t.Fatalf("expected default voice before refresh")
	}

	// The platform announces new voices asynchronously.
	engine.SetCatalog(testCatalog())

	if err := out.Speak("Hola", "Spanish"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	spoken := engine.Spoken()
	if spoken[1].Voice.ID != "v-es" {
		t.Errorf("voice = %q, want v-es after refresh", spoken[1].Voice.ID)
	}
}

func TestCancelPublishesEvent(t *testing.T) {
	hub := pubsub.NewHub()
	defer hub.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := hub.Speech.Subscribe(ctx)

	engine := NewStubEngine(testCatalog())
	out := NewOutput(engine, hub)
	defer out.Close()

	// Drain the catalog refresh published by NewOutput.
	<-ch

	out.Cancel()

	select {
	case ev := <-ch:
		if ev.Payload.Type != events.SpeechEventCancelled {
			t.Errorf("event type = %q, want %q", ev.Payload.Type, events.SpeechEventCancelled)
		}
	case <-time.After(time.Second):
		t.Fatal("no cancel event published")
	}
}

func TestClose(t *testing.T) {
	engine := NewStubEngine(testCatalog())
	out := NewOutput(engine, nil)

	if !engine.Subscribed() {
		t.Fatal("expected catalog subscription after NewOutput")
	}
	out.Close()
	if engine.Subscribed() {
		t.Error("expected subscription torn down")
	}
	// Close is idempotent.
	out.Close()
}
