package speech

import (
	"strings"
	"sync"

	"github.com/quadra/translator/internal/events"
	"github.com/quadra/translator/internal/language"
	"github.com/quadra/translator/internal/pubsub"
)

// Output speaks translations aloud. It keeps a voice catalog that
// follows the engine's catalog-change notifications and enforces the
// one-utterance-at-a-time rule by cancelling before every speak.
type Output struct {
	engine Engine
	hub    *pubsub.Hub

	mu          sync.Mutex
	voices      []Voice
	unsubscribe func()
	closed      bool
}

// NewOutput creates a speech output bound to the engine's voice
// catalog. Close must be called to tear the subscription down.
func NewOutput(engine Engine, hub *pubsub.Hub) *Output {
	o := &Output{engine: engine, hub: hub}
	o.refresh()
	o.unsubscribe = engine.Subscribe(o.refresh)
	return o
}

func (o *Output) refresh() {
	voices := o.engine.Voices()

	o.mu.Lock()
	o.voices = voices
	o.mu.Unlock()

	if o.hub != nil {
		o.hub.Speech.Publish(pubsub.EventUpdated, events.NewSpeechVoicesRefreshedEvent(len(voices)))
	}
}

// Speak voices text in the named language. Empty text or an empty
// language name is a no-op. Any current utterance is cancelled first.
// When no cataloged voice matches the resolved locale the platform
// default is used; that is a fallback, not an error.
func (o *Output) Speak(text, languageDisplayName string) error {
	if text == "" || languageDisplayName == "" {
		return nil
	}

	o.engine.Cancel()

	locale := language.LocaleForName(languageDisplayName)
	u := Utterance{Text: text, Locale: locale}
	if v, ok := o.findVoice(locale); ok {
		u.Voice = v
	}

	if err := o.engine.Speak(u); err != nil {
		return err
	}
	if o.hub != nil {
		o.hub.Speech.Publish(pubsub.EventStarted, events.NewSpeechStartedEvent(locale))
	}
	return nil
}

// findVoice returns the first cataloged voice whose locale shares the
// language prefix of the resolved tag.
func (o *Output) findVoice(locale string) (Voice, bool) {
	prefix := locale
	if i := strings.IndexByte(locale, '-'); i > 0 {
		prefix = locale[:i]
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	for _, v := range o.voices {
		if v.Locale == locale || strings.HasPrefix(v.Locale, prefix+"-") || v.Locale == prefix {
			return v, true
		}
	}
	return Voice{}, false
}

// Cancel stops the current utterance, if any.
func (o *Output) Cancel() {
	o.engine.Cancel()
	if o.hub != nil {
		o.hub.Speech.Publish(pubsub.EventUpdated, events.NewSpeechCancelledEvent())
	}
}

// Close cancels playback and tears down the catalog subscription.
func (o *Output) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	unsubscribe := o.unsubscribe
	o.mu.Unlock()

	o.engine.Cancel()
	if unsubscribe != nil {
		unsubscribe()
	}
}
