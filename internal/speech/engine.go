// Package speech plays translations aloud through a platform
// synthesizer.
package speech

// Voice is one synthesizer voice.
type Voice struct {
	ID     string
	Name   string
	Locale string
}

// Utterance is a single speech request.
type Utterance struct {
	Text string
	// Voice is empty when the platform default should be used.
	Voice Voice
	// Locale is the resolved locale tag, kept for engines that select
	// by locale rather than by voice id.
	Locale string
}

// Engine abstracts the platform synthesizer. The voice catalog can
// change at any time; Subscribe registers a callback for catalog-change
// notifications and returns the matching teardown.
type Engine interface {
	Voices() []Voice
	Speak(u Utterance) error
	Cancel()
	Subscribe(fn func()) (cancel func())
}

// SilentEngine is the fallback when the host has no synthesizer. Speech
// requests succeed and produce nothing.
type SilentEngine struct{}

func (SilentEngine) Voices() []Voice                  { return nil }
func (SilentEngine) Speak(Utterance) error            { return nil }
func (SilentEngine) Cancel()                          {}
func (SilentEngine) Subscribe(func()) (cancel func()) { return func() {} }
