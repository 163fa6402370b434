package speech

import "sync"

// StubEngine is a synthesizer with a scripted catalog. It records every
// Speak and Cancel so tests can assert on the selection and cancel
// ordering, and stands in where no platform synthesizer exists.
type StubEngine struct {
	mu         sync.Mutex
	catalog    []Voice
	spoken     []Utterance
	cancels    int
	speakErr   error
	subscriber func()
}

// NewStubEngine creates an engine with the given catalog.
func NewStubEngine(catalog []Voice) *StubEngine {
	return &StubEngine{catalog: catalog}
}

// Voices returns the current catalog.
func (e *StubEngine) Voices() []Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Voice, len(e.catalog))
	copy(out, e.catalog)
	return out
}

// Speak records the utterance.
func (e *StubEngine) Speak(u Utterance) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.speakErr != nil {
		return e.speakErr
	}
	e.spoken = append(e.spoken, u)
	return nil
}

// Cancel records the cancellation.
func (e *StubEngine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancels++
}

// Subscribe registers the single catalog-change callback.
func (e *StubEngine) Subscribe(fn func()) func() {
	e.mu.Lock()
	e.subscriber = fn
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		e.subscriber = nil
		e.mu.Unlock()
	}
}

// SetCatalog replaces the catalog and fires the change notification,
// mimicking an asynchronous platform refresh.
func (e *StubEngine) SetCatalog(catalog []Voice) {
	e.mu.Lock()
	e.catalog = catalog
	fn := e.subscriber
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Spoken returns the recorded utterances in order.
func (e *StubEngine) Spoken() []Utterance {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Utterance, len(e.spoken))
	copy(out, e.spoken)
	return out
}

// Cancels returns how many times Cancel was called.
func (e *StubEngine) Cancels() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancels
}

// Subscribed reports whether a catalog callback is registered.
func (e *StubEngine) Subscribed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.subscriber != nil
}
