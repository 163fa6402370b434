package pubsub

import (
	"sync"

	"github.com/quadra/translator/internal/events"
)

// Hub is the central container for all domain brokers.
type Hub struct {
	Session  *Broker[events.SessionEvent]
	Pipeline *Broker[events.PipelineEvent]
	Speech   *Broker[events.SpeechEvent]

	done chan struct{}
}

// NewHub creates a new Hub with all domain brokers initialized.
func NewHub() *Hub {
	return &Hub{
		Session:  NewBroker[events.SessionEvent]("session"),
		Pipeline: NewBroker[events.PipelineEvent]("pipeline"),
		Speech:   NewBroker[events.SpeechEvent]("speech"),
		done:     make(chan struct{}),
	}
}

// Shutdown gracefully shuts down all brokers.
func (h *Hub) Shutdown() {
	select {
	case <-h.done:
		return
	default:
		close(h.done)
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); h.Session.Shutdown() }()
	go func() { defer wg.Done(); h.Pipeline.Shutdown() }()
	go func() { defer wg.Done(); h.Speech.Shutdown() }()
	wg.Wait()
}

// Done returns a channel that's closed when the hub is shut down.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
