package bridge

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/quadra/translator/internal/debug"
	"github.com/quadra/translator/internal/pubsub"
)

// Sender is the part of tea.Program the bridge needs.
type Sender interface {
	Send(msg tea.Msg)
}

// TUIBridge subscribes to all Hub brokers and forwards events to tea.Program.
// It handles the conversion from domain events to Bubble Tea messages.
//
// Events are forwarded regardless of which session is displayed: a
// completion for a background session still refreshes the sessions
// panel, while the chat view decides for itself whether to re-read.
type TUIBridge struct {
	hub     *pubsub.Hub
	program Sender

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTUIBridge creates a new TUI bridge.
func NewTUIBridge(hub *pubsub.Hub, program Sender) *TUIBridge {
	return &TUIBridge{
		hub:     hub,
		program: program,
	}
}

// Start begins forwarding events to the TUI.
// Call Stop() to gracefully shut down.
func (b *TUIBridge) Start(ctx context.Context) {
	b.ctx, b.cancel = context.WithCancel(ctx)

	b.wg.Add(3)
	go b.subscribeSession()
	go b.subscribePipeline()
	go b.subscribeSpeech()

	debug.Event("bridge", "start", "TUI bridge started")
}

// Stop gracefully shuts down the bridge.
func (b *TUIBridge) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
	debug.Event("bridge", "stop", "TUI bridge stopped")
}

func (b *TUIBridge) subscribeSession() {
	defer b.wg.Done()

	events := b.hub.Session.Subscribe(b.ctx)
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			b.program.Send(SessionEventMsg{Event: event})
		}
	}
}

func (b *TUIBridge) subscribePipeline() {
	defer b.wg.Done()

	events := b.hub.Pipeline.Subscribe(b.ctx)
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			b.program.Send(PipelineEventMsg{Event: event})
		}
	}
}

func (b *TUIBridge) subscribeSpeech() {
	defer b.wg.Done()

	events := b.hub.Speech.Subscribe(b.ctx)
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			b.program.Send(SpeechEventMsg{Event: event})
		}
	}
}
