package chat

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/quadra/translator/internal/language"
	"github.com/quadra/translator/internal/message"
)

// opKind identifies which pipeline operation a done message reports on.
type opKind int

const (
	opText opKind = iota
	opRetranslate
	opFile
	opImage
	opVoice
)

// opDoneMsg reports completion of a dispatched pipeline operation. A nil
// err means the outcome, success or remote failure, already landed in
// the chat; a non-nil err is a local problem for the initiating control.
type opDoneMsg struct {
	kind opKind
	err  error
}

// recordStartedMsg reports the outcome of acquiring and starting the
// microphone.
type recordStartedMsg struct {
	err error
}

// recordStoppedMsg carries the finalized audio blob.
type recordStoppedMsg struct {
	audio []byte
	err   error
}

// copiedMsg reports a clipboard copy outcome.
type copiedMsg struct {
	err error
}

// errorAppendedMsg signals that a local error was recorded in the chat.
type errorAppendedMsg struct{}

func (m *Model) sendTextCmd(text string, target language.Code) tea.Cmd {
	return func() tea.Msg {
		err := m.pipeline.SendText(context.Background(), text, target)
		return opDoneMsg{kind: opText, err: err}
	}
}

func (m *Model) retranslateCmd(msg message.Message, target language.Code) tea.Cmd {
	return func() tea.Msg {
		err := m.pipeline.Retranslate(context.Background(), msg, target)
		return opDoneMsg{kind: opRetranslate, err: err}
	}
}

func (m *Model) sendFileCmd(path string, target language.Code) tea.Cmd {
	return func() tea.Msg {
		err := m.pipeline.SendFile(context.Background(), path, target)
		return opDoneMsg{kind: opFile, err: err}
	}
}

func (m *Model) sendImageCmd(path string, target language.Code) tea.Cmd {
	return func() tea.Msg {
		err := m.pipeline.SendImage(context.Background(), path, target)
		return opDoneMsg{kind: opImage, err: err}
	}
}

func (m *Model) sendVoiceCmd(audio []byte, target language.Code) tea.Cmd {
	return func() tea.Msg {
		err := m.pipeline.SendVoice(context.Background(), audio, target)
		return opDoneMsg{kind: opVoice, err: err}
	}
}

func (m *Model) startRecordingCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.recorder.Acquire(context.Background()); err != nil {
			return recordStartedMsg{err: err}
		}
		return recordStartedMsg{err: m.recorder.Start()}
	}
}

func (m *Model) stopRecordingCmd() tea.Cmd {
	return func() tea.Msg {
		audio, err := m.recorder.Stop()
		return recordStoppedMsg{audio: audio, err: err}
	}
}

func (m *Model) copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

// appendErrorCmd records a local failure as a chat message so the
// conversation stays the single error log.
func (m *Model) appendErrorCmd(text string) tea.Cmd {
	return func() tea.Msg {
		m.sessions.Append(context.Background(),
			m.sessions.ActiveID(), message.NewError(text))
		return errorAppendedMsg{}
	}
}
