package sessions

// ModalClosedMsg is sent when the modal is closed.
type ModalClosedMsg struct{}

// SwitchSessionMsg is sent to switch to a different session.
type SwitchSessionMsg struct {
	SessionID string
}

// SessionSelectedMsg is sent when a session is selected from the list.
type SessionSelectedMsg struct {
	SessionID string
}

// DeleteSessionMsg is sent to confirm session deletion.
type DeleteSessionMsg struct {
	SessionID string
}

// NewSessionMsg is sent to create a new session.
type NewSessionMsg struct{}
