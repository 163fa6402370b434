package session

import "context"

// Store defines the interface for session persistence. The whole session
// set is saved and loaded as one snapshot: a reader never observes a
// partial write.
type Store interface {
	// Load reads the full session set. A store with no prior snapshot
	// returns an empty set, not an error.
	Load(ctx context.Context) ([]*Session, error)

	// Save atomically overwrites the snapshot with the given set.
	Save(ctx context.Context, sessions []*Session) error
}
