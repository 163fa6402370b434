// Package page defines TUI page identifiers.
package page

// ID identifies a TUI page.
type ID string

// Page identifiers.
const (
	Chat ID = "chat"
)
