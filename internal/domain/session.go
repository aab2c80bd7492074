// Package domain contains entity without logic, just meta-data
package domain

import "errors"

const MaxUsernameLen = 36

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

// SessionID is an opaque identifier minted at connect time.
// Records reference each other by ID, never by pointer, so a
// reference can go stale without dangling.
type SessionID string

type SessionState int

const (
	StateConnected SessionState = iota
	StateWaiting
	StatePaired
	StateDisconnected
)

func (s SessionState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateWaiting:
		return "waiting"
	case StatePaired:
		return "paired"
	case StateDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Session tracks one client's matchmaking state for the lifetime
// of its connection.
//
// Partner is non-empty iff State == StatePaired and is always
// symmetric between the two records. Excluded holds the most recent
// former partner and is cleared on fresh join or successful pairing.
type Session struct {
	ID       SessionID
	Username string
	State    SessionState
	Partner  SessionID
	Excluded SessionID
	Muted    bool
}

// NewSession avoids raw literals in adapters and keeps construction obvious.
func NewSession(id SessionID) *Session {
	return &Session{ID: id, State: StateConnected}
}

func (s *Session) SetUsername(username string) error {
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	s.Username = username
	return nil
}
