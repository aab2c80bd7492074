package app

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Roulette/internal/core"
	"github.com/dkeye/Roulette/internal/domain"
)

var ErrAlreadyRegistered = errors.New("connection already registered")

type regEntry struct {
	Session *domain.Session
	Conn    core.SignalConnection
}

// Registry is the single source of truth for live sessions: one
// record per live connection, created on connect, removed on close.
//
// Not safe for concurrent use; the Coordinator serializes all access.
type Registry struct {
	sessions map[domain.SessionID]*regEntry
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[domain.SessionID]*regEntry)}
}

func (r *Registry) Register(sid domain.SessionID, conn core.SignalConnection) (*domain.Session, error) {
	if _, ok := r.sessions[sid]; ok {
		return nil, ErrAlreadyRegistered
	}
	sess := domain.NewSession(sid)
	r.sessions[sid] = &regEntry{Session: sess, Conn: conn}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("registered session")
	return sess, nil
}

func (r *Registry) Get(sid domain.SessionID) (*domain.Session, bool) {
	e, ok := r.sessions[sid]
	if !ok {
		return nil, false
	}
	return e.Session, true
}

func (r *Registry) Conn(sid domain.SessionID) (core.SignalConnection, bool) {
	e, ok := r.sessions[sid]
	if !ok {
		return nil, false
	}
	return e.Conn, true
}

func (r *Registry) Remove(sid domain.SessionID) {
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("removed session")
}

func (r *Registry) Len() int {
	return len(r.sessions)
}

func (r *Registry) Each(fn func(*domain.Session, core.SignalConnection)) {
	for _, e := range r.sessions {
		fn(e.Session, e.Conn)
	}
}
