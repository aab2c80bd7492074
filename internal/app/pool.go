package app

import "github.com/dkeye/Roulette/internal/domain"

// WaitingPool is the ordered set of sessions eligible for matching.
// Front is served first. Enqueue operations are idempotent so an
// unexpected duplicate join cannot create a second slot.
//
// Not safe for concurrent use; the Coordinator serializes all access.
type WaitingPool struct {
	order []domain.SessionID
}

func NewWaitingPool() *WaitingPool {
	return &WaitingPool{}
}

func (p *WaitingPool) Enqueue(sid domain.SessionID) {
	if p.Contains(sid) {
		return
	}
	p.order = append(p.order, sid)
}

// EnqueueFront gives a session priority re-entry, used for
// change-partner requesters.
func (p *WaitingPool) EnqueueFront(sid domain.SessionID) {
	if p.Contains(sid) {
		return
	}
	p.order = append([]domain.SessionID{sid}, p.order...)
}

// Remove is a no-op if the session is not queued.
func (p *WaitingPool) Remove(sid domain.SessionID) {
	for i, id := range p.order {
		if id == sid {
			p.order = append(p.order[:i], p.order[i+1:]...)
			return
		}
	}
}

func (p *WaitingPool) Contains(sid domain.SessionID) bool {
	for _, id := range p.order {
		if id == sid {
			return true
		}
	}
	return false
}

func (p *WaitingPool) Len() int {
	return len(p.order)
}

// Snapshot returns the queue in front-to-back order for matchmaking scans.
func (p *WaitingPool) Snapshot() []domain.SessionID {
	out := make([]domain.SessionID, len(p.order))
	copy(out, p.order)
	return out
}
