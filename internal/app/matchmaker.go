package app

import (
	"math/rand"
	"time"

	"github.com/dkeye/Roulette/internal/domain"
)

// Matchmaker holds the pure partner-selection logic. Selection is
// uniformly random among eligible candidates, with no wait-time
// weighting, so pairing stays unpredictable and O(pool size).
type Matchmaker struct {
	rng *rand.Rand
}

func NewMatchmaker() *Matchmaker {
	return &Matchmaker{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Pick selects a partner for the requester from the waiting queue.
// A candidate is eligible when it is another session, still Waiting,
// not the requester's excluded former partner, and does not itself
// exclude the requester. The reciprocal check keeps the no-rematch
// rule intact no matter whose scheduled attempt fires first.
func (m *Matchmaker) Pick(
	requester *domain.Session,
	waiting []domain.SessionID,
	lookup func(domain.SessionID) (*domain.Session, bool),
) (domain.SessionID, bool) {
	eligible := make([]domain.SessionID, 0, len(waiting))
	for _, sid := range waiting {
		if sid == requester.ID || sid == requester.Excluded {
			continue
		}
		cand, ok := lookup(sid)
		if !ok || cand.State != domain.StateWaiting {
			continue
		}
		if cand.Excluded == requester.ID {
			continue
		}
		eligible = append(eligible, sid)
	}
	if len(eligible) == 0 {
		return "", false
	}
	return eligible[m.rng.Intn(len(eligible))], true
}
