package app

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Roulette/internal/core"
	"github.com/dkeye/Roulette/internal/domain"
)

// Coordinator owns the registry and the waiting pool and drives every
// session state transition. All mutating operations take the single
// mutex, so the pairing read-modify-write sequences never interleave;
// transport callbacks must go through the Coordinator and never touch
// the registry or pool directly.
type Coordinator struct {
	mu       sync.Mutex
	registry *Registry
	pool     *WaitingPool
	matcher  *Matchmaker

	matchDelay time.Duration
	schedule   func(d time.Duration, fn func())
}

func NewCoordinator(reg *Registry, pool *WaitingPool, matcher *Matchmaker, matchDelay time.Duration) *Coordinator {
	return &Coordinator{
		registry:   reg,
		pool:       pool,
		matcher:    matcher,
		matchDelay: matchDelay,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// Connect registers a fresh session for an accepted connection and
// greets the client. Fails only if the id is already registered.
func (c *Coordinator) Connect(sid domain.SessionID, conn core.SignalConnection) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, err := c.registry.Register(sid, conn)
	if err != nil {
		return err
	}
	c.sendTo(sess.ID, core.Welcome{Type: core.TypeWelcome, SessionID: string(sid)})
	c.sendTo(sess.ID, core.StatusUpdate{Type: core.TypeStatusUpdate, Status: core.StatusConnecting})
	c.broadcastStats()
	return nil
}

// Join puts the session into the waiting pool under the given name and
// schedules a debounced match attempt. A repeat join while already
// Waiting or Paired is answered with a single info message and changes
// nothing.
func (c *Coordinator) Join(sid domain.SessionID, username string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.registry.Get(sid)
	if !ok {
		return
	}
	if sess.State == domain.StateWaiting || sess.State == domain.StatePaired {
		c.sendTo(sid, core.InfoMessage{Type: core.TypeInfo, Message: "already in matchmaking"})
		return
	}
	if err := sess.SetUsername(username); err != nil {
		c.sendTo(sid, core.ErrorMessage{Type: core.TypeError, Message: err.Error()})
		return
	}

	sess.Excluded = ""
	sess.State = domain.StateWaiting
	c.pool.Enqueue(sid)
	c.sendTo(sid, core.StatusUpdate{Type: core.TypeStatusUpdate, Status: core.StatusWaiting})
	c.scheduleMatch(sid)
	log.Info().Str("module", "app.coordinator").Str("sid", string(sid)).Str("username", sess.Username).Msg("joined matchmaking")
	c.broadcastStats()
}

// ChangePartner dissolves the current pairing, if any, and puts the
// requester at the front of the waiting pool. The abandoned partner
// gets the requester as its excluded former partner; the requester's
// own exclusion field is left untouched, matching the asymmetric
// behavior clients rely on.
func (c *Coordinator) ChangePartner(sid domain.SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.registry.Get(sid)
	if !ok {
		return
	}
	if sess.State != domain.StatePaired && sess.State != domain.StateWaiting {
		c.sendTo(sid, core.ErrorMessage{Type: core.TypeError, Message: "not in matchmaking"})
		return
	}

	former := sess.Partner
	sess.State = domain.StateWaiting
	sess.Partner = ""
	c.pool.EnqueueFront(sid)
	c.sendTo(sid, core.StatusUpdate{Type: core.TypeStatusUpdate, Status: core.StatusWaiting})
	// Requester first: its attempt fires before the abandoned
	// partner's, which is what gives front placement any effect.
	c.scheduleMatch(sid)
	if former != "" {
		c.dissolve(sid, former, "Your partner is looking for someone new")
	}
	log.Info().Str("module", "app.coordinator").Str("sid", string(sid)).Msg("change partner")
	c.broadcastStats()
}

// Leave takes the session out of matchmaking on explicit request. The
// record stays registered in Disconnected state so the client can join
// again over the same connection.
func (c *Coordinator) Leave(sid domain.SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.registry.Get(sid)
	if !ok {
		return
	}
	former := sess.Partner
	sess.State = domain.StateDisconnected
	sess.Partner = ""
	sess.Excluded = ""
	c.pool.Remove(sid)
	if former != "" {
		c.dissolve(sid, former, "Your partner has disconnected")
	}
	c.sendTo(sid, core.StatusUpdate{Type: core.TypeStatusUpdate, Status: core.StatusDisconnected})
	log.Info().Str("module", "app.coordinator").Str("sid", string(sid)).Msg("left matchmaking")
	c.broadcastStats()
}

// OnDisconnect runs the full teardown for a closed connection: the
// partner, if any, is re-queued, and the record itself is deleted.
// This is the single choke point that also clears every reference to
// the departed session held by other records.
func (c *Coordinator) OnDisconnect(sid domain.SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.registry.Get(sid)
	if !ok {
		return
	}
	former := sess.Partner
	c.pool.Remove(sid)
	c.registry.Remove(sid)
	// Session ids are never reused, so a stale exclusion can only
	// block a pairing that could no longer happen anyway.
	c.registry.Each(func(s *domain.Session, _ core.SignalConnection) {
		if s.Excluded == sid {
			s.Excluded = ""
		}
	})
	if former != "" {
		c.dissolve(sid, former, "Your partner has disconnected")
	}
	log.Info().Str("module", "app.coordinator").Str("sid", string(sid)).Msg("connection closed")
	c.broadcastStats()
}

// AttemptMatch is the entry point for scheduled match attempts. A late
// fire after the session has left Waiting is a harmless no-op.
func (c *Coordinator) AttemptMatch(sid domain.SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attemptMatch(sid)
}

// Stats returns the current aggregate counters.
func (c *Coordinator) Stats() core.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats()
}

func (c *Coordinator) scheduleMatch(sid domain.SessionID) {
	c.schedule(c.matchDelay, func() {
		c.AttemptMatch(sid)
	})
}

func (c *Coordinator) attemptMatch(sid domain.SessionID) {
	requester, ok := c.registry.Get(sid)
	if !ok || requester.State != domain.StateWaiting {
		return
	}
	partnerID, ok := c.matcher.Pick(requester, c.pool.Snapshot(), c.registry.Get)
	if !ok {
		return
	}
	partner, ok := c.registry.Get(partnerID)
	// Both sides must still be Waiting at commit time. Under the
	// coordinator mutex this cannot fail, but the pairing invariant
	// depends on it if event handling is ever parallelized.
	if !ok || partner.State != domain.StateWaiting || requester.State != domain.StateWaiting {
		return
	}

	c.pool.Remove(sid)
	c.pool.Remove(partnerID)
	requester.State = domain.StatePaired
	partner.State = domain.StatePaired
	requester.Partner = partnerID
	partner.Partner = sid
	requester.Excluded = ""
	partner.Excluded = ""

	// The side whose attempt completed the match leads the handshake.
	c.sendTo(sid, core.MatchFound{Type: core.TypeMatchFound, PartnerUsername: partner.Username, InitiateCall: true})
	c.sendTo(partnerID, core.MatchFound{Type: core.TypeMatchFound, PartnerUsername: requester.Username, InitiateCall: false})
	c.sendTo(sid, core.StatusUpdate{Type: core.TypeStatusUpdate, Status: core.StatusInCall})
	c.sendTo(partnerID, core.StatusUpdate{Type: core.TypeStatusUpdate, Status: core.StatusInCall})
	log.Info().Str("module", "app.coordinator").Str("sid", string(sid)).Str("partner", string(partnerID)).Msg("matched")
	c.broadcastStats()
}

// dissolve is the partner side of every unpairing path: the surviving
// partner goes back to Waiting with the outgoing session excluded from
// its next match, and gets a fresh scheduled attempt.
func (c *Coordinator) dissolve(outgoing, partnerID domain.SessionID, message string) {
	partner, ok := c.registry.Get(partnerID)
	if !ok {
		return
	}
	partner.State = domain.StateWaiting
	partner.Partner = ""
	partner.Excluded = outgoing
	c.pool.Enqueue(partnerID)
	c.sendTo(partnerID, core.PartnerDisconnected{Type: core.TypePartnerDisconnected, Message: message})
	c.sendTo(partnerID, core.StatusUpdate{Type: core.TypeStatusUpdate, Status: core.StatusWaiting})
	c.scheduleMatch(partnerID)
}

func (c *Coordinator) stats() core.Stats {
	paired := 0
	c.registry.Each(func(s *domain.Session, _ core.SignalConnection) {
		if s.State == domain.StatePaired {
			paired++
		}
	})
	return core.Stats{
		ConnectedUsers:      c.registry.Len(),
		WaitingUsers:        c.pool.Len(),
		ActiveConversations: paired / 2,
	}
}

func (c *Coordinator) broadcastStats() {
	if c.registry.Len() == 0 {
		return
	}
	frame, err := json.Marshal(core.StatsUpdate{Type: core.TypeStatsUpdate, Stats: c.stats()})
	if err != nil {
		log.Error().Err(err).Str("module", "app.coordinator").Msg("stats marshal")
		return
	}
	c.registry.Each(func(s *domain.Session, conn core.SignalConnection) {
		if conn == nil {
			return
		}
		if err := conn.TrySend(frame); err != nil {
			log.Debug().Str("module", "app.coordinator").Str("sid", string(s.ID)).Msg("stats frame dropped")
		}
	})
}

func (c *Coordinator) sendTo(sid domain.SessionID, v any) {
	conn, ok := c.registry.Conn(sid)
	if !ok || conn == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.coordinator").Msg("message marshal")
		return
	}
	if err := conn.TrySend(b); err != nil {
		log.Debug().Str("module", "app.coordinator").Str("sid", string(sid)).Msg("frame dropped")
	}
}
