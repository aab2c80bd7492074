package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Roulette/internal/core"
	"github.com/dkeye/Roulette/internal/domain"
)

// Relay forwards a handshake envelope (offer, answer, candidate) to
// the sender's current partner. The payload is never decoded beyond
// the top-level object: its fields pass through verbatim, with a
// "from" field carrying the sender's session id. Delivery is
// best-effort; an unwritable partner means the frame is dropped and
// logged, never retried.
func (c *Coordinator) Relay(sid domain.SessionID, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.registry.Get(sid)
	if !ok {
		return
	}
	if sess.State != domain.StatePaired {
		c.sendTo(sid, core.ErrorMessage{Type: core.TypeError, Message: "not paired"})
		return
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		log.Warn().Err(err).Str("module", "app.relay").Str("sid", string(sid)).Msg("bad envelope")
		return
	}
	from, err := json.Marshal(string(sid))
	if err != nil {
		return
	}
	envelope["from"] = from
	out, err := json.Marshal(envelope)
	if err != nil {
		log.Error().Err(err).Str("module", "app.relay").Msg("envelope marshal")
		return
	}

	conn, ok := c.registry.Conn(sess.Partner)
	if !ok || conn == nil {
		log.Warn().Str("module", "app.relay").Str("sid", string(sid)).Msg("partner not reachable, dropping")
		return
	}
	if err := conn.TrySend(out); err != nil {
		log.Warn().Str("module", "app.relay").Str("sid", string(sid)).Str("partner", string(sess.Partner)).Msg("partner not writable, dropping")
	}
}

// RelayMute forwards a mute toggle to the partner as a
// partner_mute_status notification carrying the sender's name.
func (c *Coordinator) RelayMute(sid domain.SessionID, muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.registry.Get(sid)
	if !ok {
		return
	}
	if sess.State != domain.StatePaired {
		c.sendTo(sid, core.ErrorMessage{Type: core.TypeError, Message: "not paired"})
		return
	}
	sess.Muted = muted
	c.sendTo(sess.Partner, core.PartnerMuteStatus{
		Type:     core.TypePartnerMuteStatus,
		Username: sess.Username,
		IsMuted:  muted,
	})
}
