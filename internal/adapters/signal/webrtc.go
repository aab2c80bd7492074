package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Roulette/internal/domain"
)

// handleRelay covers offer, answer and candidate envelopes. The server
// routes them to the partner without looking inside: SDP and ICE
// semantics live entirely in the clients.
func (ctl *SignalWSController) handleRelay(sid domain.SessionID, data []byte) {
	ctl.Coord.Relay(sid, data)
}

func (ctl *SignalWSController) handleMute(
	sid domain.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type mutePayload struct {
		Type    string `json:"type"`
		IsMuted bool   `json:"isMuted"`
	}
	var p mutePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad mute payload")
		return
	}
	ctl.Coord.RelayMute(sid, p.IsMuted)
}
