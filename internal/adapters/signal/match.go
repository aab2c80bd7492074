package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Roulette/internal/core"
	"github.com/dkeye/Roulette/internal/domain"
)

func (ctl *SignalWSController) handleJoin(
	sid domain.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type joinPayload struct {
		Type     string `json:"type"`
		Username string `json:"username"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		return
	}
	if p.Username == "" {
		ctl.sendJSON(conn, core.ErrorMessage{
			Type:    core.TypeError,
			Message: "username is required",
		})
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("username", p.Username).Msg("join")
	ctl.Coord.Join(sid, p.Username)
}

func (ctl *SignalWSController) handleChangePartner(sid domain.SessionID) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("change partner")
	ctl.Coord.ChangePartner(sid)
}

// handleLeave takes the client out of matchmaking; the WS connection
// stays open so it can join again later.
func (ctl *SignalWSController) handleLeave(sid domain.SessionID) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("leave matchmaking")
	ctl.Coord.Leave(sid)
}
