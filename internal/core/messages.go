package core

// Outbound envelope types. Inbound types are matched as string
// literals in the signal adapter's dispatch switch.
const (
	TypeWelcome             = "welcome"
	TypeStatusUpdate        = "status_update"
	TypeStatsUpdate         = "stats_update"
	TypeMatchFound          = "match_found"
	TypePartnerDisconnected = "partner_disconnected"
	TypePartnerMuteStatus   = "partner_mute_status"
	TypeError               = "error"
	TypeInfo                = "info"
	TypePong                = "pong"
)

// Client-facing status values carried by status_update.
const (
	StatusConnecting   = "connecting"
	StatusWaiting      = "waiting_for_match"
	StatusInCall       = "in-call"
	StatusDisconnected = "disconnected"
)

type Welcome struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
}

type StatusUpdate struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

type StatsUpdate struct {
	Type string `json:"type"`
	Stats
}

type MatchFound struct {
	Type            string `json:"type"`
	PartnerUsername string `json:"partnerUsername"`
	InitiateCall    bool   `json:"initiateCall"`
}

type PartnerDisconnected struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type PartnerMuteStatus struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	IsMuted  bool   `json:"isMuted"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type InfoMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
