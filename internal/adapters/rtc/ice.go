package rtc

import "github.com/pion/webrtc/v4"

// ICEServers builds the client-facing ICE server list. Clients fetch
// it before constructing their peer connections; the server itself
// never opens one.
func ICEServers(stunURLs []string) []webrtc.ICEServer {
	if len(stunURLs) == 0 {
		return []webrtc.ICEServer{
			{URLs: []string{"stun:stun.l.google.com:19302"}},
		}
	}
	return []webrtc.ICEServer{
		{URLs: stunURLs},
	}
}
