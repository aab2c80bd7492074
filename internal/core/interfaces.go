package core

// Frame is a raw JSON payload sent to a client.
type Frame []byte

// SignalConnection abstracts the system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Stats is the aggregate snapshot pushed to every client after a
// mutating event and served on the REST stats endpoint.
type Stats struct {
	ConnectedUsers      int `json:"connectedUsers"`
	WaitingUsers        int `json:"waitingUsers"`
	ActiveConversations int `json:"activeConversations"`
}
