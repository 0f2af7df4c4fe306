package domain

// ConnectionState is the lifecycle state of the realtime connection.
// It is owned exclusively by the connection manager; every other component
// observes it read-only.
type ConnectionState int

const (
	StateInitialized ConnectionState = iota
	StateConnecting
	StateConnected
	StateDisconnected
	StateSuspended
	StateClosing
	StateClosed
	StateFailed
)

var stateNames = map[ConnectionState]string{
	StateInitialized:  "initialized",
	StateConnecting:   "connecting",
	StateConnected:    "connected",
	StateDisconnected: "disconnected",
	StateSuspended:    "suspended",
	StateClosing:      "closing",
	StateClosed:       "closed",
	StateFailed:       "failed",
}

func (s ConnectionState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the state requires an explicit reopen to leave.
func (s ConnectionState) Terminal() bool {
	return s == StateClosed || s == StateFailed
}
