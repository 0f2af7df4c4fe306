package domain

import "time"

// Token is a short-lived credential authorizing one client identity to
// connect. The capability is the serialized signed token request, opaque to
// this layer and consumed directly by the transport. Tokens are never reused
// across connection attempts.
type Token struct {
	ClientID   string
	Capability []byte
	Expires    time.Time
}

// Valid reports whether the token can still open a connection.
func (t Token) Valid(now time.Time) bool {
	return t.ClientID != "" && len(t.Capability) > 0 && t.Expires.After(now)
}

// Identity describes the authenticated user behind a session, as resolved
// from the user directory. The messaging core only ever reads it.
type Identity struct {
	UserID string
	Name   string
	Email  string
}
