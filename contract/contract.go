//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"time"

	"chat-session/domain"
	"chat-session/wire"
)

// TokenSource mints a fresh scoped credential for a client identity.
// Implementations must never cache a token across connection attempts.
type TokenSource interface {
	IssueToken(ctx context.Context, clientID string) (domain.Token, error)
}

// TransportEventKind classifies what the transport reported about an
// established connection.
type TransportEventKind int

const (
	// TransportDropped is a transient loss of the connection.
	TransportDropped TransportEventKind = iota
	// TransportResumed means the provider recovered the connection itself.
	TransportResumed
	// TransportAuthFailed means the token was rejected after establishment.
	TransportAuthFailed
)

// TransportEvent is pushed by the transport after Dial succeeded.
type TransportEvent struct {
	Kind   TransportEventKind
	Reason error
}

// Dialer opens one realtime connection using a single-use token.
// Dial blocks until the transport acknowledges or rejects the attempt;
// later lifecycle events flow through notify. An authentication rejection
// is reported by wrapping errors.ErrAuthRejected.
type Dialer interface {
	Dial(ctx context.Context, token domain.Token, notify func(TransportEvent)) (RealtimeConnection, error)
}

// RealtimeConnection is the narrow surface of one live pub/sub connection.
type RealtimeConnection interface {
	Channel(name string) RealtimeChannel
	Close()
}

// RealtimeChannel is a named multiplexing unit on the transport.
type RealtimeChannel interface {
	Attach(ctx context.Context) error
	Detach(ctx context.Context) error
	// Publish sends one envelope and waits for the provider acknowledgement.
	Publish(ctx context.Context, env wire.Envelope) error
	// Subscribe delivers every inbound envelope on this channel to handler
	// until the returned unsubscribe function is called.
	Subscribe(ctx context.Context, handler func(wire.Envelope)) (func(), error)
}

// Publisher is the minimal outbound surface used by side-channels that only
// ever publish, such as the presence notifier.
type Publisher interface {
	Publish(ctx context.Context, env wire.Envelope) error
}

// UserDirectory is the account side of the user/session directory.
// The messaging core queries it only to learn an identity.
type UserDirectory interface {
	Register(identity domain.Identity, password string) error
	Authenticate(email, password string) (domain.Identity, error)
	Get(userID string) (domain.Identity, error)
}

// StatusDirectory records best-effort online/last-seen state.
type StatusDirectory interface {
	UpsertOnline(identity domain.Identity, at time.Time) error
	MarkOffline(userID string, at time.Time) error
	ListOnline() ([]domain.UserStatus, error)
}
