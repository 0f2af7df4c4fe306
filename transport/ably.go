// Package transport adapts the realtime provider SDK to the narrow
// interfaces the session layer consumes. No other package imports the SDK.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ably/ably-go/ably"

	"chat-session/contract"
	"chat-session/domain"
	apperrors "chat-session/errors"
	"chat-session/wire"
)

// AblyDialer opens realtime connections authenticated by a broker-minted
// token request. Auto-connect is disabled so dialing stays explicit and
// echo is off: the session keeps its own optimistic copy of every publish.
type AblyDialer struct {
	log   *slog.Logger
	extra []ably.ClientOption
}

func NewAblyDialer(log *slog.Logger, extra ...ably.ClientOption) *AblyDialer {
	return &AblyDialer{log: log, extra: extra}
}

func (d *AblyDialer) Dial(ctx context.Context, token domain.Token, notify func(contract.TransportEvent)) (contract.RealtimeConnection, error) {
	var request ably.TokenRequest
	if err := json.Unmarshal(token.Capability, &request); err != nil {
		return nil, fmt.Errorf("%w: unusable capability: %v", apperrors.ErrAuthRejected, err)
	}

	opts := append([]ably.ClientOption{
		ably.WithAutoConnect(false),
		ably.WithEchoMessages(false),
		ably.WithClientID(token.ClientID),
		ably.WithAuthCallback(func(context.Context, ably.TokenParams) (ably.Tokener, error) {
			// The capability is single-use: reconnects go through a new Dial
			// with a fresh token, never through this callback again.
			return &request, nil
		}),
	}, d.extra...)

	client, err := ably.NewRealtime(opts...)
	if err != nil {
		return nil, fmt.Errorf("transport client: %w", err)
	}

	established := make(chan error, 1)
	var once sync.Once
	up := false
	var mu sync.Mutex

	client.Connection.OnAll(func(change ably.ConnectionStateChange) {
		switch change.Current {
		case ably.ConnectionStateConnected:
			mu.Lock()
			first := !up
			up = true
			mu.Unlock()
			if first {
				once.Do(func() { established <- nil })
				return
			}
			notify(contract.TransportEvent{Kind: contract.TransportResumed})

		case ably.ConnectionStateDisconnected, ably.ConnectionStateSuspended:
			mu.Lock()
			wasUp := up
			mu.Unlock()
			if wasUp {
				notify(contract.TransportEvent{Kind: contract.TransportDropped, Reason: reasonErr(change.Reason)})
			}

		case ably.ConnectionStateFailed:
			// FAILED is terminal at the provider: bad or expired token,
			// revoked key. Recovery requires a fresh token and a new Dial.
			err := fmt.Errorf("%w: %v", apperrors.ErrAuthRejected, reasonErr(change.Reason))
			delivered := false
			once.Do(func() {
				established <- err
				delivered = true
			})
			if !delivered {
				notify(contract.TransportEvent{Kind: contract.TransportAuthFailed, Reason: err})
			}
		}
	})

	client.Connect()

	select {
	case err := <-established:
		if err != nil {
			client.Close()
			return nil, err
		}
		d.log.Debug("transport connected", "clientId", token.ClientID)
		return &ablyConnection{client: client}, nil
	case <-ctx.Done():
		client.Close()
		return nil, ctx.Err()
	}
}

func reasonErr(info *ably.ErrorInfo) error {
	if info == nil {
		return apperrors.ErrTransportDisconnected
	}
	return info
}

type ablyConnection struct {
	client *ably.Realtime
}

func (c *ablyConnection) Channel(name string) contract.RealtimeChannel {
	return &ablyChannel{ch: c.client.Channels.Get(name)}
}

func (c *ablyConnection) Close() {
	c.client.Close()
}

type ablyChannel struct {
	ch *ably.RealtimeChannel
}

func (a *ablyChannel) Attach(ctx context.Context) error {
	return a.ch.Attach(ctx)
}

func (a *ablyChannel) Detach(ctx context.Context) error {
	return a.ch.Detach(ctx)
}

// Publish sends the envelope payload as a JSON object so the other
// historical clients on the channel read it unchanged.
func (a *ablyChannel) Publish(ctx context.Context, env wire.Envelope) error {
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return err
	}
	return a.ch.Publish(ctx, env.Name, payload)
}

func (a *ablyChannel) Subscribe(ctx context.Context, handler func(wire.Envelope)) (func(), error) {
	return a.ch.SubscribeAll(ctx, func(msg *ably.Message) {
		data, err := json.Marshal(msg.Data)
		if err != nil {
			return
		}
		handler(wire.Envelope{Name: msg.Name, Data: data})
	})
}
