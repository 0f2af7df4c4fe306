package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chat-session/contract"
	"chat-session/domain"
	"chat-session/wire"
)

// In-memory transport doubles. They stand in for the provider SDK so the
// state machine and the channel session can be driven deterministically.

type fakeTokens struct {
	mu     sync.Mutex
	issued int
	err    error
}

func (f *fakeTokens) IssueToken(_ context.Context, clientID string) (domain.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.Token{}, f.err
	}
	f.issued++
	return domain.Token{
		ClientID:   clientID,
		Capability: []byte(fmt.Sprintf(`{"nonce":%d}`, f.issued)),
		Expires:    time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeTokens) issuedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issued
}

// fakeDialer scripts one error per attempt; attempts past the script
// succeed. Every successful dial hands out a fresh fakeConn and records the
// notify callback so tests can fire transport events.
type fakeDialer struct {
	mu      sync.Mutex
	script  []error
	dials   int
	tokens  []domain.Token
	conns   []*fakeConn
	notifys []func(contract.TransportEvent)
}

func (f *fakeDialer) Dial(_ context.Context, token domain.Token, notify func(contract.TransportEvent)) (contract.RealtimeConnection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	attempt := f.dials
	f.dials++
	f.tokens = append(f.tokens, token)
	if attempt < len(f.script) && f.script[attempt] != nil {
		return nil, f.script[attempt]
	}
	conn := &fakeConn{channels: make(map[string]*fakeChannel)}
	f.conns = append(f.conns, conn)
	f.notifys = append(f.notifys, notify)
	return conn, nil
}

func (f *fakeDialer) dialCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dials
}

func (f *fakeDialer) dialedTokens() []domain.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Token, len(f.tokens))
	copy(out, f.tokens)
	return out
}

func (f *fakeDialer) lastNotify() func(contract.TransportEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.notifys) == 0 {
		return nil
	}
	return f.notifys[len(f.notifys)-1]
}

func (f *fakeDialer) lastConn() *fakeConn {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.conns) == 0 {
		return nil
	}
	return f.conns[len(f.conns)-1]
}

type fakeConn struct {
	mu       sync.Mutex
	closed   bool
	channels map[string]*fakeChannel
}

func (f *fakeConn) Channel(name string) contract.RealtimeChannel {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.channels[name]; ok {
		return ch
	}
	ch := &fakeChannel{}
	f.channels[name] = ch
	return ch
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeConn) channel(name string) *fakeChannel {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.channels[name]
}

type fakeChannel struct {
	mu           sync.Mutex
	attachErr    error
	publishErr   error
	publishBlock bool // Publish waits out its context instead of returning
	attachCalls  int
	detachCalls  int
	published    []wire.Envelope
	handler      func(wire.Envelope)
}

func (f *fakeChannel) Attach(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attachCalls++
	return f.attachErr
}

func (f *fakeChannel) Detach(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detachCalls++
	return nil
}

func (f *fakeChannel) Publish(ctx context.Context, env wire.Envelope) error {
	f.mu.Lock()
	block := f.publishBlock
	err := f.publishErr
	if !block {
		f.published = append(f.published, env)
	}
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (f *fakeChannel) Subscribe(_ context.Context, handler func(wire.Envelope)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = handler
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.handler = nil
	}, nil
}

// deliver injects one inbound envelope as if the transport received it.
func (f *fakeChannel) deliver(env wire.Envelope) {
	f.mu.Lock()
	handler := f.handler
	f.mu.Unlock()
	if handler != nil {
		handler(env)
	}
}

func (f *fakeChannel) publishedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}
