// Package services exposes the messaging session as one explicitly
// constructed object. Construction parameters are plain values and every
// collaborator arrives through a contract interface, so consumers inject
// fakes freely; there is no lazily built global client.
package services

import (
	"context"
	"log/slog"
	"sync"

	"chat-session/contract"
	"chat-session/domain"
	"chat-session/session"
)

// SessionConfig carries the explicit construction parameters of a session.
type SessionConfig struct {
	ClientID    string
	ChannelName string
}

// ConnectedHook runs once per connection establishment, including
// re-establishments after a drop. Used for the presence side-channel.
type ConnectedHook func(ctx context.Context)

type IChatService interface {
	Connect(ctx context.Context) error
	Subscribe(handler func(domain.ChatMessage)) func()
	Send(ctx context.Context, draft domain.OutboundMessage) (*session.Publication, error)
	Resend(ctx context.Context, messageID string) (*session.Publication, bool, error)
	ConnectionState() domain.ConnectionState
	OnConnectionState(fn func(domain.ConnectionState)) func()
	Close(ctx context.Context)
}

type ChatService struct {
	log     *slog.Logger
	cfg     SessionConfig
	mgr     *session.Manager
	channel *session.Channel
	hook    ConnectedHook

	mu       sync.Mutex
	offState func()
}

// Option customizes a ChatService.
type Option func(*ChatService)

// WithConnectedHook installs the best-effort presence notification hook.
func WithConnectedHook(hook ConnectedHook) Option {
	return func(s *ChatService) { s.hook = hook }
}

func NewChatService(log *slog.Logger, cfg SessionConfig, tokens contract.TokenSource, dialer contract.Dialer, opts ...Option) *ChatService {
	mgr := session.NewManager(log, tokens, dialer)
	s := &ChatService{
		log:     log,
		cfg:     cfg,
		mgr:     mgr,
		channel: session.NewChannel(log, mgr, cfg.ChannelName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect opens the connection for the configured client id and queues the
// channel attach; the attach flushes when the connection comes up.
func (s *ChatService) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.offState == nil {
		s.offState = s.mgr.OnStateChange(s.onState)
	}
	s.mu.Unlock()

	if err := s.mgr.Open(s.cfg.ClientID); err != nil {
		return err
	}
	return s.channel.Attach(ctx)
}

func (s *ChatService) onState(state domain.ConnectionState) {
	if state == domain.StateConnected && s.hook != nil {
		// Best effort, off the dispatch path. A failing hook never touches
		// the connection flow.
		go s.hook(context.Background())
	}
}

// Subscribe registers a consumer for inbound messages and outbound status
// updates; the returned function removes exactly that registration.
func (s *ChatService) Subscribe(handler func(domain.ChatMessage)) func() {
	return s.channel.Subscribe(handler)
}

// Send publishes a draft. The returned publication resolves with the
// acknowledgement; the optimistic sent copy reaches subscribers first.
func (s *ChatService) Send(ctx context.Context, draft domain.OutboundMessage) (*session.Publication, error) {
	return s.channel.Publish(ctx, draft)
}

// Resend republishes the preserved draft of a failed message. The second
// return is false when the id is unknown or never failed.
func (s *ChatService) Resend(ctx context.Context, messageID string) (*session.Publication, bool, error) {
	draft, ok := s.channel.Draft(messageID)
	if !ok {
		return nil, false, nil
	}
	pub, err := s.channel.Publish(ctx, draft)
	return pub, true, err
}

func (s *ChatService) ConnectionState() domain.ConnectionState {
	return s.mgr.State()
}

func (s *ChatService) OnConnectionState(fn func(domain.ConnectionState)) func() {
	return s.mgr.OnStateChange(fn)
}

// Close detaches the channel and tears the connection down, cancelling any
// in-flight publish waits. Safe to call repeatedly.
func (s *ChatService) Close(ctx context.Context) {
	s.channel.Detach(ctx)

	s.mu.Lock()
	off := s.offState
	s.offState = nil
	s.mu.Unlock()
	if off != nil {
		off()
	}

	s.mgr.Close()
}
