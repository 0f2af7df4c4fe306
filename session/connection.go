// Package session owns the realtime connection lifecycle and the channel
// attach/publish flow on top of it.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"chat-session/contract"
	"chat-session/domain"
	apperrors "chat-session/errors"
	"chat-session/fanout"
)

// Provider-default reconnect schedule: immediate retry, then increasing
// delays while disconnected. Once the ladder is exhausted the connection is
// surfaced as suspended and retried periodically.
var reconnectBackoff = []time.Duration{
	0,
	5 * time.Second,
	15 * time.Second,
	60 * time.Second,
}

const suspendedRetryInterval = 30 * time.Second

// Manager owns exactly one live transport connection and its state machine.
// All other components observe the state read-only through State and
// OnStateChange; only the manager mutates it.
type Manager struct {
	log    *slog.Logger
	tokens contract.TokenSource
	dialer contract.Dialer
	states *fanout.Bus[domain.ConnectionState]

	mu         sync.Mutex
	state      domain.ConnectionState
	conn       contract.RealtimeConnection
	clientID   string
	epoch      uint64 // invalidates callbacks and timers from older opens
	retryIndex int
	retryTimer *time.Timer
	lifeCtx    context.Context
	lifeStop   context.CancelFunc
}

func NewManager(log *slog.Logger, tokens contract.TokenSource, dialer contract.Dialer) *Manager {
	return &Manager{
		log:    log,
		tokens: tokens,
		dialer: dialer,
		states: fanout.NewBus[domain.ConnectionState](log),
		state:  domain.StateInitialized,
	}
}

// State returns the current connection state.
func (m *Manager) State() domain.ConnectionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// OnStateChange registers a state listener and returns its removal function.
// Listeners receive every transition exactly once, in registration order.
func (m *Manager) OnStateChange(fn func(domain.ConnectionState)) func() {
	return m.states.Register(fn)
}

// Conn returns the live transport connection, or nil outside connected.
func (m *Manager) Conn() contract.RealtimeConnection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn
}

// Done reports teardown of the current open. It is nil before the first
// Open; a nil channel never becomes ready, which is the wanted behavior.
func (m *Manager) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lifeCtx == nil {
		return nil
	}
	return m.lifeCtx.Done()
}

// Open starts connecting as clientID. It is idempotent while already
// connecting or connected and restarts the machine from any terminal state.
// Every attempt requests a fresh token: capabilities are single-use.
func (m *Manager) Open(clientID string) error {
	if clientID == "" {
		return apperrors.ErrInvalidRequest
	}

	m.mu.Lock()
	switch m.state {
	case domain.StateConnecting, domain.StateConnected:
		m.mu.Unlock()
		return nil
	case domain.StateClosing:
		m.mu.Unlock()
		return apperrors.ErrConnectionClosed
	}
	m.clientID = clientID
	m.epoch++
	epoch := m.epoch
	m.retryIndex = 0
	m.stopRetryLocked()
	m.lifeCtx, m.lifeStop = context.WithCancel(context.Background())
	ctx := m.lifeCtx
	m.mu.Unlock()

	m.setState(epoch, domain.StateConnecting)
	go m.connect(ctx, epoch, true)
	return nil
}

// Close tears the connection down. It is synchronous from the caller's point
// of view: the state is closed on return, pending retries are cancelled and
// in-flight waits resolve as closed. Safe to call repeatedly from any state.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.state == domain.StateClosed {
		m.mu.Unlock()
		return
	}
	m.epoch++
	epoch := m.epoch
	m.stopRetryLocked()
	if m.lifeStop != nil {
		m.lifeStop()
	}
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()

	m.setState(epoch, domain.StateClosing)
	if conn != nil {
		// Provider teardown may block on the network; it never blocks Close.
		go conn.Close()
	}
	m.setState(epoch, domain.StateClosed)
}

// connect performs one token-issue plus dial round. initial distinguishes
// the caller-initiated attempt, where any rejection is fatal, from retries,
// where only auth errors are.
func (m *Manager) connect(ctx context.Context, epoch uint64, initial bool) {
	token, err := m.tokens.IssueToken(ctx, m.clientIDSnapshot())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.log.Error("token issue failed", "error", err)
		m.fail(epoch)
		return
	}

	conn, err := m.dialer.Dial(ctx, token, func(evt contract.TransportEvent) {
		m.onTransportEvent(ctx, epoch, evt)
	})
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if initial || errors.Is(err, apperrors.ErrAuthRejected) {
			m.log.Error("connection attempt rejected", "error", err)
			m.fail(epoch)
			return
		}
		m.log.Warn("reconnect attempt failed", "error", err)
		m.scheduleRetry(ctx, epoch)
		return
	}

	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		go conn.Close()
		return
	}
	m.conn = conn
	m.retryIndex = 0
	m.mu.Unlock()

	m.setState(epoch, domain.StateConnected)
}

func (m *Manager) onTransportEvent(ctx context.Context, epoch uint64, evt contract.TransportEvent) {
	if ctx.Err() != nil {
		return
	}
	switch evt.Kind {
	case contract.TransportDropped:
		m.mu.Lock()
		if epoch != m.epoch || m.state != domain.StateConnected {
			m.mu.Unlock()
			return
		}
		conn := m.conn
		m.conn = nil
		m.mu.Unlock()
		if conn != nil {
			go conn.Close()
		}
		m.log.Warn("transport dropped", "reason", evt.Reason)
		m.setState(epoch, domain.StateDisconnected)
		m.scheduleRetry(ctx, epoch)

	case contract.TransportResumed:
		m.mu.Lock()
		if epoch != m.epoch || m.state != domain.StateDisconnected {
			m.mu.Unlock()
			return
		}
		m.retryIndex = 0
		m.stopRetryLocked()
		m.mu.Unlock()
		m.setState(epoch, domain.StateConnected)

	case contract.TransportAuthFailed:
		m.log.Error("transport rejected credentials", "reason", evt.Reason)
		m.fail(epoch)
	}
}

// scheduleRetry arms the next reconnect attempt. Each attempt mints a fresh
// token. When the backoff ladder runs out the state degrades to suspended
// and retries continue at a fixed period.
func (m *Manager) scheduleRetry(ctx context.Context, epoch uint64) {
	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		return
	}
	var delay time.Duration
	suspend := false
	if m.retryIndex < len(reconnectBackoff) {
		delay = reconnectBackoff[m.retryIndex]
		m.retryIndex++
	} else {
		delay = suspendedRetryInterval
		suspend = m.state != domain.StateSuspended
	}
	m.retryTimer = time.AfterFunc(delay, func() {
		if ctx.Err() != nil {
			return
		}
		m.retry(ctx, epoch)
	})
	m.mu.Unlock()

	if suspend {
		m.setState(epoch, domain.StateSuspended)
	}
}

func (m *Manager) retry(ctx context.Context, epoch uint64) {
	m.mu.Lock()
	if epoch != m.epoch || (m.state != domain.StateDisconnected && m.state != domain.StateSuspended) {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	m.connect(ctx, epoch, false)
}

// fail moves to the failed terminal state. Auth and credential errors are
// never retried automatically; recovery needs an explicit Open.
func (m *Manager) fail(epoch uint64) {
	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		return
	}
	m.stopRetryLocked()
	if m.lifeStop != nil {
		m.lifeStop()
	}
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()

	if conn != nil {
		go conn.Close()
	}
	m.setState(epoch, domain.StateFailed)
}

func (m *Manager) clientIDSnapshot() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clientID
}

// stopRetryLocked cancels a pending reconnect timer. Callers hold m.mu.
func (m *Manager) stopRetryLocked() {
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
}

// setState records a transition and notifies listeners outside the lock.
func (m *Manager) setState(epoch uint64, next domain.ConnectionState) {
	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		return
	}
	prev := m.state
	if prev == next {
		m.mu.Unlock()
		return
	}
	m.state = next
	m.mu.Unlock()

	m.log.Info("connection state", "from", prev.String(), "to", next.String())
	m.states.Publish(next)
}
