package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"chat-session/contract"
	"chat-session/domain"
	apperrors "chat-session/errors"
	"chat-session/fanout"
	"chat-session/wire"
)

const defaultAckTimeout = 10 * time.Second

// Channel is an attached session on one named transport channel. It queues
// attach requests issued before the connection is up, normalizes inbound
// envelopes onto the message bus and publishes drafts with per-message
// delivery tracking.
type Channel struct {
	log        *slog.Logger
	mgr        *Manager
	name       string
	ackTimeout time.Duration
	messages   *fanout.Bus[domain.ChatMessage]
	tracker    *fanout.DeliveryTracker

	mu          sync.Mutex
	rt          contract.RealtimeChannel
	attached    bool
	wantAttach  bool
	offState    func()
	unsubscribe func()
}

func NewChannel(log *slog.Logger, mgr *Manager, name string) *Channel {
	bus := fanout.NewBus[domain.ChatMessage](log)
	return &Channel{
		log:        log,
		mgr:        mgr,
		name:       name,
		ackTimeout: defaultAckTimeout,
		messages:   bus,
		tracker:    fanout.NewDeliveryTracker(log, bus),
	}
}

// Subscribe registers a consumer for normalized messages and delivery
// status updates. The returned function removes the registration.
func (c *Channel) Subscribe(handler func(domain.ChatMessage)) func() {
	return c.messages.Register(handler)
}

// Draft returns the original draft of a failed message for resubmission.
func (c *Channel) Draft(id string) (domain.OutboundMessage, bool) {
	return c.tracker.Draft(id)
}

// Attach attaches to the channel. Idempotent. When the connection is not
// yet up the request is queued and flushed on the transition into
// connected; Attach returns immediately in that case.
func (c *Channel) Attach(ctx context.Context) error {
	c.mu.Lock()
	if c.attached {
		c.mu.Unlock()
		return nil
	}
	if c.wantAttach {
		c.mu.Unlock()
		return nil
	}
	c.wantAttach = true
	if c.offState == nil {
		c.offState = c.mgr.OnStateChange(c.onConnectionState)
	}
	c.mu.Unlock()

	if c.mgr.State() != domain.StateConnected {
		c.log.Debug("attach queued until connected", "channel", c.name)
		return nil
	}
	return c.attachNow(ctx)
}

// onConnectionState keeps the channel aligned with the connection owning
// it: every entry into connected flushes the attach intent against the
// current connection, and leaving connected releases the channel handle,
// which belongs to the connection that just died. A reconnect dials a fresh
// connection, so the old handle must never be published on again.
func (c *Channel) onConnectionState(s domain.ConnectionState) {
	switch s {
	case domain.StateConnected:
		c.flushAttach()
	case domain.StateDisconnected, domain.StateSuspended, domain.StateFailed, domain.StateClosed:
		c.releaseTransport()
	}
}

// releaseTransport forgets the dead connection's channel. The attach intent
// survives, so the next transition into connected re-attaches.
func (c *Channel) releaseTransport() {
	c.mu.Lock()
	released := c.attached
	c.rt = nil
	c.attached = false
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if released {
		c.log.Debug("channel released with its connection", "channel", c.name)
	}
}

// flushAttach runs a queued attach once the connection comes up.
func (c *Channel) flushAttach() {
	c.mu.Lock()
	pending := c.wantAttach && !c.attached
	c.mu.Unlock()
	if !pending {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.ackTimeout)
	defer cancel()
	if err := c.attachNow(ctx); err != nil {
		c.log.Error("queued attach failed", "channel", c.name, "error", err)
	}
}

func (c *Channel) attachNow(ctx context.Context) error {
	conn := c.mgr.Conn()
	if conn == nil {
		return apperrors.ErrTransportDisconnected
	}
	rt := conn.Channel(c.name)
	if err := rt.Attach(ctx); err != nil {
		return err
	}
	unsubscribe, err := rt.Subscribe(ctx, c.onEnvelope)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.rt = rt
	c.attached = true
	c.unsubscribe = unsubscribe
	c.mu.Unlock()

	c.log.Info("channel attached", "channel", c.name)
	return nil
}

// Detach releases the channel and unregisters the message listeners this
// session installed. Safe to call when never attached.
func (c *Channel) Detach(ctx context.Context) {
	c.mu.Lock()
	rt := c.rt
	unsubscribe := c.unsubscribe
	offState := c.offState
	c.rt = nil
	c.attached = false
	c.wantAttach = false
	c.unsubscribe = nil
	c.offState = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if offState != nil {
		offState()
	}
	if rt != nil {
		if err := rt.Detach(ctx); err != nil {
			c.log.Warn("detach failed", "channel", c.name, "error", err)
		}
	}
}

// onEnvelope is the single inbound path: decode the tagged envelope,
// discard what cannot be understood, normalize the rest onto the bus.
// One malformed message never interrupts delivery of the next.
func (c *Channel) onEnvelope(env wire.Envelope) {
	in, err := wire.Decode(env)
	if err != nil {
		c.log.Warn("discarding inbound envelope", "kind", env.Name, "error", err)
		return
	}
	msg := wire.Normalize(in)
	if msg.Sender == domain.SenderSelf {
		// Echo of our own publish; delivery status comes from the ack.
		c.log.Debug("dropping own echo", "id", msg.ID)
		return
	}
	c.messages.Publish(msg)
}

// Publish promotes a draft to an optimistic sent message, sends it and
// resolves the returned Publication from the provider acknowledgement.
// The caller is never blocked: delivery waits happen on Publication.Wait
// and are bounded by the ack timeout and the connection lifetime.
func (c *Channel) Publish(ctx context.Context, draft domain.OutboundMessage) (*Publication, error) {
	msg := domain.ChatMessage{
		ID:     domain.NextID(),
		Text:   draft.Text,
		Media:  draft.Media,
		Sender: draft.Sender,
		Time:   draft.Time,
		Status: domain.StatusSent,
	}
	if msg.Sender == "" {
		msg.Sender = domain.SenderSelf
	}
	if msg.Time == "" {
		msg.Time = domain.RenderTime(time.Now())
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	pub := newPublication(msg)
	c.tracker.Track(msg, draft)

	c.mu.Lock()
	rt := c.rt
	attached := c.attached
	c.mu.Unlock()

	if !attached || rt == nil || c.mgr.State() != domain.StateConnected {
		c.resolve(pub, fanout.PublishResult{Reason: apperrors.ErrConnectionClosed})
		return pub, nil
	}

	env, err := wire.EncodeOutbound(msg)
	if err != nil {
		c.resolve(pub, fanout.PublishResult{Reason: err})
		return pub, nil
	}

	go c.send(ctx, rt, pub, env)
	return pub, nil
}

func (c *Channel) send(ctx context.Context, rt contract.RealtimeChannel, pub *Publication, env wire.Envelope) {
	// The wait is bounded by the ack timeout and cancelled by connection
	// teardown, so a publish can never leak a pending callback.
	sendCtx, cancel := context.WithTimeout(ctx, c.ackTimeout)
	defer cancel()

	done := c.mgr.Done()
	errCh := make(chan error, 1)
	go func() { errCh <- rt.Publish(sendCtx, env) }()

	select {
	case <-done:
		c.resolve(pub, fanout.PublishResult{Reason: apperrors.ErrConnectionClosed})
	case err := <-errCh:
		c.resolve(pub, toResult(err))
	}
}

func toResult(err error) fanout.PublishResult {
	switch {
	case err == nil:
		return fanout.PublishResult{Acknowledged: true}
	case errors.Is(err, context.DeadlineExceeded):
		return fanout.PublishResult{Reason: apperrors.ErrPublishTimeout}
	case errors.Is(err, context.Canceled):
		return fanout.PublishResult{Reason: apperrors.ErrConnectionClosed}
	default:
		return fanout.PublishResult{Reason: fmt.Errorf("%w: %v", apperrors.ErrPublishRejected, err)}
	}
}

func (c *Channel) resolve(pub *Publication, result fanout.PublishResult) {
	c.tracker.Resolve(pub.Message.ID, result)
	pub.resolve(result)
}
