package fanout

import (
	"log/slog"
	"sync"

	"chat-session/domain"
)

// PublishResult is the outcome of one publish attempt, as reported by the
// channel session. Success is never inferred from the absence of an error:
// a result must be recorded explicitly.
type PublishResult struct {
	Acknowledged bool
	Reason       error
}

// DeliveryTracker advances outbound message statuses from publish results
// and republishes the updated message on the bus so consumers can re-render
// it. The original draft of a failed message is kept so the caller can
// resubmit without reconstructing it; a draft is only retrievable once its
// message has resolved to error, so a resend can never race the pending
// first attempt into a duplicate.
type DeliveryTracker struct {
	log *slog.Logger
	bus *Bus[domain.ChatMessage]

	mu      sync.Mutex
	pending map[string]pendingPublish
	failed  map[string]domain.OutboundMessage
}

type pendingPublish struct {
	msg   domain.ChatMessage
	draft domain.OutboundMessage
}

func NewDeliveryTracker(log *slog.Logger, bus *Bus[domain.ChatMessage]) *DeliveryTracker {
	return &DeliveryTracker{
		log:     log,
		bus:     bus,
		pending: make(map[string]pendingPublish),
		failed:  make(map[string]domain.OutboundMessage),
	}
}

// Track records an optimistic outbound message awaiting its acknowledgement
// and announces it to subscribers with status sent.
func (t *DeliveryTracker) Track(msg domain.ChatMessage, draft domain.OutboundMessage) {
	t.mu.Lock()
	t.pending[msg.ID] = pendingPublish{msg: msg, draft: draft}
	t.mu.Unlock()

	t.bus.Publish(msg)
}

// Resolve advances a tracked message to delivered or error based strictly on
// the recorded result. Resolving an unknown id is a no-op: the connection
// may have been torn down and re-opened since.
func (t *DeliveryTracker) Resolve(id string, result PublishResult) {
	t.mu.Lock()
	entry, ok := t.pending[id]
	if !ok {
		t.mu.Unlock()
		t.log.Debug("publish result for untracked message", "id", id)
		return
	}
	delete(t.pending, id)
	msg := entry.msg
	if result.Acknowledged {
		msg.Status = domain.StatusDelivered
		delete(t.failed, id)
	} else {
		msg.Status = domain.StatusError
		t.failed[id] = entry.draft
		t.log.Warn("publish failed", "id", id, "reason", result.Reason)
	}
	t.mu.Unlock()

	t.bus.Publish(msg)
}

// Draft returns the original draft of a failed message for resubmission.
// A message still awaiting its acknowledgement has no draft to resend yet.
func (t *DeliveryTracker) Draft(id string) (domain.OutboundMessage, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	draft, ok := t.failed[id]
	return draft, ok
}
