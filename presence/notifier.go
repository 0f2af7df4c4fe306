// Package presence implements the best-effort connection notification
// side-channel: a user-connected event on a well-known channel plus an
// online/last-seen upsert in the directory. Failures here are logged and
// never fail the primary flow.
package presence

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"chat-session/contract"
	"chat-session/domain"
	"chat-session/wire"
)

const (
	// ChannelName is the well-known presence channel.
	ChannelName = "user-connections"
	// EventConnected is the envelope kind of a connection notification.
	EventConnected = "user-connected"
)

// connectedPayload mirrors the wire shape consumed by the other clients on
// the presence channel.
type connectedPayload struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

// Notifier publishes connection notifications and mirrors them into the
// status directory.
type Notifier struct {
	log       *slog.Logger
	publisher contract.Publisher
	statuses  contract.StatusDirectory
}

func NewNotifier(log *slog.Logger, publisher contract.Publisher, statuses contract.StatusDirectory) *Notifier {
	return &Notifier{log: log, publisher: publisher, statuses: statuses}
}

// NotifyConnected announces an identity as connected. Best effort on both
// legs: a failed publish still upserts the directory and vice versa.
func (n *Notifier) NotifyConnected(ctx context.Context, identity domain.Identity) {
	now := time.Now().UTC()

	data, err := json.Marshal(connectedPayload{
		UserID:    identity.UserID,
		UserName:  identity.Name,
		UserEmail: identity.Email,
		Timestamp: now.Format(time.RFC3339),
		Status:    "connected",
	})
	if err != nil {
		n.log.Error("presence payload", "error", err)
	} else if err := n.publisher.Publish(ctx, wire.Envelope{Name: EventConnected, Data: data}); err != nil {
		n.log.Warn("presence publish failed", "userId", identity.UserID, "error", err)
	}

	if err := n.statuses.UpsertOnline(identity, now); err != nil {
		n.log.Warn("status upsert failed", "userId", identity.UserID, "error", err)
	}
}

// NotifyDisconnected records a last-seen time. No event is published: the
// provider already signals departures to channel subscribers.
func (n *Notifier) NotifyDisconnected(_ context.Context, userID string) {
	if err := n.statuses.MarkOffline(userID, time.Now().UTC()); err != nil {
		n.log.Warn("status mark offline failed", "userId", userID, "error", err)
	}
}
