// Package domain contains the core concepts of the messaging session layer.
// This file defines the canonical chat message model.
// Messages are append-only: once created, only their status advances.
package domain

import (
	"fmt"
	"sync/atomic"
	"time"

	apperrors "chat-session/errors"
)

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderSelf Sender = "self"
	SenderPeer Sender = "peer"
)

// Status is the delivery state of a message.
type Status string

const (
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
	StatusError     Status = "error"
)

// ChatMessage is the canonical message model every inbound envelope is
// normalized into and every outbound draft is promoted to.
type ChatMessage struct {
	ID     string
	Text   string
	Media  []MediaAttachment
	Sender Sender
	Time   string // rendering timestamp, display form
	Status Status
}

// Validate enforces the core invariant: a message carries text, media or both.
func (m ChatMessage) Validate() error {
	if m.Text == "" && len(m.Media) == 0 {
		return apperrors.ErrEmptyMessage
	}
	return nil
}

// OutboundMessage is a draft handed to the session for publishing.
// The session assigns the id and status when promoting it.
type OutboundMessage struct {
	Text   string
	Media  []MediaAttachment
	Sender Sender
	Time   string
}

var idCounter atomic.Uint64

// NextID returns a message id unique within a session: unix milliseconds
// plus a per-process monotonic counter to break same-millisecond ties.
func NextID() string {
	return fmt.Sprintf("%d-%04d", time.Now().UnixMilli(), idCounter.Add(1)%10000)
}

// RenderTime formats an instant the way the UI layer displays it.
func RenderTime(t time.Time) string {
	return t.Format("15:04")
}
