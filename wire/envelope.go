// Package wire models the provider-level message envelopes and their
// conversion to and from the canonical domain model.
//
// The transport has delivered two historical shapes on the same channel:
// a bare-text envelope and a richer one carrying optional media. Both are
// recognized by their kind tag; anything else is discarded by the caller.
package wire

import (
	"encoding/json"
	"fmt"

	apperrors "chat-session/errors"
)

// Envelope kinds observed on the wire.
const (
	KindLegacyText  = "update-from-client"
	KindChatMessage = "chat-message"
)

// Envelope is the raw wire container: a kind tag plus an opaque payload.
type Envelope struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// Inbound is the closed set of envelope payloads this layer understands.
// Decode returns exactly one of LegacyText or RichMessage.
type Inbound interface {
	inbound()
}

// LegacyText is the historical text-only payload.
type LegacyText struct {
	Text   string `json:"text"`
	Sender string `json:"sender,omitempty"`
	Time   string `json:"time,omitempty"`
}

func (LegacyText) inbound() {}

// Media is the wire form of one attachment.
type Media struct {
	URL  string `json:"url"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// RichMessage is the current payload, optionally carrying media.
type RichMessage struct {
	ID     string  `json:"id,omitempty"`
	Text   string  `json:"text,omitempty"`
	Sender string  `json:"sender,omitempty"`
	Time   string  `json:"time,omitempty"`
	Media  []Media `json:"media,omitempty"`
}

func (RichMessage) inbound() {}

// Decode maps a raw envelope onto its tagged variant. Unknown kinds return
// ErrUnknownEnvelopeKind and malformed payloads ErrMalformedEnvelope; both
// are discard reasons, not pipeline failures.
func Decode(env Envelope) (Inbound, error) {
	switch env.Name {
	case KindLegacyText:
		var p LegacyText
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("%w: %s payload: %v", apperrors.ErrMalformedEnvelope, env.Name, err)
		}
		return p, nil
	case KindChatMessage:
		var p RichMessage
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("%w: %s payload: %v", apperrors.ErrMalformedEnvelope, env.Name, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownEnvelopeKind, env.Name)
	}
}
