package wire

import (
	"time"

	"github.com/samber/lo"

	"chat-session/domain"
)

// Normalize converts a decoded inbound payload into the canonical model.
// Inbound messages originate from the remote side, so the sender defaults to
// peer and the status is always delivered; an envelope that names its sender
// keeps it (the provider echoes our own publishes back to us).
func Normalize(in Inbound) domain.ChatMessage {
	switch p := in.(type) {
	case LegacyText:
		return domain.ChatMessage{
			ID:     domain.NextID(),
			Text:   p.Text,
			Sender: senderOrPeer(p.Sender),
			Time:   timeOrNow(p.Time),
			Status: domain.StatusDelivered,
		}
	case RichMessage:
		id := p.ID
		if id == "" {
			id = domain.NextID()
		}
		return domain.ChatMessage{
			ID:     id,
			Text:   p.Text,
			Media:  lo.Map(p.Media, func(m Media, _ int) domain.MediaAttachment { return toAttachment(m) }),
			Sender: senderOrPeer(p.Sender),
			Time:   timeOrNow(p.Time),
			Status: domain.StatusDelivered,
		}
	default:
		// Decode never produces other variants.
		return domain.ChatMessage{}
	}
}

func senderOrPeer(s string) domain.Sender {
	if s == string(domain.SenderSelf) {
		return domain.SenderSelf
	}
	return domain.SenderPeer
}

func timeOrNow(t string) string {
	if t != "" {
		return t
	}
	return domain.RenderTime(time.Now())
}

func toAttachment(m Media) domain.MediaAttachment {
	kind := domain.MediaKind(m.Type)
	switch kind {
	case domain.MediaImage, domain.MediaVideo, domain.MediaDocument:
	default:
		kind = domain.MediaDocument
	}
	return domain.MediaAttachment{URL: m.URL, Kind: kind, Name: m.Name, Size: m.Size}
}
