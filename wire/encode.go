package wire

import (
	"encoding/json"

	"github.com/samber/lo"

	"chat-session/domain"
)

// EncodeOutbound serializes a message for publishing under the current
// chat-message kind. The id travels with the payload so the echoed copy can
// be correlated with the optimistic local one.
func EncodeOutbound(msg domain.ChatMessage) (Envelope, error) {
	payload := RichMessage{
		ID:     msg.ID,
		Text:   msg.Text,
		Sender: string(msg.Sender),
		Time:   msg.Time,
		Media:  lo.Map(msg.Media, func(a domain.MediaAttachment, _ int) Media { return fromAttachment(a) }),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Name: KindChatMessage, Data: data}, nil
}

func fromAttachment(a domain.MediaAttachment) Media {
	return Media{URL: a.URL, Type: string(a.Kind), Name: a.Name, Size: a.Size}
}
