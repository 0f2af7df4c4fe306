package transport

import (
	"context"
	"encoding/json"

	"github.com/ably/ably-go/ably"

	"chat-session/wire"
)

// RESTPublisher publishes envelopes over the provider's REST surface. The
// broker uses it for the presence side-channel, where holding a realtime
// connection open would be wasteful.
type RESTPublisher struct {
	channel *ably.RESTChannel
}

func NewRESTPublisher(rest *ably.REST, channelName string) *RESTPublisher {
	return &RESTPublisher{channel: rest.Channels.Get(channelName)}
}

func (p *RESTPublisher) Publish(ctx context.Context, env wire.Envelope) error {
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return err
	}
	return p.channel.Publish(ctx, env.Name, payload)
}
