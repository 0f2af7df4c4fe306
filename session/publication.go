package session

import (
	"context"
	"sync"

	"chat-session/domain"
	"chat-session/fanout"
)

// Publication is the cancellable result of one publish attempt. It resolves
// exactly once, either from the provider acknowledgement, the ack timeout or
// connection teardown.
type Publication struct {
	// Message is the optimistic sent copy, including its assigned id.
	Message domain.ChatMessage

	once   sync.Once
	done   chan struct{}
	result fanout.PublishResult
}

func newPublication(msg domain.ChatMessage) *Publication {
	return &Publication{Message: msg, done: make(chan struct{})}
}

func (p *Publication) resolve(result fanout.PublishResult) {
	p.once.Do(func() {
		p.result = result
		close(p.done)
	})
}

// Done is ready once the publication resolved.
func (p *Publication) Done() <-chan struct{} { return p.done }

// Wait blocks until the publication resolves or ctx ends, in which case the
// result is a rejection carrying the context error.
func (p *Publication) Wait(ctx context.Context) fanout.PublishResult {
	select {
	case <-p.done:
		return p.result
	case <-ctx.Done():
		return fanout.PublishResult{Reason: ctx.Err()}
	}
}

// Result returns the resolved outcome and whether it has resolved yet.
func (p *Publication) Result() (fanout.PublishResult, bool) {
	select {
	case <-p.done:
		return p.result, true
	default:
		return fanout.PublishResult{}, false
	}
}
