// Package credentials mints and fetches the short-lived tokens that
// authorize a client identity on the realtime transport.
package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ably/ably-go/ably"

	"chat-session/domain"
	apperrors "chat-session/errors"
)

const defaultTokenTTL = time.Hour

// Issuer creates signed token requests scoped to one client identity.
// Signing is local (HMAC over the request fields), so issuance needs no
// network round trip. The API key never leaves the issuer and is never
// logged.
type Issuer struct {
	log  *slog.Logger
	rest *ably.REST
	ttl  time.Duration
}

// NewIssuer builds an issuer from the provider API key. A missing key is a
// misconfiguration: the issuer is unavailable, not broken per-request.
func NewIssuer(log *slog.Logger, apiKey string, ttl time.Duration) (*Issuer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: signing key not configured", apperrors.ErrCredentialUnavailable)
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	rest, err := ably.NewREST(ably.WithKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCredentialUnavailable, err)
	}
	return &Issuer{log: log, rest: rest, ttl: ttl}, nil
}

// REST exposes the underlying provider client for sibling server-side
// concerns (the presence publisher shares the broker's key).
func (i *Issuer) REST() *ably.REST {
	return i.rest
}

// IssueToken mints a fresh capability for clientID with a bounded validity
// window. Each call produces a distinct nonce; tokens are single-use by
// design and never cached.
func (i *Issuer) IssueToken(_ context.Context, clientID string) (domain.Token, error) {
	if clientID == "" {
		return domain.Token{}, fmt.Errorf("%w: empty client id", apperrors.ErrInvalidRequest)
	}

	params := &ably.TokenParams{
		ClientID: clientID,
		TTL:      i.ttl.Milliseconds(),
	}
	request, err := i.rest.Auth.CreateTokenRequest(params)
	if err != nil {
		return domain.Token{}, fmt.Errorf("%w: %v", apperrors.ErrCredentialUnavailable, err)
	}

	capability, err := json.Marshal(request)
	if err != nil {
		return domain.Token{}, fmt.Errorf("%w: %v", apperrors.ErrCredentialUnavailable, err)
	}

	i.log.Debug("token issued", "clientId", clientID, "ttl", i.ttl.String())
	return domain.Token{
		ClientID:   clientID,
		Capability: capability,
		Expires:    time.UnixMilli(request.Timestamp).Add(i.ttl),
	}, nil
}
