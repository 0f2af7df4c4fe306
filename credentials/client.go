package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"chat-session/domain"
	apperrors "chat-session/errors"
)

// HTTPTokenSource fetches tokens from a broker endpoint. It implements
// contract.TokenSource for clients that cannot hold the signing key.
type HTTPTokenSource struct {
	log          *slog.Logger
	endpoint     string
	sessionToken string // optional bearer identity
	client       *http.Client
}

func NewHTTPTokenSource(log *slog.Logger, endpoint, sessionToken string) *HTTPTokenSource {
	return &HTTPTokenSource{
		log:          log,
		endpoint:     endpoint,
		sessionToken: sessionToken,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// tokenRequestFields is the subset of the opaque capability needed to carry
// identity and expiry alongside it.
type tokenRequestFields struct {
	ClientID  string `json:"clientId"`
	Timestamp int64  `json:"timestamp"`
	TTL       int64  `json:"ttl"`
}

func (s *HTTPTokenSource) IssueToken(ctx context.Context, clientID string) (domain.Token, error) {
	if clientID == "" {
		return domain.Token{}, fmt.Errorf("%w: empty client id", apperrors.ErrInvalidRequest)
	}

	u, err := url.Parse(s.endpoint)
	if err != nil {
		return domain.Token{}, fmt.Errorf("%w: endpoint: %v", apperrors.ErrCredentialUnavailable, err)
	}
	q := u.Query()
	q.Set("clientId", clientID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.Token{}, fmt.Errorf("%w: %v", apperrors.ErrCredentialUnavailable, err)
	}
	if s.sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.sessionToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Token{}, fmt.Errorf("%w: %v", apperrors.ErrCredentialUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.Token{}, fmt.Errorf("%w: %v", apperrors.ErrCredentialUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return domain.Token{}, fmt.Errorf("%w: broker rejected the request", apperrors.ErrInvalidRequest)
	case resp.StatusCode != http.StatusOK:
		return domain.Token{}, fmt.Errorf("%w: broker returned %d", apperrors.ErrCredentialUnavailable, resp.StatusCode)
	}

	var fields tokenRequestFields
	if err := json.Unmarshal(body, &fields); err != nil {
		return domain.Token{}, fmt.Errorf("%w: malformed token response: %v", apperrors.ErrCredentialUnavailable, err)
	}

	token := domain.Token{
		ClientID:   fields.ClientID,
		Capability: body,
		Expires:    time.UnixMilli(fields.Timestamp + fields.TTL),
	}
	s.log.Debug("token fetched", "clientId", token.ClientID, "expires", token.Expires)
	return token, nil
}
