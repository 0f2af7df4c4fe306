package presence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"chat-session/domain"
)

// Reporter posts connection notifications to a broker endpoint from the
// client side. Best effort: the caller ignores the outcome beyond logging.
type Reporter struct {
	log      *slog.Logger
	endpoint string
	client   *http.Client
}

func NewReporter(log *slog.Logger, endpoint string) *Reporter {
	return &Reporter{
		log:      log,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// Report announces the identity to the broker. Errors are returned for the
// caller to log; they must never fail the connection flow.
func (r *Reporter) Report(ctx context.Context, identity domain.Identity) error {
	body, err := json.Marshal(notifyRequest{
		UserID:    identity.UserID,
		UserName:  identity.Name,
		UserEmail: identity.Email,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notify-connection returned %d", resp.StatusCode)
	}
	return nil
}
