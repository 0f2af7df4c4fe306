package credentials

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chat-session/auth"
	"chat-session/domain"
	apperrors "chat-session/errors"
	"chat-session/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newSessionsForTest() *auth.Sessions {
	return auth.NewSessions([]byte("test-session-secret"), time.Hour)
}

func TestTokenHandler_GetDefaultsClientID(t *testing.T) {
	req := require.New(t)
	issuer := newIssuerForTest(t, time.Hour)
	handler := NewHandler(logs.GetLoggerFromLevel(slog.LevelDebug), issuer, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/token", nil))

	req.Equal(http.StatusOK, rec.Code)
	var fields tokenRequestFields
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &fields))
	req.Equal(DefaultClientID, fields.ClientID)
}

func TestTokenHandler_GetWithExplicitClientID(t *testing.T) {
	req := require.New(t)
	issuer := newIssuerForTest(t, time.Hour)
	handler := NewHandler(logs.GetLoggerFromLevel(slog.LevelDebug), issuer, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/token?clientId=alice", nil))

	req.Equal(http.StatusOK, rec.Code)
	var fields tokenRequestFields
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &fields))
	req.Equal("alice", fields.ClientID)
}

func TestTokenHandler_PostBodyAndEmptyBody(t *testing.T) {
	req := require.New(t)
	issuer := newIssuerForTest(t, time.Hour)
	handler := NewHandler(logs.GetLoggerFromLevel(slog.LevelDebug), issuer, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"clientId":"bob"}`)))
	req.Equal(http.StatusOK, rec.Code)
	var fields tokenRequestFields
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &fields))
	req.Equal("bob", fields.ClientID)

	// No body at all still mints a token for the default identity.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/token", nil))
	req.Equal(http.StatusOK, rec.Code)
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &fields))
	req.Equal(DefaultClientID, fields.ClientID)
}

func TestTokenHandler_BearerSessionOverridesClaimedIdentity(t *testing.T) {
	req := require.New(t)
	issuer := newIssuerForTest(t, time.Hour)
	sessions := newSessionsForTest()
	handler := NewHandler(logs.GetLoggerFromLevel(slog.LevelDebug), issuer, sessions)

	session, err := sessions.Mint(domain.Identity{UserID: "user-7", Name: "Nina", Email: "nina@example.com"}, time.Now())
	req.NoError(err)

	r := httptest.NewRequest(http.MethodGet, "/token?clientId=impostor", nil)
	r.Header.Set("Authorization", "Bearer "+session)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	req.Equal(http.StatusOK, rec.Code)
	var fields tokenRequestFields
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &fields))
	req.Equal("user-7", fields.ClientID)
}

func TestTokenHandler_InvalidBearerFallsBackToClaimed(t *testing.T) {
	req := require.New(t)
	issuer := newIssuerForTest(t, time.Hour)
	handler := NewHandler(logs.GetLoggerFromLevel(slog.LevelDebug), issuer, newSessionsForTest())

	r := httptest.NewRequest(http.MethodGet, "/token?clientId=alice", nil)
	r.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	req.Equal(http.StatusOK, rec.Code)
	var fields tokenRequestFields
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &fields))
	req.Equal("alice", fields.ClientID)
}

func TestTokenHandler_IssuerFailureYieldsOpaque500(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	issuer := mocks.NewMockTokenSource(ctrl)
	issuer.EXPECT().
		IssueToken(gomock.Any(), DefaultClientID).
		Return(domain.Token{}, apperrors.ErrCredentialUnavailable)

	handler := NewHandler(logs.GetLoggerFromLevel(slog.LevelDebug), issuer, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/token", nil))

	req.Equal(http.StatusInternalServerError, rec.Code)
	req.JSONEq(`{"error":"failed to generate token"}`, rec.Body.String())
}

func TestTokenHandler_MalformedBodyIs400(t *testing.T) {
	req := require.New(t)
	issuer := newIssuerForTest(t, time.Hour)
	handler := NewHandler(logs.GetLoggerFromLevel(slog.LevelDebug), issuer, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"clientId":`)))

	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestTokenHandler_MethodNotAllowed(t *testing.T) {
	req := require.New(t)
	issuer := newIssuerForTest(t, time.Hour)
	handler := NewHandler(logs.GetLoggerFromLevel(slog.LevelDebug), issuer, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/token", nil))

	req.Equal(http.StatusMethodNotAllowed, rec.Code)
	req.Equal("GET, POST", rec.Header().Get("Allow"))
}
