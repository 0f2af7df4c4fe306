package presence

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chat-session/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newHandlerForTest(t *testing.T, expectNotify bool) *Handler {
	t.Helper()
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	statuses := mocks.NewMockStatusDirectory(ctrl)
	if expectNotify {
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
		statuses.EXPECT().UpsertOnline(gomock.Any(), gomock.Any()).Return(nil)
	}
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	return NewHandler(log, NewNotifier(log, publisher, statuses))
}

func TestNotifyHandler_Success(t *testing.T) {
	req := require.New(t)
	handler := newHandlerForTest(t, true)

	body := `{"userId":"user-1","userName":"Nina","userEmail":"nina@example.com"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notify-connection", strings.NewReader(body)))

	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq(`{"success":true}`, rec.Body.String())
}

func TestNotifyHandler_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no user id", body: `{"userName":"Nina","userEmail":"nina@example.com"}`},
		{name: "no user name", body: `{"userId":"user-1","userEmail":"nina@example.com"}`},
		{name: "no user email", body: `{"userId":"user-1","userName":"Nina"}`},
		{name: "malformed json", body: `{"userId":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newHandlerForTest(t, false)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notify-connection", strings.NewReader(tt.body)))
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestNotifyHandler_MethodNotAllowed(t *testing.T) {
	handler := newHandlerForTest(t, false)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notify-connection", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
