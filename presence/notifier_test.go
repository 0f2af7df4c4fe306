package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"chat-session/domain"
	"chat-session/mocks"
	"chat-session/wire"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNotifier_PublishesEventAndUpsertsStatus(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	statuses := mocks.NewMockStatusDirectory(ctrl)

	identity := domain.Identity{UserID: "user-1", Name: "Nina", Email: "nina@example.com"}

	var published wire.Envelope
	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, env wire.Envelope) error {
			published = env
			return nil
		})
	statuses.EXPECT().UpsertOnline(identity, gomock.Any()).Return(nil)

	notifier := NewNotifier(logs.GetLoggerFromLevel(slog.LevelDebug), publisher, statuses)
	notifier.NotifyConnected(context.Background(), identity)

	req.Equal(EventConnected, published.Name)
	var payload connectedPayload
	req.NoError(json.Unmarshal(published.Data, &payload))
	req.Equal("user-1", payload.UserID)
	req.Equal("Nina", payload.UserName)
	req.Equal("nina@example.com", payload.UserEmail)
	req.Equal("connected", payload.Status)
	_, err := time.Parse(time.RFC3339, payload.Timestamp)
	req.NoError(err)
}

func TestNotifier_PublishFailureStillUpserts(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	statuses := mocks.NewMockStatusDirectory(ctrl)

	identity := domain.Identity{UserID: "user-1", Name: "Nina", Email: "nina@example.com"}

	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(fmt.Errorf("channel unavailable"))
	statuses.EXPECT().UpsertOnline(identity, gomock.Any()).Return(nil)

	notifier := NewNotifier(logs.GetLoggerFromLevel(slog.LevelDebug), publisher, statuses)
	notifier.NotifyConnected(context.Background(), identity)
}

func TestNotifier_UpsertFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	statuses := mocks.NewMockStatusDirectory(ctrl)

	identity := domain.Identity{UserID: "user-1", Name: "Nina", Email: "nina@example.com"}

	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	statuses.EXPECT().UpsertOnline(identity, gomock.Any()).Return(fmt.Errorf("db closed"))

	notifier := NewNotifier(logs.GetLoggerFromLevel(slog.LevelDebug), publisher, statuses)
	require.NotPanics(t, func() { notifier.NotifyConnected(context.Background(), identity) })
}

func TestNotifier_DisconnectedMarksOfflineOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl) // no Publish expected
	statuses := mocks.NewMockStatusDirectory(ctrl)

	statuses.EXPECT().MarkOffline("user-1", gomock.Any()).Return(nil)

	notifier := NewNotifier(logs.GetLoggerFromLevel(slog.LevelDebug), publisher, statuses)
	notifier.NotifyDisconnected(context.Background(), "user-1")
}
