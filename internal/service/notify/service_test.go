package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"teamboard/internal/domain"
	"teamboard/internal/model"
	"teamboard/internal/sse"
)

const userID = "6f1c2a7e-3b4d-4c5e-8f90-1a2b3c4d5e6f"

type repoMock struct {
	mock.Mock
}

func (m *repoMock) InsertNotifications(ctx context.Context, ns []model.Notification) ([]model.Notification, error) {
	args := m.Called(ctx, ns)
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *repoMock) CreateNotification(ctx context.Context, n model.Notification) (model.Notification, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(model.Notification), args.Error(1)
}

func (m *repoMock) ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *repoMock) FindByPushID(ctx context.Context, userID, pushID string) (model.Notification, error) {
	args := m.Called(ctx, userID, pushID)
	return args.Get(0).(model.Notification), args.Error(1)
}

func (m *repoMock) MarkRead(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *repoMock) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *repoMock) DeleteNotification(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func TestServiceCreate(t *testing.T) {
	t.Run("invalid user id", func(t *testing.T) {
		repo := &repoMock{}
		svc := NewService(repo, sse.NewHub(), zap.NewNop())

		_, err := svc.Create(context.Background(), "not-a-uuid", model.Template{Title: "title"})
		require.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
	})

	t.Run("invalid template", func(t *testing.T) {
		repo := &repoMock{}
		svc := NewService(repo, sse.NewHub(), zap.NewNop())

		_, err := svc.Create(context.Background(), userID, model.Template{Title: "x", URL: "javascript:alert(1)"})
		require.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
	})

	t.Run("store error", func(t *testing.T) {
		storeErr := errors.New("store failed")
		repo := &repoMock{}
		repo.On("CreateNotification", mock.Anything, mock.Anything).Return(model.Notification{}, storeErr).Once()
		svc := NewService(repo, sse.NewHub(), zap.NewNop())

		_, err := svc.Create(context.Background(), userID, model.Template{Title: "title"})
		require.ErrorIs(t, err, storeErr)
		repo.AssertExpectations(t)
	})

	t.Run("success publishes to user room", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		hub := sse.NewHub()
		go hub.Run(ctx)
		client := &sse.Client{Room: userID, Ch: make(chan model.Notification, 1)}
		hub.Register(client)

		stored := model.Notification{ID: "n-1", UserID: userID, Title: "title", CreatedAt: time.Now()}
		repo := &repoMock{}
		repo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n model.Notification) bool {
			return n.UserID == userID && n.Title == "title" && !n.IsRead
		})).Return(stored, nil).Once()
		svc := NewService(repo, hub, zap.NewNop())

		created, err := svc.Create(ctx, userID, model.Template{Title: " title "})
		require.NoError(t, err)
		require.Equal(t, stored, created)

		select {
		case got := <-client.Ch:
			require.Equal(t, "n-1", got.ID)
		case <-time.After(time.Second):
			t.Fatalf("expected notification")
		}
		repo.AssertExpectations(t)
	})
}

func TestServiceList(t *testing.T) {
	repo := &repoMock{}
	repo.On("ListNotifications", mock.Anything, userID, DefaultHistoryLimit).Return([]model.Notification{{ID: "n-1"}}, nil).Once()
	repo.On("ListNotifications", mock.Anything, userID, 5).Return([]model.Notification{}, errors.New("boom")).Once()
	svc := NewService(repo, sse.NewHub(), zap.NewNop())

	items, err := svc.List(context.Background(), userID, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = svc.List(context.Background(), userID, 5)
	require.Error(t, err)
	repo.AssertExpectations(t)
}

func TestServiceScopedMutations(t *testing.T) {
	repo := &repoMock{}
	repo.On("MarkRead", mock.Anything, userID, "n-1").Return(nil).Once()
	repo.On("MarkRead", mock.Anything, userID, "other").Return(domain.ErrNotFound).Once()
	repo.On("MarkAllRead", mock.Anything, userID).Return(int64(3), nil).Once()
	repo.On("DeleteNotification", mock.Anything, userID, "n-1").Return(nil).Once()
	svc := NewService(repo, sse.NewHub(), zap.NewNop())

	require.NoError(t, svc.MarkRead(context.Background(), userID, "n-1"))
	require.ErrorIs(t, svc.MarkRead(context.Background(), userID, "other"), domain.ErrNotFound)
	updated, err := svc.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	require.EqualValues(t, 3, updated)
	require.NoError(t, svc.Delete(context.Background(), userID, "n-1"))
	repo.AssertExpectations(t)
}

func TestServiceSyncPush(t *testing.T) {
	t.Run("already synced", func(t *testing.T) {
		existing := model.Notification{ID: "n-1", PushID: "p-1"}
		repo := &repoMock{}
		repo.On("FindByPushID", mock.Anything, userID, "p-1").Return(existing, nil).Once()
		svc := NewService(repo, sse.NewHub(), zap.NewNop())

		got, created, err := svc.SyncPush(context.Background(), userID, model.Template{Title: "t", PushID: "p-1"})
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, existing, got)
		repo.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
	})

	t.Run("new push", func(t *testing.T) {
		repo := &repoMock{}
		repo.On("FindByPushID", mock.Anything, userID, "p-2").Return(model.Notification{}, domain.ErrNotFound).Once()
		repo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n model.Notification) bool {
			return n.PushID == "p-2"
		})).Return(model.Notification{ID: "n-2", PushID: "p-2"}, nil).Once()
		svc := NewService(repo, sse.NewHub(), zap.NewNop())

		got, created, err := svc.SyncPush(context.Background(), userID, model.Template{Title: "t", PushID: "p-2"})
		require.NoError(t, err)
		require.True(t, created)
		require.Equal(t, "n-2", got.ID)
		repo.AssertExpectations(t)
	})

	t.Run("lookup failure", func(t *testing.T) {
		repo := &repoMock{}
		repo.On("FindByPushID", mock.Anything, userID, "p-3").Return(model.Notification{}, errors.New("down")).Once()
		svc := NewService(repo, sse.NewHub(), zap.NewNop())

		_, _, err := svc.SyncPush(context.Background(), userID, model.Template{Title: "t", PushID: "p-3"})
		require.Error(t, err)
		repo.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
	})
}
