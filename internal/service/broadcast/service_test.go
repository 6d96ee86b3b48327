package broadcast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"teamboard/internal/domain"
	"teamboard/internal/model"
	"teamboard/internal/push"
)

type resolverMock struct {
	mock.Mock
}

func (m *resolverMock) Resolve(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type pusherMock struct {
	mock.Mock
}

func (m *pusherMock) Send(ctx context.Context, msg push.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

// liveRecorder stands in for the stream hub.
type liveRecorder struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (l *liveRecorder) Publish(_ context.Context, n model.Notification) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent = append(l.sent, n)
	return nil
}

func (l *liveRecorder) published() []model.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Notification(nil), l.sent...)
}

func newTestService(resolver Resolver, store Inserter, pusher Pusher) *Service {
	return NewService(resolver, sequential(store, 100), &liveRecorder{}, pusher, 0, zap.NewNop())
}

func TestServiceBroadcast(t *testing.T) {
	t.Run("full success pushes", func(t *testing.T) {
		resolver := &resolverMock{}
		resolver.On("Resolve", mock.Anything).Return([]string{"u1", "u2"}, nil).Once()
		pusher := &pusherMock{}
		pusher.On("Send", mock.Anything, mock.MatchedBy(func(m push.Message) bool {
			return m.Title == "Release"
		})).Return("pushalert", nil).Once()
		store := &batchStore{}

		svc := newTestService(resolver, store, pusher)
		result, err := svc.Broadcast(context.Background(), model.Template{Title: "Release"}, Options{})

		require.NoError(t, err)
		require.Equal(t, 2, result.CreatedCount)
		require.False(t, result.PartialFailure)
		svc.Wait()
		pusher.AssertExpectations(t)
		require.True(t, svc.IsEcho(model.Template{Title: "Release"}))
	})

	t.Run("skip push", func(t *testing.T) {
		resolver := &resolverMock{}
		resolver.On("Resolve", mock.Anything).Return([]string{"u1"}, nil).Once()
		pusher := &pusherMock{}

		svc := newTestService(resolver, &batchStore{}, pusher)
		_, err := svc.Broadcast(context.Background(), model.Template{Title: "From webhook"}, Options{SkipPush: true})

		require.NoError(t, err)
		svc.Wait()
		pusher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		require.False(t, svc.IsEcho(model.Template{Title: "From webhook"}))
	})

	t.Run("push failure does not fail broadcast", func(t *testing.T) {
		resolver := &resolverMock{}
		resolver.On("Resolve", mock.Anything).Return([]string{"u1"}, nil).Once()
		pusher := &pusherMock{}
		pusher.On("Send", mock.Anything, mock.Anything).Return("", push.ErrAllStrategiesFailed).Once()

		svc := newTestService(resolver, &batchStore{}, pusher)
		result, err := svc.Broadcast(context.Background(), model.Template{Title: "hi"}, Options{})

		require.NoError(t, err)
		require.Equal(t, 1, result.CreatedCount)
		svc.Wait()
		pusher.AssertExpectations(t)
	})

	t.Run("validation happens before resolution", func(t *testing.T) {
		resolver := &resolverMock{}
		pusher := &pusherMock{}
		store := &batchStore{}

		_, err := newTestService(resolver, store, pusher).Broadcast(context.Background(), model.Template{}, Options{})

		require.ErrorIs(t, err, domain.ErrValidation)
		resolver.AssertNotCalled(t, "Resolve", mock.Anything)
		require.Zero(t, store.calls)
	})

	t.Run("resolution failure", func(t *testing.T) {
		resolver := &resolverMock{}
		resolver.On("Resolve", mock.Anything).Return(nil, domain.ErrResolutionFailed).Once()
		store := &batchStore{}

		_, err := newTestService(resolver, store, &pusherMock{}).Broadcast(context.Background(), model.Template{Title: "hi"}, Options{})

		require.ErrorIs(t, err, domain.ErrResolutionFailed)
		require.Zero(t, store.calls)
	})

	t.Run("no recipients", func(t *testing.T) {
		resolver := &resolverMock{}
		resolver.On("Resolve", mock.Anything).Return([]string{}, nil).Once()

		_, err := newTestService(resolver, &batchStore{}, &pusherMock{}).Broadcast(context.Background(), model.Template{Title: "hi"}, Options{})

		require.ErrorIs(t, err, domain.ErrNoRecipients)
	})

	t.Run("write failure skips push", func(t *testing.T) {
		resolver := &resolverMock{}
		resolver.On("Resolve", mock.Anything).Return([]string{"u1"}, nil).Once()
		pusher := &pusherMock{}
		store := &batchStore{failOn: map[int]error{0: errors.New("connection refused")}}

		svc := newTestService(resolver, store, pusher)
		_, err := svc.Broadcast(context.Background(), model.Template{Title: "hi"}, Options{})

		require.ErrorIs(t, err, domain.ErrWriteFailed)
		svc.Wait()
		pusher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestBroadcastDoesNotWaitForPush(t *testing.T) {
	resolver := &resolverMock{}
	resolver.On("Resolve", mock.Anything).Return([]string{"u1"}, nil).Once()
	release := make(chan struct{})
	pusher := &pusherMock{}
	pusher.On("Send", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return("pushalert", nil).Once()
	svc := newTestService(resolver, &batchStore{}, pusher)

	ctx, cancel := context.WithCancel(context.Background())
	returned := make(chan error, 1)
	go func() {
		_, err := svc.Broadcast(ctx, model.Template{Title: "slow vendor"}, Options{})
		returned <- err
	}()

	select {
	case err := <-returned:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("broadcast waited for the vendor push")
	}
	cancel()
	close(release)
	svc.Wait()
	pusher.AssertExpectations(t)
}

func TestBroadcastPublishesStoredRecords(t *testing.T) {
	resolver := &resolverMock{}
	resolver.On("Resolve", mock.Anything).Return([]string{"u1", "u2", "u3"}, nil).Once()
	live := &liveRecorder{}
	svc := NewService(resolver, sequential(&batchStore{}, 2), live, nil, 0, zap.NewNop())

	result, err := svc.Broadcast(context.Background(), model.Template{Title: "Standup"}, Options{SkipPush: true})
	require.NoError(t, err)
	svc.Wait()

	sent := live.published()
	require.Len(t, sent, 3)
	owners := make(map[string]string, len(sent))
	for _, n := range sent {
		require.NotEmpty(t, n.ID)
		require.Equal(t, "Standup", n.Title)
		owners[n.UserID] = n.ID
	}
	require.Len(t, owners, 3)
	for _, r := range result.Records {
		require.Equal(t, r.ID, owners[r.UserID])
	}
}
