package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"teamboard/internal/model"
	"teamboard/internal/repository"
	"teamboard/internal/store/storetest"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repository.Store {
		return New(zap.NewNop())
	})
}

func TestInsertNotificationsNeverStoresRead(t *testing.T) {
	store := New(zap.NewNop())
	created, err := store.InsertNotifications(context.Background(), []model.Notification{
		{UserID: "u1", Title: "x", IsRead: true},
	})
	require.NoError(t, err)
	require.False(t, created[0].IsRead)
	require.NotEmpty(t, created[0].ID)
	require.False(t, created[0].CreatedAt.IsZero())
}

func TestConcurrentInserts(t *testing.T) {
	store := New(zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.InsertNotifications(ctx, []model.Notification{{UserID: "u1", Title: "x"}, {UserID: "u1", Title: "y"}})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	history, err := store.ListNotifications(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 40)
}
