package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"teamboard/internal/domain"
	"teamboard/internal/model"
	"teamboard/internal/repository"
	"teamboard/internal/store/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repository.Store {
		return newTestStore(t)
	})
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teamboard.db")

	first, err := New(path, zap.NewNop())
	require.NoError(t, err)
	_, err = first.CreateNotification(context.Background(), model.Notification{UserID: "u1", Title: "kept"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(path, zap.NewNop())
	require.NoError(t, err)
	defer second.Close()

	var version int
	require.NoError(t, second.db.Get(&version, "SELECT MAX(version) FROM schema_version"))
	require.Equal(t, len(migrations), version)

	history, err := second.ListNotifications(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestMissingTableIsReported(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, err := store.db.ExecContext(ctx, "DROP TABLE notifications")
	require.NoError(t, err)

	_, err = store.InsertNotifications(ctx, []model.Notification{{UserID: "u1", Title: "x"}})
	require.ErrorIs(t, err, domain.ErrTableMissing)
	var se *domain.StoreError
	require.ErrorAs(t, err, &se)
	require.Equal(t, domain.KindTableMissing, se.Kind)

	_, err = store.ListNotifications(ctx, "u1", 10)
	require.ErrorIs(t, err, domain.ErrTableMissing)
}

func TestEmptyBatchIsNoop(t *testing.T) {
	store := newTestStore(t)
	created, err := store.InsertNotifications(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, created)
}
