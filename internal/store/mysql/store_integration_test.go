//go:build integration

package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"teamboard/internal/domain"
	"teamboard/internal/model"
	"teamboard/internal/repository"
	"teamboard/internal/store/storetest"
)

func TestMySQLStoreIntegration(t *testing.T) {
	store := startMySQL(t)

	storetest.Run(t, func(t *testing.T) repository.Store {
		truncate(t, store)
		return store
	})

	t.Run("payload survives the json column", func(t *testing.T) {
		truncate(t, store)
		ctx := context.Background()
		_, err := store.InsertNotifications(ctx, []model.Notification{
			{UserID: "u1", Title: "hello", Payload: []byte(`{"nested":{"k":[1,2]}}`)},
		})
		require.NoError(t, err)
		history, err := store.ListNotifications(ctx, "u1", 10)
		require.NoError(t, err)
		require.JSONEq(t, `{"nested":{"k":[1,2]}}`, string(history[0].Payload))
	})

	t.Run("missing table", func(t *testing.T) {
		ctx := context.Background()
		_, err := store.conn.ExecContext(ctx, "DROP TABLE notifications")
		require.NoError(t, err)

		_, err = store.InsertNotifications(ctx, []model.Notification{{UserID: "u1", Title: "x"}})
		require.ErrorIs(t, err, domain.ErrTableMissing)
		var se *domain.StoreError
		require.ErrorAs(t, err, &se)
		require.Equal(t, domain.KindTableMissing, se.Kind)
	})
}
