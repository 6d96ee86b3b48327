// Package storetest holds behaviour shared by every repository.Store backend.
package storetest

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"teamboard/internal/domain"
	"teamboard/internal/model"
	"teamboard/internal/repository"
)

// Run exercises store against the repository contracts. newStore must return
// an empty store; every subtest gets its own.
func Run(t *testing.T, newStore func(t *testing.T) repository.Store) {
	t.Run("batch insert keeps ids and order", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		batch := []model.Notification{
			{ID: "n-1", UserID: "u1", Title: "hello", Payload: []byte(`{"k":1}`), CreatedAt: createdAt},
			{ID: "n-2", UserID: "u2", Title: "hello", URL: "https://example.com", CreatedAt: createdAt},
		}
		created, err := store.InsertNotifications(ctx, batch)
		require.NoError(t, err)
		require.Len(t, created, 2)
		require.Equal(t, "n-1", created[0].ID)
		require.Equal(t, "n-2", created[1].ID)
		require.False(t, created[0].IsRead)

		history, err := store.ListNotifications(ctx, "u1", 10)
		require.NoError(t, err)
		require.Len(t, history, 1)
		require.Equal(t, "n-1", history[0].ID)
		require.JSONEq(t, `{"k":1}`, string(history[0].Payload))
		require.True(t, createdAt.Equal(history[0].CreatedAt))
	})

	t.Run("batch insert is all or nothing", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		_, err := store.CreateNotification(ctx, model.Notification{ID: "dup", UserID: "u9", Title: "existing"})
		require.NoError(t, err)

		_, err = store.InsertNotifications(ctx, []model.Notification{
			{ID: "b-1", UserID: "u1", Title: "batch"},
			{ID: "dup", UserID: "u1", Title: "batch"},
			{ID: "b-3", UserID: "u1", Title: "batch"},
		})
		require.Error(t, err)

		history, err := store.ListNotifications(ctx, "u1", 0)
		require.NoError(t, err)
		require.Empty(t, history)
	})

	t.Run("history is newest first and limited", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		for i, title := range []string{"first", "second", "third"} {
			_, err := store.CreateNotification(ctx, model.Notification{
				UserID: "u1", Title: title, CreatedAt: base.Add(time.Duration(i) * time.Minute),
			})
			require.NoError(t, err)
		}

		history, err := store.ListNotifications(ctx, "u1", 2)
		require.NoError(t, err)
		require.Len(t, history, 2)
		require.Equal(t, "third", history[0].Title)
		require.Equal(t, "second", history[1].Title)

		all, err := store.ListNotifications(ctx, "u1", 0)
		require.NoError(t, err)
		require.Len(t, all, 3)

		none, err := store.ListNotifications(ctx, "nobody", 10)
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("read state is scoped to the owner", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		n, err := store.CreateNotification(ctx, model.Notification{UserID: "u1", Title: "x"})
		require.NoError(t, err)
		_, err = store.CreateNotification(ctx, model.Notification{UserID: "u1", Title: "y"})
		require.NoError(t, err)

		require.NoError(t, store.MarkRead(ctx, "u1", n.ID))
		require.NoError(t, store.MarkRead(ctx, "u1", n.ID))
		require.ErrorIs(t, store.MarkRead(ctx, "u2", n.ID), domain.ErrNotFound)
		require.ErrorIs(t, store.MarkRead(ctx, "u1", "missing"), domain.ErrNotFound)

		updated, err := store.MarkAllRead(ctx, "u1")
		require.NoError(t, err)
		require.EqualValues(t, 1, updated)
		updated, err = store.MarkAllRead(ctx, "u1")
		require.NoError(t, err)
		require.Zero(t, updated)

		require.ErrorIs(t, store.DeleteNotification(ctx, "u2", n.ID), domain.ErrNotFound)
		require.NoError(t, store.DeleteNotification(ctx, "u1", n.ID))
		require.ErrorIs(t, store.DeleteNotification(ctx, "u1", n.ID), domain.ErrNotFound)
	})

	t.Run("push id lookup", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		pushed, err := store.CreateNotification(ctx, model.Notification{UserID: "u1", Title: "push", PushID: "p-1"})
		require.NoError(t, err)
		_, err = store.CreateNotification(ctx, model.Notification{UserID: "u1", Title: "plain"})
		require.NoError(t, err)

		found, err := store.FindByPushID(ctx, "u1", "p-1")
		require.NoError(t, err)
		require.Equal(t, pushed.ID, found.ID)

		_, err = store.FindByPushID(ctx, "u2", "p-1")
		require.ErrorIs(t, err, domain.ErrNotFound)
		_, err = store.FindByPushID(ctx, "u1", "")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("report upsert keeps one row per date", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		first, err := store.UpsertReport(ctx, model.DailyReport{UserID: "r1", Date: "2026-03-01", Reflection: "a", WakeUpTime: "06:30:00"})
		require.NoError(t, err)
		require.NotEmpty(t, first.ID)
		second, err := store.UpsertReport(ctx, model.DailyReport{UserID: "r1", Date: "2026-03-01", Reflection: "b"})
		require.NoError(t, err)
		require.Equal(t, first.ID, second.ID)
		_, err = store.UpsertReport(ctx, model.DailyReport{UserID: "r1", Date: "2026-03-02", Reflection: "c"})
		require.NoError(t, err)

		reports, err := store.ListReports(ctx, "r1")
		require.NoError(t, err)
		require.Len(t, reports, 2)
		require.Equal(t, "2026-03-02", reports[0].Date)
		require.Equal(t, "b", reports[1].Reflection)
		require.Empty(t, reports[1].WakeUpTime)

		all, err := store.ListAllReports(ctx, 1)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("todos", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		a, err := store.CreateTodo(ctx, model.Todo{UserID: "t1", Title: "a", TargetDate: "2026-03-01", CreatedAt: base})
		require.NoError(t, err)
		_, err = store.CreateTodo(ctx, model.Todo{UserID: "t1", Title: "b", TargetDate: "2026-03-02", CreatedAt: base.Add(time.Minute)})
		require.NoError(t, err)
		_, err = store.CreateTodo(ctx, model.Todo{UserID: "t2", Title: "c", CreatedAt: base.Add(2 * time.Minute)})
		require.NoError(t, err)

		todos, err := store.ListTodos(ctx, "t1", "")
		require.NoError(t, err)
		require.Len(t, todos, 2)
		require.Equal(t, "b", todos[0].Title)

		dated, err := store.ListTodos(ctx, "t1", "2026-03-01")
		require.NoError(t, err)
		require.Len(t, dated, 1)
		require.Equal(t, a.ID, dated[0].ID)

		a.Title = "renamed"
		a.IsCompleted = true
		require.NoError(t, store.UpdateTodo(ctx, a))
		require.NoError(t, store.UpdateTodo(ctx, a))
		require.ErrorIs(t, store.UpdateTodo(ctx, model.Todo{ID: a.ID, UserID: "t2"}), domain.ErrNotFound)

		dated, err = store.ListTodos(ctx, "t1", "2026-03-01")
		require.NoError(t, err)
		require.Equal(t, "renamed", dated[0].Title)
		require.True(t, dated[0].IsCompleted)

		n, err := store.CompleteTodos(ctx, "t1", "", true)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		n, err = store.CompleteTodos(ctx, "t1", "2026-03-02", false)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		all, err := store.ListAllTodos(ctx, 0)
		require.NoError(t, err)
		require.Len(t, all, 3)

		require.NoError(t, store.DeleteTodo(ctx, "t1", a.ID))
		require.ErrorIs(t, store.DeleteTodo(ctx, "t1", a.ID), domain.ErrNotFound)
	})

	t.Run("recipient columns and admins", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		for _, d := range []string{"2026-03-01", "2026-03-02"} {
			_, err := store.UpsertReport(ctx, model.DailyReport{UserID: "r1", Date: d})
			require.NoError(t, err)
		}
		_, err := store.CreateTodo(ctx, model.Todo{UserID: "t1", Title: "x"})
		require.NoError(t, err)

		ids, err := store.ReportUserIDs(ctx, 0)
		require.NoError(t, err)
		sort.Strings(ids)
		require.Equal(t, []string{"r1", "r1"}, ids)

		ids, err = store.ReportUserIDs(ctx, 1)
		require.NoError(t, err)
		require.Len(t, ids, 1)

		ids, err = store.TodoUserIDs(ctx, 100)
		require.NoError(t, err)
		require.Equal(t, []string{"t1"}, ids)

		ok, err := store.IsAdmin(ctx, "admin-1")
		require.NoError(t, err)
		require.False(t, ok)
		require.NoError(t, store.UpsertAdmin(ctx, "admin-1"))
		require.NoError(t, store.UpsertAdmin(ctx, "admin-1"))
		ok, err = store.IsAdmin(ctx, "admin-1")
		require.NoError(t, err)
		require.True(t, ok)
	})
}
