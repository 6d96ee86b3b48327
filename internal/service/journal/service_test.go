package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"teamboard/internal/domain"
	"teamboard/internal/model"
	"teamboard/internal/store/memory"
)

var alice = model.Identity{UserID: "alice", Email: "alice@example.com"}

func TestUpsertReport(t *testing.T) {
	svc := NewService(memory.New(zap.NewNop()), zap.NewNop())
	ctx := context.Background()

	first, err := svc.UpsertReport(ctx, alice, "2026-03-01", "slept well", "6:30")
	require.NoError(t, err)
	require.Equal(t, "06:30:00", first.WakeUpTime)
	require.Equal(t, "alice@example.com", first.UserEmail)

	second, err := svc.UpsertReport(ctx, alice, "2026-03-01", "rewritten", "")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	reports, err := svc.ListReports(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, "rewritten", reports[0].Reflection)
}

func TestUpsertReportValidation(t *testing.T) {
	svc := NewService(memory.New(zap.NewNop()), zap.NewNop())

	_, err := svc.UpsertReport(context.Background(), alice, "03/01/2026", "", "")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpsertReport(context.Background(), alice, "2026-02-30", "", "")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpsertReport(context.Background(), alice, "2026-03-01", "", "25:00")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestTodoLifecycle(t *testing.T) {
	svc := NewService(memory.New(zap.NewNop()), zap.NewNop())
	ctx := context.Background()

	a, err := svc.CreateTodo(ctx, alice, " write report ", "2026-03-01")
	require.NoError(t, err)
	require.Equal(t, "write report", a.Title)
	_, err = svc.CreateTodo(ctx, alice, "review", "2026-03-01")
	require.NoError(t, err)
	_, err = svc.CreateTodo(ctx, alice, "someday", "")
	require.NoError(t, err)

	renamed, err := svc.RenameTodo(ctx, "alice", a.ID, "write weekly report")
	require.NoError(t, err)
	require.Equal(t, "write weekly report", renamed.Title)

	done, err := svc.SetTodoCompleted(ctx, "alice", a.ID, true)
	require.NoError(t, err)
	require.True(t, done.IsCompleted)

	n, err := svc.CompleteAll(ctx, "alice", "2026-03-01")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	dated, err := svc.ListTodos(ctx, "alice", "2026-03-01")
	require.NoError(t, err)
	require.Len(t, dated, 2)
	for _, todo := range dated {
		require.True(t, todo.IsCompleted)
	}

	require.NoError(t, svc.DeleteTodo(ctx, "alice", a.ID))
	all, err := svc.ListTodos(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestTodoScopedToOwner(t *testing.T) {
	svc := NewService(memory.New(zap.NewNop()), zap.NewNop())
	ctx := context.Background()
	todo, err := svc.CreateTodo(ctx, alice, "mine", "")
	require.NoError(t, err)

	_, err = svc.SetTodoCompleted(ctx, "mallory", todo.ID, true)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, svc.DeleteTodo(ctx, "mallory", todo.ID), domain.ErrNotFound)

	_, err = svc.CreateTodo(ctx, alice, "  ", "")
	require.ErrorIs(t, err, domain.ErrValidation)
}
