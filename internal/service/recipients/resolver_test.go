package recipients

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"teamboard/internal/domain"
)

func staticSource(name string, ids []string, err error) Source {
	return NewSource(name, func(context.Context, int) ([]string, error) {
		return ids, err
	})
}

func TestResolveUnion(t *testing.T) {
	r := NewResolver(
		staticSource("daily_reports", []string{"b", "a", " ", "c"}, nil),
		staticSource("todos", []string{"c", "d", "a"}, nil),
		0, zap.NewNop(),
	)

	ids, err := r.Resolve(context.Background())

	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d"}, ids)
}

func TestResolveOneSourceFails(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := NewResolver(
		staticSource("daily_reports", nil, errors.New("timeout")),
		staticSource("todos", []string{"x"}, nil),
		0, zap.New(core),
	)

	ids, err := r.Resolve(context.Background())

	require.NoError(t, err)
	require.Equal(t, []string{"x"}, ids)
	require.Equal(t, 1, logs.FilterMessage("recipient source failed").Len())
}

func TestResolveBothFail(t *testing.T) {
	r := NewResolver(
		staticSource("daily_reports", nil, errors.New("timeout")),
		staticSource("todos", nil, errors.New("no such table")),
		0, zap.NewNop(),
	)

	ids, err := r.Resolve(context.Background())

	require.Nil(t, ids)
	require.ErrorIs(t, err, domain.ErrResolutionFailed)
	require.ErrorIs(t, err, domain.ErrSource)
	require.ErrorContains(t, err, "no such table")
}

func TestResolveEmpty(t *testing.T) {
	r := NewResolver(staticSource("a", nil, nil), staticSource("b", []string{}, nil), 0, zap.NewNop())

	ids, err := r.Resolve(context.Background())

	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestResolvePassesScanLimit(t *testing.T) {
	var got []int
	limited := func(ctx context.Context, limit int) ([]string, error) {
		got = append(got, limit)
		return nil, nil
	}
	r := NewResolver(NewSource("a", limited), staticSource("b", nil, nil), 25, zap.NewNop())

	_, err := r.Resolve(context.Background())

	require.NoError(t, err)
	require.Equal(t, []int{25}, got)
}
