package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreErrorUnwrap(t *testing.T) {
	driver := errors.New("Error 1146: Table 'teamboard.notifications' doesn't exist")
	err := fmt.Errorf("batch 2: %w", &StoreError{Op: "insert notification batch", Kind: KindTableMissing, Err: driver})

	require.ErrorIs(t, err, ErrTableMissing)
	require.ErrorIs(t, err, driver)
	require.Contains(t, err.Error(), "table_missing")

	generic := &StoreError{Op: "list notifications", Err: driver}
	require.NotErrorIs(t, generic, ErrTableMissing)
	require.ErrorIs(t, generic, driver)
}

func TestWriteFailedError(t *testing.T) {
	last := &StoreError{Op: "insert notification batch", Kind: KindTableMissing, Err: errors.New("gone")}
	err := error(&WriteFailedError{Attempted: 3, Last: last})

	require.ErrorIs(t, err, ErrWriteFailed)
	require.ErrorIs(t, err, ErrTableMissing)
	require.Contains(t, err.Error(), "3 batches failed")

	var se *StoreError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "insert notification batch", se.Op)
}

func TestDetail(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", Validationf("title is required"), "validation error: title is required"},
		{"table missing wins over write failed", &WriteFailedError{Attempted: 1, Last: &StoreError{Kind: KindTableMissing, Err: errors.New("x")}}, "notifications table does not exist"},
		{"resolution hides sources", fmt.Errorf("%w: %w", ErrResolutionFailed, errors.New("dial tcp: refused")), "recipient resolution failed"},
		{"no recipients", ErrNoRecipients, "no recipients"},
		{"store op only", &StoreError{Op: "list todos", Err: errors.New("driver: bad conn")}, "list todos failed"},
		{"unknown", errors.New("secret driver text"), "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Detail(tc.err))
		})
	}
}
